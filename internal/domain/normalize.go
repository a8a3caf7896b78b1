package domain

import (
	"strings"

	"github.com/spf13/cast"
)

// attributeAliases maps lowercase misspellings and synonyms to canonical
// attribute names. Canonical names are never keys here, so resolution is a
// single lookup with no alias chains.
var attributeAliases = map[string]string{
	// Common typos.
	"tempature":  AttrTemperature,
	"temperatue": AttrTemperature,
	"temprature": AttrTemperature,
	"humid":      AttrHumidity,
	"humidty":    AttrHumidity,
	"precip":     AttrPrecipitation,
	"rainfall":   AttrPrecipitation,
	"wind":       AttrWindSpeed,
	"windspeed":  AttrWindSpeed,

	// Alternative names.
	"temp":             AttrTemperature,
	"rain":             AttrPrecipitation,
	"winds":            AttrWindSpeed,
	"soil_moisture":    AttrSoilSaturation,
	"dry_days":         AttrConsecutiveDryDays,
	"hot_days":         AttrConsecutiveHotDays,
	"air_quality":      AttrAirQualityIndex,
	"aqi":              AttrAirQualityIndex,
	"earthquake":       AttrSeismicActivity,
	"coastal_distance": AttrCoastalProximity,
	"volcano":          AttrVolcanicActivity,
	"sst":              AttrSeaSurfaceTemp,
	"cape":             AttrCAPE,
}

// NormalizeAttributes rewrites the keys of a raw observation map to canonical
// attribute names. Keys are lowercased and trimmed before lookup; keys with
// no known alias pass through unchanged and are retained, so unknown
// attributes degrade gracefully instead of failing the request.
func NormalizeAttributes(raw map[string]any) map[string]any {
	normalized := make(map[string]any, len(raw))
	for key, value := range raw {
		cleaned := strings.ToLower(strings.TrimSpace(key))
		if canonical, ok := attributeAliases[cleaned]; ok {
			cleaned = canonical
		}
		normalized[cleaned] = value
	}
	return normalized
}

// ObservationFromMap normalizes attribute names and folds the values into a
// typed Observation. Values that cannot be coerced to the attribute's type
// keep the attribute's default; unknown attributes are ignored. This never
// fails: malformed input degrades to a partially-populated observation.
func ObservationFromMap(raw map[string]any) Observation {
	attrs := NormalizeAttributes(raw)
	obs := DefaultObservation()
	for name, value := range attrs {
		assign, ok := observationFields[name]
		if !ok {
			continue
		}
		assign(&obs, value)
	}
	return obs
}

// observationFields maps canonical attribute names to assignment functions.
var observationFields = map[string]func(*Observation, any){
	AttrTemperature:             func(o *Observation, v any) { assignFloat(&o.Temperature, v) },
	AttrHumidity:                func(o *Observation, v any) { assignFloat(&o.Humidity, v) },
	AttrPrecipitation:           func(o *Observation, v any) { assignFloat(&o.Precipitation, v) },
	AttrPrecipitationIntensity:  func(o *Observation, v any) { assignFloat(&o.PrecipitationIntensity, v) },
	AttrWindSpeed:               func(o *Observation, v any) { assignFloat(&o.WindSpeed, v) },
	AttrPressure:                func(o *Observation, v any) { assignFloat(&o.Pressure, v) },
	AttrPressureChange:          func(o *Observation, v any) { assignFloat(&o.PressureChange, v) },
	AttrSeaSurfaceTemp:          func(o *Observation, v any) { assignFloat(&o.SeaSurfaceTemp, v) },
	AttrSnowDepth:               func(o *Observation, v any) { assignFloat(&o.SnowDepth, v) },
	AttrSnowFall:                func(o *Observation, v any) { assignFloat(&o.SnowFall, v) },
	AttrTemperatureChange:       func(o *Observation, v any) { assignFloat(&o.TemperatureChange, v) },
	AttrConsecutiveDryDays:      func(o *Observation, v any) { assignFloat(&o.ConsecutiveDryDays, v) },
	AttrConsecutiveHotDays:      func(o *Observation, v any) { assignFloat(&o.ConsecutiveHotDays, v) },
	AttrSoilSaturation:          func(o *Observation, v any) { assignFloat(&o.SoilSaturation, v) },
	AttrRiverLevelPercent:       func(o *Observation, v any) { assignFloat(&o.RiverLevelPercent, v) },
	AttrUpstreamPrecipitation:   func(o *Observation, v any) { assignFloat(&o.UpstreamPrecipitation, v) },
	AttrUrbanRunoffIndex:        func(o *Observation, v any) { assignFloat(&o.UrbanRunoffIndex, v) },
	AttrUrbanDensity:            func(o *Observation, v any) { assignFloat(&o.UrbanDensity, v) },
	AttrVegetationDryness:       func(o *Observation, v any) { assignFloat(&o.VegetationDryness, v) },
	AttrDryLightningProbability: func(o *Observation, v any) { assignFloat(&o.DryLightningProbability, v) },
	AttrHelicity:                func(o *Observation, v any) { assignFloat(&o.Helicity, v) },
	AttrLiftedIndex:             func(o *Observation, v any) { assignFloat(&o.LiftedIndex, v) },
	AttrAirQualityIndex:         func(o *Observation, v any) { assignFloat(&o.AirQualityIndex, v) },
	AttrSeismicActivity:         func(o *Observation, v any) { assignFloat(&o.SeismicActivity, v) },
	AttrCoastalProximity:        func(o *Observation, v any) { assignFloat(&o.CoastalProximity, v) },
	AttrVolcanicActivity:        func(o *Observation, v any) { assignFloat(&o.VolcanicActivity, v) },
	AttrDewPoint:                func(o *Observation, v any) { assignFloat(&o.DewPoint, v) },
	AttrCloudHeight:             func(o *Observation, v any) { assignFloat(&o.CloudHeight, v) },
	AttrStagnantWaterIndex:      func(o *Observation, v any) { assignFloat(&o.StagnantWaterIndex, v) },

	AttrWindShear: func(o *Observation, v any) {
		if assignFloat(&o.WindShear, v) {
			o.WindShearProvided = true
		}
	},
	AttrCAPE: func(o *Observation, v any) {
		if assignFloat(&o.CAPE, v) {
			o.CAPEProvided = true
		}
	},
	AttrTemperatureGradient: func(o *Observation, v any) {
		if assignFloat(&o.TemperatureGradient, v) {
			o.TemperatureGradientProvided = true
		}
	},
	AttrUnderwaterQuake: func(o *Observation, v any) {
		if b, err := cast.ToBoolE(v); err == nil {
			o.UnderwaterQuake = b
		}
	},
}

// assignFloat coerces v to float64 and assigns it, reporting whether the
// value was usable. Unparseable values leave the destination untouched.
func assignFloat(dst *float64, v any) bool {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return false
	}
	*dst = f
	return true
}
