package domain

// Canonical attribute names. Every raw input key resolves to one of these (or
// passes through unchanged and is ignored when folding into an Observation).
const (
	AttrTemperature             = "temperature"
	AttrHumidity                = "humidity"
	AttrPrecipitation           = "precipitation"
	AttrPrecipitationIntensity  = "precipitation_intensity"
	AttrWindSpeed               = "wind_speed"
	AttrPressure                = "pressure"
	AttrPressureChange          = "pressure_change"
	AttrSeaSurfaceTemp          = "sea_surface_temp"
	AttrSnowDepth               = "snow_depth"
	AttrSnowFall                = "snow_fall"
	AttrTemperatureGradient     = "temperature_gradient"
	AttrTemperatureChange       = "temperature_change"
	AttrConsecutiveDryDays      = "consecutive_dry_days"
	AttrConsecutiveHotDays      = "consecutive_hot_days"
	AttrSoilSaturation          = "soil_saturation"
	AttrRiverLevelPercent       = "river_level_percent"
	AttrUpstreamPrecipitation   = "upstream_precipitation"
	AttrUrbanRunoffIndex        = "urban_runoff_index"
	AttrUrbanDensity            = "urban_density"
	AttrVegetationDryness       = "vegetation_dryness"
	AttrDryLightningProbability = "dry_lightning_probability"
	AttrWindShear               = "wind_shear"
	AttrCAPE                    = "cape_value"
	AttrHelicity                = "helicity"
	AttrLiftedIndex             = "lifted_index"
	AttrAirQualityIndex         = "air_quality_index"
	AttrSeismicActivity         = "seismic_activity"
	AttrCoastalProximity        = "coastal_proximity"
	AttrUnderwaterQuake         = "underwater_quake"
	AttrVolcanicActivity        = "volcanic_activity"
	AttrDewPoint                = "dew_point"
	AttrCloudHeight             = "cloud_height"
	AttrStagnantWaterIndex      = "stagnant_water_index"
)

// Observation is the canonical weather observation after attribute
// normalization. Every attribute carries a default, so a partial observation
// is always valid; the risk functions treat "attribute at default" the same
// as "attribute absent" everywhere except the tornado convective profile,
// where the explicit *Provided flags decide between the advanced and the
// coarse estimate.
type Observation struct {
	Temperature             float64 `json:"temperature"`
	Humidity                float64 `json:"humidity"`
	Precipitation           float64 `json:"precipitation"`
	PrecipitationIntensity  float64 `json:"precipitation_intensity"`
	WindSpeed               float64 `json:"wind_speed"`
	Pressure                float64 `json:"pressure"`
	PressureChange          float64 `json:"pressure_change"`
	SeaSurfaceTemp          float64 `json:"sea_surface_temp"`
	SnowDepth               float64 `json:"snow_depth"`
	SnowFall                float64 `json:"snow_fall"`
	TemperatureGradient     float64 `json:"temperature_gradient"`
	TemperatureChange       float64 `json:"temperature_change"`
	ConsecutiveDryDays      float64 `json:"consecutive_dry_days"`
	ConsecutiveHotDays      float64 `json:"consecutive_hot_days"`
	SoilSaturation          float64 `json:"soil_saturation"`
	RiverLevelPercent       float64 `json:"river_level_percent"`
	UpstreamPrecipitation   float64 `json:"upstream_precipitation"`
	UrbanRunoffIndex        float64 `json:"urban_runoff_index"`
	UrbanDensity            float64 `json:"urban_density"`
	VegetationDryness       float64 `json:"vegetation_dryness"`
	DryLightningProbability float64 `json:"dry_lightning_probability"`
	WindShear               float64 `json:"wind_shear"`
	CAPE                    float64 `json:"cape_value"`
	Helicity                float64 `json:"helicity"`
	LiftedIndex             float64 `json:"lifted_index"`
	AirQualityIndex         float64 `json:"air_quality_index"`
	SeismicActivity         float64 `json:"seismic_activity"`
	CoastalProximity        float64 `json:"coastal_proximity"`
	UnderwaterQuake         bool    `json:"underwater_quake"`
	VolcanicActivity        float64 `json:"volcanic_activity"`
	DewPoint                float64 `json:"dew_point"`
	CloudHeight             float64 `json:"cloud_height"`
	StagnantWaterIndex      float64 `json:"stagnant_water_index"`

	// Presence flags for the convective-profile attributes. The tornado risk
	// function falls back to a coarse wind/gradient estimate unless all three
	// were meaningfully provided; defaults alone cannot express that.
	WindShearProvided           bool `json:"-"`
	CAPEProvided                bool `json:"-"`
	TemperatureGradientProvided bool `json:"-"`
}

// DefaultObservation returns an Observation with every attribute at its
// default. Non-zero defaults: standard sea-level pressure, "far from coast"
// proximity, and a high cloud base.
func DefaultObservation() Observation {
	return Observation{
		Pressure:         1013.0,
		CoastalProximity: 9999.0,
		CloudHeight:      10000.0,
	}
}
