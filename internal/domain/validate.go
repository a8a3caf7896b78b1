package domain

// RangeCorrection records a value that was clamped into its valid range
// during validation. Corrections are informational: they surface what was
// repaired but never fail the request.
type RangeCorrection struct {
	Attribute string  `json:"attribute"`
	Original  float64 `json:"original"`
	Corrected float64 `json:"corrected"`
	Bound     string  `json:"bound"` // "min" or "max"
}

// rangeRule declares the physically plausible bounds for one attribute.
type rangeRule struct {
	attribute string
	min, max  float64
	value     func(*Observation) *float64
}

// validRanges covers the attributes with declared bounds; everything else
// passes through validation unchanged. Bounds reflect recorded Earth
// extremes: temperature in Celsius, precipitation in mm/day, wind in m/s,
// pressure in hPa, seismic activity on the Richter scale.
var validRanges = []rangeRule{
	{AttrTemperature, -70, 60, func(o *Observation) *float64 { return &o.Temperature }},
	{AttrHumidity, 0, 100, func(o *Observation) *float64 { return &o.Humidity }},
	{AttrPrecipitation, 0, 2000, func(o *Observation) *float64 { return &o.Precipitation }},
	{AttrWindSpeed, 0, 150, func(o *Observation) *float64 { return &o.WindSpeed }},
	{AttrPressure, 870, 1085, func(o *Observation) *float64 { return &o.Pressure }},
	{AttrAirQualityIndex, 0, 1000, func(o *Observation) *float64 { return &o.AirQualityIndex }},
	{AttrSeismicActivity, 0, 10, func(o *Observation) *float64 { return &o.SeismicActivity }},
}

// ValidateObservation clamps every bounded attribute into its declared range
// and reports each clamping event. An observation is repaired, never
// rejected: partial data availability wins over strict correctness.
func ValidateObservation(obs Observation) (Observation, []RangeCorrection) {
	var corrections []RangeCorrection
	for _, rule := range validRanges {
		v := rule.value(&obs)
		switch {
		case *v < rule.min:
			corrections = append(corrections, RangeCorrection{
				Attribute: rule.attribute,
				Original:  *v,
				Corrected: rule.min,
				Bound:     "min",
			})
			*v = rule.min
		case *v > rule.max:
			corrections = append(corrections, RangeCorrection{
				Attribute: rule.attribute,
				Original:  *v,
				Corrected: rule.max,
				Bound:     "max",
			})
			*v = rule.max
		}
	}
	return obs, corrections
}
