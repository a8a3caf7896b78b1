package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateObservation_Clamping(t *testing.T) {
	tests := []struct {
		name      string
		set       func(*Observation)
		attribute string
		expected  float64
		bound     string
	}{
		{"temperature below min", func(o *Observation) { o.Temperature = -120 }, "temperature", -70, "min"},
		{"temperature above max", func(o *Observation) { o.Temperature = 95 }, "temperature", 60, "max"},
		{"humidity above max", func(o *Observation) { o.Humidity = 140 }, "humidity", 100, "max"},
		{"humidity below min", func(o *Observation) { o.Humidity = -5 }, "humidity", 0, "min"},
		{"precipitation above max", func(o *Observation) { o.Precipitation = 5000 }, "precipitation", 2000, "max"},
		{"wind above max", func(o *Observation) { o.WindSpeed = 400 }, "wind_speed", 150, "max"},
		{"pressure below min", func(o *Observation) { o.Pressure = 500 }, "pressure", 870, "min"},
		{"pressure above max", func(o *Observation) { o.Pressure = 1200 }, "pressure", 1085, "max"},
		{"aqi above max", func(o *Observation) { o.AirQualityIndex = 1500 }, "air_quality_index", 1000, "max"},
		{"seismic above max", func(o *Observation) { o.SeismicActivity = 12 }, "seismic_activity", 10, "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := DefaultObservation()
			tt.set(&obs)

			validated, corrections := ValidateObservation(obs)

			require.Len(t, corrections, 1)
			assert.Equal(t, tt.attribute, corrections[0].Attribute)
			assert.Equal(t, tt.expected, corrections[0].Corrected)
			assert.Equal(t, tt.bound, corrections[0].Bound)

			revalidated, again := ValidateObservation(validated)
			assert.Empty(t, again, "clamped observation must validate cleanly")
			assert.Equal(t, validated, revalidated)
		})
	}
}

func TestValidateObservation_InRangeUnchanged(t *testing.T) {
	obs := DefaultObservation()
	obs.Temperature = 25
	obs.Humidity = 55
	obs.WindSpeed = 10

	validated, corrections := ValidateObservation(obs)

	assert.Empty(t, corrections)
	assert.Equal(t, obs, validated)
}

func TestValidateObservation_BoundaryValuesUntouched(t *testing.T) {
	obs := DefaultObservation()
	obs.Temperature = 60
	obs.Humidity = 0

	_, corrections := ValidateObservation(obs)
	assert.Empty(t, corrections)
}

func TestValidateObservation_UnboundedAttributesPass(t *testing.T) {
	obs := DefaultObservation()
	obs.CAPE = 999999
	obs.RiverLevelPercent = -400

	validated, corrections := ValidateObservation(obs)

	assert.Empty(t, corrections)
	assert.Equal(t, 999999.0, validated.CAPE)
	assert.Equal(t, -400.0, validated.RiverLevelPercent)
}
