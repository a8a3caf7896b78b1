package domain

// riskCeiling is the hard upper bound on every probability the engine
// emits; the scorer never asserts certainty.
const riskCeiling = 0.95

// ramp returns a capped linear contribution: zero until value crosses
// threshold, then (value-threshold)*slope up to cap. Capping each term keeps
// any single factor from dominating a family's score.
func ramp(value, threshold, slope, cap float64) float64 {
	if value <= threshold {
		return 0
	}
	contribution := (value - threshold) * slope
	if contribution > cap {
		return cap
	}
	return contribution
}

// finishRisk applies the family's learning coefficient and the hard ceiling.
func finishRisk(risk, coefficient float64) float64 {
	risk *= coefficient
	if risk > riskCeiling {
		return riskCeiling
	}
	if risk < 0 {
		return 0
	}
	return risk
}

// FloodRisk combines precipitation, soil saturation, river level, snowmelt,
// and upstream precipitation into a flood probability.
func FloodRisk(obs Observation, coefficient float64) float64 {
	risk := ramp(obs.Precipitation, 20, 0.015, 0.6)
	risk += ramp(obs.SoilSaturation, 60, 0.0075, 0.3)
	risk += ramp(obs.RiverLevelPercent, 70, 0.013, 0.4)

	// Snowmelt: standing snow combined with above-freezing warmth.
	if obs.SnowDepth > 10 && obs.Temperature > 5 {
		melt := 0.1 + (obs.Temperature-5)*0.02
		if melt > 0.3 {
			melt = 0.3
		}
		risk += melt
	}

	risk += ramp(obs.UpstreamPrecipitation, 30, 0.01, 0.3)

	return finishRisk(risk, coefficient)
}

// HeatWaveRisk scores heat waves from temperature above a 30C floor, with
// humidity, consecutive hot days, and urban heat island contributions.
func HeatWaveRisk(obs Observation, coefficient float64) float64 {
	if obs.Temperature < 30 {
		return 0
	}

	risk := ramp(obs.Temperature, 30, 0.07, 0.7)
	risk += ramp(obs.Humidity, 40, 0.005, 0.3)
	risk += ramp(obs.ConsecutiveHotDays, 1, 0.04, 0.2)
	risk += ramp(obs.UrbanDensity, 50, 0.003, 0.15)

	return finishRisk(risk, coefficient)
}

// StormSeverity scores general storm systems from wind, low pressure,
// pressure drop rate, precipitation intensity, and atmospheric instability.
func StormSeverity(obs Observation, coefficient float64) float64 {
	severity := ramp(obs.WindSpeed, 30, 0.01, 0.4)
	severity += ramp(1005-obs.Pressure, 0, 0.02, 0.3)

	// Rapid pressure drops signal an intensifying system.
	if obs.PressureChange < -3 {
		severity += min(0.2, (-obs.PressureChange-3)*0.06)
	}

	severity += ramp(obs.PrecipitationIntensity, 10, 0.02, 0.2)
	severity += ramp(obs.CAPE, 1000, 0.0002, 0.2)

	return finishRisk(severity, coefficient)
}

// TornadoRisk combines wind shear, convective energy, temperature gradient,
// helicity, and lifted index. When the convective profile (shear, CAPE,
// gradient) was not fully provided it falls back to a coarse estimate from
// wind speed and temperature gradient alone.
func TornadoRisk(obs Observation, coefficient float64) float64 {
	if !obs.WindShearProvided || !obs.CAPEProvided || !obs.TemperatureGradientProvided {
		if obs.WindSpeed > 40 && obs.TemperatureGradientProvided && obs.TemperatureGradient > 10 {
			return finishRisk(0.4+min(0.3, (obs.WindSpeed-40)*0.01), coefficient)
		}
		return 0
	}

	risk := ramp(obs.WindShear, 20, 0.015, 0.3)
	risk += ramp(obs.CAPE, 1500, 0.0002, 0.3)
	risk += ramp(obs.TemperatureGradient, 8, 0.025, 0.2)
	risk += ramp(obs.Helicity, 150, 0.001, 0.2)

	// Strongly negative lifted index means unstable air.
	if obs.LiftedIndex < -4 {
		risk += min(0.2, (-obs.LiftedIndex-4)*0.05)
	}

	return finishRisk(risk, coefficient)
}

// WildfireRisk scores fire weather. Wet conditions preclude fire risk
// entirely: high humidity or any meaningful precipitation short-circuits to
// zero regardless of the other inputs.
func WildfireRisk(obs Observation, coefficient float64) float64 {
	if obs.Humidity > 60 || obs.Precipitation > 5 {
		return 0
	}

	risk := ramp(obs.Temperature, 25, 0.02, 0.3)
	risk += ramp(40-obs.Humidity, 0, 0.0075, 0.3)
	risk += ramp(obs.WindSpeed, 15, 0.01, 0.2)
	risk += ramp(obs.ConsecutiveDryDays, 7, 0.02, 0.2)
	risk += ramp(obs.VegetationDryness, 60, 0.005, 0.2)

	// Dry lightning starts fires precisely because no rain follows it.
	if obs.DryLightningProbability > 0.3 {
		risk += min(0.2, obs.DryLightningProbability)
	}

	return finishRisk(risk, coefficient)
}
