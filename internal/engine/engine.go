package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ARUNKUMAR069/RescueX/internal/domain"
	"github.com/ARUNKUMAR069/RescueX/internal/observability"
)

// Engine evaluates a raw observation map against every hazard family and
// emits tiered findings. It is safe for concurrent use: per-request state
// lives on the stack and the coefficient store synchronizes internally.
type Engine struct {
	coefficients *domain.Coefficients
	logger       *slog.Logger
	metrics      *observability.Metrics
}

func New(coefficients *domain.Coefficients, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		coefficients: coefficients,
		logger:       logger,
		metrics:      metrics,
	}
}

// Result is one complete prediction: the repaired observation the scores were
// computed from, the findings, and the range corrections applied on the way.
type Result struct {
	Observation domain.Observation       `json:"weather_data"`
	Findings    []domain.HazardFinding   `json:"predictions"`
	Corrections []domain.RangeCorrection `json:"corrections,omitempty"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// Predict normalizes and validates the raw observation, then evaluates hazard
// families in a fixed order: hydrological, meteorological, geological,
// environmental. The result always carries at least one finding; when nothing
// clears its lowest tier the no-hazard sentinel is appended.
func (e *Engine) Predict(raw map[string]any) Result {
	start := domain.Clock().Now()

	obs := domain.ObservationFromMap(raw)
	obs, corrections := domain.ValidateObservation(obs)
	for _, c := range corrections {
		e.logger.Warn("observation value clamped",
			"attribute", c.Attribute,
			"original", c.Original,
			"corrected", c.Corrected,
		)
	}

	var findings []domain.HazardFinding
	findings = append(findings, e.hydrological(obs)...)
	findings = append(findings, e.meteorological(obs)...)
	findings = append(findings, e.geological(obs)...)
	findings = append(findings, e.environmental(obs)...)

	if len(findings) == 0 {
		findings = append(findings, domain.NoHazardFinding())
	}

	e.metrics.PredictionsTotal.Inc()
	e.metrics.RangeCorrections.Add(float64(len(corrections)))
	for _, f := range findings {
		if f.IsNoHazard() {
			continue
		}
		e.metrics.FindingsTotal.WithLabelValues(string(domain.FamilyForLabel(f.HazardType)), f.Severity).Inc()
	}
	e.metrics.PredictionDuration.Observe(domain.Clock().Since(start).Seconds())

	e.logger.Debug("prediction evaluated",
		"findings", len(findings),
		"corrections", len(corrections),
	)

	return Result{
		Observation: obs,
		Findings:    findings,
		Corrections: corrections,
		GeneratedAt: domain.Clock().Now(),
	}
}

// Learn recomputes the learning coefficients from prediction history and
// reports whether an update was applied. Skips are expected while feedback
// accumulates, so they log at debug.
func (e *Engine) Learn(history []domain.FeedbackRecord) bool {
	updated := e.coefficients.UpdateFromHistory(history)
	if !updated {
		e.metrics.LearningSkips.Inc()
		e.logger.Debug("coefficient update skipped", "records", len(history))
		return false
	}

	e.metrics.LearningUpdates.Inc()
	for family, value := range e.coefficients.Snapshot() {
		e.metrics.CoefficientValue.WithLabelValues(string(family)).Set(value)
	}
	e.logger.Info("coefficients updated", "records", len(history))
	return true
}

func (e *Engine) hydrological(obs domain.Observation) []domain.HazardFinding {
	var findings []domain.HazardFinding

	score := domain.FloodRisk(obs, e.coefficients.Value(domain.FamilyFlood))
	if f, ok := tier(floodBands, score); ok {
		findings = append(findings, f)
	}

	// Flash floods are driven by rate, not accumulation, so they trigger on
	// intensity independently of the general flood score.
	if obs.Precipitation > 30 && obs.PrecipitationIntensity > 15 {
		findings = append(findings, domain.HazardFinding{
			HazardType:  "Flash Flood",
			Probability: min(0.95, 0.6+(obs.Precipitation-30)*0.02),
			Severity:    domain.SeveritySevere,
			Description: "Intense rainfall rate creates immediate flash flooding danger",
		})
	}

	if obs.Precipitation > 20 {
		urban := 0.3 + min(1, obs.UrbanRunoffIndex/100)*0.6
		if urban > 0.65 {
			findings = append(findings, domain.HazardFinding{
				HazardType:  "Urban Flooding",
				Probability: urban,
				Severity:    domain.SeverityHigh,
				Description: "Poor drainage capacity amplifies rainfall into street-level flooding",
			})
		}
	}

	return findings
}

func (e *Engine) meteorological(obs domain.Observation) []domain.HazardFinding {
	var findings []domain.HazardFinding

	heat := domain.HeatWaveRisk(obs, e.coefficients.Value(domain.FamilyHeatWave))
	if f, ok := tier(heatBands, heat); ok {
		findings = append(findings, f)
	}

	storm := domain.StormSeverity(obs, e.coefficients.Value(domain.FamilyStorm))
	if f, ok := tier(stormBands, storm); ok {
		findings = append(findings, f)
	}

	// Hurricane conditions override the generic storm tiers with a named
	// category. Warm sea surface is what separates a hurricane from an
	// ordinary deep low.
	if obs.WindSpeed > 75 && obs.Pressure < 980 && obs.SeaSurfaceTemp > 26 {
		findings = append(findings, domain.HazardFinding{
			HazardType:  fmt.Sprintf("Category %d Hurricane/Cyclone", hurricaneCategory(obs.Pressure)),
			Probability: 0.9,
			Severity:    domain.SeverityExtreme,
			Description: "Hurricane-force winds with deep low pressure over warm ocean water",
		})
	}

	tornado := domain.TornadoRisk(obs, e.coefficients.Value(domain.FamilyTornado))
	if f, ok := tier(tornadoBands, tornado); ok {
		findings = append(findings, f)
	}

	if f, ok := winterStorm(obs); ok {
		findings = append(findings, f)
	}

	return findings
}

func (e *Engine) geological(obs domain.Observation) []domain.HazardFinding {
	var findings []domain.HazardFinding

	if obs.SeismicActivity > 5.0 {
		severity := earthquakeSeverity(obs.SeismicActivity)
		findings = append(findings, domain.HazardFinding{
			HazardType:  severity + " Earthquake",
			Probability: min(0.95, 0.5+(obs.SeismicActivity-5)*0.1),
			Severity:    severity,
			Description: fmt.Sprintf("Seismic activity of magnitude %.1f detected", obs.SeismicActivity),
		})
	}

	if obs.SeismicActivity > 6.5 && obs.CoastalProximity < 100 {
		probability := 0.4 + min(0.5, (obs.SeismicActivity-6.5)*0.2)
		if obs.UnderwaterQuake {
			probability += 0.3
		}
		severity := domain.SeverityModerate
		if obs.SeismicActivity >= 7.5 {
			severity = domain.SeveritySevere
		}
		findings = append(findings, domain.HazardFinding{
			HazardType:  "Tsunami",
			Probability: min(0.95, probability),
			Severity:    severity,
			Description: fmt.Sprintf("Strong offshore earthquake may generate waves up to %.1fm", (obs.SeismicActivity-5)*0.5),
		})
	}

	return findings
}

func (e *Engine) environmental(obs domain.Observation) []domain.HazardFinding {
	var findings []domain.HazardFinding

	fire := domain.WildfireRisk(obs, e.coefficients.Value(domain.FamilyWildfire))
	if f, ok := tier(wildfireBands, fire); ok {
		findings = append(findings, f)
	}

	// The air quality bands are thresholds on the AQI itself, not on a
	// computed score, and each band carries a fixed probability.
	if obs.AirQualityIndex > 0 {
		if f, ok := tier(airQualityBands, obs.AirQualityIndex); ok {
			findings = append(findings, f)
		}
	}

	return findings
}

// hurricaneCategory maps central pressure to a Saffir-Simpson-style category,
// clamped to [1, 5]. Lower pressure means a stronger system.
func hurricaneCategory(pressure float64) int {
	category := 1 + int((980-pressure)/15)
	if category < 1 {
		return 1
	}
	if category > 5 {
		return 5
	}
	return category
}

func earthquakeSeverity(magnitude float64) string {
	switch {
	case magnitude < 6:
		return domain.SeverityMinor
	case magnitude < 7:
		return domain.SeverityModerate
	case magnitude < 8:
		return domain.SeverityMajor
	default:
		return domain.SeverityExtreme
	}
}

// winterStorm scores freezing precipitation events. Cold alone is not a
// hazard; the trigger needs meaningful precipitation near or below freezing.
func winterStorm(obs domain.Observation) (domain.HazardFinding, bool) {
	if obs.Temperature >= 2 || obs.Precipitation <= 10 {
		return domain.HazardFinding{}, false
	}

	score := 0.5
	if obs.Temperature < -5 {
		score += 0.2
	}
	if obs.WindSpeed > 30 {
		score += 0.2
	}
	if obs.Precipitation > 20 {
		score += 0.1
	}
	score = min(0.95, score)

	label := "Winter Storm"
	severity := domain.SeverityModerate
	if score > 0.8 {
		severity = domain.SeveritySevere
		if obs.WindSpeed > 35 {
			label = "Blizzard"
		}
	}

	return domain.HazardFinding{
		HazardType:  label,
		Probability: score,
		Severity:    severity,
		Description: "Heavy frozen precipitation with dangerous travel conditions expected",
	}, true
}
