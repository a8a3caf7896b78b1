package domain

import "errors"

// ErrLocationNotFound is returned by weather providers when a location
// cannot be served; the HTTP layer translates it into a 404.
var ErrLocationNotFound = errors.New("location not found")

// Severity labels used across findings. Not a closed enum: earthquake
// findings also reuse Minor/Major as both label fragment and severity.
const (
	SeverityLow      = "Low"
	SeverityModerate = "Moderate"
	SeverityHigh     = "High"
	SeveritySevere   = "Severe"
	SeverityExtreme  = "Extreme"
	SeverityMinor    = "Minor"
	SeverityMajor    = "Major"
)

// HazardFinding is one predicted hazard. Produced fresh per request and
// never mutated afterwards.
type HazardFinding struct {
	HazardType  string  `json:"hazard_type"`
	Probability float64 `json:"probability"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
}

// NoHazardFinding is the sentinel emitted when no hazard clears its lowest
// tier, so a prediction result is never empty.
func NoHazardFinding() HazardFinding {
	return HazardFinding{
		HazardType:  "No Significant Hazards",
		Probability: 0.8,
		Severity:    SeverityLow,
		Description: "Current conditions do not indicate any significant disaster risks",
	}
}

// IsNoHazard reports whether a finding is the no-hazard sentinel.
func (f HazardFinding) IsNoHazard() bool {
	return f.HazardType == "No Significant Hazards"
}

// FeedbackRecord is a historical prediction with optional accuracy feedback,
// consumed read-only by the learning step. Records without accuracy are
// skipped during coefficient updates.
type FeedbackRecord struct {
	Predictions []HazardFinding `json:"predictions"`
	Accuracy    *float64        `json:"accuracy,omitempty"`
}
