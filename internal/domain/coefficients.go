package domain

import (
	"strings"
	"sync"
)

// Family is one of the broad hazard categories used to group specific hazard
// labels for learning.
type Family string

const (
	FamilyFlood      Family = "flood"
	FamilyHeatWave   Family = "heat_wave"
	FamilyStorm      Family = "storm"
	FamilyWildfire   Family = "wildfire"
	FamilyTornado    Family = "tornado"
	FamilyEarthquake Family = "earthquake"
	FamilyAirQuality Family = "air_quality"

	// FamilyOther buckets labels no keyword matches; it carries no
	// coefficient and is excluded from updates.
	FamilyOther Family = "other"
)

// Families lists the learning families in a fixed order.
var Families = []Family{
	FamilyFlood, FamilyHeatWave, FamilyStorm, FamilyWildfire,
	FamilyTornado, FamilyEarthquake, FamilyAirQuality,
}

// familyKeywords maps label substrings to families. Ordered: the first
// matching entry wins, so the table is deterministic and directly testable.
var familyKeywords = []struct {
	family   Family
	keywords []string
}{
	{FamilyFlood, []string{"flood", "rain", "water"}},
	{FamilyHeatWave, []string{"heat", "hot"}},
	{FamilyStorm, []string{"storm", "hurricane", "cyclone", "typhoon"}},
	{FamilyWildfire, []string{"fire", "wildfire"}},
	{FamilyTornado, []string{"tornado"}},
	{FamilyEarthquake, []string{"earthquake", "seismic"}},
	{FamilyAirQuality, []string{"air", "pollution"}},
}

// FamilyForLabel maps a free-text hazard label to its learning family by
// keyword containment. Unmatched labels land in FamilyOther.
func FamilyForLabel(label string) Family {
	label = strings.ToLower(label)
	for _, entry := range familyKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(label, keyword) {
				return entry.family
			}
		}
	}
	return FamilyOther
}

const (
	defaultCoefficient = 1.0
	minCoefficient     = 0.5
	maxCoefficient     = 1.5

	// minFeedbackRecords guards against over-fitting: updates with fewer
	// feedback-bearing records are silent no-ops.
	minFeedbackRecords = 5

	// adjustmentFactor scales (mean accuracy - 0.5) into a coefficient delta.
	adjustmentFactor = 0.1
)

// Coefficients holds the per-family learning multipliers. Safe for
// concurrent use: the learning loop is the only writer, predictions read
// under a shared lock.
type Coefficients struct {
	mu     sync.RWMutex
	values map[Family]float64
}

// NewCoefficients creates a store with every family at 1.0.
func NewCoefficients() *Coefficients {
	return &Coefficients{values: defaultCoefficients()}
}

func defaultCoefficients() map[Family]float64 {
	values := make(map[Family]float64, len(Families))
	for _, f := range Families {
		values[f] = defaultCoefficient
	}
	return values
}

// Value returns the current multiplier for a family; unknown families
// (including FamilyOther) score at the neutral 1.0.
func (c *Coefficients) Value(family Family) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.values[family]; ok {
		return v
	}
	return defaultCoefficient
}

// Snapshot returns an independent copy of all coefficients.
func (c *Coefficients) Snapshot() map[Family]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make(map[Family]float64, len(c.values))
	for f, v := range c.values {
		snapshot[f] = v
	}
	return snapshot
}

// UpdateFromHistory recomputes every family's coefficient from the given
// feedback history. Records without accuracy are skipped; each remaining
// record contributes its accuracy to the family of every finding it holds.
// Families with at least one data point get 1.0 + (mean-0.5)*0.1 clamped to
// [0.5, 1.5]; families without data reset to 1.0. Recomputing from scratch
// makes the result a pure function of the history: identical input always
// yields identical coefficients. Returns false when the update was skipped
// for lack of data.
func (c *Coefficients) UpdateFromHistory(history []FeedbackRecord) bool {
	accuracies := make(map[Family][]float64)
	feedbackBearing := 0
	for _, record := range history {
		if record.Accuracy == nil {
			continue
		}
		feedbackBearing++
		for _, finding := range record.Predictions {
			family := FamilyForLabel(finding.HazardType)
			if family == FamilyOther {
				continue
			}
			accuracies[family] = append(accuracies[family], *record.Accuracy)
		}
	}

	if feedbackBearing < minFeedbackRecords {
		return false
	}

	next := defaultCoefficients()
	for family, values := range accuracies {
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		mean := sum / float64(len(values))
		next[family] = clampCoefficient(defaultCoefficient + (mean-0.5)*adjustmentFactor)
	}

	c.mu.Lock()
	c.values = next
	c.mu.Unlock()
	return true
}

func clampCoefficient(v float64) float64 {
	if v < minCoefficient {
		return minCoefficient
	}
	if v > maxCoefficient {
		return maxCoefficient
	}
	return v
}
