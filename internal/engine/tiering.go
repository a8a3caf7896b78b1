package engine

import "github.com/ARUNKUMAR069/RescueX/internal/domain"

// band maps a risk score above threshold to a finding. When probability is
// non-zero it replaces the computed score in the emitted finding (the storm
// tiers report fixed probabilities); otherwise the score itself is used.
type band struct {
	threshold   float64
	probability float64
	label       string
	severity    string
	description string
}

// tier returns the finding for the highest band the score clears. Bands are
// ordered by descending threshold; a score at or below the lowest threshold
// produces no finding.
func tier(bands []band, score float64) (domain.HazardFinding, bool) {
	for _, b := range bands {
		if score <= b.threshold {
			continue
		}
		probability := score
		if b.probability != 0 {
			probability = b.probability
		}
		return domain.HazardFinding{
			HazardType:  b.label,
			Probability: probability,
			Severity:    b.severity,
			Description: b.description,
		}, true
	}
	return domain.HazardFinding{}, false
}

var floodBands = []band{
	{threshold: 0.8, label: "Severe Flood", severity: domain.SeveritySevere,
		description: "Multiple high-risk conditions indicate serious flooding potential"},
	{threshold: 0.6, label: "Moderate Flood", severity: domain.SeverityModerate,
		description: "Combined conditions suggest moderate flooding risk"},
	{threshold: 0.4, label: "Minor Flood", severity: domain.SeverityLow,
		description: "Some flood risk factors present but limited severity expected"},
}

var heatBands = []band{
	{threshold: 0.85, label: "Extreme Heat Wave", severity: domain.SeverityExtreme,
		description: "Critical combination of high temperature, humidity and duration poses severe health risks"},
	{threshold: 0.7, label: "Severe Heat Wave", severity: domain.SeveritySevere,
		description: "Extended high temperature with humidity creates significant health danger"},
	{threshold: 0.5, label: "Heat Wave", severity: domain.SeverityModerate,
		description: "Elevated temperatures may cause heat-related health issues"},
}

var stormBands = []band{
	{threshold: 0.8, probability: 0.85, label: "Severe Storm System", severity: domain.SeveritySevere,
		description: "Multiple severe storm indicators present including pressure drop, wind and instability"},
	{threshold: 0.6, probability: 0.75, label: "Moderate Storm", severity: domain.SeverityModerate,
		description: "Storm conditions developing with potential for significant impact"},
}

var tornadoBands = []band{
	{threshold: 0.7, label: "Tornado Warning", severity: domain.SeveritySevere,
		description: "Atmospheric conditions highly favorable for tornado formation"},
	{threshold: 0.5, label: "Tornado Watch", severity: domain.SeverityHigh,
		description: "Conditions support possible tornado development in the coming hours"},
}

var wildfireBands = []band{
	{threshold: 0.8, label: "Extreme Fire Danger", severity: domain.SeverityExtreme,
		description: "Critical fire weather conditions present extreme wildfire danger"},
	{threshold: 0.6, label: "High Fire Danger", severity: domain.SeverityHigh,
		description: "Weather conditions favorable for rapid fire spread"},
	{threshold: 0.4, label: "Moderate Fire Danger", severity: domain.SeverityModerate,
		description: "Some fire risk conditions present, caution advised"},
}

var airQualityBands = []band{
	{threshold: 300, probability: 0.95, label: "Hazardous Air Quality Emergency", severity: domain.SeverityExtreme,
		description: "Extremely dangerous air quality levels pose immediate health threats to all"},
	{threshold: 200, probability: 0.9, label: "Very Unhealthy Air Quality", severity: domain.SeveritySevere,
		description: "Very poor air quality may cause serious health effects for everyone"},
	{threshold: 150, probability: 0.8, label: "Unhealthy Air Quality", severity: domain.SeverityHigh,
		description: "Unhealthy air quality affects sensitive groups and may affect general population"},
}
