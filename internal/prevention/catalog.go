// Package prevention maps predicted hazards to recommended protective
// measures. The catalog is static; selection is keyword-based over the hazard
// label so new tier names in a known family pick up measures without catalog
// changes.
package prevention

import (
	"strings"

	"github.com/ARUNKUMAR069/RescueX/internal/domain"
)

// Measure is one recommended protective action for a hazard.
type Measure struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
}

const (
	urgencyImmediate = "immediate"
	urgencyHigh      = "high"
	urgencyModerate  = "moderate"
)

// catalogEntry binds a hazard-label keyword to its measures. Entries are
// ordered and matching stops at the first hit, so more specific keywords
// ("flash flood") must precede their general form ("flood").
type catalogEntry struct {
	keyword  string
	measures []Measure
}

var catalog = []catalogEntry{
	{"flash flood", []Measure{
		{"Move to higher ground now", "Do not wait for official orders; flash floods develop in minutes", urgencyImmediate},
		{"Never drive through flood water", "Two feet of moving water can carry away most vehicles", urgencyImmediate},
	}},
	{"flood", []Measure{
		{"Prepare sandbags and barriers", "Protect doorways and low openings before water arrives", urgencyHigh},
		{"Move valuables to upper floors", "Relocate electronics, documents and medications above expected water level", urgencyHigh},
		{"Avoid walking in flood water", "Six inches of moving water can knock an adult down", urgencyModerate},
	}},
	{"heat", []Measure{
		{"Stay hydrated", "Drink water regularly even without feeling thirsty", urgencyHigh},
		{"Limit outdoor activity", "Avoid strenuous work during the hottest hours of the day", urgencyHigh},
		{"Check on vulnerable people", "Elderly neighbors and those without cooling are at highest risk", urgencyModerate},
	}},
	{"hurricane", []Measure{
		{"Evacuate if ordered", "Follow official evacuation routes before conditions deteriorate", urgencyImmediate},
		{"Board up windows", "Secure or shutter all glass openings against debris", urgencyImmediate},
		{"Stock emergency supplies", "Water, food and medication for at least three days", urgencyHigh},
	}},
	// "Winter Storm" and "Blizzard" labels also contain "storm", so both
	// entries must precede it.
	{"blizzard", []Measure{
		{"Avoid all travel", "Whiteout conditions make roads impassable and rescue slow", urgencyImmediate},
		{"Prepare for power loss", "Keep heating fuel, blankets and food that needs no cooking", urgencyHigh},
	}},
	{"winter", []Measure{
		{"Winterize vehicles and pipes", "Insulate exposed plumbing and keep vehicle tanks full", urgencyModerate},
		{"Keep emergency heating ready", "Have a safe backup heat source and carbon monoxide alarm", urgencyModerate},
	}},
	{"storm", []Measure{
		{"Secure loose outdoor items", "Furniture and equipment become projectiles in high wind", urgencyHigh},
		{"Stay indoors away from windows", "Shelter in an interior room until the system passes", urgencyHigh},
		{"Charge phones and backup power", "Expect outages and keep communication available", urgencyModerate},
	}},
	{"tornado", []Measure{
		{"Identify your shelter location", "Basement or interior room on the lowest floor, away from windows", urgencyImmediate},
		{"Monitor warnings continuously", "Conditions can escalate from watch to warning within minutes", urgencyHigh},
	}},
	{"fire", []Measure{
		{"Clear defensible space", "Remove dry vegetation and flammable material around structures", urgencyHigh},
		{"Prepare evacuation bag", "Documents, medication and essentials ready to leave at short notice", urgencyHigh},
		{"Avoid all ignition sources", "No open flames, equipment sparks or outdoor burning", urgencyImmediate},
	}},
	{"earthquake", []Measure{
		{"Drop, cover and hold on", "Get under sturdy furniture during shaking; do not run outside", urgencyImmediate},
		{"Check gas and electrical lines", "Shut off utilities if damage is suspected after shaking stops", urgencyHigh},
		{"Expect aftershocks", "Stay clear of damaged structures for the following days", urgencyModerate},
	}},
	{"tsunami", []Measure{
		{"Move inland and uphill immediately", "Do not wait to observe the wave; the first may not be the largest", urgencyImmediate},
		{"Stay away from the coast", "Remain on high ground until officials declare the threat over", urgencyImmediate},
	}},
	{"air quality", []Measure{
		{"Stay indoors with windows closed", "Run air purifiers or HVAC on recirculate if available", urgencyHigh},
		{"Wear a fitted respirator outdoors", "Use N95 or better when going outside is unavoidable", urgencyHigh},
		{"Limit physical exertion", "Hard breathing multiplies pollutant intake", urgencyModerate},
	}},
}

// severeExtra is appended for any Severe or Extreme finding on top of its
// family measures.
var severeExtra = Measure{
	Title:       "Follow official emergency guidance",
	Description: "Register for local alerts and comply with evacuation or shelter orders",
	Urgency:     urgencyImmediate,
}

// MeasuresFor returns protective measures keyed by hazard type for every
// actionable finding. The no-hazard sentinel and unrecognized hazards produce
// no entries.
func MeasuresFor(findings []domain.HazardFinding) map[string][]Measure {
	result := make(map[string][]Measure)
	for _, finding := range findings {
		if finding.IsNoHazard() {
			continue
		}
		if _, seen := result[finding.HazardType]; seen {
			continue
		}

		measures := lookup(finding.HazardType)
		if measures == nil {
			continue
		}
		if finding.Severity == domain.SeveritySevere || finding.Severity == domain.SeverityExtreme {
			measures = append(measures, severeExtra)
		}
		result[finding.HazardType] = measures
	}
	return result
}

func lookup(hazardType string) []Measure {
	label := strings.ToLower(hazardType)
	for _, entry := range catalog {
		if strings.Contains(label, entry.keyword) {
			// Copy so severity extras never mutate the catalog.
			measures := make([]Measure, len(entry.measures))
			copy(measures, entry.measures)
			return measures
		}
	}
	return nil
}
