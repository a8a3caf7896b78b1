package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// fuzzyMatchCutoff is the minimum character-level similarity an approximate
// match must reach before it replaces the caller's input.
const fuzzyMatchCutoff = 0.7

// ResolutionMethod reports how a location name was resolved.
type ResolutionMethod string

const (
	ResolvedCanonical  ResolutionMethod = "canonical"
	ResolvedAlias      ResolutionMethod = "alias"
	ResolvedFuzzy      ResolutionMethod = "fuzzy"
	ResolvedUnmodified ResolutionMethod = "unmodified"
)

// locationEntry pairs a canonical place name with its known alternate
// spellings. The table is an ordered slice so resolution is deterministic:
// ties in fuzzy matching break toward the first-encountered candidate.
type locationEntry struct {
	canonical string
	aliases   []string
}

var locationAliases = []locationEntry{
	// India
	{"cherrapunji", []string{"chirapunji", "cheerapunji", "chirrapunji", "cherapunji"}},
	{"mumbai", []string{"bombay", "mumbia", "mumbye"}},
	{"delhi", []string{"new delhi", "dilli", "dehli"}},
	{"bangalore", []string{"bengaluru", "banglore", "bangalor"}},
	{"chennai", []string{"madras", "chenai", "chinnai"}},
	{"kolkata", []string{"calcutta", "kolkatta", "kolkota"}},

	// USA
	{"new york", []string{"newyork", "ny", "new york city", "nyc"}},
	{"los angeles", []string{"la", "l.a.", "losangeles"}},
	{"san francisco", []string{"sf", "sanfran", "sanfrancisco"}},
	{"new orleans", []string{"neworleans", "nawlins"}},

	// Other major cities
	{"london", []string{"londra", "londen"}},
	{"paris", []string{"pari", "paree"}},
	{"tokyo", []string{"tokio", "toyko"}},
	{"beijing", []string{"peking"}},
	{"sydney", []string{"sidney"}},
}

// ResolveLocation maps a free-text place name to its canonical form. It
// tries, in order: exact canonical match, exact alias match, then fuzzy
// matching across all canonical names and aliases. If no candidate clears
// the similarity cutoff the input is returned unchanged — the resolver never
// invents a location, it only repairs spelling.
func ResolveLocation(input string) (string, ResolutionMethod) {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	if cleaned == "" {
		return input, ResolvedUnmodified
	}

	for _, entry := range locationAliases {
		if cleaned == entry.canonical {
			return entry.canonical, ResolvedCanonical
		}
	}
	for _, entry := range locationAliases {
		for _, alias := range entry.aliases {
			if cleaned == alias {
				return entry.canonical, ResolvedAlias
			}
		}
	}

	best := ""
	bestScore := 0.0
	for _, entry := range locationAliases {
		for _, candidate := range append([]string{entry.canonical}, entry.aliases...) {
			// Strictly-greater keeps the first-encountered candidate on ties.
			if score := similarity(cleaned, candidate); score > bestScore {
				best = entry.canonical
				bestScore = score
			}
		}
	}
	if bestScore >= fuzzyMatchCutoff {
		return best, ResolvedFuzzy
	}

	return input, ResolvedUnmodified
}

// similarity converts edit distance into a [0,1] score relative to the
// longer string, so "pari" vs "paris" scores 0.8.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
