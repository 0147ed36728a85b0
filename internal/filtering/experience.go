package filtering

import (
	"regexp"
	"strconv"
	"strings"
)

// entryMarkers is the vocabulary signalling that a posting accepts
// candidates without prior professional experience. The same vocabulary
// is used by the matching engine for zero-experience profiles.
var entryMarkers = []string{
	"신입",
	"경력무관",
	"경력 무관",
	"신입/경력",
	"경력/신입",
	"인턴",
	"주니어",
	"intern",
	"entry",
	"junior",
	"no experience required",
}

// bareExperienceMarkers assert an experience requirement in general terms,
// without a numeric bar. Such postings are treated as closed to entry-level
// candidates unless an entry marker overrides them.
var bareExperienceMarkers = []string{
	"경력",
	"experience required",
}

// yearPatterns capture minimum-experience-year requirements in the
// phrasings job boards actually use. Every pattern is matched against the
// full text; the lowest year found across all matches decides.
var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`경력\s*(\d+)`),                  // 경력 1년, 경력1년
	regexp.MustCompile(`(\d+)\s*년\s*이상`),              // 1년 이상
	regexp.MustCompile(`(\d+)\s*[~～]\s*(\d+)\s*년`),    // 1~3년
	regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*년`),       // 1-3년
	regexp.MustCompile(`(\d+)\s*년\s*~`),               // 1년~
	regexp.MustCompile(`(\d+)\s*\+\s*years?`),         // 3+ years
	regexp.MustCompile(`(\d+)\s*years?\s+minimum`),    // 3 years minimum
	regexp.MustCompile(`minimum\s+(?:of\s+)?(\d+)\s*years?`), // minimum 3 years
	regexp.MustCompile(`(\d+)\s*[-–~]\s*(\d+)\s*years?`),     // 3-5 years
	regexp.MustCompile(`(\d+)\s*years?\s+or\s+more`),  // 3 years or more
}

// HasEntryMarker reports whether the text contains any entry-friendly marker.
func HasEntryMarker(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, marker := range entryMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// EntryLevelFriendly classifies a free-text experience requirement.
// Unparseable or ambiguous phrasing defaults to inclusion; the function
// never fails on malformed input.
func EntryLevelFriendly(expText string) bool {
	lowered := strings.ToLower(strings.TrimSpace(expText))
	if lowered == "" {
		// No stated constraint.
		return true
	}

	// Entry markers override any numeric signal elsewhere in the text.
	for _, marker := range entryMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}

	if years, found := minRequiredYears(lowered); found && years >= 1 {
		return false
	}

	if hasBareExperienceMarker(lowered) {
		return false
	}

	return true
}

// minRequiredYears scans the text with every year pattern and returns the
// smallest year figure found across all matches.
func minRequiredYears(lowered string) (int, bool) {
	minYears := 0
	found := false
	for _, pattern := range yearPatterns {
		for _, match := range pattern.FindAllStringSubmatch(lowered, -1) {
			for _, group := range match[1:] {
				years, err := strconv.Atoi(group)
				if err != nil {
					continue
				}
				if !found || years < minYears {
					minYears = years
					found = true
				}
			}
		}
	}
	return minYears, found
}

func hasBareExperienceMarker(lowered string) bool {
	if strings.Contains(lowered, "경력") {
		// 무관 anywhere in the text neutralizes the marker.
		if !strings.Contains(lowered, "신입") && !strings.Contains(lowered, "무관") {
			return true
		}
	}
	return strings.Contains(lowered, "experience required")
}
