package matching

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// AnalyzeSkills compares profile skills against a posting's tech stack,
// case-insensitively. Both result lists preserve the posting's original
// tag order.
func AnalyzeSkills(profileSkills, jobSkills []string) (matched, missing []string) {
	profileSet := mapset.NewThreadUnsafeSet[string]()
	for _, skill := range profileSkills {
		profileSet.Add(strings.ToLower(skill))
	}

	for _, skill := range jobSkills {
		if profileSet.Contains(strings.ToLower(skill)) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}
