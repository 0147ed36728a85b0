package job

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Category is a closed set of job categories a profile can target.
type Category string

const (
	CategoryData      Category = "data"
	CategoryBackend   Category = "backend"
	CategoryFrontend  Category = "frontend"
	CategoryFullstack Category = "fullstack"
	CategoryPM        Category = "pm"
	CategoryDesign    Category = "design"
)

// Categories lists every known category. Keep in sync with the matching
// keyword table: adding a category requires updating both.
func Categories() []Category {
	return []Category{
		CategoryData,
		CategoryBackend,
		CategoryFrontend,
		CategoryFullstack,
		CategoryPM,
		CategoryDesign,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

type Profiles struct {
	Items []*Profile `json:"profiles"`
}

type Profile struct {
	ID                 string   `json:"id"`
	Username           string   `json:"username,omitempty"`
	Category           Category `json:"job_category"`
	ExperienceYears    int      `json:"experience_years"`
	PreferredLocations []string `json:"preferred_locations,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	Certifications     []string `json:"certifications,omitempty"`
	Introduction       string   `json:"introduction,omitempty"`

	// Embedding is populated by the caller before matching. It is never
	// serialized with the profile.
	Embedding []float32 `json:"-"`
}

// EmbeddingText builds the text representation used for embedding a profile.
func (p *Profile) EmbeddingText() string {
	parts := []string{
		fmt.Sprintf("직무: %s", p.Category),
		fmt.Sprintf("경력: %d년", p.ExperienceYears),
		fmt.Sprintf("기술스택: %s", strings.Join(p.Skills, ", ")),
	}
	if len(p.Certifications) > 0 {
		parts = append(parts, fmt.Sprintf("자격증: %s", strings.Join(p.Certifications, ", ")))
	}
	if p.Introduction != "" {
		parts = append(parts, fmt.Sprintf("소개: %s", p.Introduction))
	}
	return strings.Join(parts, " | ")
}

func (p *Profiles) Len() int {
	return len(p.Items)
}

// Validate rejects profiles the matching engine cannot score.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("profile id is required")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("profile %s: unknown job category %q", p.ID, p.Category)
	}
	if p.ExperienceYears < 0 {
		return fmt.Errorf("profile %s: experience years must not be negative", p.ID)
	}
	return nil
}

// ProfilesFromFile loads a profiles list from a JSON file.
func ProfilesFromFile(path string) (*Profiles, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var profiles Profiles
	if err := json.NewDecoder(file).Decode(&profiles); err != nil {
		return nil, err
	}

	for _, profile := range profiles.Items {
		if err := profile.Validate(); err != nil {
			return nil, err
		}
	}
	return &profiles, nil
}
