package job

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCategoryValid(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		if !c.Valid() {
			t.Fatalf("known category %q reported invalid", c)
		}
	}
	for _, c := range []Category{"", "devops", "DATA"} {
		if c.Valid() {
			t.Fatalf("unknown category %q reported valid", c)
		}
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile *Profile
		wantErr bool
	}{
		{
			name:    "valid",
			profile: &Profile{ID: "p1", Category: CategoryData},
		},
		{
			name:    "missing id",
			profile: &Profile{Category: CategoryData},
			wantErr: true,
		},
		{
			name:    "unknown category",
			profile: &Profile{ID: "p1", Category: "devops"},
			wantErr: true,
		},
		{
			name:    "negative experience",
			profile: &Profile{ID: "p1", Category: CategoryData, ExperienceYears: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProfileEmbeddingText(t *testing.T) {
	t.Parallel()

	p := &Profile{
		ID:              "p1",
		Category:        CategoryData,
		ExperienceYears: 2,
		Skills:          []string{"Python", "SQL"},
		Certifications:  []string{"ADsP"},
		Introduction:    "데이터로 문제를 풉니다",
	}

	text := p.EmbeddingText()
	for _, want := range []string{"직무: data", "경력: 2년", "기술스택: Python, SQL", "자격증: ADsP", "소개: 데이터로 문제를 풉니다"} {
		if !strings.Contains(text, want) {
			t.Fatalf("EmbeddingText() = %q, missing %q", text, want)
		}
	}

	bare := &Profile{ID: "p2", Category: CategoryBackend}
	if got := bare.EmbeddingText(); strings.Contains(got, "자격증") || strings.Contains(got, "소개") {
		t.Fatalf("EmbeddingText() includes empty sections: %q", got)
	}
}

func TestProfilesFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.json")
	data := `{
  "profiles": [
    {"id": "p1", "job_category": "data", "experience_years": 0, "skills": ["Python"]},
    {"id": "p2", "job_category": "backend", "experience_years": 3, "preferred_locations": ["서울"]}
  ]
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	profiles, err := ProfilesFromFile(path)
	if err != nil {
		t.Fatalf("ProfilesFromFile() error: %v", err)
	}
	if profiles.Len() != 2 {
		t.Fatalf("loaded %d profiles, want 2", profiles.Len())
	}
	if profiles.Items[1].Category != CategoryBackend || profiles.Items[1].ExperienceYears != 3 {
		t.Fatalf("unexpected second profile: %+v", profiles.Items[1])
	}
}

func TestProfilesFromFileRejectsInvalidProfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.json")
	data := `{"profiles": [{"id": "p1", "job_category": "astronaut"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := ProfilesFromFile(path); err == nil {
		t.Fatal("expected validation error for unknown category")
	}
}
