package matching

import "testing"

func TestAnalyzeSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		profile     []string
		posting     []string
		wantMatched []string
		wantMissing []string
	}{
		{
			name:        "case insensitive overlap",
			profile:     []string{"python", "SQL"},
			posting:     []string{"Python", "sql", "Airflow"},
			wantMatched: []string{"Python", "sql"},
			wantMissing: []string{"Airflow"},
		},
		{
			name:        "no overlap",
			profile:     []string{"go"},
			posting:     []string{"React", "TypeScript"},
			wantMissing: []string{"React", "TypeScript"},
		},
		{
			name:    "empty posting stack",
			profile: []string{"python"},
		},
		{
			name:        "empty profile skills",
			posting:     []string{"Python"},
			wantMissing: []string{"Python"},
		},
		{
			name:        "posting order preserved",
			profile:     []string{"c", "a"},
			posting:     []string{"B", "A", "C"},
			wantMatched: []string{"A", "C"},
			wantMissing: []string{"B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			matched, missing := AnalyzeSkills(tt.profile, tt.posting)
			assertSameList(t, "matched", matched, tt.wantMatched)
			assertSameList(t, "missing", missing, tt.wantMissing)
		})
	}
}

func assertSameList(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", label, got, want)
		}
	}
}
