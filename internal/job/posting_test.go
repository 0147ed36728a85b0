package job

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPostingEmbeddingText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		posting *Posting
		want    string
	}{
		{
			name:    "title only",
			posting: &Posting{Title: "데이터 분석가"},
			want:    "데이터 분석가",
		},
		{
			name: "title and description",
			posting: &Posting{
				Title:       "데이터 분석가",
				Description: "SQL로 지표를 분석합니다",
			},
			want: "데이터 분석가 SQL로 지표를 분석합니다",
		},
		{
			name: "full posting",
			posting: &Posting{
				Title:       "데이터 분석가",
				Description: "지표 분석",
				TechStack:   []string{"Python", "SQL"},
			},
			want: "데이터 분석가 지표 분석 Python SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.posting.EmbeddingText(); got != tt.want {
				t.Fatalf("EmbeddingText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostingSearchText(t *testing.T) {
	t.Parallel()

	p := &Posting{Title: "Data Analyst", Description: "SQL 분석"}
	if got := p.SearchText(); got != "data analyst sql 분석" {
		t.Fatalf("SearchText() = %q", got)
	}
}

func TestPostingsFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jobs.json")
	data := `{
  "jobs": [
    {"id": "j1", "title": "데이터 분석가", "experience_text": "신입", "tech_stack": ["Python"]},
    {"id": "j2", "title": "Data Engineer", "location": "서울", "source": "wanted"}
  ]
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	postings, err := PostingsFromFile(path)
	if err != nil {
		t.Fatalf("PostingsFromFile() error: %v", err)
	}
	if postings.Len() != 2 {
		t.Fatalf("loaded %d postings, want 2", postings.Len())
	}
	if got := postings.FindByID("j2"); got == nil || got.Location != "서울" {
		t.Fatalf("FindByID(j2) = %+v", got)
	}
	if postings.FindByID("missing") != nil {
		t.Fatal("FindByID on unknown id returned a posting")
	}
	if ids := postings.IDs(); len(ids) != 2 || ids[0] != "j1" || ids[1] != "j2" {
		t.Fatalf("IDs() = %v", ids)
	}
}

func TestPostingsFromFileErrors(t *testing.T) {
	t.Parallel()

	if _, err := PostingsFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := PostingsFromFile(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestReportBySource(t *testing.T) {
	t.Parallel()

	postings := &Postings{Items: []*Posting{
		{Title: "A", Source: "wanted", URL: "https://example.com/a"},
		{Title: "B", Source: "saramin"},
		{Title: "C", Source: "wanted"},
	}}

	report := postings.ReportBySource()
	if len(report["wanted"]) != 2 || len(report["saramin"]) != 1 {
		t.Fatalf("unexpected report shape: %v", report)
	}
	if report["wanted"][0]["title"] != "A" || report["wanted"][0]["url"] != "https://example.com/a" {
		t.Fatalf("unexpected wanted entry: %v", report["wanted"][0])
	}
}
