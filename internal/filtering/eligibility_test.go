package filtering

import (
	"testing"

	"github.com/jobscout-kr/jobscout/internal/job"
	"go.uber.org/zap"
)

func mustEligibility(t *testing.T, cfg *Config) *Eligibility {
	t.Helper()
	e, err := NewEligibility(cfg)
	if err != nil {
		t.Fatalf("NewEligibility() error: %v", err)
	}
	return e
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name: "default config is valid",
			cfg:  DefaultConfig(),
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
		{
			name:    "no job keywords",
			cfg:     &Config{ExcludeKeywords: []string{"senior"}},
			wantErr: true,
		},
		{
			name:    "empty job keyword entry",
			cfg:     &Config{JobKeywords: []string{"data analyst", "  "}},
			wantErr: true,
		},
		{
			name:    "empty exclude keyword entry",
			cfg:     &Config{JobKeywords: []string{"data analyst"}, ExcludeKeywords: []string{""}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEligibilityAccepts(t *testing.T) {
	t.Parallel()

	e := mustEligibility(t, nil)

	tests := []struct {
		name    string
		posting *job.Posting
		accept  bool
	}{
		{
			name: "relevant entry level posting",
			posting: &job.Posting{
				Title:      "데이터 분석가 채용",
				Experience: "신입",
			},
			accept: true,
		},
		{
			name: "keyword in description only",
			posting: &job.Posting{
				Title:       "채용 공고",
				Description: "data analyst 포지션입니다",
				Experience:  "경력무관",
			},
			accept: true,
		},
		{
			name: "exclusion beats entry markers",
			posting: &job.Posting{
				Title:      "시니어 데이터 분석가 (신입 환영)",
				Experience: "신입",
			},
			accept: false,
		},
		{
			name: "english exclusion keyword",
			posting: &job.Posting{
				Title:      "Senior Data Analyst",
				Experience: "신입",
			},
			accept: false,
		},
		{
			name: "exclusion is case insensitive",
			posting: &job.Posting{
				Title:      "LEAD data analyst",
				Experience: "",
			},
			accept: false,
		},
		{
			name: "no job keyword anywhere",
			posting: &job.Posting{
				Title:       "백엔드 개발자",
				Description: "Spring 기반 서버 개발",
				Experience:  "신입",
			},
			accept: false,
		},
		{
			name: "relevant but requires years",
			posting: &job.Posting{
				Title:      "데이터 엔지니어",
				Experience: "경력 3년 이상",
			},
			accept: false,
		},
		{
			name: "empty experience defaults to accept",
			posting: &job.Posting{
				Title: "머신러닝 엔지니어",
			},
			accept: true,
		},
		{
			name:    "nil posting",
			posting: nil,
			accept:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := e.Accepts(tt.posting); got != tt.accept {
				t.Fatalf("Accepts() = %v, want %v", got, tt.accept)
			}
		})
	}
}

func TestEligibilityAcceptsIsDeterministic(t *testing.T) {
	t.Parallel()

	e := mustEligibility(t, nil)
	posting := &job.Posting{
		Title:      "데이터 분석가",
		Experience: "신입/경력",
	}
	first := e.Accepts(posting)
	for i := 0; i < 20; i++ {
		if e.Accepts(posting) != first {
			t.Fatal("Accepts() changed between calls on identical input")
		}
	}
}

func TestPipelineRunFilters(t *testing.T) {
	t.Parallel()

	e := mustEligibility(t, nil)
	pipeline := NewPipeline(e, zap.NewNop())

	postings := &job.Postings{Items: []*job.Posting{
		{ID: "1", Title: "데이터 분석가", Experience: "신입"},
		{ID: "2", Title: "시니어 데이터 분석가", Experience: "신입"},
		{ID: "3", Title: "백엔드 개발자", Experience: "신입"},
		{ID: "4", Title: "데이터 엔지니어", Experience: "경력 5년"},
		{ID: "5", Title: "Data Analyst", Experience: "entry level"},
	}}

	left, err := pipeline.RunFilters(postings)
	if err != nil {
		t.Fatalf("RunFilters() error: %v", err)
	}

	want := []string{"1", "5"}
	got := left.IDs()
	if len(got) != len(want) {
		t.Fatalf("got %d postings %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("posting order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestPipelinePreservesInputOrder(t *testing.T) {
	t.Parallel()

	e := mustEligibility(t, nil)
	pipeline := NewPipeline(e, zap.NewNop())

	postings := &job.Postings{Items: []*job.Posting{
		{ID: "c", Title: "데이터 분석가 C", Experience: "신입"},
		{ID: "a", Title: "데이터 분석가 A", Experience: "신입"},
		{ID: "b", Title: "데이터 분석가 B", Experience: "신입"},
	}}

	left, err := pipeline.RunFilters(postings)
	if err != nil {
		t.Fatalf("RunFilters() error: %v", err)
	}

	want := []string{"c", "a", "b"}
	for i, id := range left.IDs() {
		if id != want[i] {
			t.Fatalf("order not preserved: got %v, want %v", left.IDs(), want)
		}
	}
}

func TestFilterStepCounts(t *testing.T) {
	t.Parallel()

	e := mustEligibility(t, nil)
	filter := NewTitleExclude(e)

	postings := &job.Postings{Items: []*job.Posting{
		{ID: "1", Title: "데이터 분석가"},
		{ID: "2", Title: "시니어 데이터 분석가"},
		{ID: "3", Title: "리드 데이터 엔지니어"},
	}}

	next, step, err := filter.Apply(postings)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if step.Initial != 3 || step.Dropped != 2 || step.Left != 1 {
		t.Fatalf("unexpected step counts: %+v", step)
	}
	if next.Len() != 1 || next.Items[0].ID != "1" {
		t.Fatalf("unexpected survivors: %v", next.IDs())
	}
}
