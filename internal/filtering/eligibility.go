package filtering

import (
	"fmt"
	"strings"

	"github.com/jobscout-kr/jobscout/internal/job"
)

// Config contains the keyword rules driving the eligibility filter.
// The tables are fixed for the lifetime of the filter; callers construct
// a new filter to change them.
type Config struct {
	// JobKeywords is an OR allow-list: a posting survives when at least
	// one keyword appears in its title or description.
	JobKeywords []string
	// ExcludeKeywords reject a posting outright when found in its title.
	// They typically mark seniority (senior, lead, principal).
	ExcludeKeywords []string
}

// DefaultConfig returns the built-in keyword tables for data roles.
func DefaultConfig() *Config {
	return &Config{
		JobKeywords: []string{
			"데이터 분석",
			"데이터분석",
			"data analyst",
			"data analysis",
			"데이터 사이언티스트",
			"data scientist",
			"bi 분석",
			"비즈니스 분석",
			"데이터 엔지니어",
			"data engineer",
			"머신러닝",
			"ml engineer",
		},
		ExcludeKeywords: []string{
			"시니어",
			"senior",
			"팀장",
			"리드",
			"lead",
			"principal",
			"staff",
			"head",
		},
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("filter config is required")
	}
	if len(c.JobKeywords) == 0 {
		return fmt.Errorf("at least one job keyword is required")
	}
	for _, kw := range append(append([]string{}, c.JobKeywords...), c.ExcludeKeywords...) {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("keyword tables must not contain empty entries")
		}
	}
	return nil
}

// Eligibility decides whether a scraped posting is worth keeping at all.
// It is a pure function of the posting's text fields and the configured
// keyword tables; safe for concurrent use.
type Eligibility struct {
	cfg *Config
}

func NewEligibility(cfg *Config) (*Eligibility, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Eligibility{cfg: cfg}, nil
}

// Accepts applies the exclusion, relevance and entry-level rules in order,
// short-circuiting on the first decisive one.
func (e *Eligibility) Accepts(p *job.Posting) bool {
	if p == nil {
		return false
	}
	if _, excluded := e.excludedTerm(p.Title); excluded {
		return false
	}
	if !e.matchesJobKeyword(p) {
		return false
	}
	return EntryLevelFriendly(p.Experience)
}

// excludedTerm returns the first exclude keyword found in the title.
func (e *Eligibility) excludedTerm(title string) (string, bool) {
	lowered := strings.ToLower(title)
	for _, term := range e.cfg.ExcludeKeywords {
		if strings.Contains(lowered, strings.ToLower(term)) {
			return term, true
		}
	}
	return "", false
}

func (e *Eligibility) matchesJobKeyword(p *job.Posting) bool {
	text := p.SearchText()
	for _, kw := range e.cfg.JobKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
