package filtering

import (
	"github.com/jobscout-kr/jobscout/internal/job"
)

type titleExcludeFilter struct {
	eligibility *Eligibility
}

// NewTitleExclude creates a filter that removes postings whose title
// contains an exclude keyword.
func NewTitleExclude(e *Eligibility) Filter {
	return &titleExcludeFilter{eligibility: e}
}

func (f *titleExcludeFilter) Name() string { return "title_exclude" }

func (f *titleExcludeFilter) Apply(p *job.Postings) (*job.Postings, Step, error) {
	next, step := keep(p, func(posting *job.Posting) bool {
		_, excluded := f.eligibility.excludedTerm(posting.Title)
		return !excluded
	})
	return next, step, nil
}

type keywordRelevanceFilter struct {
	eligibility *Eligibility
}

// NewKeywordRelevance creates a filter that keeps postings mentioning at
// least one configured job keyword.
func NewKeywordRelevance(e *Eligibility) Filter {
	return &keywordRelevanceFilter{eligibility: e}
}

func (f *keywordRelevanceFilter) Name() string { return "keyword_relevance" }

func (f *keywordRelevanceFilter) Apply(p *job.Postings) (*job.Postings, Step, error) {
	next, step := keep(p, f.eligibility.matchesJobKeyword)
	return next, step, nil
}

type entryLevelFilter struct{}

// NewEntryLevel creates a filter that removes postings closed to
// entry-level candidates.
func NewEntryLevel() Filter {
	return &entryLevelFilter{}
}

func (f *entryLevelFilter) Name() string { return "entry_level" }

func (f *entryLevelFilter) Apply(p *job.Postings) (*job.Postings, Step, error) {
	next, step := keep(p, func(posting *job.Posting) bool {
		return EntryLevelFriendly(posting.Experience)
	})
	return next, step, nil
}
