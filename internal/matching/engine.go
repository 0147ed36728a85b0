package matching

import (
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout-kr/jobscout/internal/filtering"
	"github.com/jobscout-kr/jobscout/internal/job"
)

// Score weights and thresholds of the blended rule/embedding formula.
const (
	categoryWeight   = 30
	experienceWeight = 20
	locationWeight   = 10
	embeddingWeight  = 40

	// minRuleScore gates the embedding step: postings scoring below it on
	// rules alone never reach the vector comparison.
	minRuleScore = 20

	minScoreThreshold = 50
	topKResults       = 10
)

// Engine ranks postings against a profile. It performs no I/O; postings
// and precomputed vectors arrive as plain data.
type Engine struct {
	keywords map[job.Category][]string
	logger   *zap.Logger
}

// NewEngine validates the category keyword table and builds an engine.
// A malformed table is a configuration error and fails construction.
func NewEngine(keywords map[job.Category][]string, logger *zap.Logger) (*Engine, error) {
	if keywords == nil {
		keywords = DefaultCategoryKeywords()
	}
	if err := validateKeywordTable(keywords); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{keywords: keywords, logger: logger}, nil
}

// MatchProfileToJobs scores every posting against the profile and returns
// the surviving matches ordered by total score, capped at the top ten.
// Ties keep the original posting order.
func (e *Engine) MatchProfileToJobs(profile *job.Profile, postings *job.Postings, jobEmbeddings map[string][]float32) []*job.MatchResult {
	if profile == nil || postings == nil {
		return nil
	}

	now := time.Now()
	results := make([]*job.MatchResult, 0, postings.Len())

	for _, posting := range postings.Items {
		breakdown := e.ruleScore(profile, posting)

		if breakdown.RuleScore() < minRuleScore {
			continue
		}

		if len(profile.Embedding) > 0 {
			if vector, ok := jobEmbeddings[posting.ID]; ok {
				// Anti-correlated vectors count as zero similarity; the
				// embedding term never subtracts from the rule score.
				similarity := math.Max(0, CosineSimilarity(profile.Embedding, vector)) * 100
				breakdown.EmbeddingScore = similarity * embeddingWeight / 100
			}
		}

		total := round1(breakdown.Sum())
		if total < minScoreThreshold {
			continue
		}

		matched, missing := AnalyzeSkills(profile.Skills, posting.TechStack)

		results = append(results, &job.MatchResult{
			ProfileID:     profile.ID,
			JobID:         posting.ID,
			TotalScore:    total,
			Breakdown:     breakdown,
			MatchedSkills: matched,
			MissingSkills: missing,
			MatchedAt:     now,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	if len(results) > topKResults {
		results = results[:topKResults]
	}

	e.logger.Debug("profile matched",
		zap.String("profile_id", profile.ID),
		zap.Int("postings", postings.Len()),
		zap.Int("matches", len(results)),
	)
	return results
}

func (e *Engine) ruleScore(profile *job.Profile, posting *job.Posting) job.ScoreBreakdown {
	var breakdown job.ScoreBreakdown

	if e.matchesCategory(profile.Category, posting) {
		breakdown.CategoryScore = categoryWeight
	}
	if matchesExperience(profile.ExperienceYears, posting.Experience) {
		breakdown.ExperienceScore = experienceWeight
	}
	if matchesLocation(profile.PreferredLocations, posting.Location) {
		breakdown.LocationScore = locationWeight
	}
	return breakdown
}

func (e *Engine) matchesCategory(category job.Category, posting *job.Posting) bool {
	text := posting.SearchText()
	for _, kw := range e.keywords[category] {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// matchesExperience treats experienced candidates as eligible for any
// posting; zero-experience profiles need an entry-friendly marker.
func matchesExperience(years int, expText string) bool {
	if years == 0 {
		return filtering.HasEntryMarker(expText)
	}
	return true
}

func matchesLocation(preferred []string, location string) bool {
	if len(preferred) == 0 || location == "" {
		return true
	}
	lowered := strings.ToLower(location)
	for _, loc := range preferred {
		if strings.Contains(lowered, strings.ToLower(loc)) {
			return true
		}
	}
	return false
}

// CosineSimilarity measures directional closeness of two vectors,
// returning 0 when either has zero norm.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
