package matching

import (
	"fmt"

	"github.com/jobscout-kr/jobscout/internal/job"
)

// DefaultCategoryKeywords maps every job category to the terms whose
// presence in a posting grants the category score. Adding a category
// requires updating this table together with job.Categories.
func DefaultCategoryKeywords() map[job.Category][]string {
	return map[job.Category][]string{
		job.CategoryData: {
			"데이터 분석", "data analyst", "데이터 사이언", "ml engineer",
			"머신러닝", "bi 분석", "데이터 엔지니어", "빅데이터", "ai",
		},
		job.CategoryBackend: {
			"백엔드", "backend", "서버 개발", "java", "python", "node.js",
			"spring", "django", "fastapi", "go", "kotlin",
		},
		job.CategoryFrontend: {
			"프론트엔드", "frontend", "react", "vue", "angular", "웹 개발",
			"퍼블리셔", "javascript", "typescript", "next.js",
		},
		job.CategoryFullstack: {
			"풀스택", "full stack", "fullstack", "웹 개발자",
		},
		job.CategoryPM: {
			"기획", "pm", "po", "product", "서비스 기획", "프로덕트", "프로젝트 매니저",
		},
		job.CategoryDesign: {
			"디자인", "ui/ux", "ux", "프로덕트 디자이너", "그래픽", "figma",
		},
	}
}

func validateKeywordTable(table map[job.Category][]string) error {
	for _, category := range job.Categories() {
		keywords, ok := table[category]
		if !ok {
			return fmt.Errorf("keyword table is missing category %q", category)
		}
		if len(keywords) == 0 {
			return fmt.Errorf("keyword table has no keywords for category %q", category)
		}
	}
	for category := range table {
		if !category.Valid() {
			return fmt.Errorf("keyword table contains unknown category %q", category)
		}
	}
	return nil
}
