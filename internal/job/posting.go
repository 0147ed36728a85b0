package job

import (
	"encoding/json"
	"os"
	"strings"
)

type Postings struct {
	Items []*Posting `json:"jobs"`
}

type Posting struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Experience  string   `json:"experience_text,omitempty"`
	Location    string   `json:"location,omitempty"`
	TechStack   []string `json:"tech_stack,omitempty"`
	Source      string   `json:"source,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// EmbeddingText builds the text representation used for embedding a posting.
func (p *Posting) EmbeddingText() string {
	parts := []string{p.Title}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if len(p.TechStack) > 0 {
		parts = append(parts, strings.Join(p.TechStack, " "))
	}
	return strings.Join(parts, " ")
}

// SearchText returns the lowercased title+description used by keyword rules.
func (p *Posting) SearchText() string {
	return strings.ToLower(p.Title + " " + p.Description)
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByID(id string) *Posting {
	for _, posting := range p.Items {
		if posting.ID == id {
			return posting
		}
	}
	return nil
}

func (p *Postings) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, posting := range p.Items {
		ids = append(ids, posting.ID)
	}
	return ids
}

// ReportBySource groups postings by their source identifier.
func (p *Postings) ReportBySource() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, posting := range p.Items {
		report[posting.Source] = append(report[posting.Source], map[string]string{
			"title":    posting.Title,
			"url":      posting.URL,
			"location": posting.Location,
		})
	}
	return report
}

// PostingsFromFile loads a postings list from a JSON file.
func PostingsFromFile(path string) (*Postings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var postings Postings
	if err := json.NewDecoder(file).Decode(&postings); err != nil {
		return nil, err
	}
	return &postings, nil
}

func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}
