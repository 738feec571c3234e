package checklist

import (
	"math"
	"sort"

	vo "solarops/internal/domain/checklist/valueobjects"
)

type CategorySummary struct {
	Category  string `json:"category"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	HasIssues bool   `json:"has_issues"`
}

// Summary is the progress rollup of a checklist.
type Summary struct {
	Total              int                 `json:"total"`
	Completed          int                 `json:"completed"`
	Progress           int                 `json:"progress"`
	Categories         []CategorySummary   `json:"categories"`
	FindingsBySeverity map[vo.Severity]int `json:"findings_by_severity"`
}

// Summary counts answered items and failed findings. Categories appear in
// item order. Every severity bucket is present; failed items without a
// severity are not counted in any bucket.
func (c *Checklist) Summary() Summary {
	s := Summary{
		Total:              len(c.items),
		Categories:         []CategorySummary{},
		FindingsBySeverity: make(map[vo.Severity]int, len(vo.Severities)),
	}
	for _, sev := range vo.Severities {
		s.FindingsBySeverity[sev] = 0
	}

	index := make(map[string]int)
	for _, item := range c.items {
		pos, ok := index[item.category]
		if !ok {
			pos = len(s.Categories)
			index[item.category] = pos
			s.Categories = append(s.Categories, CategorySummary{Category: item.category})
		}
		cat := &s.Categories[pos]
		cat.Total++

		if item.status.IsAnswered() {
			s.Completed++
			cat.Completed++
		}
		if item.status.IsFailed() {
			cat.HasIssues = true
			if item.severity != nil {
				s.FindingsBySeverity[*item.severity]++
			}
		}
	}

	if s.Total > 0 {
		s.Progress = int(math.Round(float64(s.Completed) * 100 / float64(s.Total)))
	}
	return s
}

// Finding is a failed item as exposed to report generation.
type Finding struct {
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Status      vo.ItemOutcome `json:"status"`
	Severity    *vo.Severity   `json:"severity,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Value       *string        `json:"value,omitempty"`
	PhotoURLs   []string       `json:"photo_urls,omitempty"`
}

// Findings lists failed items, most severe first. Items without a severity
// sort last; ties keep template order.
func (c *Checklist) Findings() []Finding {
	var out []Finding
	for _, item := range c.items {
		if !item.status.IsFailed() {
			continue
		}
		out = append(out, Finding{
			Category:    item.category,
			Description: item.description,
			Status:      item.status,
			Severity:    item.severity,
			Notes:       item.notes,
			Value:       item.value,
			PhotoURLs:   item.photoURLs,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return severityRank(out[a].Severity) < severityRank(out[b].Severity)
	})
	return out
}

func severityRank(s *vo.Severity) int {
	if s == nil || !s.IsValid() {
		return len(vo.Severities)
	}
	return s.Rank()
}
