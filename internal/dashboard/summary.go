package dashboard

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

// SuccessStatus is the gold-table status that counts as a successful job.
const SuccessStatus = "CONCLUIDO"

// DisplayTimezone is where the dashboard's users read timestamps.
const DisplayTimezone = "America/Sao_Paulo"

const displayTimeFormat = "02/01 15:04"

// UnknownCategory stands in for a NULL status or size.
const UnknownCategory = "UNKNOWN"

func category(p *string) string {
	if p == nil {
		return UnknownCategory
	}
	return *p
}

// Filter keeps rows whose status and contact type are in the given sets.
// An empty set keeps everything.
type Filter struct {
	Statuses     []string
	ContactTypes []string
}

func (f Filter) Apply(rows []models.GoldEnrichment) []models.GoldEnrichment {
	out := make([]models.GoldEnrichment, 0, len(rows))
	for _, r := range rows {
		if !matches(f.Statuses, category(r.Status)) || !matches(f.ContactTypes, r.ContactType) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

// StatusCount is one slice of the status breakdown.
type StatusCount struct {
	Status string `json:"status" yaml:"status"`
	Count  int    `json:"count" yaml:"count"`
}

// Summary is the KPI panel computed client-side from the fetched rows.
type Summary struct {
	TotalJobs     int           `json:"total_jobs" yaml:"total_jobs"`
	TotalContacts int64         `json:"total_contacts" yaml:"total_contacts"`
	SuccessRate   float64       `json:"success_rate" yaml:"success_rate"`
	Statuses      []StatusCount `json:"statuses" yaml:"statuses"`
}

// Summarize computes totals, the success rate (one decimal) and the status
// breakdown sorted by count descending, then name.
func Summarize(rows []models.GoldEnrichment) Summary {
	s := Summary{TotalJobs: len(rows), Statuses: []StatusCount{}}
	counts := map[string]int{}
	succeeded := 0
	for _, r := range rows {
		s.TotalContacts += r.TotalContacts
		status := category(r.Status)
		counts[status]++
		if status == SuccessStatus {
			succeeded++
		}
	}
	if s.TotalJobs > 0 {
		rate := float64(succeeded) / float64(s.TotalJobs) * 100
		s.SuccessRate, _ = strconv.ParseFloat(strconv.FormatFloat(rate, 'f', 1, 64), 64)
	}
	for status, n := range counts {
		s.Statuses = append(s.Statuses, StatusCount{Status: status, Count: n})
	}
	sort.Slice(s.Statuses, func(i, j int) bool {
		if s.Statuses[i].Count != s.Statuses[j].Count {
			return s.Statuses[i].Count > s.Statuses[j].Count
		}
		return s.Statuses[i].Status < s.Statuses[j].Status
	})
	return s
}

// JobView is one table row with timestamps rendered for display.
type JobView struct {
	CreatedAt     string `json:"created_at" yaml:"created_at"`
	UpdatedAt     string `json:"updated_at" yaml:"updated_at"`
	Workspace     string `json:"workspace" yaml:"workspace"`
	SizeCategory  string `json:"size" yaml:"size"`
	ContactType   string `json:"type" yaml:"type"`
	TotalContacts int64  `json:"contacts" yaml:"contacts"`
	Status        string `json:"status" yaml:"status"`
}

// Views renders rows in loc. A nil loc means UTC.
func Views(rows []models.GoldEnrichment, loc *time.Location) []JobView {
	if loc == nil {
		loc = time.UTC
	}
	out := make([]JobView, 0, len(rows))
	for _, r := range rows {
		out = append(out, JobView{
			CreatedAt:     r.CreatedAt.In(loc).Format(displayTimeFormat),
			UpdatedAt:     r.UpdatedAt.In(loc).Format(displayTimeFormat),
			Workspace:     r.WorkspaceName,
			SizeCategory:  category(r.SizeCategory),
			ContactType:   r.ContactType,
			TotalContacts: r.TotalContacts,
			Status:        category(r.Status),
		})
	}
	return out
}
