package hearings

import (
	"sort"
	"strings"
	"time"

	"github.com/advocate-tools/legal-case-manager/models"
)

// DateWindow restricts a case list to hearings within a window from today
type DateWindow string

// Date windows accepted by Filter
const (
	WindowAll   DateWindow = ""
	WindowToday DateWindow = "today"
	WindowWeek  DateWindow = "week"  // next 7 days
	WindowMonth DateWindow = "month" // next 30 days
)

// Filter narrows a case list for display. Zero values match everything.
type Filter struct {
	Query  string // matched case-insensitively against number, title, client and court
	Status string
	Window DateWindow
}

// FilterCases returns the cases matching the filter, preserving input order
func FilterCases(cases []models.Case, f Filter, now time.Time) []models.Case {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	filtered := make([]models.Case, 0, len(cases))

	for _, c := range cases {
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Window != WindowAll && !inWindow(c, f.Window, now) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func matchesQuery(c models.Case, query string) bool {
	for _, field := range []string{c.CaseNumber, c.CaseTitle, c.ClientName, c.CourtName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func inWindow(c models.Case, window DateWindow, now time.Time) bool {
	days, ok := DaysUntil(c.NextHearingDate, now)
	if !ok {
		return false
	}
	switch window {
	case WindowToday:
		return days == 0
	case WindowWeek:
		return days >= 0 && days <= 7
	case WindowMonth:
		return days >= 0 && days <= 30
	}
	return true
}

// SortByNextHearing returns the cases ordered by next hearing date; cases
// with no hearing set sort last
func SortByNextHearing(cases []models.Case, ascending bool) []models.Case {
	sorted := make([]models.Case, len(cases))
	copy(sorted, cases)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].NextHearingDate, sorted[j].NextHearingDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if ascending {
			return a.Before(*b)
		}
		return b.Before(*a)
	})
	return sorted
}

// RecentlyUpdated returns up to limit cases ordered by last update, newest
// first
func RecentlyUpdated(cases []models.Case, limit int) []models.Case {
	sorted := make([]models.Case, len(cases))
	copy(sorted, cases)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lastTouched(sorted[j]).Before(lastTouched(sorted[i]))
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func lastTouched(c models.Case) time.Time {
	if c.UpdatedAt.IsZero() {
		return c.CreatedAt
	}
	return c.UpdatedAt
}

// Stats tallies a user's caseload by status
func Stats(cases []models.Case) models.CaseStats {
	stats := models.CaseStats{Total: len(cases)}
	for _, c := range cases {
		switch c.Status {
		case models.StatusActive:
			stats.Active++
		case models.StatusPostponed:
			stats.Postponed++
		case models.StatusClosed:
			stats.Closed++
		}
	}
	return stats
}
