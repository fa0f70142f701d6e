// Package hearings derives hearing lists, urgency classes and alert views
// from case snapshots. Everything here is a pure function of its inputs and
// an explicit reference time; malformed or missing dates mean "no date set",
// never an error.
package hearings

import (
	"sort"
	"time"

	"github.com/advocate-tools/legal-case-manager/models"
)

// DaysUntil returns the number of calendar days from now's date to target's
// date. Both endpoints are reduced to their calendar date at UTC midnight
// before subtracting, so the count is whole days regardless of clock time or
// DST, and a hearing later today counts as 0. The second return is false when
// target is nil.
func DaysUntil(target *time.Time, now time.Time) (int, bool) {
	if target == nil {
		return 0, false
	}
	diff := midnight(*target).Sub(midnight(now))
	return int(diff / (24 * time.Hour)), true
}

// midnight rebuilds t's calendar date at UTC midnight
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CaseUrgency classifies how soon the case's next hearing occurs. Closed
// cases, cases with no hearing set and past dates all classify as none.
func CaseUrgency(c models.Case, now time.Time) models.Urgency {
	if c.Status == models.StatusClosed {
		return models.UrgencyNone
	}
	days, ok := DaysUntil(c.NextHearingDate, now)
	if !ok || days < 0 {
		return models.UrgencyNone
	}
	switch {
	case days <= 1:
		return models.UrgencyUrgent
	case days <= 3:
		return models.UrgencySoon
	case days <= 7:
		return models.UrgencyWarning
	}
	return models.UrgencyNone
}

// AllHearings reconstructs the case's full hearing list: every completed
// "Hearing" history entry plus, when nextHearingDate is set, the synthetic
// current entry. The result is ordered ascending by hearing date.
func AllHearings(c models.Case, now time.Time) []models.Hearing {
	hearings := make([]models.Hearing, 0, len(c.History)+1)

	for _, entry := range c.History {
		if entry.Event != models.EventHearing || entry.HearingDate == nil {
			continue
		}
		hearings = append(hearings, models.Hearing{
			ID:              entry.ID,
			Event:           entry.Event,
			Date:            entry.Date,
			HearingDate:     *entry.HearingDate,
			HearingTime:     entry.HearingTime,
			Outcome:         entry.Outcome,
			Description:     entry.Description,
			NextHearingDate: entry.NextHearingDate,
			NextHearingTime: entry.NextHearingTime,
			Files:           entry.Files,
			IsPast:          entry.HearingDate.Before(now),
			IsCompleted:     true,
		})
	}

	if c.NextHearingDate != nil {
		hearings = append(hearings, models.Hearing{
			ID:          models.CurrentHearingID,
			Event:       models.EventHearing,
			Date:        *c.NextHearingDate,
			HearingDate: *c.NextHearingDate,
			HearingTime: c.NextHearingTime,
			Description: "Upcoming hearing",
			IsPast:      midnight(*c.NextHearingDate).Before(midnight(now)),
			IsCompleted: false,
			IsCurrent:   true,
		})
	}

	sort.SliceStable(hearings, func(i, j int) bool {
		return hearings[i].HearingDate.Before(hearings[j].HearingDate)
	})
	return hearings
}

// Milestones returns the case's Hearing/Judgment/Order entries in
// chronological order, dated by hearingDate when present
func Milestones(c models.Case) []models.HistoryEntry {
	milestones := make([]models.HistoryEntry, 0)
	for _, entry := range c.History {
		switch entry.Event {
		case models.EventHearing, models.EventJudgment, models.EventOrder:
			milestones = append(milestones, entry)
		}
	}
	sort.SliceStable(milestones, func(i, j int) bool {
		return effectiveDate(milestones[i]).Before(effectiveDate(milestones[j]))
	})
	return milestones
}

// SortHistoryForTimeline orders history entries by effective date descending
// (newest first), the order the case timeline displays them in. Storage order
// is untouched; a sorted copy is returned.
func SortHistoryForTimeline(history []models.HistoryEntry) []models.HistoryEntry {
	sorted := make([]models.HistoryEntry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return effectiveDate(sorted[j]).Before(effectiveDate(sorted[i]))
	})
	return sorted
}

// effectiveDate is the hearing date when the entry has one, otherwise the
// entry date
func effectiveDate(entry models.HistoryEntry) time.Time {
	if entry.HearingDate != nil {
		return *entry.HearingDate
	}
	return entry.Date
}

// UpcomingAlerts aggregates the alert view across a user's cases: non-closed
// cases with a hearing 0-7 days out, split into urgency buckets. Upcoming is
// ordered ascending by hearing date and capped at 10; Nearest is the first of
// the full ordered list.
func UpcomingAlerts(cases []models.Case, now time.Time) models.HearingAlerts {
	upcoming := make([]models.UpcomingHearing, 0)
	urgent := make([]models.Case, 0)
	soon := make([]models.Case, 0)

	for _, c := range cases {
		if c.Status == models.StatusClosed {
			continue
		}
		days, ok := DaysUntil(c.NextHearingDate, now)
		if !ok || days < 0 || days > 7 {
			continue
		}
		upcoming = append(upcoming, models.UpcomingHearing{Case: c, DaysUntil: days})
		if days <= 1 {
			urgent = append(urgent, c)
		} else if days <= 3 {
			soon = append(soon, c)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Case.NextHearingDate.Before(*upcoming[j].Case.NextHearingDate)
	})

	alerts := models.HearingAlerts{Urgent: urgent, Soon: soon}
	if len(upcoming) > 0 {
		nearest := upcoming[0]
		alerts.Nearest = &nearest
	}
	if len(upcoming) > 10 {
		upcoming = upcoming[:10]
	}
	alerts.Upcoming = upcoming
	return alerts
}
