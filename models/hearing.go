package models

import "time"

// CurrentHearingID is the synthetic id given to the not-yet-completed hearing
// derived from a case's nextHearingDate.
const CurrentHearingID = "current"

// Urgency classifies how soon a case's next hearing occurs
type Urgency string

// Urgency levels, ordered from calm to critical
const (
	UrgencyNone    Urgency = ""
	UrgencyWarning Urgency = "warning" // within 7 days
	UrgencySoon    Urgency = "soon"    // within 3 days
	UrgencyUrgent  Urgency = "urgent"  // today or tomorrow
)

// Hearing is a derived (never stored) view of one hearing, reconstructed from
// the case history plus the pending nextHearingDate.
type Hearing struct {
	ID              string     `json:"id"`
	Event           string     `json:"event"`
	Date            time.Time  `json:"date"`
	HearingDate     time.Time  `json:"hearingDate"`
	HearingTime     string     `json:"hearingTime,omitempty"`
	Outcome         string     `json:"outcome,omitempty"`
	Description     string     `json:"description,omitempty"`
	NextHearingDate *time.Time `json:"nextHearingDate,omitempty"`
	NextHearingTime string     `json:"nextHearingTime,omitempty"`
	Files           []CaseFile `json:"files,omitempty"`
	IsPast          bool       `json:"isPast"`
	IsCompleted     bool       `json:"isCompleted"`
	IsCurrent       bool       `json:"isCurrent,omitempty"`
}

// UpcomingHearing pairs a case with the day count to its next hearing
type UpcomingHearing struct {
	Case      Case `json:"case"`
	DaysUntil int  `json:"daysUntil"`
}

// HearingAlerts is the aggregated alert view over all of a user's cases
type HearingAlerts struct {
	Upcoming []UpcomingHearing `json:"upcoming"` // ascending by date, at most 10
	Urgent   []Case            `json:"urgent"`   // hearing today or tomorrow
	Soon     []Case            `json:"soon"`     // hearing in 2-3 days
	Nearest  *UpcomingHearing  `json:"nearest"`
}

// CaseStats summarizes a user's caseload by status
type CaseStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Postponed int `json:"postponed"`
	Closed    int `json:"closed"`
}
