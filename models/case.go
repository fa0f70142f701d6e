package models

import "time"

// Case statuses. Status is an open string; these are the values the
// application itself writes.
const (
	StatusActive    = "active"
	StatusPostponed = "postponed"
	StatusClosed    = "closed"
)

// History event labels with special meaning. EventHearing marks a completed
// hearing record and is picked up by hearing-list reconstruction.
const (
	EventHearing          = "Hearing"
	EventHearingScheduled = "Hearing Scheduled"
	EventCaseCreated      = "Case Created"
	EventJudgment         = "Judgment"
	EventOrder            = "Order"
)

// SeedEntryDescription is the description on the history entry that seeds a
// freshly created case.
const SeedEntryDescription = "Case was created in the system"

// Case holds the structure for one legal matter in the cases collection
type Case struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	CaseNumber  string `json:"caseNumber"`
	CaseTitle   string `json:"caseTitle"`
	ClientName  string `json:"clientName"`
	CourtName   string `json:"courtName"`
	JudgeName   string `json:"judgeName,omitempty"`
	CaseType    string `json:"caseType,omitempty"`
	IPCSection  string `json:"ipcSection,omitempty"`
	BNSSection  string `json:"bnsSection,omitempty"`
	Description string `json:"description,omitempty"`

	Status          string     `json:"status"`
	NextHearingDate *time.Time `json:"nextHearingDate"`
	NextHearingTime string     `json:"nextHearingTime,omitempty"` // HH:MM, empty when unset

	Files   []CaseFile     `json:"files,omitempty"`
	History []HistoryEntry `json:"history"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CaseFile is one document attached to a case or history entry. Data carries
// the full base64 data URL so the record is self-contained.
type CaseFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"type"`
	SizeBytes  int64     `json:"size"`
	Data       string    `json:"data"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// HistoryEntry records a single event in the case lifecycle. Entries are
// append-only; edits happen in place through the case database.
type HistoryEntry struct {
	ID              string     `json:"id"`
	Event           string     `json:"event"`
	Date            time.Time  `json:"date"`
	HearingDate     *time.Time `json:"hearingDate"`
	HearingTime     string     `json:"hearingTime,omitempty"`
	Outcome         string     `json:"outcome,omitempty"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status,omitempty"`
	Purpose         string     `json:"purpose,omitempty"`
	NextHearingDate *time.Time `json:"nextHearingDate"`
	NextHearingTime string     `json:"nextHearingTime,omitempty"`
	Files           []CaseFile `json:"files"`
}

// CaseUpdate carries the fields of a shallow case update. Nil pointers leave
// the stored value untouched.
type CaseUpdate struct {
	CaseNumber      *string    `json:"caseNumber,omitempty"`
	CaseTitle       *string    `json:"caseTitle,omitempty"`
	ClientName      *string    `json:"clientName,omitempty"`
	CourtName       *string    `json:"courtName,omitempty"`
	JudgeName       *string    `json:"judgeName,omitempty"`
	CaseType        *string    `json:"caseType,omitempty"`
	IPCSection      *string    `json:"ipcSection,omitempty"`
	BNSSection      *string    `json:"bnsSection,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Status          *string    `json:"status,omitempty"`
	NextHearingDate *time.Time `json:"nextHearingDate,omitempty"`
	NextHearingTime *string    `json:"nextHearingTime,omitempty"`
}

// HistoryEntryUpdate carries an in-place edit of one history entry. Date and
// Event always overwrite; NewFiles are appended after the entry's surviving
// attachments.
type HistoryEntryUpdate struct {
	Date            time.Time  `json:"date"`
	Event           string     `json:"event"`
	HearingDate     *time.Time `json:"hearingDate"`
	HearingTime     string     `json:"hearingTime,omitempty"`
	Outcome         string     `json:"outcome,omitempty"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status,omitempty"`
	NextHearingDate *time.Time `json:"nextHearingDate"`
	NextHearingTime string     `json:"nextHearingTime,omitempty"`
	NewFiles        []CaseFile `json:"newFiles,omitempty"`
}

// HearingCompletion carries the caller-supplied values for the
// complete-hearing transition. NextHearingDate left nil clears the case's
// pending hearing.
type HearingCompletion struct {
	Outcome         string     `json:"outcome,omitempty"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status,omitempty"`
	NextHearingDate *time.Time `json:"nextHearingDate"`
	NextHearingTime string     `json:"nextHearingTime,omitempty"`
	Files           []CaseFile `json:"files,omitempty"`
}
