package databases

// go generate: mockery --name CaseDatabase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/advocate-tools/legal-case-manager/models"
)

// CaseDatabase contains the methods to use with the cases collection. Every
// operation is scoped to the owning user; mutations rewrite the whole global
// collection, replacing only that user's subset (last write wins).
type CaseDatabase interface {
	ListCases(ctx context.Context, userID string) ([]models.Case, error)
	GetCase(ctx context.Context, userID, caseID string) (*models.Case, error)
	AddCase(ctx context.Context, userID string, newCase models.Case) (*models.Case, error)
	UpdateCase(ctx context.Context, userID, caseID string, update models.CaseUpdate) (*models.Case, error)
	DeleteCase(ctx context.Context, userID, caseID string) error
	AppendHistory(ctx context.Context, userID, caseID string, entry models.HistoryEntry) (*models.Case, error)
	UpdateHistoryEntry(ctx context.Context, userID, caseID, entryID string, update models.HistoryEntryUpdate) (*models.Case, error)
	RemoveHistoryFile(ctx context.Context, userID, caseID, entryID, fileID string) (*models.Case, error)
	CompleteHearing(ctx context.Context, userID, caseID string, completion models.HearingCompletion) (*models.Case, error)
	ReplaceCases(ctx context.Context, userID string, cases []models.Case) error
}

type caseDatabase struct {
	store Store
	now   func() time.Time
}

// NewCaseDatabase initializes a new instance of case database with the
// provided store
func NewCaseDatabase(store Store) CaseDatabase {
	return &caseDatabase{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// allCases reads the global collection across all users. A malformed stored
// collection degrades to empty rather than failing the operation.
func (c *caseDatabase) allCases(ctx context.Context) ([]models.Case, error) {
	raw, err := c.store.Get(ctx, CasesKey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return []models.Case{}, nil
	}
	var cases []models.Case
	if err := json.Unmarshal([]byte(raw), &cases); err != nil {
		zap.S().Errorw("stored cases collection is malformed, treating as empty", "error", err)
		return []models.Case{}, nil
	}
	return cases, nil
}

// saveUserCases writes back the global collection with userID's subset
// replaced by userCases. Ownership is forced onto every written case.
func (c *caseDatabase) saveUserCases(ctx context.Context, userID string, userCases []models.Case) error {
	all, err := c.allCases(ctx)
	if err != nil {
		return err
	}
	merged := make([]models.Case, 0, len(all)+len(userCases))
	for _, cs := range all {
		if cs.UserID != userID {
			merged = append(merged, cs)
		}
	}
	for _, cs := range userCases {
		cs.UserID = userID
		merged = append(merged, cs)
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, CasesKey, string(raw))
}

func (c *caseDatabase) ListCases(ctx context.Context, userID string) ([]models.Case, error) {
	all, err := c.allCases(ctx)
	if err != nil {
		return nil, err
	}
	cases := make([]models.Case, 0)
	for _, cs := range all {
		if cs.UserID == userID {
			cases = append(cases, cs)
		}
	}
	return cases, nil
}

func (c *caseDatabase) GetCase(ctx context.Context, userID, caseID string) (*models.Case, error) {
	cases, err := c.ListCases(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range cases {
		if cases[i].ID == caseID {
			return &cases[i], nil
		}
	}
	return nil, models.ErrNotFound
}

// AddCase assigns a fresh identity and timestamps, seeding the history with a
// "Case Created" entry when the caller supplied none
func (c *caseDatabase) AddCase(ctx context.Context, userID string, newCase models.Case) (*models.Case, error) {
	now := c.now()
	newCase.ID = uuid.NewString()
	newCase.UserID = userID
	newCase.CreatedAt = now
	newCase.UpdatedAt = now
	if newCase.Status == "" {
		newCase.Status = models.StatusActive
	}
	if len(newCase.History) == 0 {
		newCase.History = []models.HistoryEntry{{
			ID:          uuid.NewString(),
			Event:       models.EventCaseCreated,
			Date:        now,
			Description: models.SeedEntryDescription,
			Status:      newCase.Status,
			Files:       []models.CaseFile{},
		}}
	}

	cases, err := c.ListCases(ctx, userID)
	if err != nil {
		return nil, err
	}
	cases = append(cases, newCase)
	if err := c.saveUserCases(ctx, userID, cases); err != nil {
		return nil, err
	}
	return &newCase, nil
}

// UpdateCase shallow-merges the supplied fields, preserving id and bumping
// updatedAt
func (c *caseDatabase) UpdateCase(ctx context.Context, userID, caseID string, update models.CaseUpdate) (*models.Case, error) {
	return c.mutateCase(ctx, userID, caseID, func(cs *models.Case) error {
		applyString := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		applyString(&cs.CaseNumber, update.CaseNumber)
		applyString(&cs.CaseTitle, update.CaseTitle)
		applyString(&cs.ClientName, update.ClientName)
		applyString(&cs.CourtName, update.CourtName)
		applyString(&cs.JudgeName, update.JudgeName)
		applyString(&cs.CaseType, update.CaseType)
		applyString(&cs.IPCSection, update.IPCSection)
		applyString(&cs.BNSSection, update.BNSSection)
		applyString(&cs.Description, update.Description)
		applyString(&cs.Status, update.Status)
		if update.NextHearingDate != nil {
			d := update.NextHearingDate.UTC()
			cs.NextHearingDate = &d
		}
		applyString(&cs.NextHearingTime, update.NextHearingTime)
		return nil
	})
}

func (c *caseDatabase) DeleteCase(ctx context.Context, userID, caseID string) error {
	cases, err := c.ListCases(ctx, userID)
	if err != nil {
		return err
	}
	kept := make([]models.Case, 0, len(cases))
	for _, cs := range cases {
		if cs.ID != caseID {
			kept = append(kept, cs)
		}
	}
	if len(kept) == len(cases) {
		return models.ErrNotFound
	}
	return c.saveUserCases(ctx, userID, kept)
}

// AppendHistory normalizes the entry and pushes it onto the case history.
// A status on the entry overwrites the case status; a nextHearingDate on the
// entry reschedules the case's pending hearing.
func (c *caseDatabase) AppendHistory(ctx context.Context, userID, caseID string, entry models.HistoryEntry) (*models.Case, error) {
	return c.mutateCase(ctx, userID, caseID, func(cs *models.Case) error {
		now := c.now()
		entry.ID = uuid.NewString()
		if entry.Date.IsZero() {
			entry.Date = now
		} else {
			entry.Date = entry.Date.UTC()
		}
		if entry.HearingDate != nil {
			d := entry.HearingDate.UTC()
			entry.HearingDate = &d
		}
		if entry.NextHearingDate != nil {
			d := entry.NextHearingDate.UTC()
			entry.NextHearingDate = &d
		}
		if entry.Files == nil {
			entry.Files = []models.CaseFile{}
		}
		cs.History = append(cs.History, entry)

		if entry.Status != "" {
			cs.Status = entry.Status
		}
		if entry.NextHearingDate != nil {
			cs.NextHearingDate = entry.NextHearingDate
			if entry.NextHearingTime != "" {
				cs.NextHearingTime = entry.NextHearingTime
			}
		}
		return nil
	})
}

// UpdateHistoryEntry edits one entry in place. Existing attachments survive
// and NewFiles are appended after them; a status on the update also moves the
// case status.
func (c *caseDatabase) UpdateHistoryEntry(ctx context.Context, userID, caseID, entryID string, update models.HistoryEntryUpdate) (*models.Case, error) {
	return c.mutateCase(ctx, userID, caseID, func(cs *models.Case) error {
		for i := range cs.History {
			if cs.History[i].ID != entryID {
				continue
			}
			entry := &cs.History[i]
			entry.Date = update.Date.UTC()
			entry.Event = update.Event
			entry.HearingDate = update.HearingDate
			entry.HearingTime = update.HearingTime
			entry.Outcome = update.Outcome
			entry.Description = update.Description
			entry.NextHearingDate = update.NextHearingDate
			entry.NextHearingTime = update.NextHearingTime
			entry.Files = append(entry.Files, update.NewFiles...)
			if update.Status != "" {
				entry.Status = update.Status
				cs.Status = update.Status
			}
			return nil
		}
		return models.ErrNotFound
	})
}

// RemoveHistoryFile detaches one file from a history entry; the entry itself
// is never deleted
func (c *caseDatabase) RemoveHistoryFile(ctx context.Context, userID, caseID, entryID, fileID string) (*models.Case, error) {
	return c.mutateCase(ctx, userID, caseID, func(cs *models.Case) error {
		for i := range cs.History {
			if cs.History[i].ID != entryID {
				continue
			}
			files := cs.History[i].Files
			kept := make([]models.CaseFile, 0, len(files))
			for _, f := range files {
				if f.ID != fileID {
					kept = append(kept, f)
				}
			}
			if len(kept) == len(files) {
				return models.ErrNotFound
			}
			cs.History[i].Files = kept
			return nil
		}
		return models.ErrNotFound
	})
}

// CompleteHearing is the single transition that moves the pending hearing
// into history. The synthesized "Hearing" entry is dated at the former
// nextHearingDate; the case then takes the caller's next date/time, or none.
func (c *caseDatabase) CompleteHearing(ctx context.Context, userID, caseID string, completion models.HearingCompletion) (*models.Case, error) {
	return c.mutateCase(ctx, userID, caseID, func(cs *models.Case) error {
		if cs.NextHearingDate == nil {
			return models.ErrNoPendingHearing
		}
		former := cs.NextHearingDate.UTC()

		description := completion.Description
		if description == "" {
			description = "Hearing completed"
		}
		entryStatus := completion.Status
		if entryStatus == "" {
			entryStatus = cs.Status
		}
		files := completion.Files
		if files == nil {
			files = []models.CaseFile{}
		}
		cs.History = append(cs.History, models.HistoryEntry{
			ID:              uuid.NewString(),
			Event:           models.EventHearing,
			Date:            former,
			HearingDate:     &former,
			HearingTime:     cs.NextHearingTime,
			Description:     description,
			Outcome:         completion.Outcome,
			Status:          entryStatus,
			NextHearingDate: completion.NextHearingDate,
			NextHearingTime: completion.NextHearingTime,
			Files:           files,
		})

		if completion.NextHearingDate != nil {
			next := completion.NextHearingDate.UTC()
			cs.NextHearingDate = &next
			cs.NextHearingTime = completion.NextHearingTime
		} else {
			cs.NextHearingDate = nil
			cs.NextHearingTime = ""
		}
		if completion.Status != "" {
			cs.Status = completion.Status
		}
		return nil
	})
}

// ReplaceCases overwrites the user's entire case subset, leaving other users'
// cases untouched. Used by backup restore.
func (c *caseDatabase) ReplaceCases(ctx context.Context, userID string, cases []models.Case) error {
	return c.saveUserCases(ctx, userID, cases)
}

// mutateCase loads the user's cases, applies mutate to the matching one,
// bumps updatedAt and writes the subset back. Any error from mutate aborts
// before the write, so failed operations never leave partial state.
func (c *caseDatabase) mutateCase(ctx context.Context, userID, caseID string, mutate func(*models.Case) error) (*models.Case, error) {
	cases, err := c.ListCases(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range cases {
		if cases[i].ID != caseID {
			continue
		}
		if err := mutate(&cases[i]); err != nil {
			return nil, err
		}
		cases[i].ID = caseID
		cases[i].UpdatedAt = c.now()
		if err := c.saveUserCases(ctx, userID, cases); err != nil {
			return nil, err
		}
		return &cases[i], nil
	}
	return nil, models.ErrNotFound
}
