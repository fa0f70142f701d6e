package databases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocate-tools/legal-case-manager/models"
)

func testCaseDB(store Store, now time.Time) *caseDatabase {
	return &caseDatabase{store: store, now: func() time.Time { return now }}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

func TestAddCaseAssignsIdentityAndSeedHistory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	db := testCaseDB(NewMemoryStore(), now)

	created, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-1/2024", CaseTitle: "State vs Rao"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, models.StatusActive, created.Status)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, now, created.UpdatedAt)

	require.Len(t, created.History, 1)
	seed := created.History[0]
	assert.NotEmpty(t, seed.ID)
	assert.Equal(t, models.EventCaseCreated, seed.Event)
	assert.Equal(t, models.SeedEntryDescription, seed.Description)
	assert.Equal(t, models.StatusActive, seed.Status)
}

func TestAddCaseKeepsCallerHistory(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{
		CaseNumber: "CR-2/2024",
		History:    []models.HistoryEntry{{ID: "imported", Event: "Filing"}},
	})
	require.NoError(t, err)
	require.Len(t, created.History, 1)
	assert.Equal(t, "imported", created.History[0].ID)
}

func TestCaseRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{
		CaseNumber:      "CR-3/2024",
		CaseTitle:       "Mehta vs Mehta",
		ClientName:      "Anil Mehta",
		NextHearingDate: datePtr(2024, time.July, 1),
		NextHearingTime: "11:00",
	})
	require.NoError(t, err)

	got, err := db.GetCase(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.CaseNumber, got.CaseNumber)
	assert.Equal(t, created.ClientName, got.ClientName)
	require.NotNil(t, got.NextHearingDate)
	assert.True(t, got.NextHearingDate.Equal(*created.NextHearingDate))
	assert.Equal(t, "11:00", got.NextHearingTime)
}

func TestGetCaseNotFound(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	_, err := db.GetCase(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListCasesIsScopedToUser(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	mine, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-4/2024"})
	require.NoError(t, err)
	theirs, err := db.AddCase(ctx, "user-2", models.Case{CaseNumber: "CR-5/2024"})
	require.NoError(t, err)

	cases, err := db.ListCases(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, mine.ID, cases[0].ID)

	// user-1 cannot read or delete user-2's case
	_, err = db.GetCase(ctx, "user-1", theirs.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, db.DeleteCase(ctx, "user-1", theirs.ID), models.ErrNotFound)

	others, err := db.ListCases(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestMutationsLeaveOtherUsersUntouched(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	mine, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-6/2024"})
	require.NoError(t, err)
	theirs, err := db.AddCase(ctx, "user-2", models.Case{CaseNumber: "CR-7/2024", CaseTitle: "untouched"})
	require.NoError(t, err)

	_, err = db.UpdateCase(ctx, "user-1", mine.ID, models.CaseUpdate{CaseTitle: strPtr("renamed")})
	require.NoError(t, err)
	require.NoError(t, db.DeleteCase(ctx, "user-1", mine.ID))

	got, err := db.GetCase(ctx, "user-2", theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "untouched", got.CaseTitle)
}

func TestUpdateCaseMergesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	db := testCaseDB(NewMemoryStore(), now)

	created, err := db.AddCase(ctx, "user-1", models.Case{
		CaseNumber: "CR-8/2024",
		CaseTitle:  "original title",
		ClientName: "original client",
	})
	require.NoError(t, err)

	later := now.Add(time.Hour)
	db.now = func() time.Time { return later }

	updated, err := db.UpdateCase(ctx, "user-1", created.ID, models.CaseUpdate{
		CaseTitle:       strPtr("new title"),
		NextHearingDate: datePtr(2024, time.July, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "new title", updated.CaseTitle)
	assert.Equal(t, "original client", updated.ClientName)
	require.NotNil(t, updated.NextHearingDate)
	assert.Equal(t, later, updated.UpdatedAt)
}

func TestUpdateCaseNotFound(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	_, err := db.UpdateCase(ctx, "user-1", "missing", models.CaseUpdate{CaseTitle: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteCase(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-9/2024"})
	require.NoError(t, err)

	require.NoError(t, db.DeleteCase(ctx, "user-1", created.ID))
	_, err = db.GetCase(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, db.DeleteCase(ctx, "user-1", created.ID), models.ErrNotFound)
}

func TestAppendHistoryDefaultsAndSideEffects(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	db := testCaseDB(NewMemoryStore(), now)

	created, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-10/2024"})
	require.NoError(t, err)

	updated, err := db.AppendHistory(ctx, "user-1", created.ID, models.HistoryEntry{
		Event:           models.EventHearingScheduled,
		Description:     "Next date fixed",
		NextHearingDate: datePtr(2024, time.July, 15),
		NextHearingTime: "10:30",
	})
	require.NoError(t, err)

	require.Len(t, updated.History, 2)
	entry := updated.History[1]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, now, entry.Date)

	// scheduling side effect
	require.NotNil(t, updated.NextHearingDate)
	assert.True(t, updated.NextHearingDate.Equal(*datePtr(2024, time.July, 15)))
	assert.Equal(t, "10:30", updated.NextHearingTime)
}

func TestAppendHistoryStatusMovesCaseStatus(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-11/2024"})
	require.NoError(t, err)

	updated, err := db.AppendHistory(ctx, "user-1", created.ID, models.HistoryEntry{
		Event:  models.EventJudgment,
		Status: models.StatusClosed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, updated.Status)
}

func TestAppendHistoryKeepsHearingTimeWhenEntryOmitsIt(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{
		CaseNumber:      "CR-12/2024",
		NextHearingDate: datePtr(2024, time.July, 1),
		NextHearingTime: "09:00",
	})
	require.NoError(t, err)

	updated, err := db.AppendHistory(ctx, "user-1", created.ID, models.HistoryEntry{
		Event:           models.EventHearingScheduled,
		NextHearingDate: datePtr(2024, time.August, 1),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.NextHearingDate)
	assert.True(t, updated.NextHearingDate.Equal(*datePtr(2024, time.August, 1)))
	assert.Equal(t, "09:00", updated.NextHearingTime)
}

func TestCompleteHearingTransition(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	db := testCaseDB(NewMemoryStore(), now)

	created, err := db.AddCase(ctx, "user-1", models.Case{
		CaseNumber:      "CR-13/2024",
		NextHearingDate: datePtr(2024, time.June, 10),
		NextHearingTime: "14:00",
	})
	require.NoError(t, err)

	updated, err := db.CompleteHearing(ctx, "user-1", created.ID, models.HearingCompletion{
		Outcome:         "Arguments heard",
		NextHearingDate: datePtr(2024, time.July, 20),
		NextHearingTime: "11:00",
	})
	require.NoError(t, err)

	require.Len(t, updated.History, 2)
	entry := updated.History[1]
	assert.Equal(t, models.EventHearing, entry.Event)
	require.NotNil(t, entry.HearingDate)
	assert.True(t, entry.HearingDate.Equal(*datePtr(2024, time.June, 10)))
	assert.Equal(t, "14:00", entry.HearingTime)
	assert.Equal(t, "Arguments heard", entry.Outcome)
	assert.Equal(t, "Hearing completed", entry.Description)

	require.NotNil(t, updated.NextHearingDate)
	assert.True(t, updated.NextHearingDate.Equal(*datePtr(2024, time.July, 20)))
	assert.Equal(t, "11:00", updated.NextHearingTime)
}

func TestCompleteHearingWithoutNextDateClearsSchedule(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{
		CaseNumber:      "CR-14/2024",
		NextHearingDate: datePtr(2024, time.June, 10),
		NextHearingTime: "14:00",
	})
	require.NoError(t, err)

	updated, err := db.CompleteHearing(ctx, "user-1", created.ID, models.HearingCompletion{
		Outcome: "Judgment reserved",
		Status:  models.StatusClosed,
	})
	require.NoError(t, err)

	assert.Nil(t, updated.NextHearingDate)
	assert.Empty(t, updated.NextHearingTime)
	assert.Equal(t, models.StatusClosed, updated.Status)
	assert.Equal(t, models.StatusClosed, updated.History[len(updated.History)-1].Status)
}

func TestCompleteHearingTwiceFailsAndLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{
		CaseNumber:      "CR-15/2024",
		NextHearingDate: datePtr(2024, time.June, 10),
	})
	require.NoError(t, err)

	first, err := db.CompleteHearing(ctx, "user-1", created.ID, models.HearingCompletion{})
	require.NoError(t, err)
	require.Nil(t, first.NextHearingDate)

	_, err = db.CompleteHearing(ctx, "user-1", created.ID, models.HearingCompletion{})
	assert.ErrorIs(t, err, models.ErrNoPendingHearing)

	// failed transition wrote nothing
	after, err := db.GetCase(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, len(first.History), len(after.History))
	assert.Equal(t, first.UpdatedAt, after.UpdatedAt)
}

func TestUpdateHistoryEntry(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-16/2024"})
	require.NoError(t, err)
	withEntry, err := db.AppendHistory(ctx, "user-1", created.ID, models.HistoryEntry{
		Event:       "Filing",
		Description: "initial",
		Files:       []models.CaseFile{{ID: "f1", Name: "petition.pdf"}},
	})
	require.NoError(t, err)
	entryID := withEntry.History[1].ID

	updated, err := db.UpdateHistoryEntry(ctx, "user-1", created.ID, entryID, models.HistoryEntryUpdate{
		Date:        time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC),
		Event:       "Filing",
		Description: "revised",
		Status:      models.StatusPostponed,
		NewFiles:    []models.CaseFile{{ID: "f2", Name: "annexure.pdf"}},
	})
	require.NoError(t, err)

	entry := updated.History[1]
	assert.Equal(t, "revised", entry.Description)
	assert.Equal(t, models.StatusPostponed, entry.Status)
	assert.Equal(t, models.StatusPostponed, updated.Status)
	// existing attachments survive, new ones follow
	require.Len(t, entry.Files, 2)
	assert.Equal(t, "f1", entry.Files[0].ID)
	assert.Equal(t, "f2", entry.Files[1].ID)
}

func TestUpdateHistoryEntryNotFound(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-17/2024"})
	require.NoError(t, err)

	_, err = db.UpdateHistoryEntry(ctx, "user-1", created.ID, "missing", models.HistoryEntryUpdate{Event: "Filing"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemoveHistoryFile(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-18/2024"})
	require.NoError(t, err)
	withEntry, err := db.AppendHistory(ctx, "user-1", created.ID, models.HistoryEntry{
		Event: "Filing",
		Files: []models.CaseFile{{ID: "f1"}, {ID: "f2"}},
	})
	require.NoError(t, err)
	entryID := withEntry.History[1].ID

	updated, err := db.RemoveHistoryFile(ctx, "user-1", created.ID, entryID, "f1")
	require.NoError(t, err)
	require.Len(t, updated.History[1].Files, 1)
	assert.Equal(t, "f2", updated.History[1].Files[0].ID)

	_, err = db.RemoveHistoryFile(ctx, "user-1", created.ID, entryID, "f1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestReplaceCasesSwapsOnlyUserSubset(t *testing.T) {
	ctx := context.Background()
	db := testCaseDB(NewMemoryStore(), time.Now().UTC())

	_, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-19/2024"})
	require.NoError(t, err)
	theirs, err := db.AddCase(ctx, "user-2", models.Case{CaseNumber: "CR-20/2024"})
	require.NoError(t, err)

	require.NoError(t, db.ReplaceCases(ctx, "user-1", []models.Case{
		{ID: "restored", CaseNumber: "CR-21/2024"},
	}))

	mine, err := db.ListCases(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "restored", mine[0].ID)
	assert.Equal(t, "user-1", mine[0].UserID)

	others, err := db.ListCases(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, theirs.ID, others[0].ID)
}

func TestQuotaFailureLeavesPriorStateIntact(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	db := testCaseDB(store, time.Now().UTC())

	created, err := db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-22/2024"})
	require.NoError(t, err)

	store.MaxValueBytes = 64 // far below any serialized collection

	_, err = db.AddCase(ctx, "user-1", models.Case{CaseNumber: "CR-23/2024"})
	assert.ErrorIs(t, err, models.ErrQuotaExceeded)

	store.MaxValueBytes = 0
	cases, err := db.ListCases(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, created.ID, cases[0].ID)
}

func TestMalformedCollectionDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, CasesKey, "{not json"))
	db := testCaseDB(store, time.Now().UTC())

	cases, err := db.ListCases(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cases)
}
