// Package scheduler runs the periodic hearing reminder job, the background
// counterpart of the alert derivation.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/advocate-tools/legal-case-manager/databases"
	"github.com/advocate-tools/legal-case-manager/hearings"
	"github.com/advocate-tools/legal-case-manager/models"
)

// suppressWindow is how long a (case, day) reminder stays muted after firing;
// notifiedRetention is how long fired records are kept before pruning.
const (
	suppressWindow    = 12 * time.Hour
	notifiedRetention = 7 * 24 * time.Hour
)

// Notifier delivers one hearing reminder. The presentation layer provides the
// real implementation; LogNotifier is the default.
type Notifier interface {
	Notify(c models.Case, daysUntil int, title, body string)
}

// LogNotifier writes reminders to the log
type LogNotifier struct{}

// Notify logs the reminder
func (LogNotifier) Notify(c models.Case, daysUntil int, title, body string) {
	zap.S().Infow("hearing reminder",
		"caseId", c.ID,
		"caseNumber", c.CaseNumber,
		"daysUntil", daysUntil,
		"title", title,
	)
}

// Scheduler handles the periodic hearing reminder checks
type Scheduler struct {
	cron     *cron.Cron
	store    databases.Store
	CDB      databases.CaseDatabase
	UDB      databases.UserDatabase
	SDB      databases.SettingsDatabase
	notifier Notifier
	now      func() time.Time
}

// New creates a new scheduler instance
func New(store databases.Store, cdb databases.CaseDatabase, udb databases.UserDatabase, sdb databases.SettingsDatabase, notifier Notifier) *Scheduler {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		store:    store,
		CDB:      cdb,
		UDB:      udb,
		SDB:      sdb,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the scheduler, checking at the configured interval. The first
// check runs immediately.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	settings, err := s.SDB.Get(ctx)
	cancel()
	if err != nil {
		zap.S().Errorw("failed to load notification settings, using defaults", "error", err)
		settings = models.DefaultNotificationSettings()
	}

	_, err = s.cron.AddFunc(fmt.Sprintf("@every %s", settings.Interval()), s.RunReminderCheck)
	if err != nil {
		zap.S().Errorw("failed to register reminder job", "error", err)
	}

	s.RunReminderCheck()
	s.cron.Start()
	zap.S().Infow("hearing reminder scheduler started", "interval", settings.Interval().String())
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("hearing reminder scheduler stopped")
}

// RunReminderCheck re-derives the upcoming hearings for the signed-in user
// and fires reminders for cases whose hearing is an alert-day away. Safe to
// invoke at any time; reads are idempotent and repeats are suppressed.
func (s *Scheduler) RunReminderCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	settings, err := s.SDB.Get(ctx)
	if err != nil {
		zap.S().Errorw("failed to load notification settings", "error", err)
		return
	}
	if !settings.Enabled {
		return
	}

	user, err := s.UDB.CurrentUser(ctx)
	if err != nil {
		zap.S().Errorw("failed to load current user", "error", err)
		return
	}
	if user == nil {
		return
	}

	cases, err := s.CDB.ListCases(ctx, user.ID)
	if err != nil {
		zap.S().Errorw("failed to list cases for reminder check", "error", err)
		return
	}

	now := s.now()
	notified := s.notifiedRecords(ctx)
	fired := 0

	for _, c := range cases {
		if c.Status == models.StatusClosed {
			continue
		}
		days, ok := hearings.DaysUntil(c.NextHearingDate, now)
		if !ok || days < 0 {
			continue
		}
		if !containsDay(settings.AlertDays, days) {
			continue
		}

		key := c.ID + "-" + strconv.Itoa(days)
		if last, seen := notified[key]; seen && now.Sub(last) < suppressWindow {
			continue
		}

		title, body := reminderMessage(c, days)
		s.notifier.Notify(c, days, title, body)
		notified[key] = now
		fired++
	}

	for key, at := range notified {
		if now.Sub(at) > notifiedRetention {
			delete(notified, key)
		}
	}
	s.saveNotifiedRecords(ctx, notified)

	if fired > 0 {
		zap.S().Infow("reminder check complete", "casesChecked", len(cases), "remindersFired", fired)
	}
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func reminderMessage(c models.Case, daysUntil int) (title, body string) {
	switch daysUntil {
	case 0:
		title = "Hearing Today!"
	case 1:
		title = "Hearing Tomorrow!"
	default:
		title = fmt.Sprintf("Hearing in %d days", daysUntil)
	}

	name := c.CaseTitle
	if name == "" {
		name = c.CaseNumber
	}
	when := c.NextHearingDate.Format("02/01/2006")
	if c.NextHearingTime != "" {
		when += " at " + c.NextHearingTime
	}
	body = fmt.Sprintf("Case: %s\nHearing: %s", name, when)
	return title, body
}

// notifiedRecords loads the fired-reminder record; malformed state degrades
// to empty
func (s *Scheduler) notifiedRecords(ctx context.Context) map[string]time.Time {
	records := make(map[string]time.Time)
	raw, err := s.store.Get(ctx, databases.NotifiedCasesKey)
	if err != nil || raw == "" {
		return records
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		zap.S().Warnw("stored reminder records are malformed, starting fresh", "error", err)
		return make(map[string]time.Time)
	}
	return records
}

func (s *Scheduler) saveNotifiedRecords(ctx context.Context, records map[string]time.Time) {
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, databases.NotifiedCasesKey, string(raw)); err != nil {
		zap.S().Warnw("failed to persist reminder records", "error", err)
	}
}
