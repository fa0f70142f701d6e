package databases

import (
	"context"
	"encoding/json"
	"time"

	"github.com/advocate-tools/legal-case-manager/models"
)

// BackupService exports and restores the signed-in user's data as the
// {user, cases, exportDate} interchange document
type BackupService interface {
	Export(ctx context.Context) (*models.Backup, error)
	Import(ctx context.Context, data []byte) error
}

type backupService struct {
	users UserDatabase
	cases CaseDatabase
	now   func() time.Time
}

// NewBackupService initializes a new backup service over the user and case
// databases
func NewBackupService(users UserDatabase, cases CaseDatabase) BackupService {
	return &backupService{users: users, cases: cases, now: func() time.Time { return time.Now().UTC() }}
}

func (b *backupService) Export(ctx context.Context) (*models.Backup, error) {
	user, err := b.users.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrNoCurrentUser
	}
	cases, err := b.cases.ListCases(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.Backup{User: user, Cases: cases, ExportDate: b.now()}, nil
}

// Import replaces the current user's entire case subset with the backup's
// cases. Cases owned by other users are dropped; cases with no owner are
// adopted by the current user.
func (b *backupService) Import(ctx context.Context, data []byte) error {
	user, err := b.users.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return models.ErrNoCurrentUser
	}

	var backup models.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return models.ErrInvalidBackup
	}
	if backup.Cases == nil {
		return models.ErrInvalidBackup
	}

	imported := make([]models.Case, 0, len(backup.Cases))
	for _, cs := range backup.Cases {
		if cs.UserID != "" && cs.UserID != user.ID {
			continue
		}
		cs.UserID = user.ID
		imported = append(imported, cs)
	}
	return b.cases.ReplaceCases(ctx, user.ID, imported)
}
