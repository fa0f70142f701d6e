package databases

// go generate: mockery --name SettingsDatabase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/advocate-tools/legal-case-manager/models"
)

// SettingsDatabase contains the methods to use with the notification settings
// record
type SettingsDatabase interface {
	Get(ctx context.Context) (models.NotificationSettings, error)
	Save(ctx context.Context, settings models.NotificationSettings) error
}

type settingsDatabase struct {
	store Store
}

// NewSettingsDatabase initializes a new instance of settings database with
// the provided store
func NewSettingsDatabase(store Store) SettingsDatabase {
	return &settingsDatabase{store: store}
}

// Get returns the stored settings, falling back to the defaults when the
// record is absent or malformed
func (s *settingsDatabase) Get(ctx context.Context) (models.NotificationSettings, error) {
	raw, err := s.store.Get(ctx, NotificationSettingsKey)
	if err != nil {
		return models.DefaultNotificationSettings(), err
	}
	if raw == "" {
		return models.DefaultNotificationSettings(), nil
	}
	var settings models.NotificationSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		zap.S().Errorw("stored notification settings are malformed, using defaults", "error", err)
		return models.DefaultNotificationSettings(), nil
	}
	if len(settings.AlertDays) == 0 {
		settings.AlertDays = models.DefaultNotificationSettings().AlertDays
	}
	return settings, nil
}

func (s *settingsDatabase) Save(ctx context.Context, settings models.NotificationSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, NotificationSettingsKey, string(raw))
}
