package databases

import "context"

// Storage keys for the named records in the key-value store. The legacy
// prefix is retained so existing backups stay importable.
const (
	UsersKey                = "legal_manager_users"
	CurrentUserKey          = "legal_manager_current_user"
	CasesKey                = "legal_manager_cases"
	NotificationSettingsKey = "legal_manager_notification_settings"
	NotifiedCasesKey        = "legal_manager_notified_cases"
)

// Store is the string-keyed persistence layer behind every collection.
// Get returns the empty string for an absent key; Set replaces the whole
// value (last write wins, no locking).
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
