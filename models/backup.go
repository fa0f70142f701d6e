package models

import "time"

// Backup is the JSON interchange document for export/import of a user's data
type Backup struct {
	User       *User     `json:"user"`
	Cases      []Case    `json:"cases"`
	ExportDate time.Time `json:"exportDate"`
}
