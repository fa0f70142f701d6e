// Package attachments turns raw file uploads into the inline attachment
// records stored on cases and history entries.
package attachments

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/advocate-tools/legal-case-manager/models"
)

// MaxFileSize is the per-file attachment ceiling (10MB)
const MaxFileSize = 10 << 20

// RawFile is one file as handed over by the presentation layer
type RawFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// Encoder validates and encodes attachment batches
type Encoder struct {
	maxSize int64
	now     func() time.Time
}

// NewEncoder returns an encoder enforcing the default size ceiling
func NewEncoder() *Encoder {
	return &Encoder{maxSize: MaxFileSize, now: func() time.Time { return time.Now().UTC() }}
}

// EncodeAll converts a batch of raw files into attachment records. Every file
// is validated against the size ceiling before any encoding happens, so an
// oversized file rejects the whole batch and nothing partial is produced.
func (e *Encoder) EncodeAll(files []RawFile) ([]models.CaseFile, error) {
	for _, f := range files {
		if int64(len(f.Data)) > e.maxSize {
			return nil, fmt.Errorf("%w: %q is %d bytes, limit is %d", models.ErrFileTooLarge, f.Name, len(f.Data), e.maxSize)
		}
	}

	encoded := make([]models.CaseFile, 0, len(files))
	uploadedAt := e.now()
	for _, f := range files {
		mimeType := f.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		encoded = append(encoded, models.CaseFile{
			ID:         uuid.NewString(),
			Name:       f.Name,
			MimeType:   mimeType,
			SizeBytes:  int64(len(f.Data)),
			Data:       "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(f.Data),
			UploadedAt: uploadedAt,
		})
	}
	return encoded, nil
}

// FormatFileSize renders a byte count for display ("2.5 KB")
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d Bytes", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), []string{"KB", "MB", "GB"}[exp])
}
