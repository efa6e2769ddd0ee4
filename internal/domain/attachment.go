package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is an object-store upload tied to a thread. The returned URL
// is embedded by clients into a message body; the message row itself only
// carries text.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	ThreadID    uuid.UUID `json:"thread_id"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	StoragePath string    `json:"-"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
