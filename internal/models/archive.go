package models

// ArchiveStatus tracks whether a draft has been dispatched.
type ArchiveStatus string

const (
	ArchiveStatusDraft ArchiveStatus = "DRAFT"
	ArchiveStatusSent  ArchiveStatus = "SENT"
)

// ArchiveItem is one generated response in the durable log. Items are
// immutable except for the status flip and deletion; the persisted
// list is ordered newest-first.
type ArchiveItem struct {
	ID           string        `json:"id"`
	Timestamp    int64         `json:"timestamp"`
	FileName     string        `json:"fileName"`
	FileType     string        `json:"fileType"`
	Instruction  string        `json:"instruction"`
	ResponseText string        `json:"responseText"`
	Status       ArchiveStatus `json:"status"`
}
