package models

// ExportPackage is a derived download artifact for an external EDMS.
// Never persisted; produced on demand from the current draft.
type ExportPackage struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	MimeType string `json:"mime_type"`
}
