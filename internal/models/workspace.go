package models

// WorkspaceState is the lifecycle of one generation cycle.
type WorkspaceState string

const (
	WorkspaceIdle       WorkspaceState = "IDLE"
	WorkspaceProcessing WorkspaceState = "PROCESSING"
	WorkspaceSuccess    WorkspaceState = "SUCCESS"
	WorkspaceError      WorkspaceState = "ERROR"
)

// CaptureState is the lifecycle of the dictation sub-workflow.
type CaptureState string

const (
	CaptureIdle         CaptureState = "IDLE"
	CaptureRecording    CaptureState = "RECORDING"
	CaptureTranscribing CaptureState = "TRANSCRIBING"
)

// ReviewState is the lifecycle of the compliance sub-workflow.
type ReviewState string

const (
	ReviewInactive  ReviewState = "INACTIVE"
	ReviewAnalyzing ReviewState = "ANALYZING"
	ReviewReviewed  ReviewState = "REVIEWED"
)

// SourceFile is the attached scan/photo/PDF a generation cycle works on.
type SourceFile struct {
	Base64   string `json:"base64" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
	FileName string `json:"file_name"`
}

// AttachSourceRequest uploads the source document.
type AttachSourceRequest struct {
	Base64   string `json:"base64" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
	FileName string `json:"file_name"`
}

// SetInstructionRequest replaces the pending instruction text.
type SetInstructionRequest struct {
	Text string `json:"text"`
}

// SetDraftRequest applies a manual edit to the generated draft.
type SetDraftRequest struct {
	Text string `json:"text" validate:"required"`
}

// WorkspaceSnapshot is the read model for the workspace view.
type WorkspaceSnapshot struct {
	State        WorkspaceState `json:"state"`
	FileName     string         `json:"file_name,omitempty"`
	MimeType     string         `json:"mime_type,omitempty"`
	Instruction  string         `json:"instruction"`
	Draft        string         `json:"draft,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Capture      CaptureState   `json:"capture"`
	Review       ReviewState    `json:"review"`
}
