package ai

import (
	"context"
	"errors"

	"github.com/pnext5524-creator/sekretar/internal/models"
)

// ErrEmptyCompletion indicates the provider returned no usable text.
var ErrEmptyCompletion = errors.New("ai: empty completion")

// ErrBadPayload indicates the compliance response did not match the
// expected schema. Callers treat it the same as a service failure.
var ErrBadPayload = errors.New("ai: response does not match the expected schema")

// Assistant is the external multimodal service behind the pipeline:
// draft generation over a scanned document, dictation transcription
// and legal compliance analysis. Calls are not cancellable once
// dispatched and carry no internal timeout.
type Assistant interface {
	GenerateDraft(ctx context.Context, sourceBase64, mimeType, instruction, currentDate string) (string, error)
	Transcribe(ctx context.Context, audioBase64, mimeType string) (string, error)
	AnalyzeCompliance(ctx context.Context, draftText string) (*models.LegalAnalysisResult, error)
}
