package ai

import (
	"context"
	"time"

	"github.com/pnext5524-creator/sekretar/internal/models"
)

type callObserver interface {
	ObserveAICall(operation string, err error, duration time.Duration)
}

// Instrumented decorates an Assistant with per-call timing and
// outcome metrics.
type Instrumented struct {
	next     Assistant
	observer callObserver
}

// NewInstrumented wraps the assistant.
func NewInstrumented(next Assistant, observer callObserver) *Instrumented {
	return &Instrumented{next: next, observer: observer}
}

func (i *Instrumented) GenerateDraft(ctx context.Context, sourceBase64, mimeType, instruction, currentDate string) (string, error) {
	start := time.Now()
	text, err := i.next.GenerateDraft(ctx, sourceBase64, mimeType, instruction, currentDate)
	i.observer.ObserveAICall("draft", err, time.Since(start))
	return text, err
}

func (i *Instrumented) Transcribe(ctx context.Context, audioBase64, mimeType string) (string, error) {
	start := time.Now()
	text, err := i.next.Transcribe(ctx, audioBase64, mimeType)
	i.observer.ObserveAICall("transcribe", err, time.Since(start))
	return text, err
}

func (i *Instrumented) AnalyzeCompliance(ctx context.Context, draftText string) (*models.LegalAnalysisResult, error) {
	start := time.Now()
	result, err := i.next.AnalyzeCompliance(ctx, draftText)
	i.observer.ObserveAICall("review", err, time.Since(start))
	return result, err
}
