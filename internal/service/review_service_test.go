package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/ai"
	"github.com/pnext5524-creator/sekretar/internal/models"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
)

type mockAnalyzer struct {
	result *models.LegalAnalysisResult
	err    error
	calls  int
}

func (m *mockAnalyzer) AnalyzeCompliance(ctx context.Context, draftText string) (*models.LegalAnalysisResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockDraftSink struct {
	draft string
}

func (m *mockDraftSink) ReplaceDraft(text string) error {
	m.draft = text
	return nil
}

func warningResult() *models.LegalAnalysisResult {
	return &models.LegalAnalysisResult{
		HasRisks:  true,
		RiskLevel: models.RiskLevelWarning,
		Issues: []models.LegalIssue{
			{Description: "Нет ссылки на норму", Severity: models.SeverityMedium, Citation: "59-ФЗ ст. 10"},
		},
		GeneralComment: "Требуется доработка",
		RevisedText:    "Исправленный текст ответа",
	}
}

func TestReviewRunBlankDraftRejected(t *testing.T) {
	analyzer := &mockAnalyzer{}
	review := NewReviewService(analyzer, &mockDraftSink{}, zap.NewNop())

	_, err := review.Run(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, analyzer.calls)
	assert.Equal(t, models.ReviewInactive, review.State())
}

func TestReviewRunAndApplyRevision(t *testing.T) {
	sink := &mockDraftSink{draft: "старый черновик"}
	review := NewReviewService(&mockAnalyzer{result: warningResult()}, sink, zap.NewNop())

	result, err := review.Run(context.Background(), "старый черновик")
	require.NoError(t, err)
	assert.Equal(t, models.ReviewReviewed, review.State())
	assert.Equal(t, models.RiskLevelWarning, result.RiskLevel)
	require.NotNil(t, review.Result())

	revised, err := review.Apply()
	require.NoError(t, err)
	assert.Equal(t, "Исправленный текст ответа", revised)
	// Full replacement, nothing of the prior draft survives.
	assert.Equal(t, "Исправленный текст ответа", sink.draft)
}

func TestReviewApplyRejectedWhenSafe(t *testing.T) {
	safe := &models.LegalAnalysisResult{
		HasRisks:    false,
		RiskLevel:   models.RiskLevelSafe,
		Issues:      []models.LegalIssue{},
		RevisedText: "тот же текст",
	}
	review := NewReviewService(&mockAnalyzer{result: safe}, &mockDraftSink{}, zap.NewNop())

	_, err := review.Run(context.Background(), "текст")
	require.NoError(t, err)

	_, err = review.Apply()
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReviewApplyWithoutResultRejected(t *testing.T) {
	review := NewReviewService(&mockAnalyzer{}, &mockDraftSink{}, zap.NewNop())

	_, err := review.Apply()
	require.Error(t, err)
}

func TestReviewRunFailureReturnsToInactive(t *testing.T) {
	review := NewReviewService(&mockAnalyzer{err: errors.New("network")}, &mockDraftSink{}, zap.NewNop())

	_, err := review.Run(context.Background(), "текст")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrExternalService.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.ReviewInactive, review.State())
	assert.Nil(t, review.Result())
}

func TestReviewRunBadPayloadMapsToParseError(t *testing.T) {
	analyzer := &mockAnalyzer{err: fmt.Errorf("%w: unknown risk level", ai.ErrBadPayload)}
	review := NewReviewService(analyzer, &mockDraftSink{}, zap.NewNop())

	_, err := review.Run(context.Background(), "текст")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrParse.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.ReviewInactive, review.State())
}

type blockingAnalyzer struct {
	entered chan struct{}
	release chan struct{}
	result  *models.LegalAnalysisResult
}

func (m *blockingAnalyzer) AnalyzeCompliance(ctx context.Context, draftText string) (*models.LegalAnalysisResult, error) {
	close(m.entered)
	<-m.release
	return m.result, nil
}

func TestReviewInvalidateDuringAnalysisDiscardsResult(t *testing.T) {
	analyzer := &blockingAnalyzer{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		result:  warningResult(),
	}
	review := NewReviewService(analyzer, &mockDraftSink{}, zap.NewNop())

	errCh := make(chan error, 1)
	go func() {
		_, err := review.Run(context.Background(), "прежний черновик")
		errCh <- err
	}()

	<-analyzer.entered
	assert.Equal(t, models.ReviewAnalyzing, review.State())

	// The draft is replaced while the analysis is still in flight.
	review.Invalidate()
	close(analyzer.release)

	err := <-errCh
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.ReviewInactive, review.State())
	assert.Nil(t, review.Result())

	_, err = review.Apply()
	require.Error(t, err)
}

func TestReviewInvalidateClearsResult(t *testing.T) {
	review := NewReviewService(&mockAnalyzer{result: warningResult()}, &mockDraftSink{}, zap.NewNop())

	_, err := review.Run(context.Background(), "текст")
	require.NoError(t, err)
	require.Equal(t, models.ReviewReviewed, review.State())

	review.Invalidate()
	assert.Equal(t, models.ReviewInactive, review.State())
	assert.Nil(t, review.Result())
}
