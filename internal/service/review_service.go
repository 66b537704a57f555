package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/ai"
	"github.com/pnext5524-creator/sekretar/internal/models"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
)

type reviewAnalyzer interface {
	AnalyzeCompliance(ctx context.Context, draftText string) (*models.LegalAnalysisResult, error)
}

type draftSink interface {
	ReplaceDraft(text string) error
}

// ReviewService runs the legal-compliance audit over a draft. States
// are INACTIVE, ANALYZING and REVIEWED; the stored result is always
// the one computed for the current draft text, callers invalidate it
// when the draft changes under the reviewer.
type ReviewService struct {
	mu     sync.Mutex
	ai     reviewAnalyzer
	sink   draftSink
	logger *zap.Logger

	state  models.ReviewState
	result *models.LegalAnalysisResult
	epoch  uint64
}

// NewReviewService constructs a ReviewService writing accepted
// revisions into the given sink.
func NewReviewService(analyzer reviewAnalyzer, sink draftSink, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{ai: analyzer, sink: sink, logger: logger, state: models.ReviewInactive}
}

// Run analyzes the given draft. A blank draft and a run already in
// flight are rejected without a state change. On failure the service
// returns to INACTIVE with no partial result.
func (s *ReviewService) Run(ctx context.Context, draftText string) (*models.LegalAnalysisResult, error) {
	if strings.TrimSpace(draftText) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "черновик пуст, проверять нечего")
	}

	s.mu.Lock()
	if s.state == models.ReviewAnalyzing {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "проверка уже выполняется")
	}
	s.state = models.ReviewAnalyzing
	s.result = nil
	started := s.epoch
	s.mu.Unlock()

	result, err := s.ai.AnalyzeCompliance(ctx, draftText)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != started {
		// The draft was replaced while the analysis ran; the verdict
		// no longer describes the current text.
		s.state = models.ReviewInactive
		s.result = nil
		s.logger.Info("compliance result discarded, draft changed during analysis")
		return nil, appErrors.Clone(appErrors.ErrConflict, "черновик изменился во время проверки, запустите её заново")
	}
	if err != nil {
		s.state = models.ReviewInactive
		s.logger.Warn("compliance analysis failed", zap.Error(err))
		if errors.Is(err, ai.ErrBadPayload) {
			return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "ответ проверяющей модели не распознан")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrExternalService.Code, appErrors.ErrExternalService.Status, "сервис проверки недоступен")
	}

	s.result = result
	s.state = models.ReviewReviewed
	s.logger.Info("compliance review completed",
		zap.String("risk_level", string(result.RiskLevel)),
		zap.Int("issues", len(result.Issues)))
	return result, nil
}

// Apply replaces the editable draft wholesale with the revised text.
// Only meaningful in REVIEWED state with a non-SAFE risk level.
func (s *ReviewService) Apply() (string, error) {
	s.mu.Lock()
	if s.state != models.ReviewReviewed || s.result == nil {
		s.mu.Unlock()
		return "", appErrors.Clone(appErrors.ErrValidation, "нет готового результата проверки")
	}
	if s.result.RiskLevel == models.RiskLevelSafe {
		s.mu.Unlock()
		return "", appErrors.Clone(appErrors.ErrValidation, "документ безопасен, исправления не требуются")
	}
	revised := s.result.RevisedText
	s.mu.Unlock()

	// The sink takes its own lock, so it is called without ours held.
	if err := s.sink.ReplaceDraft(revised); err != nil {
		return "", err
	}
	return revised, nil
}

// Invalidate discards the stored result and returns to INACTIVE. Used
// when the underlying draft text changes outside of Apply. A run in
// flight observes the bumped epoch and drops its result on completion.
func (s *ReviewService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	if s.state == models.ReviewAnalyzing {
		return
	}
	s.result = nil
	s.state = models.ReviewInactive
}

// State reports the current lifecycle state.
func (s *ReviewService) State() models.ReviewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the stored analysis, nil unless state is REVIEWED.
func (s *ReviewService) Result() *models.LegalAnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}
