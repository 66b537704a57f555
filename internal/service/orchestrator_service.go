package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/ai"
	"github.com/pnext5524-creator/sekretar/internal/models"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
)

type draftGenerator interface {
	GenerateDraft(ctx context.Context, sourceBase64, mimeType, instruction, currentDate string) (string, error)
}

type archiveAppender interface {
	Append(ctx context.Context, fileName, fileType, instruction, responseText string) (*models.ArchiveItem, error)
}

type captureStatus interface {
	State() models.CaptureState
}

type reviewStatus interface {
	State() models.ReviewState
	Invalidate()
}

// OrchestratorService is the top-level workspace state machine. It
// owns the attached source file, the pending instruction and the
// active draft, and arbitrates generation against the dictation and
// review sub-workflows. States are IDLE, PROCESSING, SUCCESS, ERROR.
type OrchestratorService struct {
	mu       sync.Mutex
	ai       draftGenerator
	archive  archiveAppender
	capture  captureStatus
	reviewer reviewStatus
	logger   *zap.Logger
	now      func() time.Time

	state       models.WorkspaceState
	source      *models.SourceFile
	instruction string
	draft       string
	errMessage  string
}

// NewOrchestratorService constructs the orchestrator. The capture and
// review collaborators are attached after construction because they
// feed text back into the orchestrator.
func NewOrchestratorService(generator draftGenerator, archive archiveAppender, logger *zap.Logger) *OrchestratorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrchestratorService{
		ai:      generator,
		archive: archive,
		logger:  logger,
		now:     time.Now,
		state:   models.WorkspaceIdle,
	}
}

// AttachCapture wires the dictation sub-workflow.
func (s *OrchestratorService) AttachCapture(capture captureStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capture = capture
}

// AttachReviewer wires the compliance sub-workflow.
func (s *OrchestratorService) AttachReviewer(reviewer reviewStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviewer = reviewer
}

// AttachSource uploads the scanned/photographed source document.
func (s *OrchestratorService) AttachSource(req models.AttachSourceRequest) error {
	if !allowedSourceMime(req.MimeType) {
		return appErrors.Clone(appErrors.ErrValidation, "поддерживаются только изображения и PDF")
	}
	if strings.TrimSpace(req.Base64) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "файл пуст")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == models.WorkspaceProcessing {
		return appErrors.Clone(appErrors.ErrValidation, "дождитесь завершения генерации")
	}
	s.source = &models.SourceFile{Base64: req.Base64, MimeType: req.MimeType, FileName: req.FileName}
	return nil
}

// SetInstruction replaces the pending instruction text.
func (s *OrchestratorService) SetInstruction(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == models.WorkspaceProcessing {
		return appErrors.Clone(appErrors.ErrValidation, "дождитесь завершения генерации")
	}
	s.instruction = text
	return nil
}

// AppendInstruction joins dictated text onto the pending instruction
// with a single separating space.
func (s *OrchestratorService) AppendInstruction(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(s.instruction) == "" {
		s.instruction = text
	} else {
		s.instruction = s.instruction + " " + text
	}
	return nil
}

// Generate runs one drafting cycle. Preconditions: a source file is
// attached, the instruction is non-blank, dictation is idle and no
// other generation is in flight. Violations are rejected without a
// state transition and without an external call.
func (s *OrchestratorService) Generate(ctx context.Context) (*models.ArchiveItem, error) {
	s.mu.Lock()
	if s.state == models.WorkspaceProcessing {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "генерация уже выполняется")
	}
	if s.capture != nil && s.capture.State() != models.CaptureIdle {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "дождитесь окончания записи поручения")
	}
	if s.source == nil {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "прикрепите файл обращения")
	}
	if strings.TrimSpace(s.instruction) == "" {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "введите текст поручения")
	}

	source := *s.source
	instruction := s.instruction
	s.state = models.WorkspaceProcessing
	s.errMessage = ""
	s.mu.Unlock()

	draft, err := s.ai.GenerateDraft(ctx, source.Base64, source.MimeType, instruction, ai.RuDate(s.now()))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = models.WorkspaceError
		s.errMessage = "Не удалось сгенерировать ответ. Попробуйте ещё раз."
		s.logger.Error("draft generation failed", zap.Error(err), zap.String("file", source.FileName))
		return nil, appErrors.Wrap(err, appErrors.ErrExternalService.Code, appErrors.ErrExternalService.Status, s.errMessage)
	}

	s.draft = draft
	s.state = models.WorkspaceSuccess
	if s.reviewer != nil {
		s.reviewer.Invalidate()
	}

	item, err := s.archive.Append(ctx, source.FileName, source.MimeType, instruction, draft)
	if err != nil {
		// Archiving is best-effort; the generated draft stands and the
		// caller still receives the unpersisted item.
		s.logger.Error("failed to archive generated draft", zap.Error(err))
		if item == nil {
			item = &models.ArchiveItem{
				ID:           uuid.NewString(),
				Timestamp:    s.now().UnixMilli(),
				FileName:     source.FileName,
				FileType:     source.MimeType,
				Instruction:  instruction,
				ResponseText: draft,
				Status:       models.ArchiveStatusDraft,
			}
		}
		return item, nil
	}
	s.logger.Info("draft generated",
		zap.String("file", source.FileName),
		zap.String("archive_id", item.ID))
	return item, nil
}

// Reset clears the whole workspace and returns to IDLE from any state.
func (s *OrchestratorService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = nil
	s.instruction = ""
	s.draft = ""
	s.errMessage = ""
	s.state = models.WorkspaceIdle
	if s.reviewer != nil {
		s.reviewer.Invalidate()
	}
}

// SetDraft applies a manual edit to the draft, invalidating any
// stored review result.
func (s *OrchestratorService) SetDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == models.WorkspaceProcessing {
		return appErrors.Clone(appErrors.ErrValidation, "дождитесь завершения генерации")
	}
	if s.draft == "" && strings.TrimSpace(text) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "черновик пуст")
	}
	s.draft = text
	if s.reviewer != nil {
		s.reviewer.Invalidate()
	}
	return nil
}

// ReplaceDraft swaps in an accepted revision without invalidating the
// review result it came from.
func (s *OrchestratorService) ReplaceDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == models.WorkspaceProcessing {
		return appErrors.Clone(appErrors.ErrValidation, "дождитесь завершения генерации")
	}
	s.draft = text
	return nil
}

// State reports the current lifecycle state.
func (s *OrchestratorService) State() models.WorkspaceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns the current editable draft text.
func (s *OrchestratorService) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Snapshot assembles the read model for the workspace view.
func (s *OrchestratorService) Snapshot() models.WorkspaceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.WorkspaceSnapshot{
		State:        s.state,
		Instruction:  s.instruction,
		Draft:        s.draft,
		ErrorMessage: s.errMessage,
		Capture:      models.CaptureIdle,
		Review:       models.ReviewInactive,
	}
	if s.source != nil {
		snap.FileName = s.source.FileName
		snap.MimeType = s.source.MimeType
	}
	if s.capture != nil {
		snap.Capture = s.capture.State()
	}
	if s.reviewer != nil {
		snap.Review = s.reviewer.State()
	}
	return snap
}

func allowedSourceMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") || mimeType == "application/pdf"
}
