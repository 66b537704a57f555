package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/models"
	"github.com/pnext5524-creator/sekretar/internal/repository"
	"github.com/pnext5524-creator/sekretar/internal/service"
	"github.com/pnext5524-creator/sekretar/pkg/kvstore"
)

type stubAssistant struct {
	draft      string
	draftErr   error
	transcript string
	analysis   *models.LegalAnalysisResult
}

func (s *stubAssistant) GenerateDraft(ctx context.Context, sourceBase64, mimeType, instruction, currentDate string) (string, error) {
	if s.draftErr != nil {
		return "", s.draftErr
	}
	return s.draft, nil
}

func (s *stubAssistant) Transcribe(ctx context.Context, audioBase64, mimeType string) (string, error) {
	return s.transcript, nil
}

func (s *stubAssistant) AnalyzeCompliance(ctx context.Context, draftText string) (*models.LegalAnalysisResult, error) {
	if s.analysis == nil {
		return nil, errors.New("no analysis configured")
	}
	return s.analysis, nil
}

type flowEnv struct {
	router  *gin.Engine
	archive *repository.ArchiveRepository
}

func newFlowEnv(t *testing.T, assistant *stubAssistant) *flowEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kvstore.NewMemory()
	archiveRepo := repository.NewArchiveRepository(store, zap.NewNop())

	orch := service.NewOrchestratorService(assistant, archiveRepo, zap.NewNop())
	review := service.NewReviewService(assistant, orch, zap.NewNop())
	capture := service.NewCaptureService(nil, assistant, orch, zap.NewNop())
	orch.AttachReviewer(review)
	orch.AttachCapture(capture)
	capture.AttachGeneration(orch)

	workspace := NewWorkspaceHandler(orch)
	reviewHandler := NewReviewHandler(review, orch)
	dictation := NewDictationHandler(capture)

	router := gin.New()
	router.GET("/workspace", workspace.Snapshot)
	router.PUT("/workspace/source", workspace.AttachSource)
	router.PUT("/workspace/instruction", workspace.SetInstruction)
	router.PUT("/workspace/draft", workspace.SetDraft)
	router.POST("/workspace/generate", workspace.Generate)
	router.POST("/workspace/reset", workspace.Reset)
	router.GET("/review", reviewHandler.Result)
	router.POST("/review", reviewHandler.Run)
	router.POST("/review/apply", reviewHandler.Apply)
	router.POST("/dictation/start", dictation.Start)
	router.POST("/dictation/chunk", dictation.Chunk)
	router.POST("/dictation/stop", dictation.Stop)

	return &flowEnv{router: router, archive: archiveRepo}
}

func (e *flowEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *flowEnv) workspaceState(t *testing.T) models.WorkspaceSnapshot {
	t.Helper()
	w := e.do(t, http.MethodGet, "/workspace", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data models.WorkspaceSnapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestWorkspaceGenerationFlow(t *testing.T) {
	assistant := &stubAssistant{draft: "Уважаемый Иван Иванович, ..."}
	env := newFlowEnv(t, assistant)

	w := env.do(t, http.MethodPut, "/workspace/source", models.AttachSourceRequest{
		Base64:   "aGVsbG8=",
		MimeType: "application/pdf",
		FileName: "scan.pdf",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPut, "/workspace/instruction", models.SetInstructionRequest{Text: "Отказать"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/workspace/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	snap := env.workspaceState(t)
	assert.Equal(t, models.WorkspaceSuccess, snap.State)
	assert.Equal(t, assistant.draft, snap.Draft)

	items, err := env.archive.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "scan.pdf", items[0].FileName)
	assert.Equal(t, models.ArchiveStatusDraft, items[0].Status)
}

func TestWorkspaceGenerateWithoutSourceRejected(t *testing.T) {
	env := newFlowEnv(t, &stubAssistant{draft: "x"})

	w := env.do(t, http.MethodPut, "/workspace/instruction", models.SetInstructionRequest{Text: "Отказать"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/workspace/generate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.WorkspaceIdle, env.workspaceState(t).State)
}

func TestWorkspaceGenerateFailureSurfacesError(t *testing.T) {
	env := newFlowEnv(t, &stubAssistant{draftErr: errors.New("upstream down")})

	env.do(t, http.MethodPut, "/workspace/source", models.AttachSourceRequest{Base64: "aGVsbG8=", MimeType: "image/png", FileName: "photo.png"})
	env.do(t, http.MethodPut, "/workspace/instruction", models.SetInstructionRequest{Text: "Отказать"})

	w := env.do(t, http.MethodPost, "/workspace/generate", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	snap := env.workspaceState(t)
	assert.Equal(t, models.WorkspaceError, snap.State)
	assert.NotEmpty(t, snap.ErrorMessage)
}

func TestReviewFlowAppliesRevision(t *testing.T) {
	assistant := &stubAssistant{
		draft: "черновик с рисками",
		analysis: &models.LegalAnalysisResult{
			HasRisks:       true,
			RiskLevel:      models.RiskLevelWarning,
			Issues:         []models.LegalIssue{{Description: "Нет ссылки на норму", Severity: models.SeverityMedium}},
			GeneralComment: "Требуется доработка",
			RevisedText:    "исправленный черновик",
		},
	}
	env := newFlowEnv(t, assistant)

	env.do(t, http.MethodPut, "/workspace/source", models.AttachSourceRequest{Base64: "aGVsbG8=", MimeType: "application/pdf", FileName: "scan.pdf"})
	env.do(t, http.MethodPut, "/workspace/instruction", models.SetInstructionRequest{Text: "Отказать"})
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/workspace/generate", nil).Code)

	w := env.do(t, http.MethodPost, "/review", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/review/apply", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "исправленный черновик", env.workspaceState(t).Draft)

	// A manual edit afterwards drops the stored review result.
	w = env.do(t, http.MethodPut, "/workspace/draft", models.SetDraftRequest{Text: "ручная правка"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/review", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data struct {
			State models.ReviewState `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, models.ReviewInactive, envelope.Data.State)
}

func TestDictationAppendsToInstruction(t *testing.T) {
	assistant := &stubAssistant{transcript: "подготовить отказ"}
	env := newFlowEnv(t, assistant)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/dictation/start", nil).Code)

	req, err := http.NewRequest(http.MethodPost, "/dictation/chunk", bytes.NewBufferString("raw-audio"))
	require.NoError(t, err)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Generation is blocked while the session is open.
	env.do(t, http.MethodPut, "/workspace/source", models.AttachSourceRequest{Base64: "aGVsbG8=", MimeType: "application/pdf", FileName: "scan.pdf"})
	env.do(t, http.MethodPut, "/workspace/instruction", models.SetInstructionRequest{Text: "Срочно."})
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/workspace/generate", nil).Code)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/dictation/stop", nil).Code)
	assert.Equal(t, "Срочно. подготовить отказ", env.workspaceState(t).Instruction)
}
