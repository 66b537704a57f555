package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pnext5524-creator/sekretar/internal/ai/prompt"
	"github.com/pnext5524-creator/sekretar/internal/models"
	"github.com/pnext5524-creator/sekretar/pkg/config"
)

const maxCompletionTokens = 4096

// Client implements Assistant on top of the OpenAI API.
type Client struct {
	api             *openai.Client
	draftModel      string
	reviewModel     string
	transcribeModel string
	now             func() time.Time
}

// NewClient builds the assistant client from configuration. The API
// key must already have been checked at startup.
func NewClient(cfg config.AIConfig) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:             openai.NewClientWithConfig(apiCfg),
		draftModel:      cfg.DraftModel,
		reviewModel:     cfg.ReviewModel,
		transcribeModel: cfg.TranscribeModel,
		now:             time.Now,
	}
}

// GenerateDraft asks the model for an official response draft based on
// the attached document and the user's resolution.
func (c *Client) GenerateDraft(ctx context.Context, sourceBase64, mimeType, instruction, currentDate string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.draftModel,
		Temperature: 0.3,
		MaxTokens:   maxCompletionTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.DraftSystem()},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt.DraftUser(currentDate, instruction)},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: fmt.Sprintf("data:%s;base64,%s", mimeType, sourceBase64),
						},
					},
				},
			},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("draft completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Transcribe converts recorded dictation audio into plain text. An
// empty transcript is a valid outcome (silent or unintelligible audio).
func (c *Client) Transcribe(ctx context.Context, audioBase64, mimeType string) (string, error) {
	audio, err := base64.StdEncoding.DecodeString(audioBase64)
	if err != nil {
		return "", fmt.Errorf("decode audio payload: %w", err)
	}

	req := openai.AudioRequest{
		Model:    c.transcribeModel,
		Reader:   bytes.NewReader(audio),
		FilePath: "dictation" + extensionFor(mimeType),
		Language: "ru",
	}

	resp, err := c.api.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// AnalyzeCompliance runs the legal audit over a draft and decodes the
// strict JSON verdict.
func (c *Client) AnalyzeCompliance(ctx context.Context, draftText string) (*models.LegalAnalysisResult, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.reviewModel,
		Temperature: 0.1,
		MaxTokens:   maxCompletionTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.ReviewSystem(RuDate(c.now()))},
			{Role: openai.ChatMessageRoleUser, Content: prompt.ReviewUser(draftText)},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("compliance completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	return ParseAnalysis(resp.Choices[0].Message.Content)
}

// ParseAnalysis decodes and validates a compliance verdict. Unknown
// fields and out-of-range enum values are rejected.
func ParseAnalysis(raw string) (*models.LegalAnalysisResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyCompletion
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()

	var result models.LegalAnalysisResult
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if !result.RiskLevel.Valid() {
		return nil, fmt.Errorf("%w: unknown risk level %q", ErrBadPayload, result.RiskLevel)
	}
	for _, issue := range result.Issues {
		if !issue.Severity.Valid() {
			return nil, fmt.Errorf("%w: unknown severity %q", ErrBadPayload, issue.Severity)
		}
	}
	if result.Issues == nil {
		result.Issues = []models.LegalIssue{}
	}
	return &result, nil
}

var ruMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// RuDate renders a date the way official Russian correspondence
// expects it, e.g. "2 января 2026 г.".
func RuDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d г.", t.Day(), ruMonths[t.Month()-1], t.Year())
}

func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "webm"):
		return ".webm"
	case strings.Contains(mimeType, "ogg"):
		return ".ogg"
	case strings.Contains(mimeType, "wav"):
		return ".wav"
	case strings.Contains(mimeType, "mp4"):
		return ".mp4"
	default:
		return ".mp3"
	}
}
