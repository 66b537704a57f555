package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnext5524-creator/sekretar/internal/models"
)

func TestParseAnalysisValid(t *testing.T) {
	raw := `{
		"hasRisks": true,
		"riskLevel": "WARNING",
		"generalComment": "Есть замечания",
		"revisedText": "Исправленный текст",
		"issues": [
			{"description": "Нет ссылки на закон", "severity": "MEDIUM", "citation": "ст. 12 59-ФЗ"},
			{"description": "Стилистика", "severity": "LOW"}
		]
	}`

	result, err := ParseAnalysis(raw)
	require.NoError(t, err)
	assert.True(t, result.HasRisks)
	assert.Equal(t, models.RiskLevelWarning, result.RiskLevel)
	assert.Len(t, result.Issues, 2)
	assert.Equal(t, "ст. 12 59-ФЗ", result.Issues[0].Citation)
	assert.Equal(t, "Исправленный текст", result.RevisedText)
}

func TestParseAnalysisNoIssues(t *testing.T) {
	raw := `{"hasRisks": false, "riskLevel": "SAFE", "generalComment": "ok", "revisedText": ""}`

	result, err := ParseAnalysis(raw)
	require.NoError(t, err)
	assert.False(t, result.HasRisks)
	assert.NotNil(t, result.Issues)
	assert.Empty(t, result.Issues)
}

func TestParseAnalysisRejectsUnknownRiskLevel(t *testing.T) {
	raw := `{"hasRisks": true, "riskLevel": "SEVERE", "generalComment": "", "revisedText": "", "issues": []}`

	_, err := ParseAnalysis(raw)
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestParseAnalysisRejectsUnknownSeverity(t *testing.T) {
	raw := `{"hasRisks": true, "riskLevel": "WARNING", "generalComment": "", "revisedText": "", "issues": [{"description": "x", "severity": "BLOCKER"}]}`

	_, err := ParseAnalysis(raw)
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestParseAnalysisRejectsUnknownFields(t *testing.T) {
	raw := `{"hasRisks": false, "riskLevel": "SAFE", "generalComment": "", "revisedText": "", "issues": [], "confidence": 0.9}`

	_, err := ParseAnalysis(raw)
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestParseAnalysisRejectsGarbage(t *testing.T) {
	_, err := ParseAnalysis("not json at all")
	assert.ErrorIs(t, err, ErrBadPayload)

	_, err = ParseAnalysis("")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestRuDate(t *testing.T) {
	assert.Equal(t, "2 января 2026 г.", RuDate(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 декабря 2025 г.", RuDate(time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC)))
}
