package models

// RiskLevel classifies the outcome of a compliance review.
type RiskLevel string

const (
	RiskLevelSafe     RiskLevel = "SAFE"
	RiskLevelWarning  RiskLevel = "WARNING"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// Valid reports whether the level is one of the known values.
func (l RiskLevel) Valid() bool {
	return l == RiskLevelSafe || l == RiskLevelWarning || l == RiskLevelCritical
}

// IssueSeverity grades an individual finding.
type IssueSeverity string

const (
	SeverityLow    IssueSeverity = "LOW"
	SeverityMedium IssueSeverity = "MEDIUM"
	SeverityHigh   IssueSeverity = "HIGH"
)

// Valid reports whether the severity is one of the known values.
func (s IssueSeverity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// LegalIssue is a single legal or stylistic finding, optionally
// citing the statute it relates to (e.g. "ст. 12 59-ФЗ").
type LegalIssue struct {
	Description string        `json:"description"`
	Severity    IssueSeverity `json:"severity"`
	Citation    string        `json:"citation,omitempty"`
}

// LegalAnalysisResult is the outcome of one compliance run over a
// draft. It is discarded whenever the underlying draft text changes.
type LegalAnalysisResult struct {
	HasRisks       bool         `json:"hasRisks"`
	RiskLevel      RiskLevel    `json:"riskLevel"`
	Issues         []LegalIssue `json:"issues"`
	GeneralComment string       `json:"generalComment"`
	RevisedText    string       `json:"revisedText"`
}
