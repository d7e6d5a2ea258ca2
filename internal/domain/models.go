// Package domain provides core domain models and types for contract risk
// analysis: contracts and their child collections, rule evaluation context,
// flags, scores, history, and recommendations.
package domain

import "time"

// ContractStatus is the lifecycle state of a Contract.
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusSubmitted ContractStatus = "submitted"
	ContractStatusReviewed  ContractStatus = "reviewed"
	ContractStatusArchived  ContractStatus = "archived"
)

// ClauseType classifies a Clause.
type ClauseType string

const (
	ClauseTypeStandard ClauseType = "standard"
	ClauseTypeUnusual  ClauseType = "unusual"
	ClauseTypeCustom   ClauseType = "custom"
)

// DocumentMediaType classifies a Document's media.
type DocumentMediaType string

const (
	DocumentMediaPDF   DocumentMediaType = "pdf"
	DocumentMediaDoc   DocumentMediaType = "doc"
	DocumentMediaOther DocumentMediaType = "other"
)

// Clause is a free-text provision of a Contract.
type Clause struct {
	ID      int64      `json:"id"`
	Text    string     `json:"text"`
	Type    ClauseType `json:"type"`
	Flagged bool       `json:"flagged"`
}

// Disclosure is a named form that may be required of the seller.
type Disclosure struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Provided bool   `json:"provided"`
}

// Addendum is a supplementary document attached to the contract.
type Addendum struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

// Document references an uploaded file related to the contract.
type Document struct {
	ID        int64             `json:"id"`
	URL       string            `json:"url"`
	MediaType DocumentMediaType `json:"mediaType"`
	UploadedAt time.Time        `json:"uploadedAt"`
}

// Contract is a residential real-estate purchase contract under analysis.
type Contract struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	OwnerUserID    string         `json:"ownerUserId"`
	OrganizationID string         `json:"organizationId"`
	Status         ContractStatus `json:"status"`
	State          string         `json:"state,omitempty"`
	RawText        string         `json:"rawText,omitempty"`
	Clauses        []Clause       `json:"clauses"`
	Disclosures    []Disclosure   `json:"disclosures"`
	Addenda        []Addendum     `json:"addenda"`
	Documents      []Document     `json:"documents"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// ProvidedDisclosureNames returns the names of disclosures marked provided.
func (c Contract) ProvidedDisclosureNames() []string {
	var out []string
	for _, d := range c.Disclosures {
		if d.Provided {
			out = append(out, d.Name)
		}
	}
	return out
}

// MissingRequiredDisclosureNames returns names of disclosures required but not provided.
func (c Contract) MissingRequiredDisclosureNames() []string {
	var out []string
	for _, d := range c.Disclosures {
		if d.Required && !d.Provided {
			out = append(out, d.Name)
		}
	}
	return out
}

// IncludedAddendumNames returns the names of addenda marked included.
func (c Contract) IncludedAddendumNames() []string {
	var out []string
	for _, a := range c.Addenda {
		if a.Included {
			out = append(out, a.Name)
		}
	}
	return out
}

// Severity is the four-value ordered severity scale used by RiskFlag.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityRank orders severities for comparison; higher is more severe.
var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Less reports whether s is strictly less severe than other.
func (s Severity) Less(other Severity) bool {
	return severityRank[s] < severityRank[other]
}

// RiskFlag is a coded, severity-tagged finding produced by a rule.
type RiskFlag struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// RuleContext is the evaluation input handed to every rule.
type RuleContext struct {
	Contract Contract
	State    string
	Text     string
}

// RuleResult is the outcome of evaluating one rule against a RuleContext.
type RuleResult struct {
	RuleID     string     `json:"ruleId"`
	RuleName   string     `json:"ruleName"`
	Passed     bool       `json:"passed"`
	Flags      []RiskFlag `json:"flags"`
	Details    string     `json:"details,omitempty"`
	Suggestion []string   `json:"suggestions,omitempty"`
}

// ScoreBreakdownKeys are the stable keys used in RiskScore.Breakdown.
const (
	BreakdownClauseScore           = "clauseScore"
	BreakdownDisclosureScore       = "disclosureScore"
	BreakdownAddendumScore         = "addendumScore"
	BreakdownUnusualClauseScore    = "unusualClauseScore"
	BreakdownMissingDocumentScore  = "missingDocumentScore"
	BreakdownStateComplianceScore  = "stateComplianceScore"
)

// RiskScore is the current numeric risk assessment for a Contract.
type RiskScore struct {
	ContractID  string             `json:"contractId"`
	Score       int                `json:"score"`
	CalculatedAt time.Time         `json:"calculatedAt"`
	Flags       []RiskFlag         `json:"flags"`
	Breakdown   map[string]float64 `json:"breakdown,omitempty"`
}

// RiskHistoryEntry is one point in a contract's risk-score time series.
type RiskHistoryEntry struct {
	AnalyzedAt time.Time  `json:"analyzedAt"`
	Score      int        `json:"score"`
	Flags      []RiskFlag `json:"flags"`
}

// RiskHistory is the bounded, time-ordered sequence of entries for one
// contract. Length is capped at MaxHistoryEntries; oldest entries are
// evicted first.
type RiskHistory struct {
	ContractID string             `json:"contractId"`
	Entries    []RiskHistoryEntry `json:"entries"`
}

// MaxHistoryEntries is the per-contract history cap (spec invariant).
const MaxHistoryEntries = 100

// Trend classifies the direction of the latest score change.
type Trend string

const (
	TrendNew       Trend = "new"
	TrendImproving Trend = "improving"
	TrendWorsening Trend = "worsening"
	TrendStable    Trend = "stable"
)

// TrendResult is the output of RiskHistoryRepo/store trend derivation.
type TrendResult struct {
	Current      int   `json:"current"`
	Previous     int   `json:"previous"`
	ScoreChange  int   `json:"scoreChange"`
	Trend        Trend `json:"trend"`
}

// FlagChanges is the new/resolved diff between a contract's last two
// history entries.
type FlagChanges struct {
	New      []RiskFlag `json:"new"`
	Resolved []RiskFlag `json:"resolved"`
}

// HistoryStatistics summarizes a windowed slice of a contract's history.
type HistoryStatistics struct {
	AverageScore int     `json:"averageScore"`
	MinScore     int     `json:"minScore"`
	MaxScore     int     `json:"maxScore"`
	Volatility   float64 `json:"volatility"`
	EntryCount   int     `json:"entryCount"`
}

// RiskAnalysis is the composed end-to-end result of analyzing a Contract.
type RiskAnalysis struct {
	ContractID   string      `json:"contractId"`
	Summary      string      `json:"summary"`
	Score        RiskScore   `json:"score"`
	Explanations []string    `json:"explanations"`
}

// RecommendationPriority orders Recommendation urgency.
type RecommendationPriority string

const (
	PriorityImmediate RecommendationPriority = "immediate"
	PrioritySoon       RecommendationPriority = "soon"
	PriorityOptional   RecommendationPriority = "optional"
)

// Recommendation is a prioritized action derived from a flag set and score.
type Recommendation struct {
	Priority       RecommendationPriority `json:"priority"`
	Action         string                 `json:"action"`
	RelatedFlagCode string                `json:"relatedFlagCode,omitempty"`
}
