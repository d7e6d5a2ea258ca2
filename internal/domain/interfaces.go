package domain

import "context"

// ContractRepo is the repository port for Contract persistence. Implementations
// live outside the core (see internal/storage) and must be safe for concurrent use.
type ContractRepo interface {
	FindByID(ctx context.Context, id string) (*Contract, error)
	FindAll(ctx context.Context) ([]Contract, error)
	Create(ctx context.Context, c Contract) (Contract, error)
	Update(ctx context.Context, id string, patch Contract) (Contract, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// RiskScoreRepo is the repository port for the current RiskScore per contract.
type RiskScoreRepo interface {
	FindByContractID(ctx context.Context, contractID string) (*RiskScore, error)
	Create(ctx context.Context, s RiskScore) (RiskScore, error)
	Update(ctx context.Context, s RiskScore) (RiskScore, error)
	DeleteByContractID(ctx context.Context, contractID string) error
}

// RiskHistoryRepo is the repository port for the per-contract RiskHistory.
type RiskHistoryRepo interface {
	FindByContractID(ctx context.Context, contractID string) (*RiskHistory, error)
	Create(ctx context.Context, contractID string, entry RiskHistoryEntry) (RiskHistory, error)
	Update(ctx context.Context, h RiskHistory) (RiskHistory, error)
	DeleteByContractID(ctx context.Context, contractID string) error
}

// AIRequest is the normalized prompt-in contract for the AI collaborator port.
type AIRequest struct {
	Prompt      string
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64
	Stream      bool
}

// AIUsage reports token accounting for an AI call, when the provider supplies it.
type AIUsage struct {
	PromptTokens     int
	CompletionTokens int
}

// AIResponse is the normalized structured-output-out contract. Error is a
// human-readable message, not a Go error: a non-empty Error means the
// caller must treat this response as "no signal", never as a fatal failure.
type AIResponse struct {
	Raw    string
	Parsed map[string]interface{}
	Usage  *AIUsage
	Error  string
}

// AIAdapter isolates and tolerates the failure of an external AI provider.
type AIAdapter interface {
	Call(ctx context.Context, req AIRequest) (AIResponse, error)
}

// UnusualClauseItem is one entry of an UnusualClausesPayload.
type UnusualClauseItem struct {
	Text   string `json:"text"`
	Reason string `json:"reason,omitempty"`
}

// UnusualClausesPayload is the strict sum type expected from the
// "unusual clauses" AI prompt.
type UnusualClausesPayload struct {
	Items []UnusualClauseItem `json:"items"`
}

// RiskExplanationItem is one entry of a RiskExplanationsPayload.
type RiskExplanationItem struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// RiskExplanationsPayload is the strict sum type expected from the
// "risk explanations" AI prompt.
type RiskExplanationsPayload struct {
	Risks []RiskExplanationItem `json:"risks"`
}

// RuleCategory classifies a Rule's concern.
type RuleCategory string

const (
	CategoryContingency   RuleCategory = "contingency"
	CategoryDisclosure    RuleCategory = "disclosure"
	CategoryFinancing     RuleCategory = "financing"
	CategoryInspection    RuleCategory = "inspection"
	CategoryEarnestMoney  RuleCategory = "earnest_money"
	CategoryUnusualClause RuleCategory = "unusual_clause"
	CategoryTimeline      RuleCategory = "timeline"
	CategoryLegal         RuleCategory = "legal"
	CategoryStateSpecific RuleCategory = "state_specific"
)

// RuleConfig is the mutable configuration carried by every Rule.
type RuleConfig struct {
	Enabled         bool
	DefaultSeverity Severity
	Thresholds      map[string]float64
	StateOverrides  map[string]StateOverride
}

// StateOverride carries a per-state severity/enabled override for a Rule.
type StateOverride struct {
	Severity *Severity
	Enabled  *bool
}

// Rule is the capability set every concrete rule implements (spec §9
// "rule polymorphism"): identity, configuration, severity, and evaluation.
// Rules are pure functions of RuleContext — no I/O, no wall-clock use
// except where a rule is documented to need the current time.
type Rule interface {
	ID() string
	Name() string
	Description() string
	Category() RuleCategory
	IsEnabled(state string) bool
	GetSeverity(state string) Severity
	Configure(cfg RuleConfig)
	Evaluate(ctx RuleContext) RuleResult
}

// ScoreWeights carries the non-negative weights for the six scoring
// dimensions of the scoring engine.
type ScoreWeights struct {
	Clause          float64
	Disclosure      float64
	Addendum        float64
	UnusualClause   float64
	MissingDocument float64
	StateCompliance float64
}

// DefaultScoreWeights returns the scoring engine's default weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Clause:          0.20,
		Disclosure:      0.20,
		Addendum:        0.10,
		UnusualClause:   0.20,
		MissingDocument: 0.20,
		StateCompliance: 0.10,
	}
}

// ScoreEngineInput is the input to the scoring engine's pure algorithm.
type ScoreEngineInput struct {
	ContractID          string
	Clauses             []Clause
	DisclosuresProvided []string
	AddendaIncluded     []string
	UnusualClauses      []string
	MissingDocuments    []string
	State               string
	Weights             ScoreWeights
}

// ScoreEngineOutput is the scoring engine's pure algorithm result.
type ScoreEngineOutput struct {
	ContractID string
	TotalScore int
	Breakdown  map[string]float64
	Weights    ScoreWeights
	Flagged    bool
	Notes      []string
}

// StateRow is one entry of the state registry's static table.
type StateRow struct {
	Code        string
	HumanName   string
	RuleFactory func(cfg *RuleConfig) []Rule
}
