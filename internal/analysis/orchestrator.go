// Package analysis implements the end-to-end "analyze one contract" flow
// of spec §4.G: cache probe, per-contract single-flight, rule evaluation,
// optional AI augmentation, scoring, persistence, history append, and
// recommendation synthesis.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/aiadapter"
	"github.com/prabhnoor12/cleardeal-ai/internal/apperrors"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/events"
	"github.com/prabhnoor12/cleardeal-ai/internal/riskhistory"
	"github.com/prabhnoor12/cleardeal-ai/internal/rules"
	"github.com/prabhnoor12/cleardeal-ai/internal/scoring"
	"github.com/prabhnoor12/cleardeal-ai/internal/stateregistry"
)

const defaultCacheTTL = time.Hour

// AnalysisOptions controls one analyze() invocation.
type AnalysisOptions struct {
	SkipAI       bool
	ForceRefresh bool
	CacheTTL     time.Duration
}

func (o AnalysisOptions) ttl() time.Duration {
	if o.CacheTTL <= 0 {
		return defaultCacheTTL
	}
	return o.CacheTTL
}

// cacheEntry is one cached analysis result with its computed-at timestamp.
type cacheEntry struct {
	analysis  domain.RiskAnalysis
	computed  time.Time
}

// inflight tracks a single-flight computation in progress for a contract.
type inflight struct {
	done   chan struct{}
	result domain.RiskAnalysis
	err    error
}

// Orchestrator is the analysis orchestrator of spec §4.G.
type Orchestrator struct {
	contracts    domain.ContractRepo
	scores       domain.RiskScoreRepo
	history      *riskhistory.Store
	ai           domain.AIAdapter
	generalRules []domain.Rule
	events       *events.Manager
	log          zerolog.Logger

	mu       sync.Mutex
	cache    map[string]cacheEntry
	inFlight map[string]*inflight
}

// NewOrchestrator wires the orchestrator's collaborators. generalRules are
// the non-state-specific rules (spec §4.B); state rules are looked up per
// contract through the state registry.
func NewOrchestrator(
	contracts domain.ContractRepo,
	scores domain.RiskScoreRepo,
	history *riskhistory.Store,
	ai domain.AIAdapter,
	generalRules []domain.Rule,
	em *events.Manager,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		contracts:    contracts,
		scores:       scores,
		history:      history,
		ai:           ai,
		generalRules: generalRules,
		events:       em,
		log:          log.With().Str("component", "analysis").Logger(),
		cache:        make(map[string]cacheEntry),
		inFlight:     make(map[string]*inflight),
	}
}

// Analyze turns contractID + opts into a RiskAnalysis, persisting side
// effects. See spec §4.G for the full algorithm.
func (o *Orchestrator) Analyze(ctx context.Context, contractID string, opts AnalysisOptions) (domain.RiskAnalysis, error) {
	if !opts.ForceRefresh {
		if a, ok := o.readCache(contractID, opts.ttl()); ok {
			return a, nil
		}
	}

	// Single-flight: join any in-progress computation, unless forcing a
	// fresh computation per spec §5 ("callers with forceRefresh=true must
	// start a fresh computation once any in-progress one finishes").
	if !opts.ForceRefresh {
		o.mu.Lock()
		if fl, ok := o.inFlight[contractID]; ok {
			o.mu.Unlock()
			<-fl.done
			return fl.result, fl.err
		}
		fl := &inflight{done: make(chan struct{})}
		o.inFlight[contractID] = fl
		o.mu.Unlock()

		result, err := o.computeAndPersist(ctx, contractID, opts)
		fl.result, fl.err = result, err
		close(fl.done)

		o.mu.Lock()
		delete(o.inFlight, contractID)
		o.mu.Unlock()
		return result, err
	}

	// forceRefresh: wait for any in-flight computation to finish (without
	// joining it), then start our own.
	o.mu.Lock()
	fl, inProgress := o.inFlight[contractID]
	o.mu.Unlock()
	if inProgress {
		<-fl.done
	}
	return o.computeAndPersist(ctx, contractID, opts)
}

func (o *Orchestrator) readCache(contractID string, ttl time.Duration) (domain.RiskAnalysis, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	entry, ok := o.cache[contractID]
	if !ok || time.Since(entry.computed) >= ttl {
		return domain.RiskAnalysis{}, false
	}
	return entry.analysis, true
}

func (o *Orchestrator) writeCache(contractID string, a domain.RiskAnalysis) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cache[contractID] = cacheEntry{analysis: a, computed: time.Now()}
}

// ClearAnalysisCache wipes one contract's cached analysis, or every
// contract's when contractID is empty.
func (o *Orchestrator) ClearAnalysisCache(contractID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if contractID == "" {
		o.cache = make(map[string]cacheEntry)
		return
	}
	delete(o.cache, contractID)
}

func (o *Orchestrator) computeAndPersist(ctx context.Context, contractID string, opts AnalysisOptions) (domain.RiskAnalysis, error) {
	contract, err := o.contracts.FindByID(ctx, contractID)
	if err != nil {
		return domain.RiskAnalysis{}, apperrors.Wrap(apperrors.KindNotFound, "load contract", err)
	}
	if contract == nil {
		return domain.RiskAnalysis{}, apperrors.NotFound("contract", contractID)
	}
	if ctx.Err() != nil {
		return domain.RiskAnalysis{}, apperrors.Wrap(apperrors.KindCancelled, "analysis cancelled", ctx.Err())
	}

	ruleCtx := o.buildContext(*contract)

	engine := rules.NewEngine()
	engine.RegisterAll(o.generalRules)
	if ruleCtx.State != "" {
		if stateregistry.IsSupported(ruleCtx.State) {
			engine.RegisterAll(stateregistry.CreateRules(ruleCtx.State, nil))
		}
	}

	results := engine.Evaluate(ruleCtx)
	flags := rules.AggregateFlags(results)

	if ruleCtx.State != "" && !stateregistry.IsSupported(ruleCtx.State) {
		flags = append(flags, domain.RiskFlag{
			Code:        "UNSUPPORTED_STATE",
			Description: fmt.Sprintf("State %q is not yet supported by state-specific rules", ruleCtx.State),
			Severity:    domain.SeverityMedium,
		})
	}

	var unusualClauses []string
	if !opts.SkipAI && !contextEmpty(ruleCtx) {
		aiFlags, clauses := o.runAI(ctx, ruleCtx)
		flags = append(flags, aiFlags...)
		unusualClauses = clauses
	}

	if ctx.Err() != nil {
		return domain.RiskAnalysis{}, apperrors.Wrap(apperrors.KindCancelled, "analysis cancelled", ctx.Err())
	}

	scoreOut := scoring.Calculate(domain.ScoreEngineInput{
		ContractID:          contract.ID,
		Clauses:             contract.Clauses,
		DisclosuresProvided: contract.ProvidedDisclosureNames(),
		AddendaIncluded:     contract.IncludedAddendumNames(),
		UnusualClauses:      unusualClauses,
		MissingDocuments:    contract.MissingRequiredDisclosureNames(),
		State:               ruleCtx.State,
	})
	finalScore := scoring.ApplySeverityPenalties(scoreOut.TotalScore, flags)

	now := time.Now()
	riskScore := domain.RiskScore{
		ContractID:   contract.ID,
		Score:        finalScore,
		CalculatedAt: now,
		Flags:        flags,
		Breakdown:    scoreOut.Breakdown,
	}

	if ctx.Err() != nil {
		return domain.RiskAnalysis{}, apperrors.Wrap(apperrors.KindCancelled, "analysis cancelled", ctx.Err())
	}

	if err := o.persistScore(ctx, riskScore); err != nil {
		return domain.RiskAnalysis{}, apperrors.Wrap(apperrors.KindPersistence, "persist risk score", err)
	}
	o.history.Append(contract.ID, domain.RiskHistoryEntry{AnalyzedAt: now, Score: finalScore, Flags: flags})

	analysisResult := composeAnalysis(*contract, riskScore)

	o.writeCache(contract.ID, analysisResult)
	if o.events != nil {
		o.events.EmitTyped(events.AnalysisComplete, "analysis", &events.AnalysisCompleteData{
			ContractID: contract.ID, Score: finalScore, Flagged: scoreOut.Flagged,
		})
	}
	return analysisResult, nil
}

func (o *Orchestrator) persistScore(ctx context.Context, s domain.RiskScore) error {
	existing, err := o.scores.FindByContractID(ctx, s.ContractID)
	if err != nil {
		return err
	}
	if existing == nil {
		_, err = o.scores.Create(ctx, s)
		return err
	}
	_, err = o.scores.Update(ctx, s)
	return err
}

// buildContext synthesizes contractText by joining clause texts when the
// contract carries no raw text of its own (spec §9: "do not silently
// combine both").
func (o *Orchestrator) buildContext(c domain.Contract) domain.RuleContext {
	text := c.RawText
	if text == "" {
		parts := make([]string, 0, len(c.Clauses))
		for _, cl := range c.Clauses {
			parts = append(parts, cl.Text)
		}
		text = strings.Join(parts, "\n")
	}
	return domain.RuleContext{Contract: c, State: c.State, Text: text}
}

// contextEmpty reports whether a RuleContext carries no text to analyze.
func contextEmpty(ctx domain.RuleContext) bool { return strings.TrimSpace(ctx.Text) == "" }

func (o *Orchestrator) runAI(ctx context.Context, ruleCtx domain.RuleContext) ([]domain.RiskFlag, []string) {
	var flags []domain.RiskFlag
	var unusualClauses []string

	if o.ai == nil {
		return flags, unusualClauses
	}

	explResp, err := o.ai.Call(ctx, domain.AIRequest{Prompt: aiadapter.RiskExplanationsPrompt(ruleCtx.Text)})
	if err != nil {
		o.logAIFailure("risk_explanations", err)
	} else if explResp.Error != "" {
		o.logAIFailure("risk_explanations", fmt.Errorf("%s", explResp.Error))
	} else {
		payload := aiadapter.ParseRiskExplanations(explResp)
		for _, risk := range payload.Risks {
			flags = append(flags, domain.RiskFlag{Code: risk.Code, Description: risk.Description, Severity: risk.Severity})
		}
	}

	clauseResp, err := o.ai.Call(ctx, domain.AIRequest{Prompt: aiadapter.UnusualClausesPrompt(ruleCtx.Text)})
	if err != nil {
		o.logAIFailure("unusual_clauses", err)
	} else if clauseResp.Error != "" {
		o.logAIFailure("unusual_clauses", fmt.Errorf("%s", clauseResp.Error))
	} else {
		payload := aiadapter.ParseUnusualClauses(clauseResp)
		for i, item := range payload.Items {
			unusualClauses = append(unusualClauses, item.Text)
			flags = append(flags, domain.RiskFlag{
				Code:        fmt.Sprintf("UNUSUAL_CLAUSE_%d", i+1),
				Description: item.Text,
				Severity:    domain.SeverityMedium, // spec §9: hard-coded regardless of AI reason
			})
		}
	}

	return flags, unusualClauses
}

func (o *Orchestrator) logAIFailure(prompt string, err error) {
	o.log.Warn().Err(err).Str("prompt", prompt).Msg("ai adapter call failed; proceeding without signal")
	if o.events != nil {
		o.events.EmitError("analysis.ai", err)
	}
}

// composeAnalysis builds the RiskAnalysis summary/explanations of spec
// §4.G step 9.
func composeAnalysis(c domain.Contract, s domain.RiskScore) domain.RiskAnalysis {
	critical, high, unusual := 0, 0, 0
	for _, f := range s.Flags {
		switch f.Severity {
		case domain.SeverityCritical:
			critical++
		case domain.SeverityHigh:
			high++
		}
		if strings.HasPrefix(f.Code, "UNUSUAL_CLAUSE_") || strings.HasPrefix(f.Code, "UNUSUAL_") {
			unusual++
		}
	}

	summary := fmt.Sprintf("%s risk (score %d): %d critical, %d high-severity finding(s), %d unusual clause(s)",
		scoring.Label(s.Score), s.Score, critical, high, unusual)

	explanations := make([]string, 0, len(s.Flags)+1)
	for _, f := range s.Flags {
		explanations = append(explanations, fmt.Sprintf("%s: %s", f.Severity, f.Description))
	}
	if unusual > 0 {
		explanations = append(explanations, fmt.Sprintf("%d unusual clause(s) identified", unusual))
	}

	return domain.RiskAnalysis{ContractID: c.ID, Summary: summary, Score: s, Explanations: explanations}
}
