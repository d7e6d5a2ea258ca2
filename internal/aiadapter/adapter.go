// Package aiadapter normalizes the AI collaborator port (spec §4.E):
// prompt-in, structured-output-out, with strict JSON payload parsing and a
// "first {...} substring" fallback. A failed parse yields an empty signal
// set, never a fatal error.
package aiadapter

import (
	"encoding/json"
	"strings"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// Prompt kinds the orchestrator issues to the adapter.
const (
	PromptUnusualClauses   = "unusual_clauses"
	PromptRiskExplanations = "risk_explanations"
)

// firstJSONObject returns the first balanced {...} substring of s, or ""
// if none is found. Used as the fallback parse path.
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// ParseUnusualClauses parses resp.Raw as an UnusualClausesPayload,
// falling back to the first {...} substring. Returns a zero-value payload
// (never an error) when parsing fails both ways.
func ParseUnusualClauses(resp domain.AIResponse) domain.UnusualClausesPayload {
	var payload domain.UnusualClausesPayload
	if json.Unmarshal([]byte(resp.Raw), &payload) == nil && len(payload.Items) > 0 {
		return payload
	}
	if obj := firstJSONObject(resp.Raw); obj != "" {
		var fallback domain.UnusualClausesPayload
		if json.Unmarshal([]byte(obj), &fallback) == nil {
			return fallback
		}
	}
	return domain.UnusualClausesPayload{}
}

// ParseRiskExplanations parses resp.Raw as a RiskExplanationsPayload,
// falling back to the first {...} substring. Returns a zero-value payload
// (never an error) when parsing fails both ways.
func ParseRiskExplanations(resp domain.AIResponse) domain.RiskExplanationsPayload {
	var payload domain.RiskExplanationsPayload
	if json.Unmarshal([]byte(resp.Raw), &payload) == nil && len(payload.Risks) > 0 {
		return payload
	}
	if obj := firstJSONObject(resp.Raw); obj != "" {
		var fallback domain.RiskExplanationsPayload
		if json.Unmarshal([]byte(obj), &fallback) == nil {
			return fallback
		}
	}
	return domain.RiskExplanationsPayload{}
}

// UnusualClausesPrompt builds the prompt text for the "unusual clauses" AI call.
func UnusualClausesPrompt(contractText string) string {
	var b strings.Builder
	b.WriteString("Identify any unusual or concerning clauses in the following residential ")
	b.WriteString("real-estate purchase contract text. Respond with strict JSON of the shape ")
	b.WriteString(`{"items":[{"text":"...","reason":"..."}]}` + " and nothing else.\n\n")
	b.WriteString(contractText)
	return b.String()
}

// RiskExplanationsPrompt builds the prompt text for the "risk explanations" AI call.
func RiskExplanationsPrompt(contractText string) string {
	var b strings.Builder
	b.WriteString("Identify risks in the following residential real-estate purchase contract ")
	b.WriteString("text not already covered by standard rule checks. Respond with strict JSON ")
	b.WriteString(`of the shape {"risks":[{"code":"...","description":"...","severity":"low|medium|high|critical"}]}` + " and nothing else.\n\n")
	b.WriteString(contractText)
	return b.String()
}
