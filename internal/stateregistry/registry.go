// Package stateregistry maps a U.S. state code to its human name and rule
// factory. Adding a state is purely additive: one table row, one factory.
package stateregistry

import (
	"sort"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/rules/state"
)

var table = map[string]domain.StateRow{
	"CA": {Code: "CA", HumanName: "California", RuleFactory: state.California},
	"TX": {Code: "TX", HumanName: "Texas", RuleFactory: state.Texas},
	"FL": {Code: "FL", HumanName: "Florida", RuleFactory: state.Florida},
	"NY": {Code: "NY", HumanName: "New York", RuleFactory: state.NewYork},
}

// IsSupported reports whether code has a registered rule factory.
func IsSupported(code string) bool {
	_, ok := table[code]
	return ok
}

// SupportedCodes returns every registered state code, sorted.
func SupportedCodes() []string {
	codes := make([]string, 0, len(table))
	for c := range table {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Info returns the registry row for code, if registered.
func Info(code string) (domain.StateRow, bool) {
	row, ok := table[code]
	return row, ok
}

// List returns every registered row, sorted by code.
func List() []domain.StateRow {
	codes := SupportedCodes()
	out := make([]domain.StateRow, 0, len(codes))
	for _, c := range codes {
		out = append(out, table[c])
	}
	return out
}

// CreateRules returns a deterministic, non-empty rule list for code, or
// nil if code is not registered. cfg, when non-nil, is applied to every
// constructed rule.
func CreateRules(code string, cfg *domain.RuleConfig) []domain.Rule {
	row, ok := table[code]
	if !ok {
		return nil
	}
	return row.RuleFactory(cfg)
}

// CreateMultiStateRules concatenates CreateRules for each code, in order,
// skipping unregistered codes.
func CreateMultiStateRules(codes []string, cfg *domain.RuleConfig) []domain.Rule {
	var out []domain.Rule
	for _, c := range codes {
		out = append(out, CreateRules(c, cfg)...)
	}
	return out
}
