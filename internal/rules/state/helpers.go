package state

import (
	"strings"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// matchesDisclosure reports whether any of the contract's disclosure names
// contains one of the given substrings, case-insensitively.
func matchesDisclosure(ctx domain.RuleContext, substrings ...string) bool {
	for _, d := range ctx.Contract.Disclosures {
		if !d.Provided {
			continue
		}
		lower := strings.ToLower(d.Name)
		for _, s := range substrings {
			if strings.Contains(lower, s) {
				return true
			}
		}
	}
	return false
}

// configureAll applies cfg (when non-nil) to each rule before returning them.
func configureAll(cfg *domain.RuleConfig, rs ...domain.Rule) []domain.Rule {
	if cfg != nil {
		for _, r := range rs {
			r.Configure(*cfg)
		}
	}
	return rs
}
