package analysis

import (
	"fmt"
	"sort"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// priorityForSeverity maps a flag severity to a recommendation priority
// (spec §4.G: "{critical,high → immediate, medium → soon, low → optional}").
func priorityForSeverity(s domain.Severity) domain.RecommendationPriority {
	switch s {
	case domain.SeverityCritical, domain.SeverityHigh:
		return domain.PriorityImmediate
	case domain.SeverityMedium:
		return domain.PrioritySoon
	default:
		return domain.PriorityOptional
	}
}

// priorityRank orders priorities for the final sort: immediate < soon < optional.
var priorityRank = map[domain.RecommendationPriority]int{
	domain.PriorityImmediate: 0,
	domain.PrioritySoon:      1,
	domain.PriorityOptional:  2,
}

// actionByCode is a curated action text per flag code; codes not listed
// fall back to a generic "review and address" action.
var actionByCode = map[string]string{
	"MISSING_DISCLOSURE_MISSING":      "Request all required disclosure documents from the seller.",
	"FIN_CONTINGENCY_MISSING":         "Add a financing contingency to protect the buyer if the loan falls through.",
	"INSPECTION_CONTINGENCY_MISSING":  "Add an inspection contingency before proceeding further.",
	"APPRAISAL_CONTINGENCY_MISSING":   "Add an appraisal contingency to protect against an under-value appraisal.",
	"ESCROW_HOLDER_NO_ESCROW_HOLDER":  "Designate a neutral escrow or title company to hold earnest money.",
	"EMD_REFUND_NON_REFUNDABLE":       "Negotiate refund conditions for the earnest money deposit.",
	"HOA_DISCLOSURE_HOA_MISSING":      "Obtain the missing HOA documents before closing.",
	"DISCLOSURE_AGE_OUTDATED":         "Request an updated disclosure reflecting the property's current condition.",
	"UNBALANCED_TERMS_UNLIMITED_LIABILITY": "Negotiate a cap on liability exposure.",
}

// Recommend synthesizes one Recommendation per flag, plus score-band
// global recommendations, sorted by priority with insertion order
// preserved within a priority (spec §4.G).
func Recommend(a domain.RiskAnalysis) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(a.Score.Flags)+2)

	for _, f := range a.Score.Flags {
		action, ok := actionByCode[f.Code]
		if !ok {
			action = fmt.Sprintf("Review and address: %s", f.Description)
		}
		recs = append(recs, domain.Recommendation{
			Priority:        priorityForSeverity(f.Severity),
			Action:          action,
			RelatedFlagCode: f.Code,
		})
	}

	if a.Score.Score < 40 {
		recs = append(recs, domain.Recommendation{Priority: domain.PriorityImmediate, Action: "Seek immediate attorney review before proceeding."})
	} else if a.Score.Score < 60 {
		recs = append(recs, domain.Recommendation{Priority: domain.PrioritySoon, Action: "Negotiate and address the outstanding risk items before signing."})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
	})
	return recs
}
