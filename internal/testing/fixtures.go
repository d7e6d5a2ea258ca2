package testing

import (
	"time"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// NewContractFixture returns a baseline, fully-disclosed contract with no
// state assigned, suitable as a low-risk starting point for tests.
func NewContractFixture() domain.Contract {
	now := time.Now()
	return domain.Contract{
		ID:             "contract-fixture-1",
		Title:          "123 Maple Street Purchase Agreement",
		OwnerUserID:    "user-1",
		OrganizationID: "org-1",
		Status:         domain.ContractStatusSubmitted,
		RawText: "Buyer agrees to purchase the property at 123 Maple Street. " +
			"This offer is contingent upon buyer obtaining financing within 21 days. " +
			"Buyer shall have 10 days to complete a home inspection. " +
			"Earnest money deposit of $5,000 shall be held in escrow.",
		Clauses: []domain.Clause{
			{ID: 1, Text: "Financing contingency: 21 days.", Type: domain.ClauseTypeStandard},
			{ID: 2, Text: "Inspection contingency: 10 days.", Type: domain.ClauseTypeStandard},
		},
		Disclosures: []domain.Disclosure{
			{ID: 1, Name: "TDS", Required: true, Provided: true},
			{ID: 2, Name: "NHD", Required: true, Provided: true},
			{ID: 3, Name: "Lead-Based Paint Disclosure", Required: true, Provided: true},
		},
		Addenda:   nil,
		Documents: []domain.Document{{ID: 1, URL: "https://files.example.com/contract-1.pdf", MediaType: domain.DocumentMediaPDF, UploadedAt: now}},
		CreatedAt: now.Add(-48 * time.Hour),
		UpdatedAt: now.Add(-24 * time.Hour),
	}
}

// NewContractWithMissingDisclosuresFixture returns a contract missing two of
// its three required disclosures, for exercising disclosure rules.
func NewContractWithMissingDisclosuresFixture() domain.Contract {
	c := NewContractFixture()
	c.ID = "contract-fixture-missing-disclosures"
	c.Disclosures = []domain.Disclosure{
		{ID: 1, Name: "TDS", Required: true, Provided: true},
		{ID: 2, Name: "NHD", Required: true, Provided: false},
		{ID: 3, Name: "Lead-Based Paint Disclosure", Required: true, Provided: false},
	}
	return c
}

// NewContractWithUnusualClauseFixture returns a contract carrying an unusual,
// flagged clause for exercising unusual-clause rules.
func NewContractWithUnusualClauseFixture() domain.Contract {
	c := NewContractFixture()
	c.ID = "contract-fixture-unusual-clause"
	c.Clauses = append(c.Clauses, domain.Clause{
		ID:      3,
		Text:    "Seller may cancel this agreement at any time for any reason without penalty.",
		Type:    domain.ClauseTypeUnusual,
		Flagged: true,
	})
	return c
}

// NewCAContractFixture returns a contract assigned to California, for
// exercising state-specific rules.
func NewCAContractFixture() domain.Contract {
	c := NewContractFixture()
	c.ID = "contract-fixture-ca"
	c.State = "CA"
	return c
}

// NewTXContractFixture returns a contract assigned to Texas, for exercising
// state-specific rules.
func NewTXContractFixture() domain.Contract {
	c := NewContractFixture()
	c.ID = "contract-fixture-tx"
	c.State = "TX"
	return c
}

// NewRiskScoreFixture returns a risk score for the given contract ID.
func NewRiskScoreFixture(contractID string, score int) domain.RiskScore {
	return domain.RiskScore{
		ContractID:   contractID,
		Score:        score,
		CalculatedAt: time.Now(),
		Flags: []domain.RiskFlag{
			{Code: "financing-contingency", Severity: domain.SeverityMedium, Description: "Financing contingency window is short."},
		},
		Breakdown: map[string]float64{"financing": -5, "inspection": -2},
	}
}

// NewRiskHistoryFixture returns a short, time-ordered history for a
// contract, oldest entry first.
func NewRiskHistoryFixture(contractID string) domain.RiskHistory {
	now := time.Now()
	return domain.RiskHistory{
		ContractID: contractID,
		Entries: []domain.RiskHistoryEntry{
			{AnalyzedAt: now.Add(-72 * time.Hour), Score: 60},
			{AnalyzedAt: now.Add(-48 * time.Hour), Score: 70},
			{AnalyzedAt: now.Add(-24 * time.Hour), Score: 78},
		},
	}
}
