package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/analysis"
	"github.com/prabhnoor12/cleardeal-ai/internal/archive"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/riskhistory"
)

// RescanStaleContractsJob re-runs analysis for every contract whose last
// risk score is older than StaleAfter (or has none at all), via
// Orchestrator.AnalyzeBatch so no single contract failure aborts the run.
// When archiver is non-nil, each successfully rescanned contract's risk
// history is also exported to S3 (spec §4.K archive export), best-effort:
// an export failure is logged and does not fail the rescan.
type RescanStaleContractsJob struct {
	contracts    domain.ContractRepo
	scores       domain.RiskScoreRepo
	history      *riskhistory.Store
	orchestrator *analysis.Orchestrator
	archiver     *archive.Exporter
	staleAfter   time.Duration
	timeout      time.Duration
	log          zerolog.Logger
}

// NewRescanStaleContractsJob constructs the job. staleAfter is the age
// threshold past which a contract's score is considered stale. archiver
// may be nil, disabling the archive-export step entirely.
func NewRescanStaleContractsJob(
	contracts domain.ContractRepo,
	scores domain.RiskScoreRepo,
	history *riskhistory.Store,
	orchestrator *analysis.Orchestrator,
	archiver *archive.Exporter,
	staleAfter time.Duration,
	log zerolog.Logger,
) *RescanStaleContractsJob {
	return &RescanStaleContractsJob{
		contracts:    contracts,
		scores:       scores,
		history:      history,
		orchestrator: orchestrator,
		archiver:     archiver,
		staleAfter:   staleAfter,
		timeout:      10 * time.Minute,
		log:          log.With().Str("job", "rescan-stale-contracts").Logger(),
	}
}

// Name identifies the job for scheduler logging.
func (j *RescanStaleContractsJob) Name() string { return "rescan-stale-contracts" }

// Run finds stale contracts and re-analyzes them as a batch.
func (j *RescanStaleContractsJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	all, err := j.contracts.FindAll(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-j.staleAfter)
	var staleIDs []string
	for _, c := range all {
		score, err := j.scores.FindByContractID(ctx, c.ID)
		if err != nil || score == nil || score.CalculatedAt.Before(cutoff) {
			staleIDs = append(staleIDs, c.ID)
		}
	}

	if len(staleIDs) == 0 {
		j.log.Debug().Msg("no stale contracts found")
		return nil
	}

	result := j.orchestrator.AnalyzeBatch(ctx, staleIDs, analysis.AnalysisOptions{ForceRefresh: true})
	j.log.Info().
		Int("completed", len(result.Completed)).
		Int("failed", len(result.Failed)).
		Dur("totalTime", result.TotalTime).
		Msg("stale contract rescan finished")

	j.archiveCompleted(ctx, result)
	return nil
}

// archiveCompleted best-effort exports each completed contract's risk
// history to S3. A nil archiver (ARCHIVE_ENABLED=false) makes this a no-op.
func (j *RescanStaleContractsJob) archiveCompleted(ctx context.Context, result analysis.BatchResult) {
	if j.archiver == nil || j.history == nil {
		return
	}
	for _, c := range result.Completed {
		h := j.history.Get(c.ContractID)
		if h == nil {
			continue
		}
		if _, err := j.archiver.ExportHistory(ctx, *h); err != nil {
			j.log.Warn().Err(err).Str("contractId", c.ContractID).Msg("archive export failed")
		}
	}
}
