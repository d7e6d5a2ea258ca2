// Package di assembles the application's collaborators in dependency
// order, grounded on the teacher's internal/di/wire.go staged
// initialization: databases, then repositories, then services, then jobs.
package di

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/aiadapter"
	"github.com/prabhnoor12/cleardeal-ai/internal/analysis"
	"github.com/prabhnoor12/cleardeal-ai/internal/archive"
	"github.com/prabhnoor12/cleardeal-ai/internal/config"
	"github.com/prabhnoor12/cleardeal-ai/internal/database"
	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/events"
	"github.com/prabhnoor12/cleardeal-ai/internal/httpapi"
	"github.com/prabhnoor12/cleardeal-ai/internal/riskhistory"
	"github.com/prabhnoor12/cleardeal-ai/internal/scan"
	"github.com/prabhnoor12/cleardeal-ai/internal/scheduler"
	"github.com/prabhnoor12/cleardeal-ai/internal/storage"
)

// Container holds every wired collaborator, kept alive for the process
// lifetime.
type Container struct {
	Config *config.Config
	DB     *database.DB

	Contracts domain.ContractRepo
	Scores    domain.RiskScoreRepo
	History   *riskhistory.Store

	AI           domain.AIAdapter
	Events       *events.Manager
	Orchestrator *analysis.Orchestrator
	ScanDriver   *scan.Driver
	Scheduler    *scheduler.Scheduler
	Server       *httpapi.Server
}

// Build wires every collaborator in dependency order. Callers must call
// Close when done to release the database connection.
func Build(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	// STEP 1: database
	db, err := database.New(database.Config{
		Path:    cfg.DataDir + "/contracts.db",
		Profile: database.ProfileStandard,
		Name:    "contracts",
	})
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	// STEP 2: repositories
	conn := db.Conn()
	contracts := storage.NewContractRepo(conn)
	scores := storage.NewRiskScoreRepo(conn)
	history := riskhistory.NewStore()

	// STEP 3: event bus
	em := events.NewManager(log)

	// STEP 4: AI adapter
	ai := aiadapter.NewClient(cfg.AIProviderURL, cfg.AIAPIKey, cfg.AIAttempts, log)

	// STEP 5: analysis orchestrator
	orchestrator := analysis.NewOrchestrator(contracts, scores, history, ai, generalRules(), em, log)

	// STEP 6: scan driver
	scanDriver := scan.NewDriver(em, log, generalRules())

	// STEP 6.5: archive exporter (only when ARCHIVE_ENABLED=true)
	archiver, err := buildArchiver(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("build archive exporter: %w", err)
	}

	// STEP 7: scheduler + jobs
	sched := scheduler.New(log)
	rescanJob := scheduler.NewRescanStaleContractsJob(contracts, scores, history, orchestrator, archiver, cfg.RescanStaleAfter, log)
	if err := sched.AddJob(fmt.Sprintf("@every %s", cfg.RescanInterval), rescanJob); err != nil {
		return nil, fmt.Errorf("register rescan job: %w", err)
	}

	// STEP 8: HTTP surface
	server := httpapi.NewServer(httpapi.Deps{
		Orchestrator: orchestrator,
		History:      history,
		Scores:       scores,
		ScanDriver:   scanDriver,
		Events:       em,
		DevMode:      cfg.DevMode,
	}, log)

	return &Container{
		Config:       cfg,
		DB:           db,
		Contracts:    contracts,
		Scores:       scores,
		History:      history,
		AI:           ai,
		Events:       em,
		Orchestrator: orchestrator,
		ScanDriver:   scanDriver,
		Scheduler:    sched,
		Server:       server,
	}, nil
}

// Close releases the container's long-lived resources.
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// buildArchiver constructs the S3 archive exporter when ARCHIVE_ENABLED is
// true, loading credentials and region the standard AWS SDK way. It returns
// a nil *archive.Exporter (not an error) when archiving is disabled, so
// callers can pass the result straight through to code that already treats
// a nil archiver as "export disabled".
func buildArchiver(cfg *config.Config, log zerolog.Logger) (*archive.Exporter, error) {
	if !cfg.ArchiveEnabled {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return archive.NewExporter(client, cfg.ArchiveBucket, cfg.ArchivePrefix, log), nil
}
