// Package archive provides best-effort S3 export of a contract's risk
// history, grounded on the teacher's R2BackupService shape (zerolog
// logging, staged object naming) adapted to the per-contract history
// domain instead of whole-database backups.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// Exporter uploads a contract's RiskHistory to an S3-compatible bucket as
// a timestamped JSON object. Failures are non-fatal to the caller: archive
// export is a supplemental convenience, not part of the analysis path.
type Exporter struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
	log      zerolog.Logger
}

// NewExporter constructs an Exporter over an S3 client.
func NewExporter(client *s3.Client, bucket, prefix string, log zerolog.Logger) *Exporter {
	return &Exporter{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
		log:      log.With().Str("component", "archive").Logger(),
	}
}

// ExportHistory uploads h as a JSON object keyed by contract id and export
// time. Returns the object key on success.
func (e *Exporter) ExportHistory(ctx context.Context, h domain.RiskHistory) (string, error) {
	body, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode risk history: %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s.json", e.prefix, h.ContractID, time.Now().UTC().Format("20060102T150405Z"))

	_, err = e.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &e.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: strPtr("application/json"),
	})
	if err != nil {
		e.log.Warn().Err(err).Str("contractId", h.ContractID).Msg("archive export failed")
		return "", fmt.Errorf("upload risk history: %w", err)
	}

	e.log.Info().Str("contractId", h.ContractID).Str("key", key).Msg("risk history archived")
	return key, nil
}

func strPtr(s string) *string { return &s }
