package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tributo/internal/config"
	"tributo/internal/csvexport"
	"tributo/internal/domain"
	"tributo/internal/f29"
	"tributo/internal/port"
	"tributo/internal/xlsxexport"
)

// ParseInput is the DTO for a declaration upload.
type ParseInput struct {
	Content   []byte
	MediaType string
	Size      int64
	FileName  string
	Persist   bool
}

// ParseResult carries the pipeline outcome and, when archived, the stored row.
type ParseResult struct {
	Outcome     *domain.ParseOutcome
	Declaration *domain.Declaration
}

// DeclarationService defines the declaration parsing and archive contract.
type DeclarationService interface {
	// Parse always returns a result. The error is non-nil only when archiving
	// was requested and could not be completed.
	Parse(ctx context.Context, input ParseInput) (*ParseResult, error)
	MaxUploadBytes() int64
	ArchiveEnabled() bool
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Declaration, error)
	List(ctx context.Context, taxpayerID string, offset, limit int) ([]domain.Declaration, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	// Reparse runs the pipeline again over an archived PDF. The archived row is
	// left untouched.
	Reparse(ctx context.Context, id uuid.UUID) (*domain.ParseOutcome, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportCSV(ctx context.Context, taxpayerID string, w io.Writer) error
	ExportXLSX(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type declarationService struct {
	pipeline *f29.Pipeline
	repo     port.DeclarationRepository
	storage  port.ObjectStorage
	cfg      *config.S3Config
	log      zerolog.Logger
}

// NewDeclarationService creates a DeclarationService. repo and storage may be
// nil, in which case archiving is disabled.
func NewDeclarationService(
	pipeline *f29.Pipeline,
	repo port.DeclarationRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
	log zerolog.Logger,
) DeclarationService {
	return &declarationService{
		pipeline: pipeline,
		repo:     repo,
		storage:  storage,
		cfg:      cfg,
		log:      log,
	}
}

func (s *declarationService) MaxUploadBytes() int64 {
	return s.pipeline.MaxBytes()
}

func (s *declarationService) ArchiveEnabled() bool {
	return s.repo != nil && s.storage != nil
}

func (s *declarationService) Parse(ctx context.Context, input ParseInput) (*ParseResult, error) {
	outcome := s.pipeline.Run(ctx, input.Content, input.MediaType, input.Size)
	result := &ParseResult{Outcome: outcome}

	if !input.Persist || !outcome.Success {
		return result, nil
	}
	if !s.ArchiveEnabled() {
		return result, domain.ErrArchiveDisabled
	}

	decl, err := s.archive(ctx, input, outcome)
	if err != nil {
		s.log.Error().Err(err).Str("rut", outcome.Snapshot.TaxpayerID).
			Msg("declarationService.Parse: archive failed")
		return result, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}
	result.Declaration = decl
	return result, nil
}

// archive uploads the PDF, then records the snapshot. A failed insert removes
// the uploaded object.
func (s *declarationService) archive(ctx context.Context, input ParseInput, outcome *domain.ParseOutcome) (*domain.Declaration, error) {
	snap := outcome.Snapshot
	codes, err := json.Marshal(snap.Codes.Values())
	if err != nil {
		return nil, fmt.Errorf("encoding codes: %w", err)
	}

	id := uuid.New()
	key := ObjectKey(snap.TaxpayerID, snap.Period, id)
	decl := &domain.Declaration{
		ID:            id,
		TaxpayerID:    snap.TaxpayerID,
		Period:        snap.Period,
		FilingNumber:  snap.FilingNumber,
		LegalName:     snap.LegalName,
		Codes:         codes,
		NetCredit:     snap.Totals.NetCredit,
		NetPurchases:  snap.Totals.NetPurchases,
		DeterminedTax: snap.Totals.DeterminedTax,
		TotalPayable:  snap.Totals.TotalPayable,
		GrossMargin:   snap.Totals.GrossMargin,
		Confidence:    outcome.Confidence,
		Method:        string(outcome.Method),
		OriginalName:  input.FileName,
		FileSize:      int64(len(input.Content)),
		S3Bucket:      s.cfg.Bucket,
		S3Key:         key,
		Status:        domain.DeclarationStatusActive,
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(input.Content),
		ContentType: domain.MediaTypePDF,
		Size:        decl.FileSize,
		Metadata: map[string]string{
			"rut":     snap.TaxpayerID,
			"periodo": snap.Period,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	if err := s.repo.Create(ctx, decl); err != nil {
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", key).Msg("declarationService.archive: orphaned object")
		}
		return nil, fmt.Errorf("creating declaration: %w", err)
	}

	s.log.Info().Str("id", id.String()).Str("rut", decl.TaxpayerID).Str("period", decl.Period).
		Msg("declarationService.archive: declaration archived")
	return decl, nil
}

var keyUnsafe = regexp.MustCompile(`[^0-9A-Za-z-]+`)

// ObjectKey returns declarations/<rut>/<period>/<id>.pdf with RUT and period
// reduced to key-safe characters.
func ObjectKey(taxpayerID, period string, id uuid.UUID) string {
	return fmt.Sprintf("declarations/%s/%s/%s.pdf", keySegment(taxpayerID), keySegment(period), id)
}

func keySegment(s string) string {
	if s == domain.NotAvailable {
		return "unknown"
	}
	s = keyUnsafe.ReplaceAllString(strings.ToUpper(strings.ReplaceAll(s, ".", "")), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "unknown"
	}
	return s
}

func (s *declarationService) requireArchive() error {
	if !s.ArchiveEnabled() {
		return domain.ErrArchiveDisabled
	}
	return nil
}

func (s *declarationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Declaration, error) {
	if err := s.requireArchive(); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *declarationService) List(ctx context.Context, taxpayerID string, offset, limit int) ([]domain.Declaration, int, error) {
	if err := s.requireArchive(); err != nil {
		return nil, 0, err
	}
	if taxpayerID != "" {
		return s.repo.ListByTaxpayer(ctx, taxpayerID, offset, limit)
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *declarationService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	decl, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.storage.GetPresignedURL(ctx, decl.S3Bucket, decl.S3Key, s.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("generating download URL: %w", err)
	}
	return url, nil
}

func (s *declarationService) Reparse(ctx context.Context, id uuid.UUID) (*domain.ParseOutcome, error) {
	decl, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.storage.Download(ctx, decl.S3Bucket, decl.S3Key)
	if err != nil {
		return nil, fmt.Errorf("downloading archived declaration: %w", err)
	}
	return s.pipeline.Run(ctx, content, domain.MediaTypePDF, int64(len(content))), nil
}

func (s *declarationService) Delete(ctx context.Context, id uuid.UUID) error {
	decl, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, decl.S3Bucket, decl.S3Key); err != nil {
		s.log.Warn().Err(err).Str("key", decl.S3Key).Msg("declarationService.Delete: object not removed")
	}
	return nil
}

func (s *declarationService) ExportCSV(ctx context.Context, taxpayerID string, w io.Writer) error {
	if err := s.requireArchive(); err != nil {
		return err
	}
	decls, err := s.repo.ListForExport(ctx, taxpayerID)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteDeclarations(decls); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *declarationService) ExportXLSX(ctx context.Context, id uuid.UUID) ([]byte, error) {
	decl, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := xlsxexport.Workbook(decl)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// IsArchiveError reports whether err came from the archive step of Parse.
func IsArchiveError(err error) bool {
	return errors.Is(err, domain.ErrArchiveFailed) || errors.Is(err, domain.ErrArchiveDisabled)
}
