package integrity

import (
	"context"
	"fmt"

	"prsk-lab/core/storage"
	"prsk-lab/feature/integrity/checks"
	"prsk-lab/feature/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Section statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
	StatusFixed = "fixed"
)

// StorageReport is the result of the storage check.
type StorageReport struct {
	Status        string                `json:"status"`
	Bucket        string                `json:"bucket"`
	BucketExists  bool                  `json:"bucket_exists"`
	Objects       int                   `json:"objects"`
	MissingImages []checks.MissingImage `json:"missing_images"`
	OrphanImages  []string              `json:"orphan_images"`
	Fixed         []string              `json:"fixed,omitempty"`
}

// Report combines every check.
type Report struct {
	Healthy bool                 `json:"healthy"`
	Schema  *checks.SchemaReport `json:"schema"`
	Storage *StorageReport       `json:"storage"`
}

// Service handles integrity checks.
type Service struct {
	db      *gorm.DB
	client  storage.Client
	storage storage.Config
	logger  *zap.Logger
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, client storage.Client, storageCfg storage.Config, logger *zap.Logger) *Service {
	return &Service{
		db:      db,
		client:  client,
		storage: storageCfg,
		logger:  logger,
	}
}

// CheckSchema compares the database with the models.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db.WithContext(ctx), models.All())
}

// CheckStorage verifies the bucket and the furniture images. With fix it
// creates a missing bucket, removes orphan objects and clears image keys
// whose object is gone.
func (s *Service) CheckStorage(ctx context.Context, fix bool) (*StorageReport, error) {
	bucket := s.storage.Bucket
	report := &StorageReport{
		Status:        StatusOK,
		Bucket:        bucket,
		MissingImages: []checks.MissingImage{},
		OrphanImages:  []string{},
	}

	exists, err := checks.CheckBucket(ctx, s.client, bucket)
	if err != nil {
		return nil, err
	}
	if !exists && fix {
		if err := checks.FixBucket(ctx, s.client, bucket, s.storage.Region, s.logger); err != nil {
			return nil, err
		}
		report.Fixed = append(report.Fixed, "bucket")
		exists = true
	}
	report.BucketExists = exists

	referenced, err := s.referencedImages(ctx)
	if err != nil {
		return nil, err
	}

	stored := []string{}
	if exists {
		if stored, err = checks.ListImageKeys(ctx, s.client, bucket); err != nil {
			return nil, err
		}
	}
	report.Objects = len(stored)
	report.MissingImages, report.OrphanImages = checks.DiffImages(referenced, stored)

	if fix {
		if len(report.OrphanImages) > 0 {
			if err := checks.RemoveOrphans(ctx, s.client, bucket, s.logger, report.OrphanImages); err != nil {
				return nil, err
			}
			report.Fixed = append(report.Fixed, "orphan_images")
		}
		if len(report.MissingImages) > 0 {
			if err := s.clearMissing(ctx, report.MissingImages); err != nil {
				return nil, err
			}
			report.Fixed = append(report.Fixed, "missing_images")
		}
	}

	switch {
	case len(report.Fixed) > 0:
		report.Status = StatusFixed
	case !exists || len(report.MissingImages) > 0 || len(report.OrphanImages) > 0:
		report.Status = StatusError
	}
	return report, nil
}

// Run performs the schema and storage checks concurrently.
func (s *Service) Run(ctx context.Context, fix bool) (*Report, error) {
	report := &Report{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		schemaReport, err := s.CheckSchema(gctx)
		if err != nil {
			return fmt.Errorf("schema check: %w", err)
		}
		report.Schema = schemaReport
		return nil
	})
	g.Go(func() error {
		storageReport, err := s.CheckStorage(gctx, fix)
		if err != nil {
			return fmt.Errorf("storage check: %w", err)
		}
		report.Storage = storageReport
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Healthy = report.Schema.Matched && report.Storage.Status != StatusError
	s.logger.Info("Integrity check completed",
		zap.Bool("healthy", report.Healthy),
		zap.Bool("fix", fix),
		zap.Int("missing_images", len(report.Storage.MissingImages)),
		zap.Int("orphan_images", len(report.Storage.OrphanImages)),
	)
	return report, nil
}

func (s *Service) referencedImages(ctx context.Context) (map[string]string, error) {
	var rows []models.Furniture
	if err := s.db.WithContext(ctx).
		Select("id", "image_key").
		Where("image_key IS NOT NULL AND image_key <> ''").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load image keys: %w", err)
	}

	referenced := make(map[string]string, len(rows))
	for _, f := range rows {
		referenced[*f.ImageKey] = f.ID
	}
	return referenced, nil
}

func (s *Service) clearMissing(ctx context.Context, missing []checks.MissingImage) error {
	ids := make([]string, 0, len(missing))
	for _, m := range missing {
		ids = append(ids, m.FurnitureID)
	}
	if err := s.db.WithContext(ctx).Model(&models.Furniture{}).
		Where("id IN ?", ids).
		Update("image_key", nil).Error; err != nil {
		return fmt.Errorf("failed to clear image keys: %w", err)
	}
	s.logger.Info("Cleared missing image keys", zap.Strings("furniture_ids", ids))
	return nil
}
