package repository

import (
	"context"
	"time"

	"chokwadi/sources/persistence/entities"
	"chokwadi/sources/platform"
	"chokwadi/sources/tracing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportsRepository struct {
	db *gorm.DB
}

func NewReportsRepository(db *gorm.DB) *ReportsRepository {
	return &ReportsRepository{db: db}
}

func (x *ReportsRepository) SaveReport(logger *tracing.Logger, report *entities.Report) error {
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	if err := x.db.WithContext(ctx).Create(report).Error; err != nil {
		logger.E("Failed to save report", tracing.InnerError, err)
		return err
	}

	logger.I("Report saved",
		tracing.ContentKind, report.ContentKind,
		tracing.AiProvider, report.Provider,
		tracing.AiTokens, report.Tokens,
		tracing.AiCost, report.Cost.String(),
	)
	return nil
}

func (x *ReportsRepository) CountSince(logger *tracing.Logger, since time.Time) (int64, error) {
	defer tracing.ProfilePoint(logger, "Reports count completed", "repository.reports.count.since")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var count int64
	err := x.db.WithContext(ctx).
		Model(&entities.Report{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		logger.E("Failed to count reports", tracing.InnerError, err)
		return 0, err
	}

	return count, nil
}

func (x *ReportsRepository) CountFallbacksSince(logger *tracing.Logger, since time.Time) (int64, error) {
	defer tracing.ProfilePoint(logger, "Reports fallback count completed", "repository.reports.count.fallbacks")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var count int64
	err := x.db.WithContext(ctx).
		Model(&entities.Report{}).
		Where("created_at >= ? AND fallback_used = true", since).
		Count(&count).Error
	if err != nil {
		logger.E("Failed to count fallback reports", tracing.InnerError, err)
		return 0, err
	}

	return count, nil
}

func (x *ReportsRepository) GetTotalCost(logger *tracing.Logger) (decimal.Decimal, error) {
	defer tracing.ProfilePoint(logger, "Reports total cost completed", "repository.reports.total.cost")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var totalCost *decimal.Decimal
	err := x.db.WithContext(ctx).
		Model(&entities.Report{}).
		Select("SUM(cost)").
		Row().Scan(&totalCost)
	if err != nil {
		logger.E("Failed to get total cost", tracing.InnerError, err)
		return decimal.Zero, err
	}

	if totalCost == nil {
		return decimal.Zero, nil
	}

	return *totalCost, nil
}
