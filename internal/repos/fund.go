package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/fondos-backend/internal/errs"
	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/types"
)

type FundRepo interface {
	Create(ctx context.Context, tx *gorm.DB, fund *types.Fund) error
	GetByID(ctx context.Context, tx *gorm.DB, fundID uuid.UUID) (*types.Fund, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Fund, error)
}

type fundRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFundRepo(db *gorm.DB, baseLog *logger.Logger) FundRepo {
	repoLog := baseLog.With("repo", "FundRepo")
	return &fundRepo{db: db, log: repoLog}
}

func (fr *fundRepo) Create(ctx context.Context, tx *gorm.DB, fund *types.Fund) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).Create(fund).Error
}

func (fr *fundRepo) GetByID(ctx context.Context, tx *gorm.DB, fundID uuid.UUID) (*types.Fund, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var fund types.Fund
	if err := transaction.WithContext(ctx).
		Where("id = ?", fundID).
		First(&fund).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &fund, nil
}

func (fr *fundRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Fund, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.Fund
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
