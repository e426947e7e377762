package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/fondos-backend/internal/errs"
	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) error
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	// DebitCapital subtracts amount from the user's investment capital as a
	// single conditional write: the row is only updated when the current
	// balance covers the amount, so two concurrent debits can never both
	// succeed against a balance that covers only one of them.
	DebitCapital(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	CreditCapital(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).Create(user).Error
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var user types.User
	if err := transaction.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) DebitCapital(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ? AND investment_capital >= ?", userID, amount).
		Update("investment_capital", gorm.Expr("investment_capital - ?", amount))
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the user vanished or the balance no longer covers the
		// amount. Callers check existence first, so resolve the ambiguity
		// in favor of insufficiency.
		if _, err := ur.GetByID(ctx, transaction, userID); errors.Is(err, errs.ErrNotFound) {
			return decimal.Zero, errs.ErrNotFound
		}
		return decimal.Zero, errs.ErrInsufficientCapital
	}

	user, err := ur.GetByID(ctx, transaction, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.InvestmentCapital, nil
}

func (ur *userRepo) CreditCapital(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("investment_capital", gorm.Expr("investment_capital + ?", amount))
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, errs.ErrNotFound
	}

	user, err := ur.GetByID(ctx, transaction, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.InvestmentCapital, nil
}
