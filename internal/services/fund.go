package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/fondos-backend/internal/apierr"
	"github.com/yungbote/fondos-backend/internal/errs"
	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/repos"
	"github.com/yungbote/fondos-backend/internal/types"
)

type CreateFundInput struct {
	Name                    string
	Category                string
	MinimumInvestmentAmount decimal.NullDecimal
	Status                  string
}

type FundService interface {
	CreateFund(ctx context.Context, input CreateFundInput) (*types.Fund, error)
	GetFund(ctx context.Context, fundID uuid.UUID) (*types.Fund, error)
	ListFunds(ctx context.Context) ([]*types.Fund, error)
}

type fundService struct {
	db       *gorm.DB
	log      *logger.Logger
	fundRepo repos.FundRepo
}

func NewFundService(db *gorm.DB, baseLog *logger.Logger, fundRepo repos.FundRepo) FundService {
	serviceLog := baseLog.With("service", "FundService")
	return &fundService{db: db, log: serviceLog, fundRepo: fundRepo}
}

func (fs *fundService) CreateFund(ctx context.Context, input CreateFundInput) (*types.Fund, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierr.New(http.StatusBadRequest, "invalid_argument", errors.New("name is required"))
	}
	if input.MinimumInvestmentAmount.Valid && input.MinimumInvestmentAmount.Decimal.IsNegative() {
		return nil, apierr.New(http.StatusBadRequest, "invalid_argument", errors.New("minimum_investment_amount must not be negative"))
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = types.FundStatusActive
	}

	now := time.Now().UTC()
	fund := &types.Fund{
		ID:                      uuid.New(),
		Name:                    name,
		Category:                strings.TrimSpace(input.Category),
		MinimumInvestmentAmount: input.MinimumInvestmentAmount,
		Status:                  status,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := fs.fundRepo.Create(ctx, nil, fund); err != nil {
		fs.log.Error("Failed to create fund", "error", err)
		return nil, storageError(err)
	}
	return fund, nil
}

func (fs *fundService) GetFund(ctx context.Context, fundID uuid.UUID) (*types.Fund, error) {
	fund, err := fs.fundRepo.GetByID(ctx, nil, fundID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "fund_not_found", errors.New(types.ErrMsgFundNotFound))
		}
		fs.log.Error("Failed to fetch fund", "error", err)
		return nil, storageError(err)
	}
	return fund, nil
}

func (fs *fundService) ListFunds(ctx context.Context) ([]*types.Fund, error) {
	funds, err := fs.fundRepo.List(ctx, nil)
	if err != nil {
		fs.log.Error("Failed to list funds", "error", err)
		return nil, storageError(err)
	}
	return funds, nil
}
