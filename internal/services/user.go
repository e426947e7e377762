package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/fondos-backend/internal/apierr"
	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/repos"
	"github.com/yungbote/fondos-backend/internal/types"
)

type CreateUserInput struct {
	Name        string
	Email       string
	PhoneNumber *string
	// InvestmentCapital left null means "use the starting balance".
	InvestmentCapital decimal.NullDecimal
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error)
	ListUsers(ctx context.Context) ([]*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, apierr.New(http.StatusBadRequest, "invalid_argument", errors.New("name and email are required"))
	}

	capital := types.DefaultInvestmentCapital
	if input.InvestmentCapital.Valid {
		capital = input.InvestmentCapital.Decimal
		if capital.IsNegative() {
			return nil, apierr.New(http.StatusBadRequest, "invalid_argument", errors.New("investment_capital must not be negative"))
		}
	}

	now := time.Now().UTC()
	user := &types.User{
		ID:                uuid.New(),
		Name:              name,
		Email:             email,
		PhoneNumber:       input.PhoneNumber,
		InvestmentCapital: capital,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := us.userRepo.Create(ctx, nil, user); err != nil {
		us.log.Error("Failed to create user", "error", err)
		// The creation path echoes the underlying error for diagnostics.
		return nil, apierr.New(http.StatusInternalServerError, "internal_error",
			fmt.Errorf("An error occurred while creating the user: %v", err))
	}
	return user, nil
}

func (us *userService) ListUsers(ctx context.Context) ([]*types.User, error) {
	users, err := us.userRepo.List(ctx, nil)
	if err != nil {
		us.log.Error("Failed to list users", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "internal_error",
			fmt.Errorf("An error occurred while fetching users: %v", err))
	}
	return users, nil
}
