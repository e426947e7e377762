package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Fund struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	// MinimumInvestmentAmount is nullable on purpose: a fund without a
	// configured minimum cannot accept subscriptions.
	MinimumInvestmentAmount decimal.NullDecimal `gorm:"type:numeric;column:minimum_investment_amount" json:"minimum_investment_amount"`
	Name                    string              `gorm:"not null;column:name" json:"name"`
	Category                string              `gorm:"column:category" json:"category"`
	Status                  string              `gorm:"not null;column:status" json:"status"`
	CreatedAt               time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt               time.Time           `gorm:"not null" json:"updated_at"`
}

func (Fund) TableName() string {
	return "fund"
}
