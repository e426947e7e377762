package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultInvestmentCapital is the starting balance (Colombian pesos) assigned
// when a user is created without an explicit investment_capital. It is applied
// at creation time only.
var DefaultInvestmentCapital = decimal.NewFromInt(500000)

type User struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string          `gorm:"not null;column:name" json:"name"`
	Email             string          `gorm:"not null;column:email" json:"email"`
	PhoneNumber       *string         `gorm:"column:phone_number" json:"phone_number,omitempty"`
	InvestmentCapital decimal.Decimal `gorm:"type:numeric;not null;column:investment_capital" json:"investment_capital"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
