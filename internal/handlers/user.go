package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yungbote/fondos-backend/internal/services"
	"github.com/yungbote/fondos-backend/internal/types"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Name              string              `json:"name" binding:"required"`
	Email             string              `json:"email" binding:"required"`
	PhoneNumber       *string             `json:"phone_number"`
	InvestmentCapital decimal.NullDecimal `json:"investment_capital"`
}

func (uh *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	user, err := uh.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Name:              req.Name,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		InvestmentCapital: req.InvestmentCapital,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"detail": types.MsgUserCreated, "user": user})
}

func (uh *UserHandler) ListUsers(c *gin.Context) {
	users, err := uh.userService.ListUsers(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, users)
}
