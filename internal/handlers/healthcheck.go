package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/fondos-backend/internal/types"
)

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": types.MsgWelcome})
}
