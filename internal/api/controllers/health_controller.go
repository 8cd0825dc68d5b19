package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"solsub/internal/services"
	"solsub/pkg/utils"
)

type HealthController struct {
	db  *gorm.DB
	rpc services.RPCService
}

func NewHealthController(db *gorm.DB, rpc services.RPCService) *HealthController {
	return &HealthController{
		db:  db,
		rpc: rpc,
	}
}

// Check godoc
// @Summary Health check
// @Description Report whether the database and the RPC node are reachable
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /health [get]
func (h *HealthController) Check(c *gin.Context) {

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, "Database unreachable")
		return
	}

	if err := h.rpc.GetHealth(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"database": "ok", "rpc": "ok"}, "Service healthy")
}
