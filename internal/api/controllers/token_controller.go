package controllers

import (
	"github.com/gin-gonic/gin"
	"solsub/internal/services"
	"solsub/pkg/utils"
)

type TokenController struct {
	tokenService services.TokenServiceInterface
}

func NewTokenController(tokenService services.TokenServiceInterface) *TokenController {
	return &TokenController{
		tokenService: tokenService,
	}
}

// ListTokens godoc
// @Summary List verified tokens
// @Description Fetch the verified token registry, optionally filtered by symbol prefix
// @Tags Tokens
// @Produce json
// @Param symbol query string false "Symbol prefix filter"
// @Success 200 {object} utils.APIResponse
// @Router /tokens [get]
func (t *TokenController) ListTokens(c *gin.Context) {

	tokens, err := t.tokenService.ListTokens(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tokens, "Tokens fetched successfully")
}
