package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError translates service-layer errors into HTTP responses.
// Provider errors map by kind; sentinel errors map individually; anything
// unrecognized is logged and hidden behind a 500.
func HandleServiceError(c *gin.Context, err error) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		switch pe.Kind {
		case KindCancelled:
			RespondError(c, http.StatusBadRequest, "Request cancelled by user")
		case KindSecurity:
			RespondError(c, http.StatusForbidden, "Request rejected by wallet service")
		case KindUnavailable:
			log.Printf("Upstream %s unavailable: %v", pe.Service, err)
			RespondError(c, http.StatusServiceUnavailable, "External service unavailable, try again later")
		case KindValidation:
			RespondError(c, http.StatusBadRequest, pe.Message)
		default:
			log.Printf("Upstream %s error: %v", pe.Service, err)
			RespondError(c, http.StatusBadGateway, pe.Message)
		}
		return
	}

	switch {
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, ErrSubscriptionNotFound):
		RespondError(c, http.StatusNotFound, "Subscription not found")
	case errors.Is(err, ErrSubscriptionNotActive):
		RespondError(c, http.StatusConflict, "Subscription is not active")
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusUnauthorized, "No wallet session, connect first")
	case errors.Is(err, ErrSessionExpired):
		RespondError(c, http.StatusUnauthorized, "Wallet session expired, connect again")
	case errors.Is(err, ErrInvalidAddress):
		RespondError(c, http.StatusBadRequest, "Invalid wallet address")
	case errors.Is(err, ErrInvalidAmount):
		RespondError(c, http.StatusBadRequest, "Amount must be greater than zero")
	case errors.Is(err, ErrInvalidCycle):
		RespondError(c, http.StatusBadRequest, "Billing cycle must be weekly, monthly or yearly")
	case errors.Is(err, ErrInsufficientBalance):
		RespondError(c, http.StatusBadRequest, "Amount exceeds wallet balance")
	case errors.Is(err, ErrDuplicatePayment):
		RespondError(c, http.StatusConflict, "Payment signature already recorded")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
