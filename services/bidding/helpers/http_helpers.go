package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"gallery-auctions/internal/biddingerrors"
	model "gallery-auctions/internal/models"
	"gallery-auctions/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// ParseIDParam reads a UUID path parameter, answering 400 itself when it is malformed
func ParseIDParam(c *gin.Context, handlerName, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := utils.ParseID(raw)
	if err != nil {
		wrappedErr := fmt.Errorf("invalid %s %q: %w", param, raw, err)
		utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid "+param)
		utils.Warn(handlerName+": invalid path parameter", map[string]any{param: raw, "error": err.Error()})
		return uuid.Nil, false
	}
	return id, true
}

// HandleValidationError answers 400 for a payload that bound but failed Validate
func HandleValidationError(c *gin.Context, handlerName string, err error) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, err, message)
	utils.Warn(handlerName+": validation error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, biddingerrors.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid amount"
	case errors.Is(err, biddingerrors.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, biddingerrors.ErrAlreadySettled):
		return http.StatusConflict, "auction already settled"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	case errors.Is(err, biddingerrors.ErrBidderNoBids):
		return http.StatusOK, "no auctions found for user"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// MapBidResultToHTTP maps a bid outcome to HTTP status code and message
func MapBidResultToHTTP(result model.BidResult) (int, string) {
	switch result {
	case model.BidAccepted:
		return http.StatusCreated, "bid accepted"
	case model.BidNotFound:
		return http.StatusNotFound, "auction not found"
	case model.BidSettled:
		return http.StatusConflict, "auction already settled"
	case model.BidExpired:
		return http.StatusGone, "auction has ended"
	case model.BidTooLow:
		return http.StatusUnprocessableEntity, "bid amount too low"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
