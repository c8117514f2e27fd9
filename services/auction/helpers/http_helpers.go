package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "InvalidBid", "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not accepting bids"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrIncrementTooSmall):
		return http.StatusConflict, "bid below the minimum increment"
	case errors.Is(err, auctionerrors.ErrAlreadyHighestBidder):
		return http.StatusConflict, "bidder already holds the highest bid"
	case errors.Is(err, auctionerrors.ErrMaxBelowCurrent):
		return http.StatusConflict, "agent maximum does not beat the current price"
	case errors.Is(err, auctionerrors.ErrTimeout):
		return http.StatusServiceUnavailable, "auction busy, retry the submission"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusOK, "no bids found for auction"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// SnapshotFromAuction builds the public snapshot view of an auction
func SnapshotFromAuction(a model.Auction) AuctionSnapshot {
	return AuctionSnapshot{
		AuctionID:            a.AuctionID,
		ListingRef:           a.ListingRef,
		Status:               string(a.Status),
		StartingPrice:        a.StartingPrice.String(),
		CurrentHighest:       a.CurrentHighest.String(),
		CurrentHighestBidder: a.CurrentBidderRef,
		StartTime:            a.StartTime.UTC().Format(time.RFC3339),
		EndTime:              a.EndTime.UTC().Format(time.RFC3339),
		ReserveMet:           a.ReserveMet(),
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
