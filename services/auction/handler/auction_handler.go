package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	auction "auction-engine/internal/auctionService"
	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/broadcast"
	model "auction-engine/internal/models"
	"auction-engine/services/auction/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CoordinatorInterface interface {
	SubmitBid(auctionID, bidderRef string, amount decimal.Decimal) (auction.BidResult, error)
	RegisterAgent(auctionID, bidderRef string, maxAmount decimal.Decimal) error
	ScheduleAuction(p auction.ScheduleParams) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	GetBidsForAuction(auctionID string) ([]model.Bid, error)
	CancelAuction(auctionID, reason string) error
	Subscribe(auctionID, bidderRef string) *broadcast.Subscription
	Unsubscribe(sub *broadcast.Subscription)
}

type AuctionHandler struct {
	service CoordinatorInterface
}

func NewAuctionHandler(service CoordinatorInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// SubmitBidHandler handles POST /bids
func (h *AuctionHandler) SubmitBidHandler(c *gin.Context) {
	var req helpers.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitBidHandler", err)
		return
	}

	result, err := h.service.SubmitBid(req.AuctionID, req.BidderRef, decimal.NewFromFloat(req.Amount))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if auction.IsRejection(err) {
			// Rejections are part of normal bidding; the response carries
			// the stable reason code plus the current price so the UI can
			// tell "you were outbid" apart from input errors.
			resp := helpers.SubmitBidResponse{
				Accepted:             false,
				Reason:               result.ReasonCode,
				CurrentHighest:       result.CurrentHighest.String(),
				CurrentHighestBidder: result.CurrentBidderRef,
			}
			c.JSON(status, gin.H{"status": status, "message": message, "data": resp})
			utils.Info("SubmitBidHandler: bid rejected", map[string]any{
				"auction_id": req.AuctionID,
				"bidder_ref": req.BidderRef,
				"reason":     result.ReasonCode,
			})
			return
		}
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), auctionerrors.ReasonCode(err), message)
		utils.Error("SubmitBidHandler: failed to submit bid", map[string]any{
			"auction_id": req.AuctionID,
			"bidder_ref": req.BidderRef,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.SubmitBidResponse{
		Accepted:             true,
		BidID:                result.Bid.BidID,
		CurrentHighest:       result.CurrentHighest.String(),
		CurrentHighestBidder: result.CurrentBidderRef,
	}
	utils.JSONResponse(c, http.StatusCreated, resp, "bid accepted")
	helpers.LogSuccess("SubmitBidHandler", "bid accepted", map[string]any{
		"bid_id":          result.Bid.BidID,
		"auction_id":      req.AuctionID,
		"bidder_ref":      req.BidderRef,
		"current_highest": result.CurrentHighest.String(),
	})
}

// RegisterAgentHandler handles POST /agents
func (h *AuctionHandler) RegisterAgentHandler(c *gin.Context) {
	var req helpers.RegisterAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterAgentHandler", err)
		return
	}

	err := h.service.RegisterAgent(req.AuctionID, req.BidderRef, decimal.NewFromFloat(req.MaxAmount))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if auction.IsRejection(err) {
			resp := helpers.RegisterAgentResponse{Accepted: false, Reason: auctionerrors.ReasonCode(err)}
			c.JSON(status, gin.H{"status": status, "message": message, "data": resp})
			utils.Info("RegisterAgentHandler: agent rejected", map[string]any{
				"auction_id": req.AuctionID,
				"bidder_ref": req.BidderRef,
				"reason":     auctionerrors.ReasonCode(err),
			})
			return
		}
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), auctionerrors.ReasonCode(err), message)
		utils.Error("RegisterAgentHandler: failed to register agent", map[string]any{
			"auction_id": req.AuctionID,
			"bidder_ref": req.BidderRef,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.RegisterAgentResponse{Accepted: true}, "agent registered")
	helpers.LogSuccess("RegisterAgentHandler", "agent registered", map[string]any{
		"auction_id": req.AuctionID,
		"bidder_ref": req.BidderRef,
		"max_amount": req.MaxAmount,
	})
}

// ScheduleAuctionHandler handles POST /auctions
func (h *AuctionHandler) ScheduleAuctionHandler(c *gin.Context) {
	var req helpers.ScheduleAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ScheduleAuctionHandler", err)
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		helpers.HandleBindError(c, "ScheduleAuctionHandler", fmt.Errorf("start_time: %w", err))
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		helpers.HandleBindError(c, "ScheduleAuctionHandler", fmt.Errorf("end_time: %w", err))
		return
	}

	tiers := make([]model.IncrementTier, 0, len(req.IncrementTiers))
	for _, t := range req.IncrementTiers {
		tiers = append(tiers, model.IncrementTier{
			From:      decimal.NewFromFloat(t.From),
			Increment: decimal.NewFromFloat(t.Increment),
		})
	}

	a, err := h.service.ScheduleAuction(auction.ScheduleParams{
		ListingRef:     req.ListingRef,
		StartingPrice:  decimal.NewFromFloat(req.StartingPrice),
		ReservePrice:   decimal.NewFromFloat(req.ReservePrice),
		IncrementTiers: tiers,
		StartTime:      startTime,
		EndTime:        endTime,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), auctionerrors.ReasonCode(err), message)
		utils.Error("ScheduleAuctionHandler: failed to schedule auction", map[string]any{
			"listing_ref": req.ListingRef,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.SnapshotFromAuction(a), "auction scheduled")
	helpers.LogSuccess("ScheduleAuctionHandler", "auction scheduled", map[string]any{
		"auction_id":  a.AuctionID,
		"listing_ref": a.ListingRef,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.GetAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), auctionerrors.ReasonCode(err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.SnapshotFromAuction(a), "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"status":     string(a.Status),
	})
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.GetBidsForAuction(auctionID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), auctionerrors.ReasonCode(err), message)
		utils.Warn("GetBidsByAuctionHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// CancelAuctionHandler handles POST /auctions/:auction_id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	var req helpers.CancelAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CancelAuctionHandler", err)
		return
	}

	if err := h.service.CancelAuction(auctionID, req.Reason); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), auctionerrors.ReasonCode(err), message)
		utils.Warn("CancelAuctionHandler: cancel failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction cancelled")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled", map[string]any{
		"auction_id": auctionID,
		"reason":     req.Reason,
	})
}

// StreamEventsHandler handles GET /auctions/:auction_id/events as an SSE
// stream. There is no replay: clients fetch a snapshot first, then
// subscribe. bidder_ref scopes delivery of BidRejected events.
func (h *AuctionHandler) StreamEventsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	if _, err := h.service.GetAuction(auctionID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), auctionerrors.ReasonCode(err), message)
		return
	}

	sub := h.service.Subscribe(auctionID, c.Query("bidder_ref"))
	defer h.service.Unsubscribe(sub)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Kind), ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
