package helpers

// Request/Response DTOs. Amounts arrive as JSON numbers and are returned
// as decimal strings.

type SubmitBidRequest struct {
	AuctionID string  `json:"auction_id" binding:"required"`
	BidderRef string  `json:"bidder_ref" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type SubmitBidResponse struct {
	Accepted             bool   `json:"accepted"`
	Reason               string `json:"reason,omitempty"`
	BidID                string `json:"bid_id,omitempty"`
	CurrentHighest       string `json:"current_highest"`
	CurrentHighestBidder string `json:"current_highest_bidder,omitempty"`
}

type RegisterAgentRequest struct {
	AuctionID string  `json:"auction_id" binding:"required"`
	BidderRef string  `json:"bidder_ref" binding:"required"`
	MaxAmount float64 `json:"max_amount" binding:"required,gt=0"`
}

type RegisterAgentResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

type IncrementTierRequest struct {
	From      float64 `json:"from"`
	Increment float64 `json:"increment" binding:"required,gt=0"`
}

type ScheduleAuctionRequest struct {
	ListingRef     string                 `json:"listing_ref" binding:"required"`
	StartingPrice  float64                `json:"starting_price" binding:"required,gt=0"`
	ReservePrice   float64                `json:"reserve_price" binding:"omitempty,gt=0"`
	IncrementTiers []IncrementTierRequest `json:"increment_tiers" binding:"required,min=1,dive"`
	StartTime      string                 `json:"start_time" binding:"required"`
	EndTime        string                 `json:"end_time" binding:"required"`
}

type CancelAuctionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AuctionSnapshot is the public view of one auction. The reserve amount
// is never exposed, only whether it has been met.
type AuctionSnapshot struct {
	AuctionID            string `json:"auction_id"`
	ListingRef           string `json:"listing_ref"`
	Status               string `json:"status"`
	StartingPrice        string `json:"starting_price"`
	CurrentHighest       string `json:"current_highest"`
	CurrentHighestBidder string `json:"current_highest_bidder,omitempty"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	ReserveMet           bool   `json:"reserve_met"`
}
