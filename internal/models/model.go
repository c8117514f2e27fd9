package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction
type AuctionStatus string

const (
	StatusScheduled       AuctionStatus = "scheduled"
	StatusOpen            AuctionStatus = "open"
	StatusExtendedClosing AuctionStatus = "extended_closing"
	StatusClosed          AuctionStatus = "closed"
	StatusCancelled       AuctionStatus = "cancelled"
)

// IsActive reports whether the auction currently accepts bids
func (s AuctionStatus) IsActive() bool {
	return s == StatusOpen || s == StatusExtendedClosing
}

// IsTerminal reports whether the auction can no longer change state
func (s AuctionStatus) IsTerminal() bool {
	return s == StatusClosed || s == StatusCancelled
}

// IncrementTier defines the minimum bid increment for prices at or above From
type IncrementTier struct {
	From      decimal.Decimal `json:"from"`
	Increment decimal.Decimal `json:"increment"`
}

// Auction represents one vehicle listing under auction
type Auction struct {
	AuctionID        string          `json:"auction_id"`
	ListingRef       string          `json:"listing_ref"`
	StartingPrice    decimal.Decimal `json:"starting_price"`
	ReservePrice     decimal.Decimal `json:"-"` // hidden from bidders, zero means no reserve
	CurrentHighest   decimal.Decimal `json:"current_highest"`
	CurrentBidderRef string          `json:"current_bidder_ref,omitempty"`
	IncrementTiers   []IncrementTier `json:"increment_tiers,omitempty"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          time.Time       `json:"end_time"`
	Status           AuctionStatus   `json:"status"`
	ClosedAt         time.Time       `json:"closed_at,omitempty"`
	CancelReason     string          `json:"cancel_reason,omitempty"`
}

// HasBids reports whether any bid has been accepted yet
func (a Auction) HasBids() bool {
	return a.CurrentBidderRef != ""
}

// HasReserve reports whether the seller set a reserve price
func (a Auction) HasReserve() bool {
	return a.ReservePrice.IsPositive()
}

// ReserveMet reports whether the current highest bid meets the reserve.
// Auctions without a reserve are always considered met.
func (a Auction) ReserveMet() bool {
	if !a.HasReserve() {
		return true
	}
	return a.HasBids() && a.CurrentHighest.GreaterThanOrEqual(a.ReservePrice)
}

// MinIncrement returns the minimum bid increment at the given price,
// picking the highest tier the price has reached.
func (a Auction) MinIncrement(price decimal.Decimal) decimal.Decimal {
	inc := decimal.Zero
	for _, t := range a.IncrementTiers {
		if price.GreaterThanOrEqual(t.From) && t.Increment.GreaterThan(inc) {
			inc = t.Increment
		}
	}
	return inc
}

// BidOutcome records whether a bid attempt was accepted
type BidOutcome string

const (
	OutcomeAccepted BidOutcome = "accepted"
	OutcomeRejected BidOutcome = "rejected"
)

// Bid is one immutable ledger entry for a bid attempt
type Bid struct {
	BidID           string          `json:"bid_id"`
	AuctionID       string          `json:"auction_id"`
	BidderRef       string          `json:"bidder_ref"`
	Amount          decimal.Decimal `json:"amount"`
	Sequence        uint64          `json:"sequence"`
	AgentOriginated bool            `json:"agent_originated"`
	Outcome         BidOutcome      `json:"outcome"`
	RejectReason    string          `json:"reject_reason,omitempty"`
	ResultingPrice  decimal.Decimal `json:"resulting_price"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BidAgent is a bidder-authorized maximum for automatic counter-bidding.
// At most one active agent exists per (auction, bidder) pair.
type BidAgent struct {
	AuctionID    string          `json:"auction_id"`
	BidderRef    string          `json:"bidder_ref"`
	MaxAmount    decimal.Decimal `json:"max_amount"`
	Active       bool            `json:"active"`
	RegisteredAt time.Time       `json:"registered_at"`
}

// CloseOutcome is the final recorded result of a closed auction
type CloseOutcome struct {
	AuctionID  string          `json:"auction_id"`
	Sold       bool            `json:"sold"`
	WinnerRef  string          `json:"winner_ref,omitempty"`
	FinalPrice decimal.Decimal `json:"final_price"`
	ClosedAt   time.Time       `json:"closed_at"`
}
