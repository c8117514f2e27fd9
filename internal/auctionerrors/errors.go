package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrNoBids          = errors.New("no bids found for auction")
	ErrAgentNotFound   = errors.New("no active agent for bidder")
)

// Business logic errors, returned synchronously to the caller
var (
	ErrInvalidBid           = errors.New("invalid bid")
	ErrAuctionNotActive     = errors.New("auction not active")
	ErrBidTooLow            = errors.New("bid amount too low")
	ErrIncrementTooSmall    = errors.New("bid increment too small")
	ErrAlreadyHighestBidder = errors.New("bidder already holds the highest bid")
	ErrMaxBelowCurrent      = errors.New("agent maximum below current highest bid")
	ErrTimeout              = errors.New("timed out waiting for auction serialization")
	ErrSubmissionFailed     = errors.New("bid submission failed, state not recorded")
)

// ErrInvalidTransition signals state machine misuse. It should be
// impossible under correct coordinator use.
var ErrInvalidTransition = errors.New("invalid auction state transition")

// ReasonCode returns the stable machine-readable code for a rejection
// error, or an empty string if the error is not a known rejection.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrAuctionNotActive):
		return "AuctionNotActive"
	case errors.Is(err, ErrBidTooLow):
		return "BidTooLow"
	case errors.Is(err, ErrIncrementTooSmall):
		return "IncrementTooSmall"
	case errors.Is(err, ErrAlreadyHighestBidder):
		return "AlreadyHighestBidder"
	case errors.Is(err, ErrMaxBelowCurrent):
		return "MaxBelowCurrent"
	case errors.Is(err, ErrTimeout):
		return "Timeout"
	case errors.Is(err, ErrSubmissionFailed):
		return "SubmissionFailed"
	case errors.Is(err, ErrInvalidTransition):
		return "InvalidTransition"
	case errors.Is(err, ErrInvalidBid):
		return "InvalidBid"
	default:
		return ""
	}
}
