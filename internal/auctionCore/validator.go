package core

import (
	"fmt"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

// Validate decides whether a bid is acceptable against an auction
// snapshot. It is side-effect free and deterministic; rules apply in
// order and the first match wins.
//
// Opening-bid policy: the first bid on an auction only has to reach the
// starting price. Subsequent bids must exceed the current highest by at
// least the minimum increment for the current price band.
//
// capBid marks an agent's final bid at its authorized maximum, which is
// exempt from the increment rule but still has to beat the current
// highest. Human bids always pass capBid=false.
func Validate(a model.Auction, bidderRef string, amount decimal.Decimal, capBid bool) error {
	if !a.Status.IsActive() {
		return fmt.Errorf("auction %s is %s: %w", a.AuctionID, a.Status, auctionerrors.ErrAuctionNotActive)
	}

	if !a.HasBids() {
		if amount.LessThan(a.StartingPrice) {
			return fmt.Errorf("opening bid %s below starting price %s: %w",
				amount, a.StartingPrice, auctionerrors.ErrBidTooLow)
		}
		return nil
	}

	if amount.LessThanOrEqual(a.CurrentHighest) {
		return fmt.Errorf("bid %s not above current highest %s: %w",
			amount, a.CurrentHighest, auctionerrors.ErrBidTooLow)
	}

	if !capBid {
		required := a.CurrentHighest.Add(a.MinIncrement(a.CurrentHighest))
		if amount.LessThan(required) {
			return fmt.Errorf("bid %s below required minimum %s: %w",
				amount, required, auctionerrors.ErrIncrementTooSmall)
		}
	}

	if bidderRef == a.CurrentBidderRef {
		return fmt.Errorf("bidder %s: %w", bidderRef, auctionerrors.ErrAlreadyHighestBidder)
	}

	return nil
}
