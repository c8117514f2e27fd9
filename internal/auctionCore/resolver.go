package core

import (
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

// SyntheticBid is one automatic counter-bid produced by agent resolution
type SyntheticBid struct {
	BidderRef string
	Amount    decimal.Decimal
	AtCap     bool // bid placed at the agent's authorized maximum
}

// Resolve computes the chain of automatic counter-bids triggered after an
// accepted bid. The snapshot must already reflect that bid.
//
// Each round picks the eligible agent with the highest maximum (ties go
// to the earlier registration), which counter-bids at current price plus
// the minimum increment, capped at its maximum. When the top two maxima
// tie, the earlier agent bids its maximum outright, which silences the
// later agent. The chain terminates because every round strictly raises
// the current price and agent maxima are fixed.
//
// Resolution is pure: the caller re-validates and applies each synthetic
// bid through the state machine and ledger like a human bid.
func Resolve(a model.Auction, agents []model.BidAgent) []SyntheticBid {
	price := a.CurrentHighest
	leader := a.CurrentBidderRef

	var chain []SyntheticBid
	for {
		best, tied := pickAgent(agents, price, leader)
		if best == nil {
			return chain
		}

		amount := price.Add(a.MinIncrement(price))
		if tied || amount.GreaterThan(best.MaxAmount) {
			amount = best.MaxAmount
		}
		if !amount.GreaterThan(price) {
			return chain
		}

		chain = append(chain, SyntheticBid{
			BidderRef: best.BidderRef,
			Amount:    amount,
			AtCap:     amount.Equal(best.MaxAmount),
		})
		price = amount
		leader = best.BidderRef
	}
}

// pickAgent selects the eligible agent with the highest maximum, ties
// broken by earlier registration. tied reports whether another eligible
// agent shares that maximum.
func pickAgent(agents []model.BidAgent, price decimal.Decimal, leader string) (best *model.BidAgent, tied bool) {
	for i := range agents {
		ag := &agents[i]
		if !ag.Active || ag.BidderRef == leader || !ag.MaxAmount.GreaterThan(price) {
			continue
		}
		switch {
		case best == nil:
			best, tied = ag, false
		case ag.MaxAmount.GreaterThan(best.MaxAmount):
			best, tied = ag, false
		case ag.MaxAmount.Equal(best.MaxAmount):
			tied = true
			if ag.RegisteredAt.Before(best.RegisteredAt) {
				best = ag
			}
		}
	}
	return best, tied
}
