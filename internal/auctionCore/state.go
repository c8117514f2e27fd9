package core

import (
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
)

// StateMachine applies lifecycle transitions to a single auction.
// All methods are pure: they take an auction value and return the
// updated value, leaving persistence to the caller.
type StateMachine struct {
	AntiSnipeWindow time.Duration // late-bid window before end time
	ExtensionMargin time.Duration // how far a late bid pushes the end time
}

// Open transitions a scheduled auction to open once its start time passed.
func (m StateMachine) Open(a model.Auction, now time.Time) (model.Auction, error) {
	if a.Status != model.StatusScheduled {
		return a, fmt.Errorf("open auction %s in status %s: %w", a.AuctionID, a.Status, auctionerrors.ErrInvalidTransition)
	}
	if now.Before(a.StartTime) {
		return a, fmt.Errorf("open auction %s before start time: %w", a.AuctionID, auctionerrors.ErrInvalidTransition)
	}
	a.Status = model.StatusOpen
	return a, nil
}

// RecordBid applies an accepted bid to the auction. A bid landing inside
// the anti-snipe window extends the end time and moves the auction to
// extended closing; further late bids re-extend.
func (m StateMachine) RecordBid(a model.Auction, bid model.Bid, now time.Time) (model.Auction, error) {
	if !a.Status.IsActive() {
		return a, fmt.Errorf("record bid on auction %s in status %s: %w", a.AuctionID, a.Status, auctionerrors.ErrInvalidTransition)
	}
	a.CurrentHighest = bid.Amount
	a.CurrentBidderRef = bid.BidderRef

	if a.EndTime.Sub(now) <= m.AntiSnipeWindow {
		a.EndTime = a.EndTime.Add(m.ExtensionMargin)
		a.Status = model.StatusExtendedClosing
	}
	return a, nil
}

// Close finalizes the auction. Closing an already-closed auction is
// idempotent: it returns the recorded outcome without further effect.
// The outcome reports a winner only when the reserve was met.
func (m StateMachine) Close(a model.Auction, now time.Time) (model.Auction, model.CloseOutcome, error) {
	if a.Status == model.StatusClosed {
		return a, m.outcome(a), nil
	}
	if !a.Status.IsActive() {
		return a, model.CloseOutcome{}, fmt.Errorf("close auction %s in status %s: %w", a.AuctionID, a.Status, auctionerrors.ErrInvalidTransition)
	}
	a.Status = model.StatusClosed
	a.ClosedAt = now
	return a, m.outcome(a), nil
}

// Cancel aborts a non-terminal auction by operator action.
func (m StateMachine) Cancel(a model.Auction, reason string, now time.Time) (model.Auction, error) {
	if a.Status.IsTerminal() {
		return a, fmt.Errorf("cancel auction %s in status %s: %w", a.AuctionID, a.Status, auctionerrors.ErrInvalidTransition)
	}
	a.Status = model.StatusCancelled
	a.ClosedAt = now
	a.CancelReason = reason
	return a, nil
}

func (m StateMachine) outcome(a model.Auction) model.CloseOutcome {
	out := model.CloseOutcome{
		AuctionID:  a.AuctionID,
		FinalPrice: a.CurrentHighest,
		ClosedAt:   a.ClosedAt,
	}
	if a.HasBids() && a.ReserveMet() {
		out.Sold = true
		out.WinnerRef = a.CurrentBidderRef
	}
	return out
}
