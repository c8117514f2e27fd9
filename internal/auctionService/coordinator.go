package auction

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	core "auction-engine/internal/auctionCore"
	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/broadcast"
	"auction-engine/internal/clock"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

// Config holds the engine tunables applied to every auction
type Config struct {
	AntiSnipeWindow time.Duration
	ExtensionMargin time.Duration
	SubmitTimeout   time.Duration // max wait for an auction's serialization point
	SweepInterval   time.Duration
}

// BidResult reports the outcome of a bid submission to the caller
type BidResult struct {
	Bid              model.Bid       `json:"bid"`
	Accepted         bool            `json:"accepted"`
	ReasonCode       string          `json:"reason_code,omitempty"`
	CurrentHighest   decimal.Decimal `json:"current_highest"`
	CurrentBidderRef string          `json:"current_bidder_ref,omitempty"`
}

// ScheduleParams describes a new auction supplied by the listing subsystem
type ScheduleParams struct {
	ListingRef     string
	StartingPrice  decimal.Decimal
	ReservePrice   decimal.Decimal // zero means no reserve
	IncrementTiers []model.IncrementTier
	StartTime      time.Time
	EndTime        time.Time
}

// Coordinator serializes all mutations per auction: at most one bid is
// evaluated for a given auction at any instant, while different auctions
// proceed independently. It exclusively owns Auction and BidAgent
// mutation and is the ledger's sole writer.
type Coordinator struct {
	store   repository.AuctionStore
	events  *broadcast.Broadcaster
	machine core.StateMachine
	cfg     Config
	sched   *clock.Scheduler

	lockMu sync.Mutex
	locks  map[string]chan struct{} // key: auctionID, cap-1 semaphores

	seq atomic.Uint64 // arrival sequence, assigned at intake

	now func() time.Time // overridable in tests
}

// NewCoordinator wires the coordinator with its own close-timer scheduler
func NewCoordinator(store repository.AuctionStore, events *broadcast.Broadcaster, cfg Config) *Coordinator {
	c := &Coordinator{
		store:  store,
		events: events,
		machine: core.StateMachine{
			AntiSnipeWindow: cfg.AntiSnipeWindow,
			ExtensionMargin: cfg.ExtensionMargin,
		},
		cfg:   cfg,
		locks: make(map[string]chan struct{}),
		now:   time.Now,
	}
	c.sched = clock.NewScheduler(c.handleExpiry)
	return c
}

// Start launches the periodic sweep that opens due auctions and closes
// expired ones, covering timers lost across restarts.
func (c *Coordinator) Start() {
	c.sched.StartSweep(c.cfg.SweepInterval, func() {
		c.OpenDueAuctions()
		c.CloseExpiredAuctions()
	})
}

// Stop halts the sweep and all pending close timers
func (c *Coordinator) Stop() {
	c.sched.Stop()
}

// ScheduleAuction registers a new auction for a listing and arms its
// close timer.
func (c *Coordinator) ScheduleAuction(p ScheduleParams) (model.Auction, error) {
	if p.ListingRef == "" || !p.StartingPrice.IsPositive() || !p.EndTime.After(p.StartTime) {
		return model.Auction{}, fmt.Errorf("coordinator: %w - bad schedule parameters", auctionerrors.ErrInvalidBid)
	}

	a := model.Auction{
		AuctionID:      utils.GenerateID(),
		ListingRef:     p.ListingRef,
		StartingPrice:  p.StartingPrice,
		ReservePrice:   p.ReservePrice,
		IncrementTiers: p.IncrementTiers,
		StartTime:      p.StartTime,
		EndTime:        p.EndTime,
		Status:         model.StatusScheduled,
	}
	if err := c.store.CreateAuction(a); err != nil {
		return model.Auction{}, fmt.Errorf("coordinator: failed to create auction: %w", err)
	}
	c.sched.ScheduleClose(a.AuctionID, a.EndTime)

	utils.Info("coordinator: auction scheduled", map[string]any{
		"auction_id":  a.AuctionID,
		"listing_ref": a.ListingRef,
		"start_time":  a.StartTime,
		"end_time":    a.EndTime,
	})
	return a, nil
}

// SubmitBid validates and applies one bid, including any agent
// counter-bid chain it triggers. The whole submission is one atomic unit
// of work under the auction's serialization point.
func (c *Coordinator) SubmitBid(auctionID, bidderRef string, amount decimal.Decimal) (BidResult, error) {
	if auctionID == "" || bidderRef == "" || !amount.IsPositive() {
		return BidResult{}, fmt.Errorf("coordinator: %w - missing auctionID, bidderRef or non-positive amount", auctionerrors.ErrInvalidBid)
	}

	seq := c.seq.Add(1)

	if !c.acquire(auctionID) {
		return BidResult{ReasonCode: auctionerrors.ReasonCode(auctionerrors.ErrTimeout)},
			fmt.Errorf("coordinator: bid for auction %s: %w", auctionID, auctionerrors.ErrTimeout)
	}
	defer c.release(auctionID)

	a, err := c.store.GetAuction(auctionID)
	if err != nil {
		return BidResult{}, fmt.Errorf("coordinator: %w", err)
	}

	now := c.now()

	// Close on the spot if the end time passed before the timer fired,
	// so no bid sneaks in after the deadline.
	if a.Status.IsActive() && now.After(a.EndTime) {
		a = c.finalize(a, now)
	}

	if err := core.Validate(a, bidderRef, amount, false); err != nil {
		return c.reject(a, bidderRef, amount, seq, now, err)
	}

	accepted := model.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		BidderRef: bidderRef,
		Amount:    amount,
		Sequence:  seq,
		Outcome:   model.OutcomeAccepted,
		CreatedAt: now,
	}

	prevEnd := a.EndTime
	updated, err := c.machine.RecordBid(a, accepted, now)
	if err != nil {
		// Validator guaranteed an active auction, so this is a bug.
		utils.Error("coordinator: state machine rejected validated bid", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return BidResult{}, fmt.Errorf("coordinator: %w: %v", auctionerrors.ErrSubmissionFailed, err)
	}
	accepted.ResultingPrice = updated.CurrentHighest

	if err := c.persist(updated, accepted); err != nil {
		return BidResult{}, err
	}

	// Agent counter-bid chain, each synthetic bid re-validated and
	// ledgered like a human bid.
	updated, lastBid := c.applyAgents(updated, accepted, now)

	extended := updated.EndTime.After(prevEnd)
	if extended {
		c.sched.ScheduleClose(auctionID, updated.EndTime)
	}

	c.publishAccepted(updated, lastBid, extended)

	utils.Info("coordinator: bid accepted", map[string]any{
		"auction_id":      auctionID,
		"bidder_ref":      bidderRef,
		"amount":          amount.String(),
		"current_highest": updated.CurrentHighest.String(),
		"sequence":        seq,
	})

	return BidResult{
		Bid:              accepted,
		Accepted:         true,
		CurrentHighest:   updated.CurrentHighest,
		CurrentBidderRef: updated.CurrentBidderRef,
	}, nil
}

// RegisterAgent records (or replaces) a bidder's maximum for automatic
// counter-bidding on one auction.
func (c *Coordinator) RegisterAgent(auctionID, bidderRef string, maxAmount decimal.Decimal) error {
	if auctionID == "" || bidderRef == "" || !maxAmount.IsPositive() {
		return fmt.Errorf("coordinator: %w - missing auctionID, bidderRef or non-positive maximum", auctionerrors.ErrInvalidBid)
	}

	if !c.acquire(auctionID) {
		return fmt.Errorf("coordinator: agent for auction %s: %w", auctionID, auctionerrors.ErrTimeout)
	}
	defer c.release(auctionID)

	a, err := c.store.GetAuction(auctionID)
	if err != nil {
		return fmt.Errorf("coordinator: %w", err)
	}
	if a.Status.IsTerminal() {
		return fmt.Errorf("coordinator: auction %s is %s: %w", auctionID, a.Status, auctionerrors.ErrAuctionNotActive)
	}

	// A useful maximum has to beat the current highest bid, or at least
	// reach the starting price while no bid exists yet.
	if a.HasBids() {
		if maxAmount.LessThanOrEqual(a.CurrentHighest) {
			return fmt.Errorf("coordinator: maximum %s vs current %s: %w", maxAmount, a.CurrentHighest, auctionerrors.ErrMaxBelowCurrent)
		}
	} else if maxAmount.LessThan(a.StartingPrice) {
		return fmt.Errorf("coordinator: maximum %s vs starting price %s: %w", maxAmount, a.StartingPrice, auctionerrors.ErrMaxBelowCurrent)
	}

	agent := model.BidAgent{
		AuctionID:    auctionID,
		BidderRef:    bidderRef,
		MaxAmount:    maxAmount,
		Active:       true,
		RegisteredAt: c.now(),
	}
	if err := c.store.PutAgent(agent); err != nil {
		return fmt.Errorf("coordinator: failed to store agent: %w", err)
	}

	utils.Info("coordinator: agent registered", map[string]any{
		"auction_id": auctionID,
		"bidder_ref": bidderRef,
		"max_amount": maxAmount.String(),
	})
	return nil
}

// GetAuction returns a read-only copy of the auction record
func (c *Coordinator) GetAuction(auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("coordinator: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}
	a, err := c.store.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("coordinator: %w", err)
	}
	return a, nil
}

// GetBidsForAuction returns the auction's full ledger in recorded order
func (c *Coordinator) GetBidsForAuction(auctionID string) ([]model.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("coordinator: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}
	bids, err := c.store.GetBidsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	return bids, nil
}

// Subscribe attaches a client to one auction's event stream
func (c *Coordinator) Subscribe(auctionID, bidderRef string) *broadcast.Subscription {
	return c.events.Subscribe(auctionID, bidderRef)
}

// Unsubscribe detaches a client from its stream
func (c *Coordinator) Unsubscribe(sub *broadcast.Subscription) {
	c.events.Unsubscribe(sub)
}

// CancelAuction aborts a non-terminal auction by operator action
func (c *Coordinator) CancelAuction(auctionID, reason string) error {
	if !c.acquire(auctionID) {
		return fmt.Errorf("coordinator: cancel auction %s: %w", auctionID, auctionerrors.ErrTimeout)
	}
	defer c.release(auctionID)

	a, err := c.store.GetAuction(auctionID)
	if err != nil {
		return fmt.Errorf("coordinator: %w", err)
	}
	cancelled, err := c.machine.Cancel(a, reason, c.now())
	if err != nil {
		return fmt.Errorf("coordinator: %w", err)
	}
	if err := c.store.UpdateAuction(cancelled); err != nil {
		return fmt.Errorf("coordinator: %w: %v", auctionerrors.ErrSubmissionFailed, err)
	}
	c.store.DeactivateAgents(auctionID)
	c.sched.CancelSchedule(auctionID)

	c.events.Publish(broadcast.Event{
		Kind:      broadcast.EventAuctionClosed,
		AuctionID: auctionID,
		Payload:   map[string]any{"status": cancelled.Status, "reason": reason},
		At:        c.now(),
	})
	utils.Info("coordinator: auction cancelled", map[string]any{"auction_id": auctionID, "reason": reason})
	return nil
}

// OpenDueAuctions transitions every scheduled auction whose start time
// passed to open.
func (c *Coordinator) OpenDueAuctions() {
	due, err := c.store.ListAuctionsByStatus(model.StatusScheduled)
	if err != nil {
		utils.Error("coordinator: failed to list scheduled auctions", map[string]any{"error": err.Error()})
		return
	}
	now := c.now()
	for _, a := range due {
		if now.Before(a.StartTime) {
			continue
		}
		c.openAuction(a.AuctionID)
	}
}

// CloseExpiredAuctions finalizes every active auction whose end time
// passed. Invoked by the clock sweep and safe to call at any time.
func (c *Coordinator) CloseExpiredAuctions() {
	active, err := c.store.ListAuctionsByStatus(model.StatusOpen, model.StatusExtendedClosing)
	if err != nil {
		utils.Error("coordinator: failed to list active auctions", map[string]any{"error": err.Error()})
		return
	}
	now := c.now()
	for _, a := range active {
		if now.Before(a.EndTime) {
			continue
		}
		c.handleExpiry(a.AuctionID)
	}
}

// handleExpiry is the clock's fire callback for one auction
func (c *Coordinator) handleExpiry(auctionID string) {
	if !c.acquire(auctionID) {
		// Lock held past the timeout; the sweep retries.
		utils.Warn("coordinator: expiry deferred, auction busy", map[string]any{"auction_id": auctionID})
		return
	}
	defer c.release(auctionID)

	a, err := c.store.GetAuction(auctionID)
	if err != nil {
		utils.Error("coordinator: expiry for unknown auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	now := c.now()

	if a.Status == model.StatusScheduled && !now.Before(a.StartTime) {
		if opened, err := c.machine.Open(a, now); err == nil {
			if err := c.store.UpdateAuction(opened); err == nil {
				a = opened
			}
		}
	}
	if !a.Status.IsActive() {
		return
	}
	if now.Before(a.EndTime) {
		// Extension re-armed after this timer was queued.
		c.sched.ScheduleClose(auctionID, a.EndTime)
		return
	}
	c.finalize(a, now)
}

// openAuction opens one scheduled auction under its serialization point
func (c *Coordinator) openAuction(auctionID string) {
	if !c.acquire(auctionID) {
		return
	}
	defer c.release(auctionID)

	a, err := c.store.GetAuction(auctionID)
	if err != nil || a.Status != model.StatusScheduled {
		return
	}
	opened, err := c.machine.Open(a, c.now())
	if err != nil {
		return
	}
	if err := c.store.UpdateAuction(opened); err != nil {
		utils.Error("coordinator: failed to persist open", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	utils.Info("coordinator: auction opened", map[string]any{"auction_id": auctionID})
}

// finalize closes an active auction, deactivates its agents and emits
// the AuctionClosed outcome. Caller holds the serialization point.
func (c *Coordinator) finalize(a model.Auction, now time.Time) model.Auction {
	closed, outcome, err := c.machine.Close(a, now)
	if err != nil {
		utils.Error("coordinator: close failed", map[string]any{"auction_id": a.AuctionID, "error": err.Error()})
		return a
	}
	if closed.Status != a.Status {
		if err := c.store.UpdateAuction(closed); err != nil {
			utils.Error("coordinator: failed to persist close", map[string]any{"auction_id": a.AuctionID, "error": err.Error()})
			return a
		}
		c.store.DeactivateAgents(a.AuctionID)
		c.sched.CancelSchedule(a.AuctionID)

		c.events.Publish(broadcast.Event{
			Kind:      broadcast.EventAuctionClosed,
			AuctionID: a.AuctionID,
			Payload:   outcome,
			At:        now,
		})
		utils.Info("coordinator: auction closed", map[string]any{
			"auction_id":  a.AuctionID,
			"sold":        outcome.Sold,
			"final_price": outcome.FinalPrice.String(),
		})
	}
	return closed
}

// reject ledgers a rejected attempt for audit and notifies only the
// submitting bidder. Auction state is untouched.
func (c *Coordinator) reject(a model.Auction, bidderRef string, amount decimal.Decimal, seq uint64, now time.Time, cause error) (BidResult, error) {
	code := auctionerrors.ReasonCode(cause)
	entry := model.Bid{
		BidID:          utils.GenerateID(),
		AuctionID:      a.AuctionID,
		BidderRef:      bidderRef,
		Amount:         amount,
		Sequence:       seq,
		Outcome:        model.OutcomeRejected,
		RejectReason:   code,
		ResultingPrice: a.CurrentHighest,
		CreatedAt:      now,
	}
	if err := c.store.AppendBid(entry); err != nil {
		utils.Warn("coordinator: failed to ledger rejected bid", map[string]any{
			"auction_id": a.AuctionID,
			"error":      err.Error(),
		})
	}

	c.events.Publish(broadcast.Event{
		Kind:      broadcast.EventBidRejected,
		AuctionID: a.AuctionID,
		BidderRef: bidderRef,
		Payload:   map[string]any{"reason": code, "amount": amount, "current_highest": a.CurrentHighest},
		At:        now,
	})

	return BidResult{
		Bid:              entry,
		ReasonCode:       code,
		CurrentHighest:   a.CurrentHighest,
		CurrentBidderRef: a.CurrentBidderRef,
	}, fmt.Errorf("coordinator: bid rejected: %w", cause)
}

// applyAgents runs the proxy agent chain for a freshly accepted bid and
// returns the final auction state and the last accepted bid.
func (c *Coordinator) applyAgents(a model.Auction, last model.Bid, now time.Time) (model.Auction, model.Bid) {
	agents, err := c.store.GetActiveAgents(a.AuctionID)
	if err != nil || len(agents) == 0 {
		return a, last
	}

	for _, syn := range core.Resolve(a, agents) {
		if err := core.Validate(a, syn.BidderRef, syn.Amount, syn.AtCap); err != nil {
			utils.Warn("coordinator: synthetic bid failed validation", map[string]any{
				"auction_id": a.AuctionID,
				"bidder_ref": syn.BidderRef,
				"error":      err.Error(),
			})
			break
		}
		bid := model.Bid{
			BidID:           utils.GenerateID(),
			AuctionID:       a.AuctionID,
			BidderRef:       syn.BidderRef,
			Amount:          syn.Amount,
			Sequence:        c.seq.Add(1),
			AgentOriginated: true,
			Outcome:         model.OutcomeAccepted,
			CreatedAt:       now,
		}
		updated, err := c.machine.RecordBid(a, bid, now)
		if err != nil {
			utils.Error("coordinator: state machine rejected synthetic bid", map[string]any{
				"auction_id": a.AuctionID,
				"error":      err.Error(),
			})
			break
		}
		bid.ResultingPrice = updated.CurrentHighest
		if err := c.persist(updated, bid); err != nil {
			break
		}
		a, last = updated, bid
	}
	return a, last
}

// persist writes one accepted bid and the updated auction as a unit
func (c *Coordinator) persist(a model.Auction, bid model.Bid) error {
	if err := c.store.AppendBid(bid); err != nil {
		utils.Error("coordinator: ledger append failed", map[string]any{
			"auction_id": a.AuctionID,
			"bid_id":     bid.BidID,
			"error":      err.Error(),
		})
		return fmt.Errorf("coordinator: %w: %v", auctionerrors.ErrSubmissionFailed, err)
	}
	if err := c.store.UpdateAuction(a); err != nil {
		utils.Error("coordinator: auction update failed", map[string]any{
			"auction_id": a.AuctionID,
			"error":      err.Error(),
		})
		return fmt.Errorf("coordinator: %w: %v", auctionerrors.ErrSubmissionFailed, err)
	}
	return nil
}

// publishAccepted emits the single net-effect event for a submission,
// plus the extension notice when the anti-snipe window was hit.
func (c *Coordinator) publishAccepted(a model.Auction, last model.Bid, extended bool) {
	now := c.now()
	c.events.Publish(broadcast.Event{
		Kind:      broadcast.EventBidAccepted,
		AuctionID: a.AuctionID,
		Payload: map[string]any{
			"current_highest":    a.CurrentHighest,
			"current_bidder_ref": a.CurrentBidderRef,
			"agent_originated":   last.AgentOriginated,
			"end_time":           a.EndTime,
		},
		At: now,
	})
	if extended {
		c.events.Publish(broadcast.Event{
			Kind:      broadcast.EventAuctionExtended,
			AuctionID: a.AuctionID,
			Payload:   map[string]any{"end_time": a.EndTime},
			At:        now,
		})
	}
}

// acquire takes the auction's serialization point, giving up after the
// configured submit timeout.
func (c *Coordinator) acquire(auctionID string) bool {
	sem := c.sem(auctionID)
	timer := time.NewTimer(c.cfg.SubmitTimeout)
	defer timer.Stop()
	select {
	case sem <- struct{}{}:
		return true
	case <-timer.C:
		return false
	}
}

func (c *Coordinator) release(auctionID string) {
	<-c.sem(auctionID)
}

func (c *Coordinator) sem(auctionID string) chan struct{} {
	c.lockMu.Lock()
	defer c.lockMu.Unlock()
	sem, ok := c.locks[auctionID]
	if !ok {
		sem = make(chan struct{}, 1)
		c.locks[auctionID] = sem
	}
	return sem
}

// IsRejection reports whether err is a user-recoverable rejection rather
// than an internal failure.
func IsRejection(err error) bool {
	for _, target := range []error{
		auctionerrors.ErrAuctionNotActive,
		auctionerrors.ErrBidTooLow,
		auctionerrors.ErrIncrementTooSmall,
		auctionerrors.ErrAlreadyHighestBidder,
		auctionerrors.ErrMaxBelowCurrent,
		auctionerrors.ErrTimeout,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
