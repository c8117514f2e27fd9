package repository

import (
	"fmt"
	"sync"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
)

// AuctionStore defines the persistence interface for the auction engine.
// The coordinator is the sole writer; readers receive copies only.
type AuctionStore interface {
	CreateAuction(a model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	UpdateAuction(a model.Auction) error
	ListAuctionsByStatus(statuses ...model.AuctionStatus) ([]model.Auction, error)

	AppendBid(bid model.Bid) error
	GetBidsByAuction(auctionID string) ([]model.Bid, error)

	PutAgent(agent model.BidAgent) error
	GetActiveAgents(auctionID string) ([]model.BidAgent, error)
	DeactivateAgents(auctionID string) error
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionStore
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction              // key: auctionID
	ledger   map[string][]model.Bid                // key: auctionID -> append-only bid attempts
	agents   map[string]map[string]model.BidAgent // key: auctionID -> bidderRef -> agent
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]model.Auction),
		ledger:   make(map[string][]model.Bid),
		agents:   make(map[string]map[string]model.BidAgent),
	}
}

// CreateAuction stores a newly scheduled auction
func (r *MemoryRepo) CreateAuction(a model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[a.AuctionID]; ok {
		return fmt.Errorf("create auction %s: already exists", a.AuctionID)
	}
	r.auctions[a.AuctionID] = a
	return nil
}

// GetAuction returns a copy of the auction record
func (r *MemoryRepo) GetAuction(auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// UpdateAuction replaces the stored auction record
func (r *MemoryRepo) UpdateAuction(a model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[a.AuctionID]; !ok {
		return fmt.Errorf("update auction %s: %w", a.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	r.auctions[a.AuctionID] = a
	return nil
}

// ListAuctionsByStatus returns copies of all auctions in any of the given statuses
func (r *MemoryRepo) ListAuctionsByStatus(statuses ...model.AuctionStatus) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Auction
	for _, a := range r.auctions {
		for _, s := range statuses {
			if a.Status == s {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

// AppendBid appends a bid attempt to the auction's ledger. Entries are
// never mutated or deleted; ledger order is the source of truth for bid
// ordering within an auction.
func (r *MemoryRepo) AppendBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[bid.AuctionID]; !ok {
		return fmt.Errorf("append bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	r.ledger[bid.AuctionID] = append(r.ledger[bid.AuctionID], bid)
	return nil
}

// GetBidsByAuction returns all recorded bid attempts for an auction in ledger order
func (r *MemoryRepo) GetBidsByAuction(auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.ledger[auctionID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return append([]model.Bid(nil), bids...), nil
}

// PutAgent stores an agent registration, replacing any prior agent for
// the same (auction, bidder) pair.
func (r *MemoryRepo) PutAgent(agent model.BidAgent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[agent.AuctionID]; !ok {
		return fmt.Errorf("put agent for auction %s: %w", agent.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	byBidder, ok := r.agents[agent.AuctionID]
	if !ok {
		byBidder = make(map[string]model.BidAgent)
		r.agents[agent.AuctionID] = byBidder
	}
	byBidder[agent.BidderRef] = agent
	return nil
}

// GetActiveAgents returns copies of all active agents for an auction
func (r *MemoryRepo) GetActiveAgents(auctionID string) ([]model.BidAgent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.BidAgent
	for _, ag := range r.agents[auctionID] {
		if ag.Active {
			out = append(out, ag)
		}
	}
	return out, nil
}

// DeactivateAgents marks every agent for the auction inactive, used when
// the auction reaches a terminal state.
func (r *MemoryRepo) DeactivateAgents(auctionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ref, ag := range r.agents[auctionID] {
		ag.Active = false
		r.agents[auctionID][ref] = ag
	}
	return nil
}
