package broadcast

import (
	"sync"
	"time"

	"auction-engine/utils"
)

// EventKind identifies a state-change event emitted by the coordinator
type EventKind string

const (
	EventBidAccepted     EventKind = "BidAccepted"
	EventBidRejected     EventKind = "BidRejected"
	EventAuctionExtended EventKind = "AuctionExtended"
	EventAuctionClosed   EventKind = "AuctionClosed"
)

// Event is one state-change notification for an auction's stream.
// BidderRef is set on BidRejected events, which are delivered only to
// the submitting bidder's subscriptions.
type Event struct {
	Kind      EventKind `json:"kind"`
	AuctionID string    `json:"auction_id"`
	BidderRef string    `json:"bidder_ref,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	At        time.Time `json:"at"`
}

const subscriberBuffer = 64

// Subscription is one client's handle on an auction's event stream
type Subscription struct {
	auctionID string
	bidderRef string
	ch        chan Event
}

// Events returns the channel events are delivered on. It is closed when
// the subscription is dropped.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Broadcaster fans events out to the current subscribers of each
// auction. There is no replay: late joiners must fetch a snapshot first.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{} // key: auctionID
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe registers a subscriber for one auction's events. bidderRef
// scopes delivery of BidRejected events and may be empty for observers.
func (b *Broadcaster) Subscribe(auctionID, bidderRef string) *Subscription {
	sub := &Subscription{
		auctionID: auctionID,
		bidderRef: bidderRef,
		ch:        make(chan Event, subscriberBuffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[auctionID] == nil {
		b.subs[auctionID] = make(map[*Subscription]struct{})
	}
	b.subs[auctionID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes the subscription and closes its channel
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[sub.auctionID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(b.subs, sub.auctionID)
	}
	close(sub.ch)
}

// Publish delivers the event to every current subscriber of its auction.
// A subscriber whose buffer is full loses the event; the drop is logged
// so operators can spot consistently slow consumers.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[ev.AuctionID] {
		if ev.Kind == EventBidRejected && sub.bidderRef != ev.BidderRef {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			utils.Warn("broadcast: dropped event for slow subscriber", map[string]any{
				"auction_id": ev.AuctionID,
				"kind":       string(ev.Kind),
			})
		}
	}
}
