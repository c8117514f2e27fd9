package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func publishKind(b *Broadcaster, auctionID string, kind EventKind, bidderRef string) {
	b.Publish(Event{
		Kind:      kind,
		AuctionID: auctionID,
		BidderRef: bidderRef,
		At:        time.Now().UTC(),
	})
}

func collect(t *testing.T, sub *Subscription, n int) []Event {
	t.Helper()
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		select {
		case ev := <-sub.Events():
			events = append(events, ev)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
	return events
}

func TestBroadcaster_FanOut(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	sub1 := b.Subscribe("auction1", "bidderA")
	sub2 := b.Subscribe("auction1", "bidderB")
	other := b.Subscribe("auction2", "bidderA")

	publishKind(b, "auction1", EventBidAccepted, "")

	require.Equal(t, EventBidAccepted, collect(t, sub1, 1)[0].Kind)
	require.Equal(t, EventBidAccepted, collect(t, sub2, 1)[0].Kind)

	select {
	case ev := <-other.Events():
		t.Fatalf("subscriber of another auction received %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

// BidRejected events go only to the submitting bidder's subscriptions
func TestBroadcaster_BidRejectedScoping(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	submitter := b.Subscribe("auction1", "bidderA")
	observer := b.Subscribe("auction1", "bidderB")
	anonymous := b.Subscribe("auction1", "")

	publishKind(b, "auction1", EventBidRejected, "bidderA")
	publishKind(b, "auction1", EventAuctionExtended, "")

	events := collect(t, submitter, 2)
	require.Equal(t, EventBidRejected, events[0].Kind)
	require.Equal(t, EventAuctionExtended, events[1].Kind)

	require.Equal(t, EventAuctionExtended, collect(t, observer, 1)[0].Kind)
	require.Equal(t, EventAuctionExtended, collect(t, anonymous, 1)[0].Kind)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	sub := b.Subscribe("auction1", "bidderA")
	b.Unsubscribe(sub)

	_, open := <-sub.Events()
	require.False(t, open, "channel must be closed after unsubscribe")

	// Publishing afterwards must not panic.
	publishKind(b, "auction1", EventAuctionClosed, "")

	// Double unsubscribe is a no-op.
	b.Unsubscribe(sub)
}

// Late joiners get no replay, only events published after subscribing
func TestBroadcaster_NoReplayForLateJoiners(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	publishKind(b, "auction1", EventBidAccepted, "")

	late := b.Subscribe("auction1", "bidderA")
	publishKind(b, "auction1", EventAuctionClosed, "")

	events := collect(t, late, 1)
	require.Equal(t, EventAuctionClosed, events[0].Kind)
	require.Empty(t, late.Events())
}

// A slow subscriber loses events instead of blocking the publisher
func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster()
	sub := b.Subscribe("auction1", "bidderA")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer+10; i++ {
			publishKind(b, "auction1", EventBidAccepted, "")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
	require.Len(t, sub.Events(), subscriberBuffer)
}
