package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "auction-engine/internal/auctionService"
	"auction-engine/internal/broadcast"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupTestEngine wires a full engine over the in-memory store for
// integration testing and returns the router plus the coordinator for
// clock-driven operations.
func SetupTestEngine() (*gin.Engine, *auction.Coordinator) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	events := broadcast.NewBroadcaster()
	coordinator := auction.NewCoordinator(repo, events, auction.Config{
		AntiSnipeWindow: 60 * time.Second,
		ExtensionMargin: 120 * time.Second,
		SubmitTimeout:   2 * time.Second,
		SweepInterval:   time.Hour,
	})
	router := server.SetupRouter(coordinator)
	return router, coordinator
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// dataObject extracts the data payload from an engine response envelope
func dataObject(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response must carry a data object, got: %v", resp)
	return data
}

// ScheduleOpenAuction schedules an auction over HTTP with a past start
// time and opens it through the coordinator's sweep, returning its id.
func ScheduleOpenAuction(t *testing.T, router *gin.Engine, coordinator *auction.Coordinator, startingPrice, reservePrice float64) string {
	t.Helper()

	now := time.Now().UTC()
	req := helpers.ScheduleAuctionRequest{
		ListingRef:    "listing-integration",
		StartingPrice: startingPrice,
		ReservePrice:  reservePrice,
		IncrementTiers: []helpers.IncrementTierRequest{
			{From: 0, Increment: 50},
		},
		StartTime: now.Add(-time.Minute).Format(time.RFC3339),
		EndTime:   now.Add(24 * time.Hour).Format(time.RFC3339),
	}

	resp, w := ExecuteRequestAndParse(t, router, "POST", "/auctions", req)
	require.Equal(t, 201, w.Code, "schedule failed: %v", resp)

	auctionID := dataObject(t, resp)["auction_id"].(string)
	require.NotEmpty(t, auctionID)

	coordinator.OpenDueAuctions()
	return auctionID
}
