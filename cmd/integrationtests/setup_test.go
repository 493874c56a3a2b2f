package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bidding "gallery-auctions/internal/biddingService"
	"gallery-auctions/internal/metrics"
	"gallery-auctions/internal/repository"
	"gallery-auctions/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// SetupTestRouter initializes the router with in-memory repository for integration testing.
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := metrics.New(prometheus.NewRegistry())
	repo := repository.NewMemoryRepo()
	service := bidding.NewBiddingService(repo, bidding.WithMetrics(m))
	return server.SetupRouter(service, m)
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
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
	if len(w.Body.Bytes()) > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// CreateTestAuction creates an auction through the API and returns its id
func CreateTestAuction(t *testing.T, router *gin.Engine, start, increment string, endsAt time.Time) string {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions", map[string]any{
		"artwork_id":    uuid.NewString(),
		"owner_id":      uuid.NewString(),
		"start_amount":  start,
		"min_increment": increment,
		"ends_at":       endsAt.UTC().Format(time.RFC3339Nano),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return resp["data"].(map[string]any)["auction_id"].(string)
}

// PlaceTestBid places a bid through the API and returns the HTTP status
func PlaceTestBid(t *testing.T, router *gin.Engine, auctionID, bidderID, amount string) int {
	t.Helper()
	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids", map[string]any{
		"bidder_id": bidderID,
		"amount":    amount,
	})
	return w.Code
}

// PlaceTestBidFrom places a bid with the given X-Forwarded-For header and returns the HTTP status
func PlaceTestBidFrom(t *testing.T, router *gin.Engine, auctionID, amount, forwardedFor string) int {
	t.Helper()
	body, err := json.Marshal(map[string]any{"bidder_id": uuid.NewString(), "amount": amount})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auctions/"+auctionID+"/bids", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}
