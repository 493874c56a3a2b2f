package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func bidOf(amount string) Bid {
	return Bid{ID: uuid.New(), BidderID: uuid.New(), Amount: decimal.RequireFromString(amount)}
}

func TestAuction_HighestBid(t *testing.T) {
	tests := []struct {
		name      string
		bids      []Bid
		wantIndex int
	}{
		{name: "no_bids", wantIndex: -1},
		{name: "single_bid", bids: []Bid{bidOf("10")}, wantIndex: 0},
		{name: "highest_in_middle", bids: []Bid{bidOf("10"), bidOf("30"), bidOf("20")}, wantIndex: 1},
		{name: "tie_prefers_latest", bids: []Bid{bidOf("10"), bidOf("30"), bidOf("30.00")}, wantIndex: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Auction{Bids: tc.bids}
			got, ok := a.HighestBid()
			if tc.wantIndex < 0 {
				require.False(t, ok)
				return
			}
			require.True(t, ok)
			require.Equal(t, tc.bids[tc.wantIndex].ID, got.ID)
		})
	}
}

func TestAuction_MinAllowed(t *testing.T) {
	a := Auction{
		StartAmount:  decimal.RequireFromString("100"),
		MinIncrement: decimal.RequireFromString("2.5"),
	}
	require.True(t, a.MinAllowed().Equal(decimal.RequireFromString("100")))

	a.Bids = append(a.Bids, bidOf("100"), bidOf("110"))
	require.True(t, a.MinAllowed().Equal(decimal.RequireFromString("112.5")))
}

func TestAuction_State(t *testing.T) {
	endsAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a := Auction{EndsAt: endsAt}

	require.Equal(t, StateOpen, a.State(endsAt.Add(-time.Second)))
	require.Equal(t, StateExpired, a.State(endsAt))
	require.Equal(t, StateExpired, a.State(endsAt.Add(time.Second)))

	a.Settled = true
	require.Equal(t, StateSettled, a.State(endsAt.Add(-time.Second)))
}

func TestAuction_Clone(t *testing.T) {
	a := Auction{ID: uuid.New(), Bids: []Bid{bidOf("10")}}
	c := a.Clone()
	c.Bids[0].Amount = decimal.RequireFromString("1")

	require.Equal(t, a.ID, c.ID)
	require.True(t, a.Bids[0].Amount.Equal(decimal.RequireFromString("10")))
	require.NotNil(t, (&Auction{}).Clone().Bids)
}

func TestAuction_HasBidFrom(t *testing.T) {
	b := bidOf("10")
	a := Auction{Bids: []Bid{b}}
	require.True(t, a.HasBidFrom(b.BidderID))
	require.False(t, a.HasBidFrom(uuid.New()))
}

func TestBidResult_String(t *testing.T) {
	require.Equal(t, "not_found", BidNotFound.String())
	require.Equal(t, "settled", BidSettled.String())
	require.Equal(t, "expired", BidExpired.String())
	require.Equal(t, "too_low", BidTooLow.String())
	require.Equal(t, "accepted", BidAccepted.String())
	require.Equal(t, "unknown", BidResult(42).String())
}
