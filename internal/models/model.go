package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Auction represents a time-bounded sale of one artwork
type Auction struct {
	ID           uuid.UUID       `json:"id"`
	ArtworkID    uuid.UUID       `json:"artwork_id"`
	OwnerID      uuid.UUID       `json:"owner_id"`
	StartAmount  decimal.Decimal `json:"start_amount"`
	MinIncrement decimal.Decimal `json:"min_increment"`
	EndsAt       time.Time       `json:"ends_at"`
	CreatedAt    time.Time       `json:"created_at"`
	Settled      bool            `json:"settled"`
	Bids         []Bid           `json:"bids"`
}

// Bid represents an accepted offer against an auction
type Bid struct {
	ID        uuid.UUID       `json:"id"`
	AuctionID uuid.UUID       `json:"auction_id"`
	BidderID  uuid.UUID       `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// AuctionState is derived from the settled flag and the wall clock; it is never stored
type AuctionState string

const (
	StateOpen    AuctionState = "open"
	StateExpired AuctionState = "expired"
	StateSettled AuctionState = "settled"
)

// State reports the lifecycle state of the auction at now
func (a *Auction) State(now time.Time) AuctionState {
	switch {
	case a.Settled:
		return StateSettled
	case !now.Before(a.EndsAt):
		return StateExpired
	default:
		return StateOpen
	}
}

// HighestBid returns the bid with the maximum amount.
// On equal amounts the most recently appended bid wins.
func (a *Auction) HighestBid() (Bid, bool) {
	if len(a.Bids) == 0 {
		return Bid{}, false
	}

	highest := a.Bids[0]
	for _, b := range a.Bids[1:] {
		if b.Amount.GreaterThanOrEqual(highest.Amount) {
			highest = b
		}
	}
	return highest, true
}

// MinAllowed returns the lowest amount the next bid may offer
func (a *Auction) MinAllowed() decimal.Decimal {
	highest, ok := a.HighestBid()
	if !ok {
		return a.StartAmount
	}
	return highest.Amount.Add(a.MinIncrement)
}

// HasBidFrom reports whether bidderID has an accepted bid on the auction
func (a *Auction) HasBidFrom(bidderID uuid.UUID) bool {
	for _, b := range a.Bids {
		if b.BidderID == bidderID {
			return true
		}
	}
	return false
}

// Clone returns a copy whose bid log does not share storage with a
func (a *Auction) Clone() Auction {
	c := *a
	c.Bids = make([]Bid, len(a.Bids))
	copy(c.Bids, a.Bids)
	return c
}
