package helpers

import (
	"time"

	model "gallery-auctions/internal/models"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type CreateAuctionRequest struct {
	ArtworkID    string           `json:"artwork_id" binding:"required,uuid"`
	OwnerID      string           `json:"owner_id" binding:"required,uuid"`
	StartAmount  *decimal.Decimal `json:"start_amount" binding:"required"`
	MinIncrement *decimal.Decimal `json:"min_increment" binding:"required"`
	EndsAt       time.Time        `json:"ends_at" binding:"required"`
}

type PlaceBidRequest struct {
	BidderID string           `json:"bidder_id" binding:"required,uuid"`
	Amount   *decimal.Decimal `json:"amount" binding:"required"`
}

type BidResponse struct {
	BidID     string          `json:"bid_id"`
	AuctionID string          `json:"auction_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

type AuctionResponse struct {
	AuctionID    string          `json:"auction_id"`
	ArtworkID    string          `json:"artwork_id"`
	OwnerID      string          `json:"owner_id"`
	StartAmount  decimal.Decimal `json:"start_amount"`
	MinIncrement decimal.Decimal `json:"min_increment"`
	MinAllowed   decimal.Decimal `json:"min_allowed"`
	EndsAt       string          `json:"ends_at"`
	CreatedAt    string          `json:"created_at"`
	Settled      bool            `json:"settled"`
	State        string          `json:"state"`
	BidsCount    int             `json:"bids_count"`
	HighestBid   *BidResponse    `json:"highest_bid,omitempty"`
}

// NewBidResponse converts a model bid into its wire form
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.ID.String(),
		AuctionID: bid.AuctionID.String(),
		BidderID:  bid.BidderID.String(),
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewBidResponses converts a bid log, never returning nil
func NewBidResponses(bids []model.Bid) []BidResponse {
	resp := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, NewBidResponse(b))
	}
	return resp
}

// NewAuctionResponse converts a model auction, deriving its state at now
func NewAuctionResponse(auction model.Auction, now time.Time) AuctionResponse {
	resp := AuctionResponse{
		AuctionID:    auction.ID.String(),
		ArtworkID:    auction.ArtworkID.String(),
		OwnerID:      auction.OwnerID.String(),
		StartAmount:  auction.StartAmount,
		MinIncrement: auction.MinIncrement,
		MinAllowed:   auction.MinAllowed(),
		EndsAt:       auction.EndsAt.UTC().Format(time.RFC3339),
		CreatedAt:    auction.CreatedAt.UTC().Format(time.RFC3339),
		Settled:      auction.Settled,
		State:        string(auction.State(now)),
		BidsCount:    len(auction.Bids),
	}
	if highest, ok := auction.HighestBid(); ok {
		b := NewBidResponse(highest)
		resp.HighestBid = &b
	}
	return resp
}
