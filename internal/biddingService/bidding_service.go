package bidding

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"gallery-auctions/internal/biddingerrors"
	"gallery-auctions/internal/metrics"
	"gallery-auctions/internal/models"
	"gallery-auctions/internal/repository"
	"gallery-auctions/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BiddingService owns auction creation, lookup and bid acceptance
type BiddingService struct {
	repo    repository.AuctionStore
	now     func() time.Time
	metrics *metrics.Metrics
}

// Option configures a BiddingService
type Option func(*BiddingService)

// WithClock overrides the wall clock used for timestamps and expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *BiddingService) {
		s.now = now
	}
}

// WithMetrics records auction and bid outcomes on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BiddingService) {
		s.metrics = m
	}
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionStore, opts ...Option) *BiddingService {
	s := &BiddingService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAuction registers a new auction for an artwork.
// Terms are stored as given; nothing is validated against each other or the clock.
func (s *BiddingService) CreateAuction(artworkID, ownerID uuid.UUID, startAmount, minIncrement decimal.Decimal, endsAt time.Time) (models.Auction, error) {
	auction := models.Auction{
		ID:           utils.GenerateID(),
		ArtworkID:    artworkID,
		OwnerID:      ownerID,
		StartAmount:  startAmount,
		MinIncrement: minIncrement,
		EndsAt:       endsAt,
		CreatedAt:    s.now(),
		Bids:         []models.Bid{},
	}

	if err := s.repo.AddAuction(auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction for artwork %s: %w", artworkID, err)
	}

	s.metrics.ObserveAuctionCreated()
	utils.Info("auction created", map[string]any{
		"auction_id":    auction.ID.String(),
		"artwork_id":    artworkID.String(),
		"start_amount":  startAmount.String(),
		"min_increment": minIncrement.String(),
		"ends_at":       endsAt.Format(time.RFC3339),
	})
	return auction, nil
}

// TryGetAuction returns a snapshot of the auction and whether it exists
func (s *BiddingService) TryGetAuction(auctionID uuid.UUID) (models.Auction, bool) {
	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.Auction{}, false
	}
	return auction, true
}

// PlaceBid classifies a bid attempt and appends it when accepted.
// The checks run in order and stop at the first match: not found, settled,
// expired, too low, accepted. The floor and the append happen under the
// auction's lock, so two bids can never both clear the same floor.
func (s *BiddingService) PlaceBid(auctionID, bidderID uuid.UUID, amount decimal.Decimal) (models.BidResult, models.Bid) {
	var (
		result   models.BidResult
		accepted models.Bid
		floor    decimal.Decimal
	)

	err := s.repo.WithAuctionLock(auctionID, func(auction *models.Auction) error {
		now := s.now()

		if auction.Settled {
			result = models.BidSettled
			return nil
		}
		if !now.Before(auction.EndsAt) {
			result = models.BidExpired
			return nil
		}

		floor = auction.MinAllowed()
		if amount.LessThan(floor) {
			result = models.BidTooLow
			return nil
		}

		accepted = models.Bid{
			ID:        utils.GenerateID(),
			AuctionID: auction.ID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: now,
		}
		auction.Bids = append(auction.Bids, accepted)
		result = models.BidAccepted
		return nil
	})
	if err != nil {
		// the lock callback never fails, so any error means the auction is unknown
		result = models.BidNotFound
	}

	s.metrics.ObserveBid(result)
	s.logBid(auctionID, bidderID, amount, floor, result)

	if result != models.BidAccepted {
		return result, models.Bid{}
	}
	return result, accepted
}

func (s *BiddingService) logBid(auctionID, bidderID uuid.UUID, amount, floor decimal.Decimal, result models.BidResult) {
	fields := map[string]any{
		"auction_id": auctionID.String(),
		"bidder_id":  bidderID.String(),
		"amount":     amount.String(),
		"result":     result.String(),
	}

	switch result {
	case models.BidAccepted:
		utils.Info("bid accepted", fields)
	case models.BidTooLow:
		fields["min_allowed"] = floor.String()
		utils.Info("bid rejected", fields)
	default:
		utils.Warn("bid rejected", fields)
	}
}

// GetBidsForAuction returns the bid log of an auction in arrival order
func (s *BiddingService) GetBidsForAuction(auctionID uuid.UUID) ([]models.Bid, error) {
	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}

	return auction.Bids, nil
}

// GetWinningBid returns the current highest bid of an auction
func (s *BiddingService) GetWinningBid(auctionID uuid.UUID) (models.Bid, error) {
	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %s: %w", auctionID, err)
	}

	highest, ok := auction.HighestBid()
	if !ok {
		return models.Bid{}, fmt.Errorf("service: auction %s: %w", auctionID, biddingerrors.ErrNoBids)
	}

	return highest, nil
}

// SettleAuction marks the auction as finalized. Later bids are rejected as settled.
// Settling does not depend on the end time; whoever calls it decides when the sale closes.
func (s *BiddingService) SettleAuction(auctionID uuid.UUID) (models.Auction, error) {
	var settled models.Auction

	err := s.repo.WithAuctionLock(auctionID, func(auction *models.Auction) error {
		if auction.Settled {
			return biddingerrors.ErrAlreadySettled
		}
		auction.Settled = true
		settled = auction.Clone()
		return nil
	})
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to settle auction %s: %w", auctionID, err)
	}

	s.metrics.ObserveSettlement()
	fields := map[string]any{
		"auction_id": auctionID.String(),
		"bids_count": len(settled.Bids),
	}
	if winner, ok := settled.HighestBid(); ok {
		fields["winner_id"] = winner.BidderID.String()
		fields["amount"] = winner.Amount.String()
	}
	utils.Info("auction settled", fields)

	return settled, nil
}

// GetAuctionsByBidder returns every auction in which the bidder holds an accepted bid
func (s *BiddingService) GetAuctionsByBidder(bidderID uuid.UUID) ([]models.Auction, error) {
	if bidderID == uuid.Nil {
		return nil, fmt.Errorf("service: %w - empty bidder ID", biddingerrors.ErrInvalidRequest)
	}

	var auctions []models.Auction
	for _, a := range s.repo.ListAuctions() {
		if a.HasBidFrom(bidderID) {
			auctions = append(auctions, a)
		}
	}

	if len(auctions) == 0 {
		return nil, fmt.Errorf("service: get auctions for bidder %s: %w", bidderID, biddingerrors.ErrBidderNoBids)
	}

	// creation time, then ID, so equal timestamps keep a fixed order across calls
	sort.SliceStable(auctions, func(i, j int) bool {
		a, b := auctions[i], auctions[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
	return auctions, nil
}
