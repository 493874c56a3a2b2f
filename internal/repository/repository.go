package repository

import (
	"fmt"
	"sync"

	"gallery-auctions/internal/biddingerrors"
	model "gallery-auctions/internal/models"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock_repository.go -package=repository gallery-auctions/internal/repository AuctionStore

// AuctionStore defines the auction registry used by the bidding engine
type AuctionStore interface {
	AddAuction(auction model.Auction) error
	GetAuction(auctionID uuid.UUID) (model.Auction, error)
	ListAuctions() []model.Auction
	WithAuctionLock(auctionID uuid.UUID, fn func(auction *model.Auction) error) error
}

// auctionEntry pairs an auction with the mutex that serializes its mutations
type auctionEntry struct {
	mu      sync.Mutex
	auction model.Auction
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionStore.
// The registry lock guards the map only; each auction is mutated under its own lock.
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[uuid.UUID]*auctionEntry // key: auctionID -> value: auction entry
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[uuid.UUID]*auctionEntry),
	}
}

// AddAuction inserts a new auction into the registry
func (r *MemoryRepo) AddAuction(auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.ID]; ok {
		return fmt.Errorf("add auction %s: %w", auction.ID, biddingerrors.ErrDuplicateAuction)
	}

	r.auctions[auction.ID] = &auctionEntry{auction: auction.Clone()}
	return nil
}

// GetAuction returns a snapshot of the auction; the caller owns the returned bid slice
func (r *MemoryRepo) GetAuction(auctionID uuid.UUID) (model.Auction, error) {
	entry, ok := r.entry(auctionID)
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.auction.Clone(), nil
}

// ListAuctions returns snapshots of every auction in the registry
func (r *MemoryRepo) ListAuctions() []model.Auction {
	r.mu.RLock()
	entries := make([]*auctionEntry, 0, len(r.auctions))
	for _, e := range r.auctions {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		auctions = append(auctions, e.auction.Clone())
		e.mu.Unlock()
	}
	return auctions
}

// WithAuctionLock runs fn against the stored auction while holding that auction's lock.
// Mutations made by fn are visible to every later caller.
func (r *MemoryRepo) WithAuctionLock(auctionID uuid.UUID, fn func(auction *model.Auction) error) error {
	entry, ok := r.entry(auctionID)
	if !ok {
		return fmt.Errorf("lock auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(&entry.auction)
}

func (r *MemoryRepo) entry(auctionID uuid.UUID) (*auctionEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.auctions[auctionID]
	return e, ok
}
