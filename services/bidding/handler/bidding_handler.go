package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gallery-auctions/internal/biddingerrors"
	model "gallery-auctions/internal/models"
	"gallery-auctions/services/bidding/helpers"
	"gallery-auctions/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mock_handler.go -package=handler gallery-auctions/services/bidding/handler BiddingServiceInterface

type BiddingServiceInterface interface {
	CreateAuction(artworkID, ownerID uuid.UUID, startAmount, minIncrement decimal.Decimal, endsAt time.Time) (model.Auction, error)
	TryGetAuction(auctionID uuid.UUID) (model.Auction, bool)
	PlaceBid(auctionID, bidderID uuid.UUID, amount decimal.Decimal) (model.BidResult, model.Bid)
	GetBidsForAuction(auctionID uuid.UUID) ([]model.Bid, error)
	GetWinningBid(auctionID uuid.UUID) (model.Bid, error)
	SettleAuction(auctionID uuid.UUID) (model.Auction, error)
	GetAuctionsByBidder(bidderID uuid.UUID) ([]model.Auction, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
	now     func() time.Time
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{
		service: service,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateAuctionHandler handles POST /auctions
func (h *BiddingHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}
	if err := req.Validate(); err != nil {
		helpers.HandleValidationError(c, "CreateAuctionHandler", err)
		return
	}

	artworkID := uuid.MustParse(req.ArtworkID)
	ownerID := uuid.MustParse(req.OwnerID)

	auction, err := h.service.CreateAuction(artworkID, ownerID, *req.StartAmount, *req.MinIncrement, req.EndsAt)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"handler":    "CreateAuctionHandler",
			"artwork_id": req.ArtworkID,
			"owner_id":   req.OwnerID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(auction, h.now()), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.ID.String(),
		"artwork_id": req.ArtworkID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *BiddingHandler) GetAuctionHandler(c *gin.Context) {
	auctionID, ok := helpers.ParseIDParam(c, "GetAuctionHandler", "auction_id")
	if !ok {
		return
	}

	auction, found := h.service.TryGetAuction(auctionID)
	if !found {
		utils.JSONError(c, http.StatusNotFound, biddingerrors.ErrAuctionNotFound, "auction not found")
		utils.Info("GetAuctionHandler: auction not found", map[string]any{"auction_id": auctionID.String()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction, h.now()), "auction retrieved successfully")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	auctionID, ok := helpers.ParseIDParam(c, "PlaceBidHandler", "auction_id")
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}
	if err := req.Validate(); err != nil {
		helpers.HandleValidationError(c, "PlaceBidHandler", err)
		return
	}
	bidderID := uuid.MustParse(req.BidderID)

	result, bid := h.service.PlaceBid(auctionID, bidderID, *req.Amount)
	status, message := helpers.MapBidResultToHTTP(result)

	if result != model.BidAccepted {
		utils.JSONError(c, status, errors.New(result.String()), message)
		utils.Info("PlaceBidHandler: bid rejected", map[string]any{
			"auction_id": auctionID.String(),
			"bidder_id":  req.BidderID,
			"amount":     req.Amount.String(),
			"result":     result.String(),
		})
		return
	}

	utils.JSONResponse(c, status, helpers.NewBidResponse(bid), message)
	helpers.LogSuccess("PlaceBidHandler", message, map[string]any{
		"bid_id":     bid.ID.String(),
		"auction_id": auctionID.String(),
		"bidder_id":  req.BidderID,
		"amount":     bid.Amount.String(),
	})
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *BiddingHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID, ok := helpers.ParseIDParam(c, "GetBidsByAuctionHandler", "auction_id")
	if !ok {
		return
	}

	bids, err := h.service.GetBidsForAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByAuctionHandler: error retrieving bids", map[string]any{"auction_id": auctionID.String(), "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID.String(),
		"count":      len(bids),
	})
}

// GetWinningBidHandler handles GET /auctions/:auction_id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	auctionID, ok := helpers.ParseIDParam(c, "GetWinningBidHandler", "auction_id")
	if !ok {
		return
	}

	bid, err := h.service.GetWinningBid(auctionID)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"auction_id": auctionID.String()})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"auction_id": auctionID.String(), "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.ID.String(),
		"auction_id": auctionID.String(),
		"bidder_id":  bid.BidderID.String(),
		"amount":     bid.Amount.String(),
	})
}

// SettleAuctionHandler handles POST /auctions/:auction_id/settle
func (h *BiddingHandler) SettleAuctionHandler(c *gin.Context) {
	auctionID, ok := helpers.ParseIDParam(c, "SettleAuctionHandler", "auction_id")
	if !ok {
		return
	}

	auction, err := h.service.SettleAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("SettleAuctionHandler: failed to settle auction", map[string]any{"auction_id": auctionID.String(), "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction, h.now()), "auction settled successfully")
	helpers.LogSuccess("SettleAuctionHandler", "auction settled successfully", map[string]any{
		"auction_id": auctionID.String(),
		"bids_count": len(auction.Bids),
	})
}

// GetAuctionsByUserHandler handles GET /users/:user_id/auctions
func (h *BiddingHandler) GetAuctionsByUserHandler(c *gin.Context) {
	userID, ok := helpers.ParseIDParam(c, "GetAuctionsByUserHandler", "user_id")
	if !ok {
		return
	}

	auctions, err := h.service.GetAuctionsByBidder(userID)
	if err != nil && !errors.Is(err, biddingerrors.ErrBidderNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionsByUserHandler: error retrieving auctions", map[string]any{"user_id": userID.String(), "error": err.Error()})
		return
	}

	now := h.now()
	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, helpers.NewAuctionResponse(a, now))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("GetAuctionsByUserHandler", "auctions retrieved successfully", map[string]any{
		"user_id":        userID.String(),
		"auctions_count": len(resp),
	})
}
