package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrDuplicateAuction = errors.New("auction already exists")
)

// business logic errors
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNoBids         = errors.New("no bids found for auction")
	ErrBidderNoBids   = errors.New("bidder has not placed any bids")
	ErrAlreadySettled = errors.New("auction already settled")
)
