package helpers

import (
	"fmt"

	"gallery-auctions/internal/biddingerrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bounds on client-supplied amounts
const (
	MaxAmountScale  = 18
	MaxAmountDigits = 38
)

// CheckAmount rejects amounts with more than MaxAmountScale decimal places or
// more than MaxAmountDigits significant or integer digits
func CheckAmount(field string, amount decimal.Decimal) error {
	exp := int64(amount.Exponent())
	if exp < -MaxAmountScale {
		return fmt.Errorf("%w: %s has more than %d decimal places", biddingerrors.ErrInvalidAmount, field, MaxAmountScale)
	}

	digits := int64(amount.NumDigits())
	if digits > MaxAmountDigits || digits+exp > MaxAmountDigits {
		return fmt.Errorf("%w: %s has more than %d digits", biddingerrors.ErrInvalidAmount, field, MaxAmountDigits)
	}
	return nil
}

// checkID rejects the nil UUID, which the uuid binding tag lets through
func checkID(field, raw string) error {
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s is not a uuid", biddingerrors.ErrInvalidRequest, field)
	}
	if id == uuid.Nil {
		return fmt.Errorf("%w: %s must not be the nil uuid", biddingerrors.ErrInvalidRequest, field)
	}
	return nil
}

// Validate checks what binding tags cannot express
func (r *CreateAuctionRequest) Validate() error {
	if err := checkID("artwork_id", r.ArtworkID); err != nil {
		return err
	}
	if err := checkID("owner_id", r.OwnerID); err != nil {
		return err
	}
	if err := CheckAmount("start_amount", *r.StartAmount); err != nil {
		return err
	}
	return CheckAmount("min_increment", *r.MinIncrement)
}

// Validate checks what binding tags cannot express
func (r *PlaceBidRequest) Validate() error {
	if err := checkID("bidder_id", r.BidderID); err != nil {
		return err
	}
	return CheckAmount("amount", *r.Amount)
}
