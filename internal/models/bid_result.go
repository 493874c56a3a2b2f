package models

// BidResult classifies every bid attempt into exactly one outcome
type BidResult int

const (
	BidNotFound BidResult = iota
	BidSettled
	BidExpired
	BidTooLow
	BidAccepted
)

func (r BidResult) String() string {
	switch r {
	case BidNotFound:
		return "not_found"
	case BidSettled:
		return "settled"
	case BidExpired:
		return "expired"
	case BidTooLow:
		return "too_low"
	case BidAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}
