package valuation

import "errors"

// Value-level errors returned by the engine. None of them is fatal to a
// whole aggregation: callers exclude or flag the offending record and
// carry on with the rest.
var (
	// ErrInvalidTrade marks a trade that cannot be valued at all
	// (missing or non-positive entry price or position size).
	ErrInvalidTrade = errors.New("trade has no valid entry price or position size")

	// ErrInvalidInvestment marks an investment with a non-positive amount
	// or price. The investment is excluded from aggregation; other valid
	// investments on the same trade still count.
	ErrInvalidInvestment = errors.New("investment has no valid amount or price")

	// ErrMissingPrice marks an open trade for which no current price could
	// be resolved. Callers should fall back to an entry-price valuation
	// and flag staleness rather than treating the value as zero.
	ErrMissingPrice = errors.New("no current price available for trade")
)
