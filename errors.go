package dutchauction

import "errors"

var (
	// ErrOrderNotValid means the auction window has lapsed; no order is
	// producible now or ever again for these parameters
	ErrOrderNotValid = errors.New("order not valid")

	// ErrOracleFault represents an unusable price-feed reading
	ErrOracleFault = errors.New("oracle fault")

	// ErrArithmeticFault represents an overflow or underflow in the pricing math
	ErrArithmeticFault = errors.New("arithmetic fault")

	// ErrInvalidParam represents an invalid parameter error
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrVerifyMismatch means a claimed order did not match the recomputation
	ErrVerifyMismatch = errors.New("order verification mismatch")
)

// OrderNotValidError carries the reason an evaluation produced no order.
// It unwraps to ErrOrderNotValid so callers can branch on the sentinel.
type OrderNotValidError struct {
	Reason string
}

func (e *OrderNotValidError) Error() string {
	return "order not valid: " + e.Reason
}

// Unwrap makes errors.Is(err, ErrOrderNotValid) hold
func (e *OrderNotValidError) Unwrap() error {
	return ErrOrderNotValid
}

// InvalidParamError represents an invalid parameter error with context
type InvalidParamError struct {
	Message string
}

func (e *InvalidParamError) Error() string {
	return e.Message
}

// Unwrap makes errors.Is(err, ErrInvalidParam) hold
func (e *InvalidParamError) Unwrap() error {
	return ErrInvalidParam
}
