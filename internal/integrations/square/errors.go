package square

import "errors"

var (
	// ErrChargeDeclined is returned when the provider processed the request
	// but did not capture the charge.
	ErrChargeDeclined = errors.New("square: charge declined")

	// ErrUnavailable is returned for transport failures, timeouts and
	// unexpected provider responses. A timed-out charge must be treated as
	// failed-unconfirmed, never as captured.
	ErrUnavailable = errors.New("square: provider unavailable")
)
