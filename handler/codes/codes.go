package codes

import (
	"errors"
	"net/http"
	"strconv"

	"loans/core"
	"loans/pkg/fixed"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Of custom code of a twirp error
func Of(twerr twirp.Error) int {
	if code, err := strconv.Atoi(twerr.Meta(CustomCodeKey)); err == nil {
		return code
	}

	return Get(twerr.Code())
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument, twirp.Malformed:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// Status http status of an engine error, rejected operations default to 400
func Status(code core.ErrorCode) int {
	switch code {
	case core.ErrBadOrigin:
		return http.StatusForbidden
	case core.ErrMarketDoesNotExist:
		return http.StatusNotFound
	case core.ErrPriceOracleNotReady:
		return http.StatusServiceUnavailable
	case core.ErrUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// IsArithmetic overflow or division errors raised by the fixed point math
func IsArithmetic(err error) bool {
	return errors.Is(err, fixed.ErrOverflow) ||
		errors.Is(err, fixed.ErrUnderflow) ||
		errors.Is(err, fixed.ErrDivideByZero)
}
