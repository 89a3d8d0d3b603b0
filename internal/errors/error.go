package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth         = errors.New("missing authorization")
	ErrTokenInvalid      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token is expired")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrStepIncomplete    = errors.New("current step is incomplete")
	ErrNoAddress         = errors.New("no address selected")
	ErrNoTimeSlot        = errors.New("no delivery time selected")
	ErrPaymentIncomplete = errors.New("payment is not complete")
	ErrTierNotSelected   = errors.New("tier has no selected product")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
