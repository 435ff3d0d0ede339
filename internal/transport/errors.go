package transport

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/goodnatureofminers/bitcredit-backend/internal/chain"
	"github.com/goodnatureofminers/bitcredit-backend/internal/network"
	"github.com/goodnatureofminers/bitcredit-backend/internal/service"
)

func errorCode(err error) codes.Code {
	switch {
	case errors.Is(err, service.ErrUnknownBill):
		return codes.NotFound
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, chain.ErrMalformedPayload):
		return codes.InvalidArgument
	case errors.Is(err, service.ErrNotHolder), errors.Is(err, service.ErrNotDrawee):
		return codes.PermissionDenied
	case errors.Is(err, service.ErrAlreadyAccepted),
		errors.Is(err, service.ErrWaitingForPayment),
		errors.Is(err, chain.ErrBillExists):
		return codes.FailedPrecondition
	case errors.Is(err, chain.ErrValidation):
		return codes.Aborted
	case errors.Is(err, service.ErrNoProviders), errors.Is(err, network.ErrNetwork):
		return codes.Unavailable
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

func toStatus(err error) error {
	return status.Error(errorCode(err), err.Error())
}

func httpStatus(err error) int {
	switch errorCode(err) {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.FailedPrecondition, codes.Aborted:
		return http.StatusConflict
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
