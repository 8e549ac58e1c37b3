package httpinterface

import (
	"net/http"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/pkg/wallet"
)

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	errKindInvalidRequest = "invalid_request"
	errKindNotFound       = "not_found"
	errKindConflict       = "conflict"
	errKindUnavailable    = "unavailable"
	errKindInternal       = "internal"
)

// statusForError maps service errors to HTTP statuses. Domain misuse is the
// caller's fault, unavailable collaborators map to 502 so clients can tell
// retryable failures apart.
func statusForError(err error) (int, string) {
	switch err {
	case domain.ErrAccountNotFound, domain.ErrAddressNotFound:
		return http.StatusNotFound, errKindNotFound
	case domain.ErrAccountAlreadyExists, domain.ErrLedgerEntryAlreadyExists:
		return http.StatusConflict, errKindConflict
	case application.ErrInsufficientFunds,
		application.ErrNoUnspentOutputs,
		application.ErrNoFundedSource:
		return http.StatusBadRequest, errKindInvalidRequest
	// transaction building fails on caller-provided addresses and amounts
	case wallet.ErrInvalidOutputAddress,
		wallet.ErrInvalidChangeAddress,
		wallet.ErrInsufficientFunds,
		wallet.ErrEmptyUnspents,
		wallet.ErrEmptyOutputs,
		wallet.ErrOutOfRangeDerivationIndex:
		return http.StatusBadRequest, errKindInvalidRequest
	case application.ErrPriceUnavailable, application.ErrChainLookup:
		return http.StatusBadGateway, errKindUnavailable
	default:
		return http.StatusInternalServerError, errKindInternal
	}
}

func writeServiceError(res http.ResponseWriter, err error) {
	status, kind := statusForError(err)
	writeJSON(res, status, errorResponse{Kind: kind, Message: err.Error()})
}

func writeError(res http.ResponseWriter, status int, message string) {
	writeJSON(res, status, errorResponse{
		Kind:    errKindInvalidRequest,
		Message: message,
	})
}
