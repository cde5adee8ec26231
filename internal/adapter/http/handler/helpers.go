package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kudipay/kudipay/internal/adapter/http/dto"
	"github.com/kudipay/kudipay/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrWalletNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRecipientExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDedicatedAccountExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrWithdrawalInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoRecipient):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrGatewayRejected):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
