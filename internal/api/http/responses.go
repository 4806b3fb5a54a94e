package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
)

// APIResponse is the JSON wrapper every endpoint responds with.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	resp.Timestamp = time.Now()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeCreated(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, APIResponse{
		Success: false,
		Message: message,
		Error:   &APIError{Code: "BAD_REQUEST", Message: message},
	})
}

// writeError maps the service error taxonomy onto HTTP statuses. A saga
// abort is reported with its compensation outcome so callers can tell a
// clean rejection from a partial failure.
func writeError(w http.ResponseWriter, err error) {
	if domain.IsValidation(err) {
		writeBadRequest(w, err.Error())
		return
	}
	var sagaErr *domain.SagaAbortedError
	if errors.As(err, &sagaErr) {
		writeJSON(w, http.StatusConflict, APIResponse{
			Success: false,
			Message: err.Error(),
			Error: &APIError{
				Code:    "SAGA_ABORTED",
				Message: err.Error(),
				Details: map[string]interface{}{
					"saga_id":              sagaErr.SagaID.String(),
					"failed_step":          sagaErr.Step,
					"compensated":          sagaErr.Compensated,
					"failed_compensations": sagaErr.FailedComps,
				},
			},
		})
		return
	}
	if domain.IsBusiness(err) {
		writeJSON(w, http.StatusConflict, APIResponse{
			Success: false,
			Message: err.Error(),
			Error:   &APIError{Code: "CONFLICT", Message: err.Error()},
		})
		return
	}
	if domain.IsCollaborator(err) {
		writeJSON(w, http.StatusBadGateway, APIResponse{
			Success: false,
			Message: err.Error(),
			Error:   &APIError{Code: "COLLABORATOR_FAILURE", Message: err.Error()},
		})
		return
	}
	logger.Error("Unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, APIResponse{
		Success: false,
		Message: "internal server error",
		Error:   &APIError{Code: "INTERNAL_SERVER_ERROR", Message: "internal server error"},
	})
}
