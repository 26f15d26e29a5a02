// internal/server/response.go
package server

import (
	"encoding/json"
	"io"
	"net/http"

	commonerrors "lookup-relay/internal/common/errors"
)

type successResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errorResponse struct {
	Status string       `json:"status"`
	Error  errorPayload `json:"error"`
}

type errorPayload struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, successResponse{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string, details interface{}, requestID string) {
	writeJSON(w, status, errorResponse{
		Status: "error",
		Error:  errorPayload{Code: code, Message: message, Details: details, RequestID: requestID},
	})
}

// writeInvalidPayload answers 400 INVALID_PAYLOAD. Field errors, when present, replace the
// textual details.
func writeInvalidPayload(w http.ResponseWriter, r *http.Request, details string, fieldErrors interface{}) {
	stdErr := commonerrors.NewInvalidPayloadError(details)
	var out interface{} = stdErr.Details
	if fieldErrors != nil {
		out = fieldErrors
	}
	writeError(w, http.StatusBadRequest, string(stdErr.Code), stdErr.Message, out, requestIDFromContext(r.Context()))
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
