package handlers

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in the "code" field of error payloads.
const (
	CodeNotFound      = "not_found"
	CodeInvalidSchema = "invalid_schema"
	CodeBadRequest    = "bad_request"
	CodeInternalError = "internal_error"
)

const (
	msgSchemaNotFound = "Schema not found"
	msgInvalidSchema  = "Invalid schema"
	msgBadRequest     = "Bad request"
	msgInternal       = "Internal server error"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
// The payload is {"error": message, "code": errorCode}.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  errorCode,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}
