package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed request. Clients display Message verbatim.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   any    `json:"error,omitempty"`
}

// ResponseJSON writes data as JSON with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// ResponseError writes an ErrorResponse
func ResponseError(w http.ResponseWriter, code int, message string, detail any) {
	ResponseJSON(w, code, ErrorResponse{Message: message, Error: detail})
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusCreated, data)
}

// returns 200 OK with {"message": ...}
func ResponseMessage(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusOK, map[string]string{"message": message})
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, detail any) {
	ResponseError(w, http.StatusBadRequest, message, detail)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, message, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, message, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string, detail any) {
	ResponseError(w, http.StatusInternalServerError, message, detail)
}

// ResponseAppError writes a classified error with the status its kind maps to.
func ResponseAppError(w http.ResponseWriter, err *Error) {
	ResponseError(w, StatusCode(err), err.Message, err.Detail)
}
