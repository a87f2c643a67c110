package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// respondError writes the failure for err. Classified errors carry their own
// message; anything else is reported under failedMessage with the cause as detail.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation, failedMessage string) {
	status := utils.StatusCode(err)
	message := failedMessage
	var detail any

	var appErr *utils.Error
	var upstream *utils.UpstreamError
	switch {
	case errors.As(err, &appErr):
		message = appErr.Message
		detail = appErr.Detail
	case errors.As(err, &upstream):
		detail = upstream.Body
	case status == http.StatusNotFound:
		message = "Not found"
	case status == http.StatusConflict:
		message = "The document was modified by another request, please retry"
	default:
		detail = err.Error()
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.Int("status", status),
	}
	if status >= http.StatusInternalServerError {
		log.Error("Failed to "+operation, fields...)
	} else {
		log.Warn(operation+" rejected", fields...)
	}

	utils.ResponseError(w, status, message, detail)
}

// decodeJSON reads a JSON request body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return utils.NewError(utils.ErrBadRequest, "Invalid request body").WithCause(fmt.Errorf("decode body: %w", err))
}
