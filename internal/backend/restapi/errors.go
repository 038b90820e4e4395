package restapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"taskdash/internal/service"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// errorBody is the API's error shape. Some routes use "error" instead of
// "message".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// decodeError converts a non-2xx response into a *service.Error.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	msg := ""
	if json.Unmarshal(data, &body) == nil {
		msg = strings.TrimSpace(body.Message)
		if msg == "" {
			msg = strings.TrimSpace(body.Error)
		}
	}

	return &service.Error{
		Kind:    service.KindForStatus(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: msg,
	}
}
