package response

import (
	"encoding/json"
	"net/http"

	"github.com/delcom/catalog/internal/apperr"
	"github.com/delcom/catalog/internal/logging"
	"github.com/delcom/catalog/internal/validation"
)

// ServerErrorMessage is returned for unexpected errors; details are only logged.
const ServerErrorMessage = "Terjadi kesalahan pada server"

// InvalidDataMessage replaces the message of a field validation failure.
const InvalidDataMessage = "Data yang dikirimkan tidak valid!"

// Err maps err to an envelope. Application errors become a "fail" envelope
// with their own status; when the message is a list of field errors the data
// holds the field map as a JSON string. Anything else is logged and answered
// with a 500 "error" envelope.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		logging.FromContext(r.Context()).Error("unexpected error",
			"error", err, "method", r.Method, "path", r.URL.Path)
		Error(w, ServerErrorMessage)
		return
	}

	fields := validation.ParseMessage(appErr.Message)
	if len(fields) == 0 {
		Fail(w, appErr.Status(), appErr.Message, nil)
		return
	}

	encoded, mErr := json.Marshal(fields)
	if mErr != nil {
		Fail(w, appErr.Status(), appErr.Message, nil)
		return
	}
	data := string(encoded)
	Fail(w, appErr.Status(), InvalidDataMessage, &data)
}
