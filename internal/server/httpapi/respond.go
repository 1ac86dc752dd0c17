package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/edupilot/internal/common"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decodeJSON reads exactly one JSON object into dst. Unknown fields,
// wrong types, non-object values (null included) and trailing data are
// validation errors. An empty body decodes as {}.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return common.NewValidationError("", bodyMessage(err))
	}
	if dec.More() {
		return common.NewValidationError("", "Request body must contain a single JSON object.")
	}
	if len(raw) == 0 || raw[0] != '{' {
		return common.NewValidationError("", "Request body must be a JSON object.")
	}

	obj := json.NewDecoder(bytes.NewReader(raw))
	obj.DisallowUnknownFields()
	if err := obj.Decode(dst); err != nil {
		return common.NewValidationError("", bodyMessage(err))
	}
	return nil
}

func bodyMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("Field %q has the wrong type.", typeErr.Field)
		}
		return "Request body must be a JSON object."
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "Request body is not valid JSON."
	}
	// DisallowUnknownFields and custom unmarshalers report plain errors.
	return "Invalid request body: " + err.Error() + "."
}

// writeServiceError maps a service error onto a status and message.
// notFound replaces the generic 404 message when set.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, common.UserMessage(err, "Invalid request."))
	case errors.Is(err, common.ErrorNotFound):
		if notFound == "" {
			notFound = "Not found."
		}
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorConflict):
		writeError(w, http.StatusConflict, "Already exists.")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}
