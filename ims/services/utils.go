package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"ims/ims/api"
	"ims/ims/archive"
	"ims/ims/reports"

	"github.com/go-chi/chi/v5"
)

func ParseRequestBody[T any](r *http.Request) (T, error) {
	var data T
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		slog.Error("error parsing request body", "error", err)
		return data, CodedError(fmt.Errorf("error parsing request body"), http.StatusBadRequest)
	}
	return data, nil
}

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func CodedError(err error, code int) error {
	return &codedError{err: err, code: code}
}

// rawPayload skips the standard success envelope for the handful of
// endpoints whose response shape predates it.
type rawPayload struct {
	value any
}

func Raw(value any) any {
	return rawPayload{value: value}
}

// pdfAttachment makes WrapRestHandler write a binary PDF download instead
// of a json body.
type pdfAttachment struct {
	Filename string
	Data     []byte
}

func PDFAttachment(filename string, data []byte) any {
	return pdfAttachment{Filename: filename, Data: data}
}

type RestHandler func(r *http.Request) (any, error)

func WrapRestHandler(handler RestHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r)
		if err != nil {
			code := http.StatusInternalServerError
			var cerr *codedError
			if errors.As(err, &cerr) {
				code = cerr.code
			}
			WriteErrorResponse(w, code, err.Error())
			return
		}

		switch payload := res.(type) {
		case rawPayload:
			WriteJsonResponse(w, payload.value)
		case pdfAttachment:
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename))
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write(payload.Data); err != nil {
				slog.Error("error writing pdf response", "error", err)
			}
		default:
			WriteJsonResponse(w, api.Envelope{Success: true, Data: res})
		}
	}
}

func WriteJsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("error serializing response body", "error", err)
		http.Error(w, fmt.Sprintf("error serializing response body: %v", err), http.StatusInternalServerError)
	}
}

func WriteErrorResponse(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(api.Envelope{Success: false, Message: message})
	if err != nil {
		slog.Error("error serializing error response", "error", err)
	}
}

func URLParamInt(r *http.Request, key string) (int64, error) {
	param := chi.URLParam(r, key)
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, CodedError(fmt.Errorf("invalid value for url param %s", key), http.StatusBadRequest)
	}
	return id, nil
}

func reportErrorStatus(err error) int {
	switch {
	case errors.Is(err, reports.ErrUnknownReportType):
		return http.StatusBadRequest
	case errors.Is(err, reports.ErrDepartmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, archive.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
