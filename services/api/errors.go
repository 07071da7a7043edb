package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

var (
	// ErrBadRequest marks malformed query parameters or bodies.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized marks a request without credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound marks a route or resource that does not exist.
	ErrNotFound = errors.New("not found")
)

type errorBody struct {
	Error       string `json:"error" yaml:"error"`
	Description string `json:"error_description" yaml:"error_description"`
}

var (
	notFoundBody = errorBody{
		Error:       "not_found",
		Description: "The requested resource was not found",
	}
	unauthorizedBody = errorBody{
		Error:       "unauthorized",
		Description: "You are not authorized to view this page",
	}
	serverErrorBody = errorBody{
		Error:       "server_error",
		Description: "There was a problem processing the request",
	}
)

// respondError maps err onto a status and error body. Everything but a 404 is
// logged on the request logger.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	var (
		status int
		body   errorBody
	)
	switch {
	case errors.Is(err, ErrNotFound):
		status, body = http.StatusNotFound, notFoundBody
	case errors.Is(err, ErrUnauthorized):
		status, body = http.StatusUnauthorized, unauthorizedBody
	case errors.Is(err, ErrBadRequest):
		status, body = http.StatusBadRequest, errorBody{Error: "bad_request", Description: err.Error()}
	default:
		status, body = http.StatusInternalServerError, serverErrorBody
	}

	if status != http.StatusNotFound {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	respond(w, r, status, body)
}

func (a *API) handleNotFound(w http.ResponseWriter, r *http.Request) {
	zerolog.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Msg("requested non existing page")
	respondError(w, r, ErrNotFound)
}

// recoverer turns handler panics into a 500 error body.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			respondError(w, r, fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}
