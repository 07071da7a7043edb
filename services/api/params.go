package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPage        = 1
	defaultBuildLimit  = 25
	defaultDeviceLimit = 20
	totalBuilds        = 60
	totalDevices       = 60
)

type ctxKey int

const (
	projectKey ctxKey = iota
	ownerKey
)

type paging struct {
	Page  int
	Limit int
	Pages int
}

// paging reads page and limit from the query. Missing, zero or unparsable
// values take their default; negative values and limits above the maximum
// are rejected.
func (a *API) paging(r *http.Request, defaultLimit, total int) (paging, error) {
	page, err := intParam(r, "page", defaultPage, 0)
	if err != nil {
		return paging{}, err
	}
	limit, err := intParam(r, "limit", defaultLimit, a.config.MaxLimit)
	if err != nil {
		return paging{}, err
	}
	return paging{
		Page:  page,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	}, nil
}

func intParam(r *http.Request, name string, def, maxValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		return def, nil
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrBadRequest, name)
	}
	if maxValue > 0 && n > maxValue {
		return 0, fmt.Errorf("%w: %s must not exceed %d", ErrBadRequest, name, maxValue)
	}
	return n, nil
}

// withProject stores the project name matched by the mount, extended by
// suffix, on the request context.
func withProject(suffix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			project := chi.URLParam(r, "project") + suffix
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), projectKey, project)))
		})
	}
}

func projectFrom(ctx context.Context) string {
	project, _ := ctx.Value(projectKey).(string)
	return project
}

func ownerFrom(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey).(string)
	return owner
}
