package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"fiofaker/pkg/fixtures"
)

var errSimulatedFailure = errors.New("simulated failure")

type deviceList struct {
	Devices []fixtures.Device `json:"devices" yaml:"devices"`
	Page    int               `json:"page" yaml:"page"`
	Limit   int               `json:"limit" yaml:"limit"`
	Pages   int               `json:"pages" yaml:"pages"`
	Total   int               `json:"total" yaml:"total"`
}

func (a *API) handleListDevices(w http.ResponseWriter, r *http.Request) {
	pg, err := a.paging(r, defaultDeviceLimit, totalDevices)
	if err != nil {
		respondError(w, r, err)
		return
	}

	query := r.URL.Query()
	factory := strings.TrimSpace(query.Get("factory"))
	if factory == "" {
		factory = a.gen.Words(2)
	}

	devices := a.gen.Devices(fixtures.DeviceListParams{
		Limit:   pg.Limit,
		Factory: factory,
		Owner:   ownerFrom(r.Context()),
		Name:    strings.TrimSpace(query.Get("name")),
		Tag:     strings.TrimSpace(query.Get("tag")),
	})
	a.fixtures.add("device", len(devices))

	respond(w, r, http.StatusOK, deviceList{
		Devices: devices,
		Page:    pg.Page,
		Limit:   pg.Limit,
		Pages:   pg.Pages,
		Total:   totalDevices,
	})
}

// handleDeleteDevice accepts any authorized delete. ?fail=400 and ?fail=500
// make it answer with that failure instead.
func (a *API) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	if err := requireAuthorization(r); err != nil {
		respondError(w, r, err)
		return
	}

	device := chi.URLParam(r, "device")
	switch r.URL.Query().Get("fail") {
	case "400":
		respondError(w, r, fmt.Errorf("%w: cannot delete device %q", ErrBadRequest, device))
		return
	case "500":
		respondError(w, r, fmt.Errorf("delete device %q: %w", device, errSimulatedFailure))
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("device", device).Msg("deleting device")
	a.publish(r.Context(), deviceDeletedEvent, map[string]any{
		"device": device,
		"owner":  ownerFrom(r.Context()),
	})
	w.WriteHeader(http.StatusNoContent)
}
