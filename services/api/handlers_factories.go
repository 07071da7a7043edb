package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"fiofaker/pkg/fixtures"
)

type createFactoryRequest struct {
	OrgName  string `json:"org-name"`
	Platform string `json:"platform"`
	PolisID  string `json:"polis-id"`
}

type factoryStatus struct {
	TotalDevices int            `json:"total-devices" yaml:"total-devices"`
	Tags         []fixtures.Tag `json:"tags" yaml:"tags"`
}

type deviceGroupList struct {
	Groups []fixtures.DeviceGroup `json:"groups" yaml:"groups"`
}

type deviceGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type rolloutRequest struct {
	Group string `json:"group"`
}

func (a *API) handleCreateFactory(w http.ResponseWriter, r *http.Request) {
	var req createFactoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("factory", req.OrgName).
		Str("platform", req.Platform).
		Str("polis_id", req.PolisID).
		Msg("creating factory")
	a.publish(r.Context(), factoryCreatedEvent, map[string]any{
		"factory":  req.OrgName,
		"platform": req.Platform,
		"polis_id": req.PolisID,
		"owner":    ownerFrom(r.Context()),
	})

	respond(w, r, http.StatusAccepted, map[string]string{"factory_state": "queued"})
}

func (a *API) handleDeleteFactory(w http.ResponseWriter, r *http.Request) {
	factory := chi.URLParam(r, "factory")
	zerolog.Ctx(r.Context()).Info().Str("factory", factory).Msg("removing factory")
	a.publish(r.Context(), factoryDeletedEvent, map[string]any{"factory": factory})
	respond(w, r, http.StatusAccepted, map[string]any{})
}

func (a *API) handleFactoryStatus(w http.ResponseWriter, r *http.Request) {
	zerolog.Ctx(r.Context()).Info().Str("factory", chi.URLParam(r, "factory")).Msg("retrieving factory status")
	tags := a.gen.Tags()
	a.fixtures.add("tag", len(tags))
	respond(w, r, http.StatusOK, factoryStatus{TotalDevices: totalDevices, Tags: tags})
}

func (a *API) handleListDeviceGroups(w http.ResponseWriter, r *http.Request) {
	zerolog.Ctx(r.Context()).Info().Str("factory", chi.URLParam(r, "factory")).Msg("retrieving device groups")
	groups := a.gen.DeviceGroups()
	a.fixtures.add("device_group", len(groups))
	respond(w, r, http.StatusOK, deviceGroupList{Groups: groups})
}

func (a *API) handleCreateDeviceGroup(w http.ResponseWriter, r *http.Request) {
	var req deviceGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	factory := chi.URLParam(r, "factory")
	zerolog.Ctx(r.Context()).Info().Str("factory", factory).Str("group", req.Name).Msg("creating device group")
	group := a.gen.NewDeviceGroup(req.Name, req.Description)
	a.fixtures.add("device_group", 1)
	a.publish(r.Context(), deviceGroupCreatedEvent, map[string]any{
		"factory": factory,
		"group":   group.Name,
		"id":      group.ID,
	})
	respond(w, r, http.StatusOK, group)
}

func (a *API) handleDeleteDeviceGroup(w http.ResponseWriter, r *http.Request) {
	factory, group := chi.URLParam(r, "factory"), chi.URLParam(r, "group")
	zerolog.Ctx(r.Context()).Info().Str("factory", factory).Str("group", group).Msg("deleting device group")
	a.publish(r.Context(), deviceGroupDeletedEvent, map[string]any{"factory": factory, "group": group})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleRolloutWave(w http.ResponseWriter, r *http.Request) {
	var req rolloutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	factory, wave := chi.URLParam(r, "factory"), chi.URLParam(r, "wave")
	zerolog.Ctx(r.Context()).Info().Str("factory", factory).Str("wave", wave).Str("group", req.Group).Msg("rolling out wave")
	a.publish(r.Context(), waveRolloutEvent, map[string]any{"factory": factory, "wave": wave, "group": req.Group})
	a.respondWave(w, r, a.gen.ActiveWave(wave))
}

func (a *API) handleCancelWave(w http.ResponseWriter, r *http.Request) {
	factory, wave := chi.URLParam(r, "factory"), chi.URLParam(r, "wave")
	zerolog.Ctx(r.Context()).Info().Str("factory", factory).Str("wave", wave).Msg("canceling wave")
	a.publish(r.Context(), waveCancelEvent, map[string]any{"factory": factory, "wave": wave})
	a.respondWave(w, r, a.gen.CanceledWave(wave))
}

func (a *API) handleCompleteWave(w http.ResponseWriter, r *http.Request) {
	factory, wave := chi.URLParam(r, "factory"), chi.URLParam(r, "wave")
	zerolog.Ctx(r.Context()).Info().Str("factory", factory).Str("wave", wave).Msg("completing wave")
	a.publish(r.Context(), waveCompleteEvent, map[string]any{"factory": factory, "wave": wave})
	a.respondWave(w, r, a.gen.CompleteWave(wave))
}

func (a *API) respondWave(w http.ResponseWriter, r *http.Request, wave fixtures.Wave) {
	a.fixtures.add("wave", 1)
	respond(w, r, http.StatusOK, wave)
}
