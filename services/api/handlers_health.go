package api

import "net/http"

type healthBody struct {
	Status string `json:"status" yaml:"status"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if a.state.Healthy() {
		respond(w, r, http.StatusOK, healthBody{Status: "ok"})
		return
	}
	respond(w, r, http.StatusServiceUnavailable, healthBody{Status: "ko"})
}
