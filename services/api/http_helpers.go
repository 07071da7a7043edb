package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	contentTypeJSON = "application/json"
	contentTypeYAML = "application/yaml"
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeDef  = "text/yaml; charset=utf-8"
)

type envelope struct {
	Status string `json:"status" yaml:"status"`
	Data   any    `json:"data" yaml:"data"`
}

func success(data any) envelope {
	return envelope{Status: "success", Data: data}
}

// decodeJSON reads an optional JSON body. An empty body leaves dest untouched.
func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode body: %v", ErrBadRequest, err)
	}
	return nil
}

// wantsYAML reports whether the client asked for YAML through ?format=yaml
// or the Accept header.
func wantsYAML(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "yaml") {
		return true
	}
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case "application/yaml", "application/x-yaml", "text/yaml":
			return true
		}
	}
	return false
}

func respond(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if wantsYAML(r) {
		respondYAML(w, status, payload)
		return
	}
	respondJSON(w, status, payload)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func respondYAML(w http.ResponseWriter, status int, payload any) {
	if payload == nil {
		w.Header().Set("Content-Type", contentTypeYAML)
		w.WriteHeader(status)
		return
	}
	body, err := yaml.Marshal(payload)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, serverErrorBody)
		return
	}
	w.Header().Set("Content-Type", contentTypeYAML)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}
