package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// decodeJWT stores the id claim of a JWT-Bearer or Bearer token as the request
// owner. Requests without a token, or with one that does not decode, pass
// through unchanged.
func (a *API) decodeJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		owner, err := a.ownerFromToken(raw)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("decode jwt payload")
			next.ServeHTTP(w, r)
			return
		}
		if owner != "" {
			r = r.WithContext(context.WithValue(r.Context(), ownerKey, owner))
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, value, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "jwt-bearer", "bearer":
		value = strings.TrimSpace(value)
		return value, value != ""
	default:
		return "", false
	}
}

// ownerFromToken verifies raw with the configured HS256 secret, or only
// decodes it when no secret is set, and returns its id claim.
func (a *API) ownerFromToken(raw string) (string, error) {
	claims := jwt.MapClaims{}
	if a.config.JWTSecret == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
			return "", err
		}
	} else {
		secret := []byte(a.config.JWTSecret)
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return "", err
		}
	}

	switch id := claims["id"].(type) {
	case nil:
		return "", nil
	case string:
		return id, nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	default:
		return "", errors.New("id claim is not a string")
	}
}

func requireAuthorization(r *http.Request) error {
	if _, ok := bearerToken(r); !ok {
		return ErrUnauthorized
	}
	return nil
}
