// internal/httpserver/auth.go
//
// Admin authentication for catalog writes.
//   - POST /auth/token: password (bcrypt-checked against ADMIN_PASSWORD_HASH)
//     → short-lived HS256 JWT.
//   - requireAdmin: bearer JWT middleware guarding refresh.
//   - POST /games/{id}/refresh: fetch from Steam and store the entry.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/steamguess/internal/reviews"
	"github.com/robalobadob/steamguess/internal/steam"
)

const adminSubject = "admin"

// ctxAdminKey is the context key type for the verified token id.
type ctxAdminKey struct{}

type tokenReq struct {
	Password string `json:"password"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) mountAuth() {
	s.r.Post("/auth/token", s.handleToken)
}

// handleToken exchanges the admin password for a bearer token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.opts.AdminPasswordHash == "" {
		writeError(w, http.StatusServiceUnavailable, "admin_disabled")
		return
	}
	var body tokenReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if !checkPassword(s.opts.AdminPasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "invalid_password")
		return
	}
	tok, exp, err := s.signJWT()
	if err != nil {
		log.Error().Err(err).Msg("sign admin token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusOK, tokenRes{Token: tok, ExpiresAt: exp})
}

// signJWT creates an HS256 admin token valid for opts.TokenTTL.
func (s *Server) signJWT() (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// requireAdmin enforces a valid admin JWT in the Authorization header.
func (s *Server) requireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(s.opts.JWTSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
			if err != nil || !token.Valid || claims.Subject != adminSubject {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxAdminKey{}, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// handleRefresh replaces a catalog entry with fresh data from Steam.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if s.steam == nil {
		writeError(w, http.StatusServiceUnavailable, "steam_disabled")
		return
	}
	tokenID, _ := r.Context().Value(ctxAdminKey{}).(string)

	e, err := s.steam.Entry(r.Context(), id)
	var nerr *steam.NetworkError
	if errors.As(err, &nerr) {
		log.Warn().Err(err).Int("appId", id).Msg("steam fetch failed")
		writeError(w, http.StatusBadGateway, "steam_unavailable")
		return
	}
	if err != nil {
		log.Error().Err(err).Int("appId", id).Msg("steam fetch")
		writeError(w, http.StatusInternalServerError, "fetch_failed")
		return
	}
	if err := reviews.ValidateEntry(e); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_entry")
		return
	}
	if err := s.store.SaveEntry(r.Context(), e); err != nil {
		log.Error().Err(err).Int("appId", id).Msg("save entry")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Int("appId", id).Str("name", e.Name).Int("reviews", len(e.Reviews)).Str("token", tokenID).Msg("catalog entry refreshed")
	writeJSON(w, http.StatusOK, gameSummary{ID: e.ID, Name: e.Name, Reviews: len(e.Reviews)})
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
