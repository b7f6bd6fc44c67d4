// internal/httpserver/routes_daily.go
//
// HTTP route for the "review of the day".
//   - GET /daily          → today's review (game hidden)
//   - GET /daily?reveal=1 → same review with the game id and name
//   - GET /daily?date=YYYY-MM-DD for another day
//
// Selection is deterministic: HMAC(salt, date) over the current catalog.

package httpserver

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/steamguess/internal/daily"
)

// dailyRes is returned by /daily.
type dailyRes struct {
	Date   string `json:"date"`
	Review string `json:"review"`
	ID     int    `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
}

func (s *Server) mountDaily() {
	s.r.Get("/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date := s.opts.Now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := time.Parse("2006-01-02", q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date")
			return
		}
		date = d
	}

	c, err := s.store.Catalog(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("daily: load catalog")
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}
	id, idx, ok := daily.Pick(date, s.opts.DailySalt, c)
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "empty_catalog")
		return
	}

	res := dailyRes{Date: daily.DateKey(date), Review: c[id].Reviews[idx]}
	if r.URL.Query().Get("reveal") == "1" {
		res.ID, res.Name = id, c[id].Name
	}
	writeJSON(w, http.StatusOK, res)
}
