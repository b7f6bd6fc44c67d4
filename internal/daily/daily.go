package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/steamguess/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// index returns HMAC(salt, label+YYYY-MM-DD) % n.
func index(date time.Time, salt, label string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(label + DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Pick returns the game id and review index of the review of the day.
// The same date, salt and catalog always give the same pick.
// ok is false for an empty catalog.
func Pick(date time.Time, salt string, c game.Catalog) (id int, review int, ok bool) {
	ids := c.IDs()
	if len(ids) == 0 {
		return 0, 0, false
	}
	id = ids[index(date, salt, "game:", len(ids))]
	n := len(c[id].Reviews)
	if n == 0 {
		return 0, 0, false
	}
	return id, index(date, salt, "review:", n), true
}
