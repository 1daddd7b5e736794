// internal/daily/daily.go
//
// Deterministic daily setup. Everyone playing on the same UTC date with the
// same salt gets the same word length and wrong-guess budget.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"slices"
	"time"
)

// Setup is the configuration of one day's game.
type Setup struct {
	Date     string `json:"date"`
	Length   int    `json:"length"`
	MaxWrong int    `json:"maxWrong"`
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Pick derives the day's setup from HMAC(salt, YYYY-MM-DD).
// lengths are the word lengths that have words; the order does not matter.
// The budget is drawn from [minWrong, maxWrong]. With no lengths the zero
// length is returned, which the engine rejects.
func Pick(t time.Time, salt string, lengths []int, minWrong, maxWrong int) Setup {
	s := Setup{Date: DateKey(t), MaxWrong: minWrong}
	sum := digest(s.Date, salt)

	if len(lengths) > 0 {
		sorted := slices.Clone(lengths)
		slices.Sort(sorted)
		// first 8 bytes pick the length, next 8 the budget
		n := binary.BigEndian.Uint64(sum[:8])
		s.Length = sorted[n%uint64(len(sorted))]
	}
	if maxWrong > minWrong {
		n := binary.BigEndian.Uint64(sum[8:16])
		s.MaxWrong = minWrong + int(n%uint64(maxWrong-minWrong+1))
	}
	return s
}

func digest(date, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(date))
	return h.Sum(nil)
}
