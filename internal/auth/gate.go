package auth

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultGrace is how long after a logout auto-login stays suppressed
const DefaultGrace = 5 * time.Second

// Evidence is what a returning client presents. LoggedOutAt is the logout
// time in Unix seconds, possibly fractional, or empty.
type Evidence struct {
	Token       string
	Name        string
	Role        string
	LoggedOutAt string
}

// ShouldAutoLogin decides whether a returning client may be signed in again
// without a password. It rejects missing or invalid tokens, an unparseable
// logout stamp, and any request less than grace after the stamp. A request
// exactly grace after the stamp is accepted.
func ShouldAutoLogin(ctx context.Context, v TokenValidator, ev Evidence, now time.Time, grace time.Duration) bool {
	if ev.Token == "" || ev.Name == "" {
		return false
	}
	if !v.ValidateToken(ctx, ev.Name, ev.Token) {
		return false
	}
	if stamp := strings.TrimSpace(ev.LoggedOutAt); stamp != "" {
		loggedOut, ok := ParseUnixSeconds(stamp)
		if !ok {
			return false
		}
		if now.Sub(loggedOut) < grace {
			return false
		}
	}
	return true
}

// ParseUnixSeconds parses a Unix timestamp in seconds with an optional
// fractional part
func ParseUnixSeconds(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))), true
}

// FormatUnixSeconds renders t as fractional Unix seconds
func FormatUnixSeconds(t time.Time) string {
	return strconv.FormatFloat(float64(t.Unix())+float64(t.Nanosecond())/1e9, 'f', 6, 64)
}
