package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// FormatISO renders t in UTC with millisecond precision,
// e.g. 2025-03-01T09:30:00.000Z.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func HMACSHA256Hex(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// LowerHeaders flattens h to its first value per key, keys lower-cased.
func LowerHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[strings.ToLower(k)] = v[0]
		}
	}
	return out
}
