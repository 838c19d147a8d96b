package util

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatISO(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 30, 0, 123456789, time.FixedZone("BST", 3600))
	assert.Equal(t, "2025-03-01T08:30:00.123Z", FormatISO(ts))
}

func TestHMACSHA256Hex(t *testing.T) {
	// RFC 4231 test case 2
	got := HMACSHA256Hex("Jefe", "what do ya want for nothing?")
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}

func TestLowerHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Stripe-Signature", "t=1,v1=abc")
	h.Add("X-Multi", "first")
	h.Add("X-Multi", "second")
	h["Empty"] = nil

	got := LowerHeaders(h)
	assert.Equal(t, "t=1,v1=abc", got["stripe-signature"])
	assert.Equal(t, "first", got["x-multi"])
	_, ok := got["empty"]
	assert.False(t, ok)
}
