// Package pricing holds the fixed tournament entry fee. The amount charged
// never comes from the client.
package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Mode string

const (
	ModeTest Mode = "test"
	ModeLive Mode = "live"
)

const (
	Currency = "gbp"

	testPrice = 1.00
	livePrice = 34.00 // £33 entry + £1 booking fee
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeTest:
		return ModeTest, nil
	case ModeLive:
		return ModeLive, nil
	default:
		return "", fmt.Errorf("unknown pricing mode: %q", s)
	}
}

// Price is the entry fee in pounds.
func (m Mode) Price() float64 {
	if m == ModeLive {
		return livePrice
	}
	return testPrice
}

// UnitAmount is the entry fee in pence.
func (m Mode) UnitAmount() int64 {
	return ToMinorUnits(m.Price())
}

func ToMinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}

// FormatMinorUnits renders pence as pounds with two decimals: 100 -> "1.00".
func FormatMinorUnits(minor int64) string {
	return strconv.FormatFloat(float64(minor)/100, 'f', 2, 64)
}
