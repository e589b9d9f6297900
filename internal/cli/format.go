// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatRupiah formats an amount the way id-ID renders IDR with no fraction
// digits, e.g. 35000000 -> "Rp 35.000.000".
func FormatRupiah(d decimal.Decimal) string {
	r := d.Round(0)
	if r.IsNegative() {
		return "-Rp " + FormatNumber(r.Neg().IntPart())
	}
	return "Rp " + FormatNumber(r.IntPart())
}

// FormatNumber adds id-ID dot separators to an integer.
// e.g., 1234567 -> "1.234.567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte('.')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a whole percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatDuration formats seconds into a human-readable duration.
// e.g., 3725 -> "1h 2m", 125 -> "2m", 45 -> "45s"
func FormatDuration(secs int64) string {
	if secs <= 0 {
		return "0s"
	}

	hours := secs / 3600
	mins := (secs % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%ds", secs)
}

var (
	hari  = []string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	bulan = []string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli",
		"Agustus", "September", "Oktober", "November", "Desember"}
)

// FormatDayOfWeek returns the Indonesian day name for a weekday number.
func FormatDayOfWeek(weekday int) string {
	if weekday >= 0 && weekday < 7 {
		return hari[weekday]
	}
	return "???"
}

// FormatDate renders a date as "Senin, 5 Januari 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", FormatDayOfWeek(int(t.Weekday())), t.Day(), bulan[t.Month()-1], t.Year())
}

// Truncate shortens s to at most n runes, adding an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
