package utils

import (
	"math"
	"time"
)

// Round2 arrotonda a due decimali (half away from zero).
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// Float64OrZero normalizza valori numerici non validi a zero.
func Float64OrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Layout accettati per le date dei record (i record storici usano formati misti).
var layoutsData = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseData interpreta una data ISO; ok=false se la stringa è vuota o malformata.
func ParseData(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layoutsData {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatData serializza una data nel formato usato nei record.
func FormatData(t time.Time) string {
	return t.Format(time.RFC3339)
}
