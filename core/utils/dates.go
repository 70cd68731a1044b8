package utils

import (
	"fmt"
	"time"
)

// DecodeDate converts a YYYYMMDD integer to a local midnight time.
// The components are extracted arithmetically; 0 yields the zero time.
func DecodeDate(d int) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	year := d / 10000
	month := (d % 10000) / 100
	day := d % 100
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// EncodeDate converts t to its YYYYMMDD integer form.
func EncodeDate(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// IsNextDay reports whether candidate is exactly one calendar day after base.
func IsNextDay(base, candidate int) bool {
	if base <= 0 || candidate <= 0 {
		return false
	}
	return EncodeDate(DecodeDate(base).AddDate(0, 0, 1)) == candidate
}

// FormatTime renders an HHMM integer (845) as "8:45". Hours are not padded.
func FormatTime(t int) string {
	return fmt.Sprintf("%d:%02d", t/100, t%100)
}

// FormatDate renders a YYYYMMDD integer as "DD.MM.YYYY".
func FormatDate(d int) string {
	return fmt.Sprintf("%02d.%02d.%04d", d%100, (d%10000)/100, d/10000)
}

// ISODate renders a YYYYMMDD integer as "YYYY-MM-DD".
func ISODate(d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", d/10000, (d%10000)/100, d%100)
}
