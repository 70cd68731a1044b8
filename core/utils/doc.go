// Package utils provides common helpers shared by the provider client, the
// record normalizers and the notifier: loose type conversion for provider fields
// that arrive as either numbers or strings, and YYYYMMDD / HHMM date and time
// decoding and formatting.
package utils
