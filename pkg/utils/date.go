package utils

import (
	"time"

	"reddit-stock-sentiment/pkg/common"
)

// UnixSeconds converts a fractional epoch value such as Reddit's created_utc to a UTC time.
func UnixSeconds(epoch float64) time.Time {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}

// FormatTimestamp renders t in the display layout used for sentiment results.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(common.TimestampLayout)
}
