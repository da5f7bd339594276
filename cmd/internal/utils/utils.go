package utils

import (
	"reflect"
	"strings"
	"time"
)

// ISODate is the wire format for all calendar dates.
const ISODate = "2006-01-02"

// FormatDate renders UTC-midnight epoch millis as YYYY-MM-DD.
func FormatDate(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(ISODate)
}

// FormatEpoch renders epoch millis as an RFC3339 UTC instant.
func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// ParseDate parses YYYY-MM-DD into UTC-midnight epoch millis.
func ParseDate(iso string) (int64, error) {
	t, err := time.Parse(ISODate, iso)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// DaysBetween returns the number of whole days from one UTC-midnight
// epoch millis to another. Negative when `to` precedes `from`.
func DaysBetween(from, to int64) int {
	const millisInDay = 24 * 3600 * 1000
	return int((to - from) / millisInDay)
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
