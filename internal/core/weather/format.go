package weather

import "time"

// Label formatting for API date strings. A string that does not parse is
// passed through unchanged; formatting never fails a fetch.

const (
	apiDateLayout      = "2006-01-02"
	apiTimestampLayout = "2006-01-02T15:04"

	dateLabelLayout      = "Monday, January 2"
	timestampLabelLayout = "January 2, 15:04"
	hourLabelLayout      = "15:04"
)

// FormatDateLabel converts "YYYY-MM-DD" to a "Weekday, Month Day" label.
func FormatDateLabel(raw string) string {
	t, err := time.Parse(apiDateLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format(dateLabelLayout)
}

// FormatTimestampLabel converts "YYYY-MM-DDTHH:mm" to "Month Day, HH:mm".
func FormatTimestampLabel(raw string) string {
	t, err := time.Parse(apiTimestampLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format(timestampLabelLayout)
}

// FormatHourLabel converts "YYYY-MM-DDTHH:mm" to "HH:mm".
func FormatHourLabel(raw string) string {
	t, err := time.Parse(apiTimestampLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format(hourLabelLayout)
}
