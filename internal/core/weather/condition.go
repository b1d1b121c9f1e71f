package weather

// Condition mapping for WMO weather interpretation codes as used by the
// forecast API. Codes outside the table map to "Unknown".

type condition struct {
	text string
	icon string
}

var conditionTable = map[int]condition{
	0:  {"Clear sky", "☀️"},
	1:  {"Partly cloudy", "⛅"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Partly cloudy", "⛅"},
	45: {"Fog", "🌫️"},
	48: {"Fog", "🌫️"},
	51: {"Drizzle", "🌦️"},
	53: {"Drizzle", "🌦️"},
	55: {"Drizzle", "🌦️"},
	61: {"Rain", "🌧️"},
	63: {"Rain", "🌧️"},
	65: {"Rain", "🌧️"},
	66: {"Freezing rain", "🌧️"},
	67: {"Freezing rain", "🌧️"},
	71: {"Snow", "🌨️"},
	73: {"Snow", "🌨️"},
	75: {"Snow", "🌨️"},
	77: {"Snow grains", "🌨️"},
	80: {"Rain showers", "🌧️"},
	81: {"Rain showers", "🌧️"},
	82: {"Rain showers", "🌧️"},
	85: {"Snow showers", "❄️"},
	86: {"Snow showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with hail", "⛈️"},
	99: {"Thunderstorm with hail", "⛈️"},
}

// ConditionForCode returns the condition text and emoji glyph for a WMO
// weather code. Unmapped codes never fail.
func ConditionForCode(code int) (string, string) {
	if c, ok := conditionTable[code]; ok {
		return c.text, c.icon
	}
	return "Unknown", "❔"
}
