package openmeteo

// condition is the display mapping for a WMO weather code.
type condition struct {
	Icon        string
	Description string
}

// conditions maps WMO weather codes to icon codes and display text.
// Icon codes follow the widely used OpenWeatherMap day-icon names so
// existing icon sets render without translation.
var conditions = map[int]condition{
	0:  {"01d", "Clear sky"},
	1:  {"02d", "Mainly clear"},
	2:  {"03d", "Partly cloudy"},
	3:  {"04d", "Overcast"},
	45: {"50d", "Fog"},
	48: {"50d", "Depositing rime fog"},
	51: {"09d", "Light drizzle"},
	53: {"09d", "Moderate drizzle"},
	55: {"09d", "Dense drizzle"},
	56: {"09d", "Light freezing drizzle"},
	57: {"09d", "Dense freezing drizzle"},
	61: {"10d", "Slight rain"},
	63: {"10d", "Moderate rain"},
	65: {"10d", "Heavy rain"},
	66: {"10d", "Light freezing rain"},
	67: {"10d", "Heavy freezing rain"},
	71: {"13d", "Slight snow fall"},
	73: {"13d", "Moderate snow fall"},
	75: {"13d", "Heavy snow fall"},
	77: {"13d", "Snow grains"},
	80: {"09d", "Slight rain showers"},
	81: {"09d", "Moderate rain showers"},
	82: {"09d", "Violent rain showers"},
	85: {"13d", "Slight snow showers"},
	86: {"13d", "Heavy snow showers"},
	95: {"11d", "Thunderstorm"},
	96: {"11d", "Thunderstorm with slight hail"},
	99: {"11d", "Thunderstorm with heavy hail"},
}

// conditionFor returns the display mapping for a WMO code. Unknown
// codes fall back to a generic placeholder rather than failing the
// whole fetch.
func conditionFor(code int) condition {
	if c, ok := conditions[code]; ok {
		return c
	}
	return condition{Icon: "na", Description: "Unknown"}
}
