package weather

// Condition is the human readable version of a WMO weather code.
type Condition struct {
	Condition   string
	Description string
	Icon        string
}

var unknownCondition = Condition{Condition: "Unknown", Description: "Unknown conditions", Icon: "01d"}

// WMO weather codes as used by Open-Meteo.
var wmoCodes = map[int]Condition{
	0:  {"Clear", "Clear sky", "01d"},
	1:  {"Clear", "Mainly clear", "01d"},
	2:  {"Clouds", "Partly cloudy", "02d"},
	3:  {"Clouds", "Overcast", "03d"},
	45: {"Fog", "Fog", "50d"},
	48: {"Fog", "Depositing rime fog", "50d"},
	51: {"Drizzle", "Light drizzle", "09d"},
	53: {"Drizzle", "Moderate drizzle", "09d"},
	55: {"Drizzle", "Dense drizzle", "09d"},
	56: {"Drizzle", "Light freezing drizzle", "09d"},
	57: {"Drizzle", "Dense freezing drizzle", "09d"},
	61: {"Rain", "Slight rain", "10d"},
	63: {"Rain", "Moderate rain", "10d"},
	65: {"Rain", "Heavy rain", "10d"},
	66: {"Rain", "Light freezing rain", "13d"},
	67: {"Rain", "Heavy freezing rain", "13d"},
	71: {"Snow", "Slight snow fall", "13d"},
	73: {"Snow", "Moderate snow fall", "13d"},
	75: {"Snow", "Heavy snow fall", "13d"},
	77: {"Snow", "Snow grains", "13d"},
	80: {"Rain", "Slight rain showers", "09d"},
	81: {"Rain", "Moderate rain showers", "09d"},
	82: {"Rain", "Violent rain showers", "09d"},
	85: {"Snow", "Slight snow showers", "13d"},
	86: {"Snow", "Heavy snow showers", "13d"},
	95: {"Thunderstorm", "Thunderstorm", "11d"},
	96: {"Thunderstorm", "Thunderstorm with slight hail", "11d"},
	99: {"Thunderstorm", "Thunderstorm with heavy hail", "11d"},
}

// FromWMOCode returns the condition of a code, unknown codes map to a generic entry.
func FromWMOCode(code int) Condition {
	if c, ok := wmoCodes[code]; ok {
		return c
	}
	return unknownCondition
}

// IconURL returns the public icon image of a condition icon code.
func IconURL(icon string) string {
	return "https://openweathermap.org/img/wn/" + icon + "@2x.png"
}
