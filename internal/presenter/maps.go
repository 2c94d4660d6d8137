// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/waybar-metar/internal/metar"
)

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// FlightCategoryIcon maps the flight categories to the usual chart colors.
var FlightCategoryIcon = map[metar.FlightCategory]string{
	metar.VFR:  "🟢",
	metar.MVFR: "🔵",
	metar.IFR:  "🔴",
	metar.LIFR: "🟣",
}

var i18nVars = map[string]localize.MsgID{
	"category":        "Flight category",
	"conditions":      "Conditions",
	"visibility":      "Visibility",
	"wind":            "Wind",
	"temperature":     "Temperature",
	"altimeter":       "Altimeter",
	"clouds":          "Clouds",
	"observed":        "Observed",
	"station":         "Station",
	"updated":         "Updated",
	"moonphase":       "Moonphase",
	"heavy rain":      "Heavy Rain",
	"light rain":      "Light Rain",
	"rain":            "Rain",
	"new moon":        "New moon",
	"waxing crescent": "Waxing crescent",
	"first quarter":   "First quarter",
	"waxing gibbous":  "Waxing gibbous",
	"full moon":       "Full moon",
	"waning gibbous":  "Waning gibbous",
	"third quarter":   "Third quarter",
	"waning crescent": "Waning crescent",
}
