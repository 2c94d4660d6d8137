// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package metar

import "strings"

// FlightCategory is the FAA flight category derived from visibility and ceiling.
type FlightCategory string

const (
	VFR  FlightCategory = "VFR"
	MVFR FlightCategory = "MVFR"
	IFR  FlightCategory = "IFR"
	LIFR FlightCategory = "LIFR"
)

// String satisfies the fmt.Stringer interface.
func (c FlightCategory) String() string {
	return string(c)
}

// IsCeilingCover reports whether the cover token constitutes a ceiling (broken, overcast or
// obscured).
func IsCeilingCover(cover string) bool {
	switch strings.ToUpper(strings.TrimSpace(cover)) {
	case "BKN", "OVC", "OVX":
		return true
	default:
		return false
	}
}

// Ceiling returns the lowest base of all ceiling layers. The boolean is false if no layer
// constitutes a ceiling, i.e. the ceiling is unlimited. A ceiling layer without a reported
// base counts as a surface-based layer.
func Ceiling(layers []CloudLayer) (int, bool) {
	ceiling, found := 0, false
	for _, layer := range layers {
		if !IsCeilingCover(layer.Cover.Value()) {
			continue
		}
		base := layer.Base.Value()
		if !found || base < ceiling {
			ceiling, found = base, true
		}
	}
	return ceiling, found
}

// DetermineFlightCategory classifies the flight conditions. An absent or unparseable
// visibility is treated as 0 statute miles, which yields the most restrictive category.
func DetermineFlightCategory(vis Visibility, layers []CloudLayer) FlightCategory {
	miles, _ := vis.Miles()
	ceiling, hasCeiling := Ceiling(layers)
	return classify(miles, ceiling, hasCeiling)
}

// classify applies the category thresholds, the first matching one wins.
func classify(miles float64, ceiling int, hasCeiling bool) FlightCategory {
	below := func(limit int) bool {
		return hasCeiling && ceiling < limit
	}
	switch {
	case miles < 1.0 || below(500):
		return LIFR
	case miles < 3.0 || below(1000):
		return IFR
	case miles <= 5.0 || below(3000):
		return MVFR
	default:
		return VFR
	}
}
