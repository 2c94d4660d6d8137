// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package metar

import "strings"

const (
	HeavyRain = "Heavy Rain"
	LightRain = "Light Rain"
	Rain      = "Rain"
)

// AdditionalConditions scans the raw report for rain and returns the phenomenon. An
// intensity qualified token ("+RA", "-SHRA") is preferred over an unqualified one. This is
// a token heuristic, not a METAR grammar parser: the report type, a leading station
// identifier and the remarks section are skipped and weather tokens are matched on two-letter
// code boundaries.
func AdditionalConditions(raw string) []string {
	conditions := make([]string, 0, 1)
	found := ""

	tokens := strings.Fields(raw)
	if len(tokens) > 0 && (tokens[0] == "METAR" || tokens[0] == "SPECI") {
		tokens = tokens[1:]
	}
	if len(tokens) > 0 && isStationID(tokens[0]) {
		tokens = tokens[1:]
	}
	for _, token := range tokens {
		if token == "RMK" {
			break
		}
		intensity, code := "", token
		if strings.HasPrefix(code, "+") || strings.HasPrefix(code, "-") {
			intensity, code = code[:1], code[1:]
		}
		if !isRainCode(code) {
			continue
		}
		switch intensity {
		case "+":
			return append(conditions, HeavyRain)
		case "-":
			return append(conditions, LightRain)
		default:
			found = Rain
		}
	}

	if found != "" {
		conditions = append(conditions, found)
	}
	return conditions
}

// isStationID reports whether token looks like a 3 or 4 character station identifier rather
// than a weather group.
func isStationID(token string) bool {
	if len(token) < 3 || len(token) > 4 || isRainCode(token) {
		return false
	}
	for _, r := range token {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// isRainCode reports whether the weather group contains the RA code, e.g. RA, SHRA or TSRA.
func isRainCode(code string) bool {
	code = strings.TrimPrefix(code, "VC")
	if len(code) < 2 || len(code)%2 != 0 {
		return false
	}
	for i := 0; i < len(code); i += 2 {
		group := code[i : i+2]
		if group[0] < 'A' || group[0] > 'Z' || group[1] < 'A' || group[1] > 'Z' {
			return false
		}
		if group == "RA" {
			return true
		}
	}
	return false
}
