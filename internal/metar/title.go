// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package metar

import "strings"

// maxTitleVisibility is the visibility in statute miles above which the condensed title
// omits the visibility.
const maxTitleVisibility = 9.0

// CondensedTitle builds a single-line label for width-constrained displays, e.g.
// "KSFO SPECI IFR OVC 800ft 270°@10G20 2SM". Clear or scattered skies and visibilities above
// 9 statute miles are left out.
func CondensedTitle(obs Observation) string {
	parts := make([]string, 0, 6)
	parts = append(parts, obs.Station)
	if obs.IsSpecial() {
		parts = append(parts, SpecialReport)
	}
	parts = append(parts, obs.FlightCategory.String())

	if cover, _, _ := strings.Cut(obs.Conditions, " "); IsCeilingCover(cover) {
		parts = append(parts, obs.Conditions)
	}
	if obs.CondensedWind != "" {
		parts = append(parts, obs.CondensedWind)
	}
	if obs.HasVisibility && obs.VisibilityMiles <= maxTitleVisibility {
		parts = append(parts, obs.Visibility)
	}

	return strings.Join(parts, " ")
}
