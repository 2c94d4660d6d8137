// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package metar

import (
	"fmt"
	"sort"
	"time"

	"github.com/wneessen/waybar-metar/internal/vartype"
)

const (
	// Unknown is rendered for values that were not reported.
	Unknown = vartype.Unknown
	// Calm is rendered for calm wind.
	Calm = "Calm"
	// SkyClear is rendered if no cloud layers were reported.
	SkyClear = "SKC"
	// Variable is rendered for variable or unreported wind direction.
	Variable = "Variable"

	// hPaToInHg converts hectopascals into inches of mercury.
	hPaToInHg = 0.02953
	// altimeterHPaThreshold separates hPa from inHg altimeter readings.
	altimeterHPaThreshold = 100

	localTimeLayout = "01.02.2006 15:04 (MST)"
)

// FormatWind renders the wind as "270° @ 10kts G20kts".
func FormatWind(dir vartype.Variable[WindDirection], speed, gust vartype.VarInt) string {
	if speed.Value() == 0 && !dir.IsSet() {
		return Calm
	}

	direction := Variable
	if deg, ok := dir.Value().Degrees(); ok && dir.IsSet() {
		direction = fmt.Sprintf("%03d°", deg)
	}
	wind := fmt.Sprintf("%s @ %dkts", direction, speed.Value())
	if gust.IsSet() {
		wind += fmt.Sprintf(" G%dkts", gust.Value())
	}
	return wind
}

// FormatTemperature renders temperature and dewpoint as "20.0°C / 10.0°C". Each side falls
// back to Unknown independently.
func FormatTemperature(temp, dewpoint vartype.VarFloat64) string {
	return formatCelsius(temp) + " / " + formatCelsius(dewpoint)
}

func formatCelsius(val vartype.VarFloat64) string {
	if !val.IsSet() {
		return Unknown
	}
	return fmt.Sprintf("%.1f°C", val.Value())
}

// FormatAltimeter renders the altimeter setting in inches of mercury. Values above 100 are
// considered hectopascals and converted.
func FormatAltimeter(altimeter vartype.VarFloat64) string {
	val, ok := altimeter.Get()
	if !ok {
		return Unknown
	}
	if val > altimeterHPaThreshold {
		val *= hPaToInHg
	}
	return fmt.Sprintf("%.2f inHg", val)
}

// FormatVisibility renders the visibility as "10+SM".
func FormatVisibility(vis Visibility) string {
	if !vis.IsSet() {
		return Unknown
	}
	return vis.String() + "SM"
}

// FormatConditions renders the most significant cloud layer: the lowest ceiling layer or, if
// there is no ceiling, the highest layer. No layers render as SKC.
func FormatConditions(layers []CloudLayer) string {
	if len(layers) == 0 {
		return SkyClear
	}

	ceilingIdx, highestIdx := -1, 0
	for i, layer := range layers {
		base := layer.Base.Value()
		if base > layers[highestIdx].Base.Value() {
			highestIdx = i
		}
		if !IsCeilingCover(layer.Cover.Value()) {
			continue
		}
		if ceilingIdx == -1 || base < layers[ceilingIdx].Base.Value() {
			ceilingIdx = i
		}
	}
	if ceilingIdx != -1 {
		return formatLayer(layers[ceilingIdx])
	}
	return formatLayer(layers[highestIdx])
}

// FormatCloudLayers renders all layers ordered from low to high. A layer without a base
// sorts as a surface layer. No layers render as a single SKC entry.
func FormatCloudLayers(layers []CloudLayer) []string {
	if len(layers) == 0 {
		return []string{SkyClear}
	}

	sorted := make([]CloudLayer, len(layers))
	copy(sorted, layers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Base.Value() < sorted[j].Base.Value()
	})

	formatted := make([]string, 0, len(sorted))
	for _, layer := range sorted {
		formatted = append(formatted, formatLayer(layer))
	}
	return formatted
}

// formatLayer renders a layer as "BKN 1500ft". Layers without base, like CLR, render the
// cover only.
func formatLayer(layer CloudLayer) string {
	cover := layer.Cover.ValueOr(Unknown)
	base, ok := layer.Base.Get()
	if !ok {
		return cover
	}
	return fmt.Sprintf("%s %dft", cover, base)
}

// FormatObservationTime renders the observation time in the given location as
// "01.02.2006 15:04 (MST)" and in UTC as "02Z15:04". A nil location uses time.Local.
func FormatObservationTime(epoch vartype.VarInt64, loc *time.Location) (local string, zulu string) {
	secs, ok := epoch.Get()
	if !ok {
		return Unknown, Unknown
	}
	if loc == nil {
		loc = time.Local
	}

	obsTime := time.Unix(secs, 0)
	utc := obsTime.UTC()
	return obsTime.In(loc).Format(localTimeLayout),
		fmt.Sprintf("%02dZ%02d:%02d", utc.Day(), utc.Hour(), utc.Minute())
}
