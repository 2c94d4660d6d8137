// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package metar

import (
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/waybar-metar/internal/vartype"
)

// SpecialReport is the report type of a non-routine report.
const SpecialReport = "SPECI"

// Observation is the normalized, presentation-ready form of a RawRecord. It is derived once
// per record and never modified afterward.
type Observation struct {
	Station              string
	Name                 string
	ReportType           string
	FlightCategory       FlightCategory
	Conditions           string
	Visibility           string
	Wind                 string
	Temperature          string
	Altimeter            string
	LocalTime            string
	ZuluTime             string
	AdditionalConditions []string
	CloudLayers          []string

	// CondensedWind is the wind in the abbreviated form used by CondensedTitle.
	CondensedWind string
	// VisibilityMiles is the numeric visibility; 0 if it is absent or not a number.
	VisibilityMiles float64
	// HasVisibility reports whether a visibility was reported at all.
	HasVisibility bool

	RawText     string
	ObservedAt  time.Time
	Latitude    float64
	Longitude   float64
	HasPosition bool
	Elevation   int
}

// IsSpecial reports whether the observation is a special, non-routine report.
func (o Observation) IsSpecial() bool {
	return strings.EqualFold(o.ReportType, SpecialReport)
}

// Normalize derives the Observation for a RawRecord. Local times are rendered in loc, a nil
// location uses time.Local.
func Normalize(record RawRecord, loc *time.Location) Observation {
	localTime, zuluTime := FormatObservationTime(record.ObservationTime, loc)
	miles, _ := record.Visibility.Miles()

	obs := Observation{
		Station:              upperOrUnknown(record.StationID),
		Name:                 record.Name.ValueOr(Unknown),
		ReportType:           upperOrUnknown(record.ReportType),
		FlightCategory:       DetermineFlightCategory(record.Visibility, record.Clouds),
		Conditions:           FormatConditions(record.Clouds),
		Visibility:           FormatVisibility(record.Visibility),
		Wind:                 FormatWind(record.WindDirection, record.WindSpeed, record.WindGust),
		Temperature:          FormatTemperature(record.Temperature, record.Dewpoint),
		Altimeter:            FormatAltimeter(record.Altimeter),
		LocalTime:            localTime,
		ZuluTime:             zuluTime,
		AdditionalConditions: AdditionalConditions(record.RawText.Value()),
		CloudLayers:          FormatCloudLayers(record.Clouds),
		CondensedWind:        formatCondensedWind(record.WindDirection, record.WindSpeed, record.WindGust),
		VisibilityMiles:      miles,
		HasVisibility:        record.Visibility.IsSet(),
		RawText:              record.RawText.Value(),
		Elevation:            record.Elevation.Value(),
	}
	if secs, ok := record.ObservationTime.Get(); ok {
		obs.ObservedAt = time.Unix(secs, 0).UTC()
	}
	if record.Latitude.IsSet() && record.Longitude.IsSet() {
		obs.Latitude = record.Latitude.Value()
		obs.Longitude = record.Longitude.Value()
		obs.HasPosition = true
	}

	return obs
}

// upperOrUnknown upper-cases a set value. The Unknown sentinel is returned as is.
func upperOrUnknown(v vartype.VarString) string {
	if s, ok := v.Get(); ok {
		return strings.ToUpper(s)
	}
	return Unknown
}

// NormalizeBatch normalizes every record of the batch, keeping the order.
func NormalizeBatch(batch Batch, loc *time.Location) []Observation {
	observations := make([]Observation, 0, len(batch))
	for _, record := range batch {
		observations = append(observations, Normalize(record, loc))
	}
	return observations
}

// formatCondensedWind renders the wind as "270°@10G20".
func formatCondensedWind(dir vartype.Variable[WindDirection], speed, gust vartype.VarInt) string {
	if speed.Value() == 0 && !dir.IsSet() {
		return Calm
	}

	direction := string(WindVariable)
	if deg, ok := dir.Value().Degrees(); ok && dir.IsSet() {
		direction = fmt.Sprintf("%03d°", deg)
	}
	wind := fmt.Sprintf("%s@%d", direction, speed.Value())
	if gust.IsSet() {
		wind += fmt.Sprintf("G%d", gust.Value())
	}
	return wind
}
