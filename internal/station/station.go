// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package station handles the set of tracked METAR stations: normalizing station
// identifiers, looking up station details and reading the stations file.
package station

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	minIDLength = 3
	maxIDLength = 4
)

// ErrNoStations is returned if a station list does not contain a single valid identifier.
var ErrNoStations = errors.New("no valid station identifiers found")

// Info holds the details of an airport/station.
type Info struct {
	ID        string
	Found     bool
	CacheHit  bool
	Name      string
	State     string
	Country   string
	Latitude  float64
	Longitude float64
	Elevation int
}

// String returns the details in a single line.
func (i Info) String() string {
	if !i.Found {
		return fmt.Sprintf("%-4s  not found", i.ID)
	}
	location := strings.Join(slices.DeleteFunc([]string{i.Name, i.State, i.Country}, func(s string) bool {
		return s == ""
	}), ", ")
	return fmt.Sprintf("%-4s  %s  %.4f,%.4f  %dm", i.ID, location, i.Latitude, i.Longitude, i.Elevation)
}

// Lookup is implemented by each station details backend. Stations that are unknown to the
// backend are returned with Found set to false.
type Lookup interface {
	Name() string
	Lookup(ctx context.Context, ids []string) (map[string]Info, error)
}

// Normalize upper-cases and trims the identifiers, drops invalid ones and removes duplicates
// while keeping the order of first appearance.
func Normalize(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToUpper(strings.TrimSpace(id))
		if !IsValidID(id) {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		normalized = append(normalized, id)
	}
	return normalized
}

// IsValidID reports whether id looks like an ICAO/FAA station identifier: 3 to 4 upper-case
// letters or digits.
func IsValidID(id string) bool {
	if len(id) < minIDLength || len(id) > maxIDLength {
		return false
	}
	for _, r := range id {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Parse splits a station list separated by commas, whitespace or new lines. Everything after
// a "#" on a line is ignored.
func Parse(list string) []string {
	var ids []string
	for _, line := range strings.Split(list, "\n") {
		if idx := strings.Index(line, "#"); idx != -1 {
			line = line[:idx]
		}
		ids = append(ids, strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\r'
		})...)
	}
	return ids
}
