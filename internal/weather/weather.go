// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"strings"
	"time"

	"github.com/wneessen/waybar-metar/internal/metar"
)

// Provider is implemented by each METAR API backend.
type Provider interface {
	Name() string
	GetMETARs(ctx context.Context, stations []string) (metar.Batch, error)
}

// Data is an immutable snapshot of the observations of one refresh cycle.
type Data struct {
	GeneratedAt time.Time

	// Observations are ordered like the tracked station list. Reports for stations that are
	// not tracked follow in the order of the API response.
	Observations []metar.Observation
	// Missing lists the tracked stations without a report.
	Missing []string
}

// NewData normalizes the batch into a snapshot. If a station reported more than once, the
// most recent observation is kept.
func NewData(batch metar.Batch, stations []string, loc *time.Location) *Data {
	data := &Data{
		GeneratedAt:  time.Now(),
		Observations: make([]metar.Observation, 0, len(batch)),
	}

	latest := make(map[string]metar.Observation, len(batch))
	order := make([]string, 0, len(batch))
	for _, obs := range metar.NormalizeBatch(batch, loc) {
		prev, ok := latest[obs.Station]
		if !ok {
			order = append(order, obs.Station)
		}
		if !ok || obs.ObservedAt.After(prev.ObservedAt) {
			latest[obs.Station] = obs
		}
	}

	for _, id := range stations {
		id = strings.ToUpper(id)
		obs, ok := latest[id]
		if !ok {
			data.Missing = append(data.Missing, id)
			continue
		}
		data.Observations = append(data.Observations, obs)
		delete(latest, id)
	}
	for _, id := range order {
		if obs, ok := latest[id]; ok {
			data.Observations = append(data.Observations, obs)
		}
	}

	return data
}

// Observation returns the observation of the given station.
func (d *Data) Observation(station string) (metar.Observation, bool) {
	if d == nil {
		return metar.Observation{}, false
	}
	for _, obs := range d.Observations {
		if strings.EqualFold(obs.Station, station) {
			return obs, true
		}
	}
	return metar.Observation{}, false
}

// IsEmpty reports whether the snapshot holds no observations.
func (d *Data) IsEmpty() bool {
	return d == nil || len(d.Observations) == 0
}
