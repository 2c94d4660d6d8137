// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package aviationweather

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wneessen/waybar-metar/internal/http"
	"github.com/wneessen/waybar-metar/internal/station"
)

const (
	APIAirportEndpoint = "https://aviationweather.gov/api/data/airport"
	APITimeout         = time.Second * 10
	name               = "aviationweather-airport"
)

type AviationWeather struct {
	endpoint string
	http     *http.Client
}

type airportResult struct {
	ICAOID    string  `json:"icaoId"`
	Name      string  `json:"name"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Elevation float64 `json:"elev"`
}

func New(client *http.Client, endpoint string) *AviationWeather {
	if endpoint == "" {
		endpoint = APIAirportEndpoint
	}
	return &AviationWeather{
		endpoint: endpoint,
		http:     client,
	}
}

func (a *AviationWeather) Name() string {
	return name
}

// Lookup requests the airport details of the given stations. Stations missing from the response
// are returned as not found.
func (a *AviationWeather) Lookup(ctx context.Context, ids []string) (map[string]station.Info, error) {
	ids = station.Normalize(ids)
	if len(ids) == 0 {
		return nil, station.ErrNoStations
	}

	var results []airportResult
	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("format", "json")

	code, err := a.http.GetWithTimeout(ctx, a.endpoint, &results, query, nil, APITimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airport details from aviationweather API: %w", err)
	}
	if code != stdhttp.StatusOK && code != stdhttp.StatusNoContent {
		return nil, fmt.Errorf("aviationweather API returned non-positive response code: %d", code)
	}

	infos := make(map[string]station.Info, len(ids))
	for _, id := range ids {
		infos[id] = station.Info{ID: id}
	}
	for _, result := range results {
		id := strings.ToUpper(strings.TrimSpace(result.ICAOID))
		if _, ok := infos[id]; !ok {
			continue
		}
		infos[id] = station.Info{
			ID:        id,
			Found:     true,
			Name:      result.Name,
			State:     result.State,
			Country:   result.Country,
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
			Elevation: int(result.Elevation),
		}
	}

	return infos, nil
}
