// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package aviationweather

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wneessen/waybar-metar/internal/http"
	"github.com/wneessen/waybar-metar/internal/logger"
	"github.com/wneessen/waybar-metar/internal/metar"
)

const (
	name = "aviationweather"
	// DefaultEndpoint is the METAR endpoint of the aviationweather.gov data API.
	DefaultEndpoint = "https://aviationweather.gov/api/data/metar"
	apiTimeout      = time.Second * 15
)

type AviationWeather struct {
	endpoint string
	http     *http.Client
	log      *logger.Logger
}

func New(http *http.Client, log *logger.Logger, endpoint string) (*AviationWeather, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	return &AviationWeather{endpoint: endpoint, http: http, log: log}, nil
}

func (a *AviationWeather) Name() string {
	return name
}

// GetMETARs fetches the latest reports of the given stations in a single request.
func (a *AviationWeather) GetMETARs(ctx context.Context, stations []string) (metar.Batch, error) {
	if len(stations) == 0 {
		return metar.Batch{}, nil
	}

	// ids=KJFK,KLGA&format=json
	query := url.Values{}
	query.Set("ids", strings.Join(stations, ","))
	query.Set("format", "json")

	var batch metar.Batch
	code, err := a.http.GetWithTimeout(ctx, a.endpoint, &batch, query, nil, apiTimeout)
	if code != 0 && code != stdhttp.StatusOK && code != stdhttp.StatusNoContent {
		return nil, fmt.Errorf("aviationweather API returned non-positive response code: %d", code)
	}
	if err != nil {
		if errors.Is(err, http.ErrInvalidJSON) && !errors.Is(err, metar.ErrMalformedBatch) {
			return nil, fmt.Errorf("%w: %w", metar.ErrMalformedBatch, err)
		}
		return nil, fmt.Errorf("failed to retrieve METAR data from aviationweather API: %w", err)
	}
	if batch == nil {
		batch = metar.Batch{}
	}

	return batch, nil
}
