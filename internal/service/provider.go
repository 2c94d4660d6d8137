// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"time"

	"github.com/wneessen/waybar-metar/internal/config"
	"github.com/wneessen/waybar-metar/internal/http"
	"github.com/wneessen/waybar-metar/internal/station"
	airport "github.com/wneessen/waybar-metar/internal/station/provider/aviationweather"
	"github.com/wneessen/waybar-metar/internal/weather"
	"github.com/wneessen/waybar-metar/internal/weather/provider/aviationweather"
)

const (
	cacheHitTTL  = time.Hour * 24
	cacheMissTTL = time.Hour
)

func (s *Service) selectWeatherProvider() (weather.Provider, error) {
	switch s.config.METAR.Provider {
	case config.ProviderAviationWeather:
		client := http.New(s.logger)
		client.SetRetries(s.config.METAR.Retries)
		provider, err := aviationweather.New(client, s.logger, s.config.METAR.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create aviationweather provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported METAR provider: %s", s.config.METAR.Provider)
	}
}

func (s *Service) selectStationLookup() station.Lookup {
	client := http.New(s.logger)
	client.SetRetries(s.config.METAR.Retries)
	return station.NewCachedLookup(airport.New(client, ""), cacheHitTTL, cacheMissTTL)
}
