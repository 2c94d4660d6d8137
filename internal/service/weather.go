// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/wneessen/waybar-metar/internal/logger"
	"github.com/wneessen/waybar-metar/internal/metar"
	"github.com/wneessen/waybar-metar/internal/weather"
)

const FetchTimeout = time.Second * 30

// fetchWeather requests the latest reports of the tracked stations and replaces the current
// snapshot. On failure the previous snapshot is kept. A result for a station list that was
// replaced while the request was in flight is dropped.
func (s *Service) fetchWeather(ctx context.Context) {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
	defer cancelFetch()

	stations, generation := s.stationSet()
	batch, err := s.weatherProvider.GetMETARs(ctxFetch, stations)
	if err != nil {
		s.logger.Error("failed to get METAR data", logger.Err(err),
			slog.String("provider", s.weatherProvider.Name()))
		return
	}
	s.completeStationDetails(ctxFetch, batch)

	data := weather.NewData(batch, stations, s.config.Location())
	if len(data.Missing) > 0 {
		s.logger.Warn("no METAR available for some stations", slog.Any("stations", data.Missing))
	}

	s.weatherLock.Lock()
	if _, current := s.stationSet(); current != generation {
		s.weatherLock.Unlock()
		s.logger.Debug("dropping METAR data of a replaced station list", slog.Any("stations", stations))
		return
	}
	s.weather = data
	s.weatherLock.Unlock()

	s.printWeather(ctx)
}

// completeStationDetails fills in station name and position from the station lookup for
// records that lack them.
func (s *Service) completeStationDetails(ctx context.Context, batch metar.Batch) {
	if s.stationLookup == nil {
		return
	}

	ids := make([]string, 0, len(batch))
	for _, record := range batch {
		if !record.StationID.IsSet() {
			continue
		}
		if record.Name.IsSet() && record.Latitude.IsSet() && record.Longitude.IsSet() {
			continue
		}
		ids = append(ids, record.StationID.Value())
	}
	if len(ids) == 0 {
		return
	}

	infos, err := s.stationLookup.Lookup(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to look up station details", logger.Err(err),
			slog.String("lookup", s.stationLookup.Name()))
		return
	}

	for i := range batch {
		info, ok := infos[batch[i].StationID.Value()]
		if !ok || !info.Found {
			continue
		}
		if !batch[i].Name.IsSet() && info.Name != "" {
			batch[i].Name.Set(info.Name)
		}
		if !batch[i].Latitude.IsSet() || !batch[i].Longitude.IsSet() {
			batch[i].Latitude.Set(info.Latitude)
			batch[i].Longitude.Set(info.Longitude)
		}
	}
}
