// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/waybar-metar/internal/config"
	"github.com/wneessen/waybar-metar/internal/job"
	"github.com/wneessen/waybar-metar/internal/logger"
	"github.com/wneessen/waybar-metar/internal/presenter"
	"github.com/wneessen/waybar-metar/internal/station"
	"github.com/wneessen/waybar-metar/internal/weather"
)

const (
	OutputClass      = "waybar-metar"
	UnavailableClass = "unavailable"
)

type outputData struct {
	Text    string   `json:"text"`
	Alt     string   `json:"alt"`
	Tooltip string   `json:"tooltip"`
	Class   []string `json:"class"`
}

type Service struct {
	config          *config.Config
	logger          *logger.Logger
	t               *spreak.Localizer
	presenter       *presenter.Presenter
	scheduler       gocron.Scheduler
	weatherProvider weather.Provider
	stationLookup   station.Lookup
	stationSource   *station.FileSource
	signals         signalSource
	sleepMonitor    func(context.Context)

	outputLock sync.Mutex
	output     io.Writer

	stationsLock sync.RWMutex
	stations     []string
	stationsGen  uint64

	weatherLock sync.RWMutex
	weather     *weather.Data

	displayLock    sync.RWMutex
	displayAltText bool
	displayIndex   int
}

func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer) (*Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if t == nil {
		return nil, fmt.Errorf("localizer is required")
	}

	pres, err := presenter.New(conf, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	service := &Service{
		config:    conf,
		logger:    log,
		t:         t,
		presenter: pres,
		signals:   stdLibSignalSource{},
		output:    os.Stdout,
		stations:  slices.Clone(conf.METAR.Stations),
	}
	service.sleepMonitor = service.monitorSleepResume

	service.weatherProvider, err = service.selectWeatherProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	if conf.Stations.LookupNames {
		service.stationLookup = service.selectStationLookup()
	}
	if !conf.Stations.DisableFile {
		service.stationSource = station.NewFileSource(conf.Stations.File, conf.Intervals.StationsReload, log)
	}

	return service, nil
}

func (s *Service) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	s.scheduler = scheduler

	// Start scheduled jobs
	if err := s.createScheduledJob(ctx, s.config.Intervals.WeatherUpdate, s.fetchWeather,
		"weather_update_job"); err != nil {
		return err
	}
	s.scheduler.Start()
	go job.New(s.config.Intervals.Output, s.printWeather).Start(ctx)

	// Replace the tracked stations whenever the stations file changes
	if s.stationSource != nil {
		go s.processStationUpdates(ctx, s.stationSource.Stream(ctx))
	}

	// Signal handling
	cycleChan := make(chan os.Signal, 1)
	altChan := make(chan os.Signal, 1)
	s.signals.Notify(cycleChan, syscall.SIGUSR1)
	s.signals.Notify(altChan, syscall.SIGUSR2)
	go s.HandleStationCycleSignal(ctx, cycleChan)
	go s.HandleAltTextToggleSignal(ctx, altChan)

	if s.sleepMonitor != nil {
		go s.sleepMonitor(ctx)
	}

	// Wait for the context to cancel
	<-ctx.Done()
	s.signals.Stop(cycleChan)
	s.signals.Stop(altChan)
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// printWeather renders the current snapshot and writes it as a single JSON line. Nothing is
// printed before the first successful refresh.
func (s *Service) printWeather(context.Context) {
	s.weatherLock.RLock()
	data := s.weather
	s.weatherLock.RUnlock()
	if data == nil {
		return
	}

	output, err := s.renderOutput(data, time.Now())
	if err != nil {
		s.logger.Error("failed to render weather data", logger.Err(err))
		return
	}

	s.outputLock.Lock()
	defer s.outputLock.Unlock()
	if err = json.NewEncoder(s.output).Encode(output); err != nil {
		s.logger.Error("failed to encode weather data", logger.Err(err))
	}
}

func (s *Service) renderOutput(data *weather.Data, now time.Time) (outputData, error) {
	if data.IsEmpty() {
		return outputData{
			Text:    s.t.Get("no weather data available"),
			Alt:     UnavailableClass,
			Tooltip: strings.Join(data.Missing, ", "),
			Class:   []string{OutputClass, UnavailableClass},
		}, nil
	}

	s.displayLock.RLock()
	index, altText := s.displayIndex, s.displayAltText
	s.displayLock.RUnlock()

	tplCtx := s.presenter.BuildContext(data, index, moonphase.New(now).PhaseName(), now)
	rendered, err := s.presenter.Render(tplCtx)
	if err != nil {
		return outputData{}, err
	}

	output := outputData{
		Text:    rendered["text"],
		Alt:     tplCtx.Current.Class,
		Tooltip: rendered["tooltip"],
		Class:   []string{OutputClass, tplCtx.Current.Class},
	}
	if altText {
		output.Text = rendered["alt_text"]
		output.Tooltip = rendered["alt_tooltip"]
	}
	return output, nil
}

// trackedStations returns a copy of the currently tracked station list.
func (s *Service) trackedStations() []string {
	stations, _ := s.stationSet()
	return stations
}

// stationSet returns a copy of the tracked station list and its generation. The generation
// changes with every replacement of the list.
func (s *Service) stationSet() ([]string, uint64) {
	s.stationsLock.RLock()
	defer s.stationsLock.RUnlock()
	return slices.Clone(s.stations), s.stationsGen
}

// setStations replaces the tracked stations. It reports whether the list changed.
func (s *Service) setStations(ids []string) bool {
	ids = station.Normalize(ids)
	if len(ids) == 0 {
		return false
	}

	s.stationsLock.Lock()
	defer s.stationsLock.Unlock()
	if slices.Equal(s.stations, ids) {
		return false
	}
	s.stations = ids
	s.stationsGen++
	return true
}

// processStationUpdates applies station lists received from the stations file and refreshes
// the weather data for the new set.
func (s *Service) processStationUpdates(ctx context.Context, sub <-chan []string) {
	for {
		select {
		case <-ctx.Done():
			return
		case ids, ok := <-sub:
			if !ok {
				return
			}
			if !s.setStations(ids) {
				continue
			}
			s.logger.Debug("tracked stations updated", slog.Any("stations", s.trackedStations()),
				slog.String("source", s.stationSource.Path()))

			s.displayLock.Lock()
			s.displayIndex = 0
			s.displayLock.Unlock()

			s.fetchWeather(ctx)
		}
	}
}
