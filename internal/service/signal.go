// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"os"
	"os/signal"
)

type signalSource interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type stdLibSignalSource struct{}

func (stdLibSignalSource) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (stdLibSignalSource) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// HandleAltTextToggleSignal switches between the regular and the alternative text and tooltip
// whenever a signal is received.
func (s *Service) HandleAltTextToggleSignal(ctx context.Context, sigChan <-chan os.Signal) {
	s.handleSignal(ctx, sigChan, func() {
		s.displayLock.Lock()
		s.displayAltText = !s.displayAltText
		s.displayLock.Unlock()
	})
}

// HandleStationCycleSignal moves the display on to the next station with a report.
func (s *Service) HandleStationCycleSignal(ctx context.Context, sigChan <-chan os.Signal) {
	s.handleSignal(ctx, sigChan, s.cycleStation)
}

func (s *Service) handleSignal(ctx context.Context, sigChan <-chan os.Signal, action func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sigChan:
			if !ok {
				return
			}
			action()
			s.printWeather(ctx)
		}
	}
}

func (s *Service) cycleStation() {
	s.weatherLock.RLock()
	count := 0
	if s.weather != nil {
		count = len(s.weather.Observations)
	}
	s.weatherLock.RUnlock()

	s.displayLock.Lock()
	defer s.displayLock.Unlock()
	if count == 0 {
		s.displayIndex = 0
		return
	}
	s.displayIndex = (s.displayIndex + 1) % count
}
