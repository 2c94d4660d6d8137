// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/wneessen/waybar-metar/internal/logger"
)

const (
	dbusInterface   = "org.freedesktop.login1.Manager"
	dbusWatchMember = "PrepareForSleep"

	debounceWindow   = 2 * time.Second
	signalBufferSize = 8

	busReconnectDelay   = 5 * time.Second
	networkWakeupDelay  = 10 * time.Second
	reconnectDelay      = 2 * time.Second
	subscribeRetryDelay = 10 * time.Second
)

// resumeState keeps track of the last resume event for debouncing.
type resumeState struct {
	last atomic.Int64
}

// monitorSleepResume subscribes to the logind sleep signal on the system bus and refreshes the
// METAR data once the system resumes. Lost connections are re-established until ctx is done.
func (s *Service) monitorSleepResume(ctx context.Context) {
	state := new(resumeState)

	for {
		conn := s.connectToSystemBus(ctx)
		if conn == nil {
			return
		}
		if !s.subscribeSleepSignal(ctx, conn) {
			if ctx.Err() != nil {
				return
			}
			continue
		}

		sigCh := make(chan *dbus.Signal, signalBufferSize)
		conn.Signal(sigCh)
		s.logger.Debug("watching for system resume", slog.String("interface", dbusInterface),
			slog.String("member", dbusWatchMember))

		s.handleSleepSignals(ctx, sigCh, state)

		conn.RemoveSignal(sigCh)
		if err := conn.Close(); err != nil {
			s.logger.Debug("failed to close system bus connection", logger.Err(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// connectToSystemBus connects to the system bus, retrying until it succeeds or ctx is done.
func (s *Service) connectToSystemBus(ctx context.Context) *dbus.Conn {
	for {
		conn, err := dbus.ConnectSystemBus(dbus.WithContext(ctx))
		if err == nil {
			return conn
		}
		s.logger.Debug("failed to connect to system bus", logger.Err(err))
		select {
		case <-time.After(busReconnectDelay):
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Service) subscribeSleepSignal(ctx context.Context, conn *dbus.Conn) bool {
	err := conn.AddMatchSignalContext(ctx, dbus.WithMatchInterface(dbusInterface),
		dbus.WithMatchMember(dbusWatchMember))
	if err == nil {
		return true
	}

	s.logger.Error("failed to subscribe to dbus signal", slog.String("interface", dbusInterface),
		slog.String("member", dbusWatchMember), logger.Err(err))
	if err = conn.Close(); err != nil {
		s.logger.Debug("failed to close system bus connection", logger.Err(err))
	}
	select {
	case <-time.After(subscribeRetryDelay):
	case <-ctx.Done():
	}
	return false
}

func (s *Service) handleSleepSignals(ctx context.Context, sigCh <-chan *dbus.Signal, state *resumeState) {
	for {
		select {
		case <-ctx.Done():
			return
		case sgn, ok := <-sigCh:
			if !ok {
				return
			}
			if isResumeSignal(sgn) {
				s.handleResumeEvent(ctx, state)
			}
		}
	}
}

// isResumeSignal reports whether sgn announces the end of a sleep phase. PrepareForSleep
// carries a single boolean that is false on resume.
func isResumeSignal(sgn *dbus.Signal) bool {
	if sgn == nil || len(sgn.Body) != 1 {
		return false
	}
	sleeping, ok := sgn.Body[0].(bool)
	return ok && !sleeping
}

// handleResumeEvent refreshes the METAR data after the network had time to come back up.
// Resume events within the debounce window are ignored.
func (s *Service) handleResumeEvent(ctx context.Context, state *resumeState) {
	now := time.Now().UnixNano()
	last := state.last.Load()
	if last != 0 && time.Duration(now-last) < debounceWindow {
		return
	}
	state.last.Store(now)

	select {
	case <-time.After(networkWakeupDelay):
	case <-ctx.Done():
		return
	}

	s.logger.Debug("system resumed, refreshing METAR data")
	s.fetchWeather(ctx)
}
