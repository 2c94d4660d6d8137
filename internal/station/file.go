// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package station

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/wneessen/waybar-metar/internal/logger"
)

// DefaultReloadInterval is the interval in which the stations file is re-read.
const DefaultReloadInterval = time.Minute * 2

// FileSource reads the tracked stations from a file and emits the list via a stream whenever
// it changes. The file holds one or more station identifiers per line, separated by commas or
// whitespace. Lines starting with "#" are comments.
type FileSource struct {
	path   string
	period time.Duration
	log    *logger.Logger
	readFn func() ([]string, error)
}

// NewFileSource returns a FileSource for path. A period <= 0 uses DefaultReloadInterval.
// Read errors while streaming are logged to log; a nil log discards them.
func NewFileSource(path string, period time.Duration, log *logger.Logger) *FileSource {
	if period <= 0 {
		period = DefaultReloadInterval
	}
	if log == nil {
		log = logger.NewLogger(slog.LevelError, io.Discard)
	}
	source := &FileSource{
		path:   path,
		period: period,
		log:    log,
	}
	source.readFn = source.Read
	return source
}

// Path returns the path of the stations file.
func (f *FileSource) Path() string {
	return f.path
}

// Read reads and normalizes the stations from the file.
func (f *FileSource) Read() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stations file %q: %w", f.path, err)
	}
	ids := Normalize(Parse(string(data)))
	if len(ids) == 0 {
		return nil, fmt.Errorf("stations file %q: %w", f.path, ErrNoStations)
	}
	return ids, nil
}

// Stream continuously reads the stations file and emits the station list on the first
// successful read and whenever it changes afterward. Missing or invalid files are retried
// on the next period. A read error is logged as a warning the first time it occurs and at
// debug level while it persists. The channel is closed once ctx is done.
func (f *FileSource) Stream(ctx context.Context) <-chan []string {
	out := make(chan []string)
	go func() {
		defer close(out)
		var last []string
		var lastErr string
		firstRun := true

		for {
			if !firstRun {
				select {
				case <-ctx.Done():
					return
				case <-time.After(f.period):
				}
			}
			firstRun = false

			ids, err := f.readFn()
			if err != nil {
				level := slog.LevelWarn
				if err.Error() == lastErr {
					level = slog.LevelDebug
				}
				lastErr = err.Error()
				f.log.Log(ctx, level, "failed to read stations file", logger.Err(err),
					slog.String("path", f.path))
				continue
			}
			lastErr = ""
			if last != nil && slices.Equal(last, ids) {
				continue
			}
			last = ids

			select {
			case <-ctx.Done():
				return
			case out <- slices.Clone(ids):
			}
		}
	}()
	return out
}
