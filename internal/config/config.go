// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kkyr/fig"

	"github.com/wneessen/waybar-metar/internal/station"
)

const (
	configEnv = "WAYBARMETAR"

	// ProviderAviationWeather selects the aviationweather.gov data API.
	ProviderAviationWeather = "aviationweather"

	minWeatherUpdateInterval = time.Minute
	maxRetries               = 10

	DefaultTextTpl    = "{{.Current.Title}}"
	DefaultAltTextTpl = "{{.Current.Station}} {{.Current.Temperature}} {{.Current.Altimeter}}"
	DefaultTooltipTpl = "{{.Current.Station}} - {{.Current.Name}}\n" +
		"{{loc \"category\"}}: {{.Current.FlightCategory}}\n" +
		"{{loc \"conditions\"}}: {{.Current.Conditions}}" +
		"{{with .Current.AdditionalConditions}} ({{join . \", \"}}){{end}}\n" +
		"{{loc \"visibility\"}}: {{.Current.Visibility}}\n" +
		"{{loc \"wind\"}}: {{.Current.Wind}}\n" +
		"{{loc \"temperature\"}}: {{.Current.Temperature}}\n" +
		"{{loc \"altimeter\"}}: {{.Current.Altimeter}}\n" +
		"{{loc \"clouds\"}}: {{join .Current.CloudLayers \", \"}}\n" +
		"{{loc \"observed\"}}: {{.Current.LocalTime}} ({{.Current.ZuluTime}})"
	DefaultAltTooltipTpl = "{{range $i, $s := .Stations}}{{if $i}}\n{{end}}{{$s.Title}}{{end}}\n\n" +
		"{{.MoonPhaseIcon}} {{loc .MoonPhase}}"
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	// Timezone used for the local observation time. Empty means the system's local time.
	Timezone string `fig:"timezone"`

	METAR struct {
		Stations []string `fig:"stations" default:"[KJFK]"`
		// Allowed value: aviationweather
		Provider string `fig:"provider" default:"aviationweather"`
		Endpoint string `fig:"endpoint"`
		// Allowed value: 0 to 10
		Retries int `fig:"retries" default:"2"`
	} `fig:"metar"`

	Stations struct {
		File        string `fig:"file"`
		DisableFile bool   `fig:"disable_file"`
		LookupNames bool   `fig:"lookup_names"`
	} `fig:"stations"`

	Intervals struct {
		WeatherUpdate  time.Duration `fig:"weather_update" default:"10m"`
		Output         time.Duration `fig:"output" default:"30s"`
		StationsReload time.Duration `fig:"stations_reload" default:"2m"`
	} `fig:"intervals"`

	Templates struct {
		Text       string `fig:"text"`
		AltText    string `fig:"alt_text"`
		Tooltip    string `fig:"tooltip"`
		AltTooltip string `fig:"alt_tooltip"`
		// MaxWidth limits the condensed title to the given number of display cells. 0 disables it.
		MaxWidth int `fig:"max_width"`
	} `fig:"templates"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}

	c.METAR.Stations = station.Normalize(c.METAR.Stations)
	if len(c.METAR.Stations) == 0 {
		return fmt.Errorf("no valid METAR stations configured")
	}
	c.METAR.Provider = strings.ToLower(c.METAR.Provider)
	if c.METAR.Provider != ProviderAviationWeather {
		return fmt.Errorf("unsupported METAR provider: %s", c.METAR.Provider)
	}
	if c.METAR.Retries < 0 || c.METAR.Retries > maxRetries {
		return fmt.Errorf("invalid retry count: %d", c.METAR.Retries)
	}

	if c.Intervals.WeatherUpdate < minWeatherUpdateInterval {
		return fmt.Errorf("weather update interval must be at least %s, got %s", minWeatherUpdateInterval,
			c.Intervals.WeatherUpdate)
	}
	if c.Intervals.Output <= 0 {
		return fmt.Errorf("invalid output interval: %s", c.Intervals.Output)
	}
	if c.Intervals.StationsReload <= 0 {
		return fmt.Errorf("invalid stations reload interval: %s", c.Intervals.StationsReload)
	}

	if c.Templates.Text == "" {
		c.Templates.Text = DefaultTextTpl
	}
	if c.Templates.AltText == "" {
		c.Templates.AltText = DefaultAltTextTpl
	}
	if c.Templates.Tooltip == "" {
		c.Templates.Tooltip = DefaultTooltipTpl
	}
	if c.Templates.AltTooltip == "" {
		c.Templates.AltTooltip = DefaultAltTooltipTpl
	}
	if c.Templates.MaxWidth < 0 {
		return fmt.Errorf("invalid template max width: %d", c.Templates.MaxWidth)
	}

	if c.Stations.File == "" {
		home, _ := os.UserHomeDir()
		c.Stations.File = filepath.Join(home, ".config", "waybar-metar", "stations")
	}

	return nil
}

// Location returns the time zone for local observation times.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
