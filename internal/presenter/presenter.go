// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"

	"github.com/wneessen/waybar-metar/internal/config"
	"github.com/wneessen/waybar-metar/internal/metar"
	"github.com/wneessen/waybar-metar/internal/weather"
)

const titleEllipsis = "…"

// StationView wraps a normalized observation with presentation-related fields.
type StationView struct {
	metar.Observation

	// Title is the condensed title, limited to the configured display width.
	Title        string
	Class        string
	CategoryIcon string
	IsDaytime    bool
	SunriseTime  time.Time
	SunsetTime   time.Time
	Age          time.Duration
}

type TemplateContext struct {
	UpdateTime    time.Time
	MoonPhase     string
	MoonPhaseIcon string

	Current      StationView
	CurrentIndex int
	Stations     []StationView
	Missing      []string
}

type Presenter struct {
	TextTemplate       *template.Template
	AltTextTemplate    *template.Template
	TooltipTemplate    *template.Template
	AltTooltipTemplate *template.Template

	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	maxWidth  int
}

// New parses the configured templates and verifies that they render.
func New(conf *config.Config, localizer *spreak.Localizer) (*Presenter, error) {
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}
	pres := &Presenter{
		localizer: localizer,
		humanizer: collection.CreateHumanizer(localizer.Language()),
		maxWidth:  conf.Templates.MaxWidth,
	}

	templates := []struct {
		name   string
		text   string
		target **template.Template
	}{
		{"text", conf.Templates.Text, &pres.TextTemplate},
		{"alt_text", conf.Templates.AltText, &pres.AltTextTemplate},
		{"tooltip", conf.Templates.Tooltip, &pres.TooltipTemplate},
		{"alt_tooltip", conf.Templates.AltTooltip, &pres.AltTooltipTemplate},
	}
	for _, tpl := range templates {
		parsed, err := template.New(tpl.name).Funcs(pres.templateFuncMap()).Parse(tpl.text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", tpl.name, err)
		}
		*tpl.target = parsed
	}

	if _, err = pres.Render(TemplateContext{}); err != nil {
		return nil, err
	}

	return pres, nil
}

// BuildContext creates the template context for the observation at index current of data.
// An out of range index selects the first observation.
func (p *Presenter) BuildContext(data *weather.Data, current int, moonPhase string, now time.Time) TemplateContext {
	if data == nil {
		return TemplateContext{}
	}

	tplCtx := TemplateContext{
		UpdateTime:    data.GeneratedAt,
		MoonPhase:     moonPhase,
		MoonPhaseIcon: MoonPhaseIcon[moonPhase],
		Stations:      make([]StationView, 0, len(data.Observations)),
		Missing:       data.Missing,
	}
	for _, obs := range data.Observations {
		tplCtx.Stations = append(tplCtx.Stations, p.viewFromObservation(obs, now))
	}
	if len(tplCtx.Stations) == 0 {
		return tplCtx
	}

	if current < 0 || current >= len(tplCtx.Stations) {
		current = 0
	}
	tplCtx.CurrentIndex = current
	tplCtx.Current = tplCtx.Stations[current]

	return tplCtx
}

// Render executes all templates and returns the results keyed by template name.
func (p *Presenter) Render(tplCtx TemplateContext) (map[string]string, error) {
	output := make(map[string]string, 4)
	templates := map[string]*template.Template{
		"text":        p.TextTemplate,
		"alt_text":    p.AltTextTemplate,
		"tooltip":     p.TooltipTemplate,
		"alt_tooltip": p.AltTooltipTemplate,
	}
	for name, tpl := range templates {
		if tpl == nil {
			return nil, fmt.Errorf("failed to render %s template: template is not initialized", name)
		}
		buf := bytes.NewBuffer(nil)
		if err := tpl.Execute(buf, tplCtx); err != nil {
			return nil, fmt.Errorf("failed to render %s template: %w", name, err)
		}
		output[name] = buf.String()
	}
	return output, nil
}

func (p *Presenter) viewFromObservation(obs metar.Observation, now time.Time) StationView {
	view := StationView{
		Observation:  obs,
		Title:        p.truncate(metar.CondensedTitle(obs)),
		Class:        strings.ToLower(obs.FlightCategory.String()),
		CategoryIcon: FlightCategoryIcon[obs.FlightCategory],
	}
	if !obs.ObservedAt.IsZero() {
		view.Age = now.Sub(obs.ObservedAt)
	}
	if obs.HasPosition {
		utc := now.UTC()
		view.SunriseTime, view.SunsetTime = sunrise.SunriseSunset(obs.Latitude, obs.Longitude, utc.Year(),
			utc.Month(), utc.Day())
		view.IsDaytime = now.After(view.SunriseTime) && now.Before(view.SunsetTime)
	}
	return view
}

func (p *Presenter) truncate(title string) string {
	if p.maxWidth <= 0 {
		return title
	}
	return runewidth.Truncate(title, p.maxWidth, titleEllipsis)
}
