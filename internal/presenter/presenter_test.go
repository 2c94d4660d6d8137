// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/spreak"

	"github.com/wneessen/waybar-metar/internal/config"
	"github.com/wneessen/waybar-metar/internal/i18n"
	"github.com/wneessen/waybar-metar/internal/metar"
	"github.com/wneessen/waybar-metar/internal/weather"
)

const (
	testFile  = "../../testdata/aviationweather_metar.json"
	moonphase = "Waxing Gibbous"
)

// now is the observation time of the KJFK report in the test data.
var now = time.Unix(1763665500, 0)

func TestNew(t *testing.T) {
	t.Run("creating a new presenter succeeds", func(t *testing.T) {
		conf, lang := testConfLang(t)
		pres, err := New(conf, lang)
		if err != nil {
			t.Fatalf("failed to create presenter: %s", err)
		}
		if pres == nil {
			t.Fatal("expected presenter to be non-nil")
		}
	})
	t.Run("creating presenter with invalid templates fails", func(t *testing.T) {
		tests := []struct {
			name       string
			templateFn func(conf *config.Config)
		}{
			{"text", func(conf *config.Config) { conf.Templates.Text = "{{invalid" }},
			{"alt_text", func(conf *config.Config) { conf.Templates.AltText = "{{invalid" }},
			{"tooltip", func(conf *config.Config) { conf.Templates.Tooltip = "{{invalid" }},
			{"alt_tooltip", func(conf *config.Config) { conf.Templates.AltTooltip = "{{invalid" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				conf, lang := testConfLang(t)
				tt.templateFn(conf)
				_, err := New(conf, lang)
				if err == nil {
					t.Fatal("expected presenter to fail, but didn't")
				}
				wantErr := "failed to parse"
				if !strings.Contains(err.Error(), wantErr) {
					t.Errorf("expected error to contain %q, got %q", wantErr, err)
				}
			})
		}
	})
	t.Run("creating presenter with template execution errors fails", func(t *testing.T) {
		tests := []struct {
			name       string
			templateFn func(conf *config.Config)
		}{
			{"text", func(conf *config.Config) { conf.Templates.Text = "{{.Data}}" }},
			{"alt_text", func(conf *config.Config) { conf.Templates.AltText = "{{.Data}}" }},
			{"tooltip", func(conf *config.Config) { conf.Templates.Tooltip = "{{.Data}}" }},
			{"alt_tooltip", func(conf *config.Config) { conf.Templates.AltTooltip = "{{.Data}}" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				conf, lang := testConfLang(t)
				tt.templateFn(conf)
				_, err := New(conf, lang)
				if err == nil {
					t.Fatal("expected presenter to fail, but didn't")
				}
				wantErr := "failed to render"
				if !strings.Contains(err.Error(), wantErr) {
					t.Errorf("expected error to contain %q, got %q", wantErr, err)
				}
			})
		}
	})
}

func TestPresenter_BuildContext(t *testing.T) {
	t.Run("building context succeeds", func(t *testing.T) {
		pres := testPresenter(t, nil)
		tplCtx := pres.BuildContext(testData(t), 1, moonphase, now)

		if tplCtx.UpdateTime.IsZero() {
			t.Error("expected update time to be set")
		}
		if len(tplCtx.Stations) != 3 {
			t.Fatalf("expected 3 stations, got %d", len(tplCtx.Stations))
		}
		if tplCtx.CurrentIndex != 1 {
			t.Errorf("expected current index to be 1, got %d", tplCtx.CurrentIndex)
		}
		if tplCtx.Current.Station != "KJFK" {
			t.Errorf("expected current station to be KJFK, got %s", tplCtx.Current.Station)
		}
		wantTitle := "KJFK SPECI IFR OVC 700ft VRB@4 2.5SM"
		if tplCtx.Current.Title != wantTitle {
			t.Errorf("expected title to be %q, got %q", wantTitle, tplCtx.Current.Title)
		}
		if tplCtx.Current.Class != "ifr" {
			t.Errorf("expected class to be ifr, got %q", tplCtx.Current.Class)
		}
		if tplCtx.Current.CategoryIcon != "🔴" {
			t.Errorf("expected category icon to be 🔴, got %q", tplCtx.Current.CategoryIcon)
		}
		if tplCtx.Current.Age != 0 {
			t.Errorf("expected observation age to be 0, got %s", tplCtx.Current.Age)
		}
		if tplCtx.Stations[0].Age != time.Second*540 {
			t.Errorf("expected KSFO observation age to be 9m, got %s", tplCtx.Stations[0].Age)
		}
		if !tplCtx.Current.IsDaytime {
			t.Error("expected daytime at KJFK in the afternoon")
		}
		if tplCtx.Current.SunriseTime.IsZero() || tplCtx.Current.SunsetTime.IsZero() {
			t.Error("expected sunrise and sunset to be set")
		}
		if tplCtx.Stations[2].IsDaytime || !tplCtx.Stations[2].SunriseTime.IsZero() {
			t.Error("expected station without position to have no day/night information")
		}
		wantMoonIcon := "🌔"
		if tplCtx.MoonPhaseIcon != wantMoonIcon {
			t.Errorf("expected moon phase icon to be %q, got %q", wantMoonIcon, tplCtx.MoonPhaseIcon)
		}
	})
	t.Run("night is detected", func(t *testing.T) {
		pres := testPresenter(t, nil)
		tplCtx := pres.BuildContext(testData(t), 1, moonphase, now.Add(time.Hour*12))
		if tplCtx.Current.IsDaytime {
			t.Error("expected night at KJFK early in the morning")
		}
	})
	t.Run("out of range index selects the first station", func(t *testing.T) {
		pres := testPresenter(t, nil)
		for _, idx := range []int{-1, 3, 42} {
			tplCtx := pres.BuildContext(testData(t), idx, moonphase, now)
			if tplCtx.CurrentIndex != 0 || tplCtx.Current.Station != "KSFO" {
				t.Errorf("index %d: expected first station, got %s (%d)", idx, tplCtx.Current.Station,
					tplCtx.CurrentIndex)
			}
		}
	})
	t.Run("titles are limited to the configured width", func(t *testing.T) {
		pres := testPresenter(t, func(conf *config.Config) { conf.Templates.MaxWidth = 12 })
		tplCtx := pres.BuildContext(testData(t), 1, moonphase, now)
		title := tplCtx.Current.Title
		if !strings.HasPrefix(title, "KJFK SPECI") || !strings.HasSuffix(title, titleEllipsis) {
			t.Errorf("expected truncated title, got %q", title)
		}
		if width := runewidth.StringWidth(title); width > 12 {
			t.Errorf("expected title width to be at most 12, got %d", width)
		}
		if tplCtx.Stations[2].Title != "KRAP VFR 000°@0" {
			t.Errorf("expected short title to be untouched, got %q", tplCtx.Stations[2].Title)
		}
	})
	t.Run("building context with nil weather data returns an empty context", func(t *testing.T) {
		pres := testPresenter(t, nil)
		tplCtx := pres.BuildContext(nil, 0, moonphase, now)
		if !tplCtx.UpdateTime.IsZero() {
			t.Errorf("expected update time to be zero, got %s", tplCtx.UpdateTime)
		}
		if len(tplCtx.Stations) != 0 {
			t.Errorf("expected no stations, got %d", len(tplCtx.Stations))
		}
	})
	t.Run("missing stations are passed through", func(t *testing.T) {
		pres := testPresenter(t, nil)
		data := weather.NewData(metar.Batch{}, []string{"KBOS"}, time.UTC)
		tplCtx := pres.BuildContext(data, 0, moonphase, now)
		if len(tplCtx.Missing) != 1 || tplCtx.Missing[0] != "KBOS" {
			t.Errorf("expected KBOS to be missing, got %v", tplCtx.Missing)
		}
		if tplCtx.Current.Station != "" {
			t.Errorf("expected no current station, got %q", tplCtx.Current.Station)
		}
	})
}

func TestPresenter_Render(t *testing.T) {
	t.Run("rendering succeeds", func(t *testing.T) {
		pres := testPresenter(t, nil)
		tplCtx := pres.BuildContext(testData(t), 1, moonphase, now)
		outMap, err := pres.Render(tplCtx)
		if err != nil {
			t.Fatalf("failed to render: %s", err)
		}
		if len(outMap) != 4 {
			t.Errorf("expected output map to have length 4, got %d", len(outMap))
		}
		wantText := "KJFK SPECI IFR OVC 700ft VRB@4 2.5SM"
		wantAltText := "KJFK 7.2°C / 6.1°C 29.86 inHg"
		wantTooltip := `KJFK - New York/JF Kennedy Intl, NY, US
Flight category: IFR
Conditions: OVC 700ft (Light Rain)
Visibility: 2.5SM
Wind: Variable @ 4kts
Temperature: 7.2°C / 6.1°C
Altimeter: 29.86 inHg
Clouds: OVC 700ft
Observed: 11.20.2025 19:05 (UTC) (20Z19:05)`
		wantAltTooltip := `KSFO VFR BKN 20000ft 290°@12G21
KJFK SPECI IFR OVC 700ft VRB@4 2.5SM
KRAP VFR 000°@0

🌔 Waxing gibbous`
		if outMap["text"] != wantText {
			t.Errorf("expected text output to be %q, got %q", wantText, outMap["text"])
		}
		if outMap["alt_text"] != wantAltText {
			t.Errorf("expected alt_text output to be %q, got %q", wantAltText, outMap["alt_text"])
		}
		if outMap["tooltip"] != wantTooltip {
			t.Errorf("expected tooltip output to be %q, got %q", wantTooltip, outMap["tooltip"])
		}
		if outMap["alt_tooltip"] != wantAltTooltip {
			t.Errorf("expected alt_tooltip output to be %q, got %q", wantAltTooltip, outMap["alt_tooltip"])
		}
	})
	t.Run("rendering with invalid templates fails", func(t *testing.T) {
		tests := []struct {
			name       string
			templateFn func(*Presenter, *template.Template)
		}{
			{"text", func(pres *Presenter, tpl *template.Template) { pres.TextTemplate = tpl }},
			{"alt_text", func(pres *Presenter, tpl *template.Template) { pres.AltTextTemplate = tpl }},
			{"tooltip", func(pres *Presenter, tpl *template.Template) { pres.TooltipTemplate = tpl }},
			{"alt_tooltip", func(pres *Presenter, tpl *template.Template) { pres.AltTooltipTemplate = tpl }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				pres := testPresenter(t, nil)
				tpl, err := template.New(tt.name).Parse("{{.Data}}")
				if err != nil {
					t.Fatalf("failed to parse template: %s", err)
				}
				tt.templateFn(pres, tpl)
				_, err = pres.Render(pres.BuildContext(testData(t), 0, moonphase, now))
				if err == nil {
					t.Fatal("expected rendering to fail")
				}
				wantErr := fmt.Sprintf("failed to render %s template", tt.name)
				if !strings.Contains(err.Error(), wantErr) {
					t.Errorf("expected error to contain %q, got %q", wantErr, err)
				}
			})
		}
	})
	t.Run("rendering with an uninitialized template fails", func(t *testing.T) {
		pres := testPresenter(t, nil)
		pres.TooltipTemplate = nil
		if _, err := pres.Render(TemplateContext{}); err == nil {
			t.Error("expected rendering to fail")
		}
	})
}

func TestPresenter_templateFuncs(t *testing.T) {
	pres := testPresenter(t, nil)
	t.Run("loc translates known keys", func(t *testing.T) {
		if got := pres.loc("Visibility"); got != "Visibility" {
			t.Errorf("expected Visibility, got %q", got)
		}
		if got := pres.loc("Full Moon"); got != "Full moon" {
			t.Errorf("expected Full moon, got %q", got)
		}
		if got := pres.loc("KJFK"); got != "KJFK" {
			t.Errorf("expected unknown keys to be returned as is, got %q", got)
		}
	})
	t.Run("floatFormat truncates", func(t *testing.T) {
		if got := pres.floatFormat(29.869, 2); got != "29.86" {
			t.Errorf("expected 29.86, got %q", got)
		}
		if got := pres.floatFormat(7.25, 0); got != "7" {
			t.Errorf("expected 7, got %q", got)
		}
	})
	t.Run("timeFormat", func(t *testing.T) {
		if got := pres.timeFormat(now.UTC(), "15:04"); got != "19:05" {
			t.Errorf("expected 19:05, got %q", got)
		}
	})
	t.Run("naturalTime", func(t *testing.T) {
		if got := pres.naturalTime(time.Time{}); got != "" {
			t.Errorf("expected empty string for zero time, got %q", got)
		}
		if got := pres.naturalTime(time.Now().Add(-time.Hour * 3)); got == "" {
			t.Error("expected a natural time representation")
		}
	})
	t.Run("localizedTime", func(t *testing.T) {
		if got := pres.localizedTime(now); got == "" {
			t.Error("expected a localized time representation")
		}
	})
	t.Run("template funcs are usable in templates", func(t *testing.T) {
		tpl, err := template.New("funcs").Funcs(pres.templateFuncMap()).
			Parse(`{{uc "kjfk"}} {{lc "IFR"}} {{join .Current.CloudLayers "/"}} [{{pad "VFR" 5}}]`)
		if err != nil {
			t.Fatalf("failed to parse template: %s", err)
		}
		buf := strings.Builder{}
		if err = tpl.Execute(&buf, pres.BuildContext(testData(t), 0, moonphase, now)); err != nil {
			t.Fatalf("failed to execute template: %s", err)
		}
		want := "KJFK ifr FEW 800ft/BKN 20000ft [VFR  ]"
		if buf.String() != want {
			t.Errorf("expected %q, got %q", want, buf.String())
		}
	})
}

func testConfLang(t *testing.T) (*config.Config, *spreak.Localizer) {
	t.Helper()
	conf, err := config.New()
	if err != nil {
		t.Fatalf("failed to create config: %s", err)
	}
	conf.Locale = "en"
	lang, err := i18n.New(conf.Locale)
	if err != nil {
		t.Fatalf("failed to create i18n provider: %s", err)
	}
	return conf, lang
}

func testPresenter(t *testing.T, confFn func(*config.Config)) *Presenter {
	t.Helper()
	conf, lang := testConfLang(t)
	if confFn != nil {
		confFn(conf)
	}
	pres, err := New(conf, lang)
	if err != nil {
		t.Fatalf("failed to create presenter: %s", err)
	}
	return pres
}

func testData(t *testing.T) *weather.Data {
	t.Helper()
	raw, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("failed to read test file: %s", err)
	}
	batch, err := metar.DecodeBatch(raw)
	if err != nil {
		t.Fatalf("failed to decode batch: %s", err)
	}
	return weather.NewData(batch, []string{"KSFO", "KJFK", "KRAP"}, time.UTC)
}
