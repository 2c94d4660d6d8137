// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package metar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wneessen/waybar-metar/internal/vartype"
)

func TestFormatWind(t *testing.T) {
	var unset vartype.VarInt
	var noDir vartype.Variable[WindDirection]
	tests := []struct {
		name  string
		dir   vartype.Variable[WindDirection]
		speed vartype.VarInt
		gust  vartype.VarInt
		want  string
	}{
		{"calm", noDir, vartype.NewVariable(0), unset, Calm},
		{"nothing reported", noDir, unset, unset, Calm},
		{"direction and speed", vartype.NewVariable[WindDirection]("270"), vartype.NewVariable(10), unset,
			"270° @ 10kts"},
		{"with gust", vartype.NewVariable[WindDirection]("270"), vartype.NewVariable(10),
			vartype.NewVariable(20), "270° @ 10kts G20kts"},
		{"zero padded direction", vartype.NewVariable[WindDirection]("50"), vartype.NewVariable(5), unset,
			"050° @ 5kts"},
		{"variable", vartype.NewVariable(WindVariable), vartype.NewVariable(3), unset, "Variable @ 3kts"},
		{"speed without direction", noDir, vartype.NewVariable(6), unset, "Variable @ 6kts"},
		{"zero speed with direction", vartype.NewVariable[WindDirection]("0"), vartype.NewVariable(0), unset,
			"000° @ 0kts"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatWind(tc.dir, tc.speed, tc.gust); got != tc.want {
				t.Errorf("expected wind %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatTemperature(t *testing.T) {
	var unset vartype.VarFloat64
	tests := []struct {
		name string
		temp vartype.VarFloat64
		dew  vartype.VarFloat64
		want string
	}{
		{"both reported", vartype.NewVariable(20.0), vartype.NewVariable(10.0), "20.0°C / 10.0°C"},
		{"negative values", vartype.NewVariable(-3.0), vartype.NewVariable(-9.4), "-3.0°C / -9.4°C"},
		{"dewpoint missing", vartype.NewVariable(20.0), unset, "20.0°C / Unknown"},
		{"temperature missing", unset, vartype.NewVariable(10.0), "Unknown / 10.0°C"},
		{"both missing", unset, unset, "Unknown / Unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTemperature(tc.temp, tc.dew); got != tc.want {
				t.Errorf("expected temperature %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatAltimeter(t *testing.T) {
	tests := []struct {
		name string
		val  vartype.VarFloat64
		want string
	}{
		{"inches of mercury", vartype.NewVariable(29.92), "29.92 inHg"},
		{"hectopascals are converted", vartype.NewVariable(1013.25), "29.92 inHg"},
		{"exactly 100 is not converted", vartype.NewVariable(100.0), "100.00 inHg"},
		{"absent", vartype.VarFloat64{}, Unknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatAltimeter(tc.val); got != tc.want {
				t.Errorf("expected altimeter %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatVisibility(t *testing.T) {
	if got := FormatVisibility(TextVisibility("10+")); got != "10+SM" {
		t.Errorf("expected 10+SM, got %q", got)
	}
	if got := FormatVisibility(FloatVisibility(2.5)); got != "2.5SM" {
		t.Errorf("expected 2.5SM, got %q", got)
	}
	if got := FormatVisibility(Visibility{}); got != Unknown {
		t.Errorf("expected %s, got %q", Unknown, got)
	}
}

func TestFormatConditions(t *testing.T) {
	tests := []struct {
		name   string
		layers []CloudLayer
		want   string
	}{
		{"no layers", nil, SkyClear},
		{"single ceiling", layers("OVC", 800), "OVC 800ft"},
		{"lowest ceiling wins over lower non-ceiling", append(append(layers("FEW", 500),
			layers("OVC", 9000)...), layers("BKN", 4000)...), "BKN 4000ft"},
		{"highest layer without ceiling", append(layers("FEW", 3000), layers("SCT", 12000)...),
			"SCT 12000ft"},
		{"layer without base", []CloudLayer{{Cover: vartype.NewVariable("CLR")}}, "CLR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatConditions(tc.layers); got != tc.want {
				t.Errorf("expected conditions %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatCloudLayers(t *testing.T) {
	t.Run("no layers render sky clear", func(t *testing.T) {
		if diff := cmp.Diff([]string{SkyClear}, FormatCloudLayers(nil)); diff != "" {
			t.Errorf("cloud layers mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("layers are sorted from low to high", func(t *testing.T) {
		input := append(append(append(layers("OVC", 9000), layers("FEW", 1200)...),
			layers("SCT", 4000)...), CloudLayer{Base: vartype.NewVariable(2000)})
		want := []string{"FEW 1200ft", "Unknown 2000ft", "SCT 4000ft", "OVC 9000ft"}
		if diff := cmp.Diff(want, FormatCloudLayers(input)); diff != "" {
			t.Errorf("cloud layers mismatch (-want +got):\n%s", diff)
		}
		if input[0].Cover.Value() != "OVC" {
			t.Error("expected input layers not to be reordered")
		}
	})
	t.Run("layers without base sort first and keep their order", func(t *testing.T) {
		input := []CloudLayer{
			{Cover: vartype.NewVariable("SCT"), Base: vartype.NewVariable(3000)},
			{Cover: vartype.NewVariable("CLR")},
			{Cover: vartype.NewVariable("NSC")},
		}
		want := []string{"CLR", "NSC", "SCT 3000ft"}
		if diff := cmp.Diff(want, FormatCloudLayers(input)); diff != "" {
			t.Errorf("cloud layers mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestFormatObservationTime(t *testing.T) {
	t.Run("local and zulu time", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*60*60)
		local, zulu := FormatObservationTime(vartype.NewVariable[int64](1763664960), loc)
		if local != "11.20.2025 13:56 (EST)" {
			t.Errorf("expected local time 11.20.2025 13:56 (EST), got %q", local)
		}
		if zulu != "20Z18:56" {
			t.Errorf("expected zulu time 20Z18:56, got %q", zulu)
		}
	})
	t.Run("UTC location", func(t *testing.T) {
		local, _ := FormatObservationTime(vartype.NewVariable[int64](1763664960), time.UTC)
		if local != "11.20.2025 18:56 (UTC)" {
			t.Errorf("expected local time 11.20.2025 18:56 (UTC), got %q", local)
		}
	})
	t.Run("absent time", func(t *testing.T) {
		local, zulu := FormatObservationTime(vartype.VarInt64{}, time.UTC)
		if local != Unknown || zulu != Unknown {
			t.Errorf("expected both times to be %s, got %q and %q", Unknown, local, zulu)
		}
	})
}
