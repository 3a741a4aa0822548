package advice

import (
	"strings"
	"testing"

	"roadweather-service/internal/store"
	t "roadweather-service/internal/types"
)

func TestPromptCarriesAllInputs(tt *testing.T) {
	summary := t.WeatherSummary{
		Temperature: -2,
		Weather:     "Snow",
		Visibility:  1200,
		WindSpeed:   7.5,
	}
	prompt := Prompt(summary, store.VehicleVan)

	for _, want := range []string{
		"Temperature: -2°C",
		"General Conditions: Snow",
		"Visibility: 1200m",
		"Wind Speed/Direction: 7.5m/s",
		"Vehicle Type: van",
	} {
		if !strings.Contains(prompt, want) {
			tt.Errorf("prompt missing %q", want)
		}
	}
}

func TestSplitLines(tt *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences with blank line",
			text: "Slow down in the rain.\n\nLeave more room to stop.",
			want: []string{"Slow down in the rain.", "Leave more room to stop."},
		},
		{
			name: "placeholder marker dropped",
			text: "First sentence.\n<NEWLINE>\nSecond sentence.",
			want: []string{"First sentence.", "Second sentence."},
		},
		{
			name: "surrounding whitespace trimmed",
			text: "  Padded advice.  \n\t\n",
			want: []string{"Padded advice."},
		},
		{
			name: "empty response",
			text: "",
			want: nil,
		},
	}

	for _, tc := range tests {
		tt.Run(tc.name, func(tt *testing.T) {
			got := SplitLines(tc.text)
			if len(got) != len(tc.want) {
				tt.Fatalf("SplitLines() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					tt.Errorf("line %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestCategoryFor(tt *testing.T) {
	tests := []struct {
		weather string
		want    Category
	}{
		{"Thunderstorm", CategoryStorm},
		{"Drizzle", CategoryRain},
		{"Rain", CategoryRain},
		{"Snow", CategorySnow},
		{"Mist", CategoryWind},
		{"Fog", CategoryWind},
		{"Clear", CategoryGeneral},
		{"Clouds", CategoryGeneral},
		{"", CategoryGeneral},
	}
	for _, tc := range tests {
		if got := CategoryFor(tc.weather); got != tc.want {
			tt.Errorf("CategoryFor(%q) = %v, want %v", tc.weather, got, tc.want)
		}
	}
}

func TestFallbackAlwaysTwoLines(tt *testing.T) {
	vehicles := []store.Vehicle{store.VehicleCar, store.VehicleMotorbike, store.VehicleVan}
	conditions := []string{"Thunderstorm", "Rain", "Snow", "Fog", "Clear"}

	for _, v := range vehicles {
		for _, c := range conditions {
			lines := Fallback(v, c)
			if len(lines) != 2 {
				tt.Errorf("Fallback(%v, %q) returned %d lines, want 2", v, c, len(lines))
			}
		}
	}
}

func TestFallbackUnknownVehicleUsesCarTexts(tt *testing.T) {
	got := Fallback(store.Vehicle("tractor"), "Rain")
	want := Fallback(store.VehicleCar, "Rain")
	if len(got) != len(want) || got[0] != want[0] {
		tt.Errorf("unknown vehicle fallback = %v, want car texts %v", got, want)
	}
}
