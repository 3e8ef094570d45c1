package armory

import (
	"errors"
	"strings"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestValidateRaw(t *testing.T) {
	cases := []struct {
		name string
		cfg  RawConfig
		want string // substring of the error; empty means valid
	}{
		{"arc ok", RawConfig{Mode: "arc_height", Arc: &ArcConfig{ApexHeight: ptr(10.0)}}, ""},
		{"speed ok", RawConfig{Mode: "fixed_speed", Speed: &SpeedConfig{InitialSpeed: ptr(10.0)}, Gravity: ptr(-1.6)}, ""},
		{"no mode", RawConfig{}, "mode is required"},
		{"bad mode", RawConfig{Mode: "laser"}, "mode must be one of"},
		{"arc missing", RawConfig{Mode: "arc_height"}, "arc.apex_height is required"},
		{"arc zero", RawConfig{Mode: "arc_height", Arc: &ArcConfig{ApexHeight: ptr(0.0)}}, "arc.apex_height must be in"},
		{"arc high", RawConfig{Mode: "arc_height", Arc: &ArcConfig{ApexHeight: ptr(51.0)}}, "arc.apex_height must be in"},
		{"speed missing", RawConfig{Mode: "fixed_speed", Speed: &SpeedConfig{}}, "speed.initial_speed is required"},
		{"speed slow", RawConfig{Mode: "fixed_speed", Speed: &SpeedConfig{InitialSpeed: ptr(5.0)}}, "speed.initial_speed must be in"},
		{"gravity up", RawConfig{Mode: "arc_height", Arc: &ArcConfig{ApexHeight: ptr(1.0)}, Gravity: ptr(9.8)}, "gravity must be < 0"},
		{"samples", RawConfig{Mode: "arc_height", Arc: &ArcConfig{ApexHeight: ptr(1.0)}, Preview: &PreviewConfig{Samples: ptr(0)}}, "preview.samples"},
	}
	for _, c := range cases {
		err := ValidateRaw(c.cfg)
		if c.want == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", c.name, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidConfig) || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%s: got %v, want %q", c.name, err, c.want)
		}
	}
}

func TestValidateRawCollectsAll(t *testing.T) {
	err := ValidateRaw(RawConfig{Mode: "fixed_speed", Gravity: ptr(0.0), Preview: &PreviewConfig{Samples: ptr(-1)}})
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), ";"); n != 2 {
		t.Fatalf("expected three joined violations, got %q", err)
	}
}
