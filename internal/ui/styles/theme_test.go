// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	for _, mode := range []string{"dark", "light", "auto"} {
		t.Run(mode, func(t *testing.T) {
			theme := New(mode)
			if theme.Mode != mode {
				t.Errorf("Mode = %q, want %q", theme.Mode, mode)
			}
		})
	}
}

func TestForcedModes(t *testing.T) {
	dark := New("dark")
	if !dark.IsDark {
		t.Error("dark mode did not force dark background")
	}
	if dark.GlamourStyle() != "dark" || dark.ChromaStyle() != "monokai" {
		t.Errorf("dark styles = %q, %q", dark.GlamourStyle(), dark.ChromaStyle())
	}

	light := New("light")
	if light.IsDark {
		t.Error("light mode did not force light background")
	}
	if light.GlamourStyle() != "light" || light.ChromaStyle() != "github" {
		t.Errorf("light styles = %q, %q", light.GlamourStyle(), light.ChromaStyle())
	}
}
