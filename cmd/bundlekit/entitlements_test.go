// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/fibyos/bundlekit/pkg/entitlement"
)

func TestGroupEntitlements(t *testing.T) {
	t.Parallel()

	groups := groupEntitlements()
	total := 0
	seen := make(map[entitlement.Category]bool)
	for _, g := range groups {
		if seen[g.Category] {
			t.Errorf("category %q appears twice", g.Category)
		}
		seen[g.Category] = true
		for _, tag := range g.Tags {
			if tag.Category() != g.Category {
				t.Errorf("%s grouped under %s, want %s", tag, g.Category, tag.Category())
			}
		}
		total += len(g.Tags)
	}
	if total != entitlement.Count() {
		t.Errorf("grouped %d entitlements, want %d", total, entitlement.Count())
	}
	if groups[0].Category != entitlement.CategoryMedia || groups[0].Tags[0] != entitlement.Camera {
		t.Errorf("first group = %+v, want media starting with camera", groups[0])
	}
}

func TestEntitlements(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "entitlements")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		for _, want := range []string{"media", "camera", "embedded", "gpioaccess"} {
			if !strings.Contains(res.stdout, want) {
				t.Errorf("stdout missing %q", want)
			}
		}
	})

	t.Run("json category", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "entitlements", "-c", "network", "-o", "json")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		var report struct {
			Count      int `json:"count"`
			Categories []struct {
				Category string   `json:"category"`
				Tags     []string `json:"tags"`
			} `json:"categories"`
		}
		if err := json.Unmarshal([]byte(res.stdout), &report); err != nil {
			t.Fatalf("invalid JSON %q: %v", res.stdout, err)
		}
		if len(report.Categories) != 1 || report.Categories[0].Category != "network" {
			t.Fatalf("categories = %+v, want only network", report.Categories)
		}
		if report.Count != len(report.Categories[0].Tags) || report.Count == 0 {
			t.Errorf("count = %d, tags = %v", report.Count, report.Categories[0].Tags)
		}
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "entitlements", "--format", "toml")
		if res.err != nil {
			t.Fatalf("unexpected error: %v", res.err)
		}
		var decoded map[string]any
		if err := toml.Unmarshal([]byte(res.stdout), &decoded); err != nil {
			t.Fatalf("invalid TOML: %v", err)
		}
		if decoded["count"] != int64(entitlement.Count()) {
			t.Errorf("count = %v, want %d", decoded["count"], entitlement.Count())
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, Dependencies{}, "entitlements", "--category", "telepathy")
		if res.err == nil || !strings.Contains(res.err.Error(), "unknown category") {
			t.Errorf("err = %v, want unknown category", res.err)
		}
	})
}
