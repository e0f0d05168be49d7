package trendapi

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStats_MissingBotActiveDefaultsTrue(t *testing.T) {
	var s Stats
	if err := json.Unmarshal([]byte(`{"total_analyzed":3,"emails_sent":1,"virality_rate":15}`), &s); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !s.BotActive {
		t.Fatalf("BotActive = false, want true when field is absent")
	}
	if s.TotalAnalyzed != 3 || s.EmailsSent != 1 || s.ViralityRate != 15 {
		t.Fatalf("Stats = %#v, want counts decoded", s)
	}

	if err := json.Unmarshal([]byte(`{"bot_active":false}`), &s); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if s.BotActive {
		t.Fatalf("BotActive = true, want false when explicitly false")
	}
}

func TestTrendItemHelpers(t *testing.T) {
	item := TrendItem{VideoID: "abcdefghijk", EngagementScore: 41.6}
	if item.URL() != "https://youtu.be/abcdefghijk" {
		t.Fatalf("URL = %q", item.URL())
	}
	if item.Score() != 42 {
		t.Fatalf("Score = %d, want 42", item.Score())
	}
	if item.TrendLabel() != "Trending" {
		t.Fatalf("TrendLabel = %q, want Trending", item.TrendLabel())
	}
	item.TrendType = " Exploding "
	if item.TrendLabel() != "Exploding" {
		t.Fatalf("TrendLabel = %q, want Exploding", item.TrendLabel())
	}
	if (TrendItem{}).URL() != "" {
		t.Fatalf("URL for empty id should be empty")
	}
	if !(TrendItem{IsSent: 1}).Sent() || (TrendItem{}).Sent() {
		t.Fatalf("Sent mismatch")
	}
}

func TestBoolSettingRoundTrip(t *testing.T) {
	if BoolSetting(true) != "1" || BoolSetting(false) != "0" {
		t.Fatalf("BoolSetting encodes wrong values")
	}
	for _, in := range []string{"1", "0"} {
		v, err := ParseBoolSetting(in)
		if err != nil {
			t.Fatalf("ParseBoolSetting(%q) returned error: %v", in, err)
		}
		if BoolSetting(v) != in {
			t.Fatalf("round trip %q -> %v -> %q", in, v, BoolSetting(v))
		}
	}
	if _, err := ParseBoolSetting("true"); err == nil {
		t.Fatalf("ParseBoolSetting(true) returned nil error, want error")
	}
}

func TestIsCategory(t *testing.T) {
	for _, c := range Categories {
		if !IsCategory(c) {
			t.Fatalf("IsCategory(%q) = false", c)
		}
	}
	if IsCategory("gaming") {
		t.Fatalf("IsCategory should be case sensitive; values are sent verbatim")
	}
}

func TestParseTimeLayouts(t *testing.T) {
	if parseTime("2025-12-13T10:11:12Z").IsZero() {
		t.Fatalf("parseTime should parse RFC3339")
	}
	got := parseTime("2025-12-13 10:11:12")
	if got.IsZero() {
		t.Fatalf("parseTime should parse sqlite timestamp")
	}
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 13 || got.Location() != time.UTC {
		t.Fatalf("parseTime = %v, want 2025-12-13 UTC", got)
	}
	if !parseTime("yesterday").IsZero() {
		t.Fatalf("parseTime should return zero for unknown layouts")
	}
}
