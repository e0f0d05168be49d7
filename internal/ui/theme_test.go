package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" {
		t.Fatalf("ThemeNames()[0] = %q, want Nightfox", names[0])
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_FallsBack(t *testing.T) {
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nope).Name = %q, want Nightfox", got)
	}
}

func TestBadgeKind(t *testing.T) {
	cases := map[string]string{
		"🔥 Exploding":   badgeExploding,
		"Fire":          badgeExploding,
		"Fast Rising":   badgeFast,
		"Steady Growth": badgeSteady,
		"Shorts Viral":  badgeShort,
		"Trending":      badgeTrending,
		"":              badgeTrending,
	}
	for label, want := range cases {
		if got := badgeKind(label); got != want {
			t.Fatalf("badgeKind(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestThemesDefineEveryBadge(t *testing.T) {
	kinds := []string{badgeExploding, badgeFast, badgeSteady, badgeShort, badgeTrending}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, kind := range kinds {
			if th.BadgeColors[kind] == "" {
				t.Fatalf("theme %s has no %s badge color", name, kind)
			}
		}
	}
}
