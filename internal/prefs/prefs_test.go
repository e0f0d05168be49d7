package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrefs(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != Defaults() {
		t.Fatalf("Load = %+v, want %+v", p, Defaults())
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "trendintel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "theme = \"Slate\"\ncategory = \"News & Politics\"\n"
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, _ := Load("")
	if p.Theme != "Slate" || p.Category != "News & Politics" {
		t.Fatalf("Load = %+v, want Slate / News & Politics", p)
	}
}

func TestLoad_Normalizes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Prefs
	}{
		{"blank fields", "theme = \"\"\ncategory = \"  \"\n", Defaults()},
		{"unknown category", "theme = \"Kanagawa\"\ncategory = \"Cooking\"\n", Prefs{Theme: "Kanagawa", Category: "All"}},
		{"padded values", "theme = \" Slate \"\ncategory = \" Gaming \"\n", Prefs{Theme: "Slate", Category: "Gaming"}},
		{"invalid toml", "not valid toml {{{\n", Defaults()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Load(writePrefs(t, tc.body))
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if p != tc.want {
				t.Fatalf("Load = %+v, want %+v", p, tc.want)
			}
		})
	}
}

func TestSave_RoundTripsThroughNewDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir")
	path := filepath.Join(dir, "prefs.toml")

	want := Prefs{Theme: "Kanagawa", Category: "Gaming"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, _ := Load(path)
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only prefs.toml in %s, found %d entries", dir, len(entries))
	}
}
