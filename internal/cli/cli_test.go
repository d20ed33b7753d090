package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sketchbomb/runorder/pkg/render"
	"github.com/sketchbomb/runorder/pkg/show"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"optimize", "conflicts", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty defaults to text", in: "", want: []string{render.FormatText}},
		{name: "single", in: "markdown", want: []string{"markdown"}},
		{name: "multiple", in: "text,svg,png", want: []string{"text", "svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{render.FormatText, "txt"},
		{render.FormatMarkdown, "md"},
		{render.FormatSVG, "svg"},
		{render.FormatPNG, "png"},
		{render.FormatDOT, "dot"},
	}

	for _, tt := range tests {
		if got := extensionFor(tt.format); got != tt.want {
			t.Errorf("extensionFor(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestReadShowMissingFile(t *testing.T) {
	_, err := readShow(filepath.Join(t.TempDir(), "nope.csv"), show.CSVOptions{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want file-not-found", err)
	}
}

func TestReadShowParsesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.csv")
	data := "title,cast,anchored\nCold Open,alice bob,true\nDuet,carol dave,\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sketches, err := readShow(path, show.CSVOptions{})
	if err != nil {
		t.Fatalf("readShow() error: %v", err)
	}
	if len(sketches) != 2 {
		t.Fatalf("got %d sketches, want 2", len(sketches))
	}
	if sketches[0].Title != "Cold Open" || !sketches[0].Anchored {
		t.Errorf("first sketch = %+v", sketches[0])
	}
}
