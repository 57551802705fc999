package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/friendsincode/munin_tv/internal/catalog"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestShuffleIsDeterministic(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = fmt.Sprintf("ep%02d.mp4", i)
	}

	first := Shuffle(files, "toons")
	second := Shuffle(files, "toons")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different orders:\n%v\n%v", first, second)
	}
}

func TestShuffleDistinctSeedsDiffer(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = fmt.Sprintf("ep%02d.mp4", i)
	}

	a := Shuffle(files, "toons")
	b := Shuffle(files, "sitcoms")
	if reflect.DeepEqual(a, b) {
		t.Fatal("distinct seeds produced identical orders")
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	files := []string{"a.mp4", "b.mp4", "c.mp4", "d.mp4"}
	original := make([]string, len(files))
	copy(original, files)

	Shuffle(files, "toons")
	if !reflect.DeepEqual(files, original) {
		t.Fatalf("input mutated: %v", files)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	files := []string{"a.mp4", "b.mp4", "c.mp4", "d.mp4", "e.mp4"}
	out := Shuffle(files, "movies")
	if len(out) != len(files) {
		t.Fatalf("length changed: %d", len(out))
	}
	seen := make(map[string]bool)
	for _, f := range out {
		seen[f] = true
	}
	for _, f := range files {
		if !seen[f] {
			t.Errorf("missing entry %q", f)
		}
	}
}

func TestBuildFillerDisabledReturnsExactList(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "02.mp4", "01.mp4", "03.mp4")

	off := false
	ch := catalog.Channel{ID: "sitcoms", Path: dir, Rotation: catalog.RotationSequential, Filler: &off}

	b := NewBuilder(filepath.Join(dir, "no-fillers"), zerolog.Nop())
	got := b.Build(ch)

	want := Playlist{
		filepath.Join(dir, "01.mp4"),
		filepath.Join(dir, "02.mp4"),
		filepath.Join(dir, "03.mp4"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildRandomRotationUsesSeededOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mp4", "b.mp4", "c.mp4", "d.mp4", "e.mp4")

	off := false
	ch := catalog.Channel{ID: "toons", Path: dir, Rotation: catalog.RotationRandom, Filler: &off}

	b := NewBuilder("", zerolog.Nop())
	got := b.Build(ch)

	want := Playlist(Shuffle(catalog.ListFiles(ch), "toons"))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildFillerBounds(t *testing.T) {
	dir := t.TempDir()
	mainDir := filepath.Join(dir, "main")
	fillerDir := filepath.Join(dir, "commercials")
	for _, d := range []string{mainDir, fillerDir} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeFiles(t, mainDir, "01.mp4", "02.mp4", "03.mp4", "04.mp4")
	writeFiles(t, fillerDir, "ad1.mp4", "ad2.mp4", "ad3.mp4")

	ch := catalog.Channel{ID: "toons", Path: mainDir}
	b := NewBuilder(fillerDir, zerolog.Nop())

	mains := catalog.ListFiles(ch)
	fillerSet := make(map[string]bool)
	for _, f := range catalog.ListDir(fillerDir) {
		fillerSet[f] = true
	}

	// Filler choice is unseeded, so check structural bounds over many builds.
	for i := 0; i < 50; i++ {
		got := b.Build(ch)
		if len(got) < len(mains) || len(got) > len(mains)*3 {
			t.Fatalf("length %d outside [%d, %d]", len(got), len(mains), len(mains)*3)
		}

		// Main entries must appear in order, with 0-2 distinct fillers between.
		mainIdx := 0
		breakClips := make(map[string]bool)
		for _, entry := range got {
			if mainIdx < len(mains) && entry == mains[mainIdx] {
				mainIdx++
				breakClips = make(map[string]bool)
				continue
			}
			if !fillerSet[entry] {
				t.Fatalf("unexpected entry %q", entry)
			}
			if breakClips[entry] {
				t.Fatalf("filler %q repeated within one break", entry)
			}
			breakClips[entry] = true
			if len(breakClips) > 2 {
				t.Fatalf("more than 2 fillers in one break: %v", got)
			}
		}
		if mainIdx != len(mains) {
			t.Fatalf("main entries out of order or missing: %v", got)
		}
	}
}

func TestBuildEmptySourceIsEmptyRegardlessOfFiller(t *testing.T) {
	dir := t.TempDir()
	fillerDir := filepath.Join(dir, "commercials")
	if err := os.Mkdir(fillerDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, fillerDir, "ad1.mp4")

	ch := catalog.Channel{ID: "ghost", Path: filepath.Join(dir, "missing")}
	b := NewBuilder(fillerDir, zerolog.Nop())

	if got := b.Build(ch); len(got) != 0 {
		t.Fatalf("expected empty playlist, got %v", got)
	}
}

func TestBuildEmptyFillerPoolContributesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "01.mp4", "02.mp4")

	ch := catalog.Channel{ID: "sitcoms", Path: dir}
	b := NewBuilder(filepath.Join(dir, "missing-fillers"), zerolog.Nop())

	got := b.Build(ch)
	want := Playlist(catalog.ListFiles(ch))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
