package schedule

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/munin_tv/internal/catalog"
	"github.com/friendsincode/munin_tv/internal/playlist"
)

func TestInitializeBuildsEveryChannelOnce(t *testing.T) {
	root := t.TempDir()
	toonsDir := filepath.Join(root, "toons")
	if err := os.Mkdir(toonsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"e1.mp4", "e2.mp4"} {
		if err := os.WriteFile(filepath.Join(toonsDir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	off := false
	cat, err := catalog.New([]catalog.Channel{
		{ID: "toons", Name: "Toons", Path: toonsDir, Filler: &off},
		{ID: "ghost", Name: "Ghost", Path: filepath.Join(root, "missing"), Filler: &off},
	})
	if err != nil {
		t.Fatal(err)
	}

	builder := playlist.NewBuilder(filepath.Join(root, "commercials"), zerolog.Nop())
	table := Initialize(cat, builder, zerolog.Nop())

	if got := table.Playlist("toons"); len(got) != 2 {
		t.Fatalf("toons playlist: %v", got)
	}
	if got := table.Playlist("ghost"); len(got) != 0 {
		t.Fatalf("ghost playlist should be empty: %v", got)
	}

	// Empty channel surfaces as nothing-playing, not an error.
	e := NewEngine(table, fixedResolver{}, time.Unix(0, 0).UTC(), zerolog.Nop())
	if _, ok := e.NowPlaying(context.Background(), "ghost", time.Now()); ok {
		t.Fatal("expected nothing playing on the empty channel")
	}
}
