package schedule

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/munin_tv/internal/playlist"
)

type fixedResolver map[string]float64

func (r fixedResolver) Resolve(_ context.Context, path string) float64 {
	return r[path]
}

func testEngine(playlists map[string]playlist.Playlist, resolver DurationResolver, epoch time.Time) *Engine {
	return NewEngine(&Table{playlists: playlists}, resolver, epoch, zerolog.Nop())
}

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNowPlayingWalksTheLoop(t *testing.T) {
	resolver := fixedResolver{"A": 600, "B": 900}
	e := testEngine(map[string]playlist.Playlist{"ch": {"A", "B"}}, resolver, epoch)

	// elapsed = 1400 mod 1500 = 1400: past A's 600s, 800s into B.
	now := epoch.Add(1400 * time.Second)
	np, ok := e.NowPlaying(context.Background(), "ch", now)
	if !ok {
		t.Fatal("expected a playing program")
	}
	if np.File != "B" {
		t.Errorf("current = %q, want B", np.File)
	}
	if np.Offset != 800 {
		t.Errorf("offset = %v, want 800", np.Offset)
	}
	if np.Next != "A" {
		t.Errorf("next = %q, want A", np.Next)
	}
	if want := now.Add(100 * time.Second); !np.NextStart.Equal(want) {
		t.Errorf("next start = %v, want %v", np.NextStart, want)
	}
}

func TestNowPlayingIsPeriodic(t *testing.T) {
	resolver := fixedResolver{"A": 600, "B": 900}
	e := testEngine(map[string]playlist.Playlist{"ch": {"A", "B"}}, resolver, epoch)
	ctx := context.Background()

	for _, secs := range []float64{0, 1, 599, 600, 1234, 1499} {
		now := epoch.Add(time.Duration(secs * float64(time.Second)))
		later := now.Add(1500 * time.Second)

		a, okA := e.NowPlaying(ctx, "ch", now)
		b, okB := e.NowPlaying(ctx, "ch", later)
		if !okA || !okB {
			t.Fatalf("expected playing program at %v", secs)
		}
		if a.File != b.File || math.Abs(a.Offset-b.Offset) > 1e-6 || a.Next != b.Next {
			t.Errorf("t=%v: %+v != %+v one period later", secs, a, b)
		}
	}
}

func TestNowPlayingOffsetInvariant(t *testing.T) {
	files := playlist.Playlist{"A", "B", "C"}
	resolver := fixedResolver{"A": 300, "B": 450, "C": 120.5}
	e := testEngine(map[string]playlist.Playlist{"ch": files}, resolver, epoch)
	ctx := context.Background()

	prefix := map[string]float64{"A": 0, "B": 300, "C": 750}
	total := 870.5

	for secs := 0.0; secs < 2*total; secs += 37.25 {
		now := epoch.Add(time.Duration(secs * float64(time.Second)))
		np, ok := e.NowPlaying(ctx, "ch", now)
		if !ok {
			t.Fatalf("expected playing program at %v", secs)
		}
		if np.Offset < 0 || np.Offset >= np.Duration {
			t.Fatalf("t=%v: offset %v outside [0, %v)", secs, np.Offset, np.Duration)
		}
		elapsed := math.Mod(secs, total)
		if got := prefix[np.File] + np.Offset; math.Abs(got-elapsed) > 1e-6 {
			t.Errorf("t=%v: prefix+offset = %v, want elapsed %v", secs, got, elapsed)
		}
	}
}

func TestNowPlayingBeforeEpoch(t *testing.T) {
	resolver := fixedResolver{"A": 600, "B": 900}
	e := testEngine(map[string]playlist.Playlist{"ch": {"A", "B"}}, resolver, epoch)

	// 100s before the epoch wraps to 1400s into the loop: 800s into B.
	np, ok := e.NowPlaying(context.Background(), "ch", epoch.Add(-100*time.Second))
	if !ok {
		t.Fatal("expected a playing program")
	}
	if np.File != "B" || math.Abs(np.Offset-800) > 1e-6 {
		t.Errorf("got %q at %v, want B at 800", np.File, np.Offset)
	}
}

func TestNowPlayingSingleEntryNextIsItself(t *testing.T) {
	resolver := fixedResolver{"A": 600}
	e := testEngine(map[string]playlist.Playlist{"ch": {"A"}}, resolver, epoch)

	np, ok := e.NowPlaying(context.Background(), "ch", epoch.Add(42*time.Second))
	if !ok {
		t.Fatal("expected a playing program")
	}
	if np.Next != "A" {
		t.Errorf("next = %q, want A", np.Next)
	}
}

func TestNowPlayingNothingPlaying(t *testing.T) {
	resolver := fixedResolver{"A": 0, "B": 0}
	e := testEngine(map[string]playlist.Playlist{
		"empty":      {},
		"degenerate": {"A", "B"},
	}, resolver, epoch)
	ctx := context.Background()
	now := epoch.Add(time.Hour)

	for _, id := range []string{"empty", "degenerate", "unknown"} {
		if _, ok := e.NowPlaying(ctx, id, now); ok {
			t.Errorf("channel %q: expected nothing playing", id)
		}
	}
}
