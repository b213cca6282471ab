package thumbs

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"birdcam-gallery/internal/database"
	"birdcam-gallery/internal/gallery"
)

// fakeExtractor returns a synthetic PNG frame, an injected error, or blocks
// until released.
type fakeExtractor struct {
	mu      sync.Mutex
	calls   int
	err     error
	width   int
	height  int
	blockCh chan struct{}
}

func (f *fakeExtractor) ExtractFrame(ctx context.Context, _ string, _ time.Duration) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	block := f.blockCh
	err := f.err
	width, height := f.width, f.height
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	if width == 0 {
		width = 320
	}
	if height == 0 {
		height = 180
	}
	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		frame.Set(x, 0, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *fakeExtractor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig(dir string) Config {
	cfg := DefaultConfig(dir)
	cfg.Timeout = 2 * time.Second
	cfg.Concurrency = 3
	return cfg
}

func newTestResolver(t *testing.T, extractor FrameExtractor) *Resolver {
	t.Helper()
	dir := t.TempDir()

	store, err := database.New(context.Background(), filepath.Join(dir, "thumbs.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	resolver, err := NewResolver(store, extractor, testConfig(filepath.Join(dir, "thumbnails")))
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}
	return resolver
}

func TestResolveGeneratesAndCaches(t *testing.T) {
	extractor := &fakeExtractor{}
	resolver := newTestResolver(t, extractor)
	item := gallery.Item{Name: "1700000000.mp4", URL: "https://example.test/videos/1700000000.mp4"}

	first := resolver.Resolve(context.Background(), item)
	if first == resolver.Placeholder() {
		t.Fatal("Resolve returned the placeholder for a healthy item")
	}
	if _, err := os.Stat(first); err != nil {
		t.Fatalf("thumbnail file not written: %v", err)
	}

	second := resolver.Resolve(context.Background(), item)
	if second != first {
		t.Errorf("second Resolve = %q, want %q (identical reference)", second, first)
	}
	if got := extractor.callCount(); got != 1 {
		t.Errorf("extractor called %d times, want 1 (idempotent resolution)", got)
	}
}

func TestResolveFailureYieldsPlaceholder(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("decode failed")}
	resolver := newTestResolver(t, extractor)
	item := gallery.Item{Name: "broken.mp4", URL: "https://example.test/videos/broken.mp4"}

	ref := resolver.Resolve(context.Background(), item)
	if ref != resolver.Placeholder() {
		t.Errorf("Resolve = %q, want placeholder %q", ref, resolver.Placeholder())
	}
	if _, err := os.Stat(resolver.Placeholder()); err != nil {
		t.Errorf("placeholder image not materialized: %v", err)
	}

	// Both seek offsets were attempted.
	if got := extractor.callCount(); got != 2 {
		t.Errorf("extractor called %d times, want 2 (seek + fallback)", got)
	}
}

func TestResolveFailureDoesNotAffectOtherItems(t *testing.T) {
	extractor := &fakeExtractor{}
	resolver := newTestResolver(t, extractor)

	bad := gallery.Item{Name: "bad.mp4", URL: "https://example.test/videos/bad.mp4"}
	good := gallery.Item{Name: "1700000000.mp4", URL: "https://example.test/videos/1700000000.mp4"}

	extractor.mu.Lock()
	extractor.err = errors.New("decode failed")
	extractor.mu.Unlock()
	if ref := resolver.Resolve(context.Background(), bad); ref != resolver.Placeholder() {
		t.Errorf("failed item resolved to %q, want placeholder", ref)
	}

	extractor.mu.Lock()
	extractor.err = nil
	extractor.mu.Unlock()
	if ref := resolver.Resolve(context.Background(), good); ref == resolver.Placeholder() {
		t.Error("healthy item resolved to placeholder after an unrelated failure")
	}
}

func TestResolveCoalescesConcurrentCalls(t *testing.T) {
	release := make(chan struct{})
	extractor := &fakeExtractor{blockCh: release}
	resolver := newTestResolver(t, extractor)
	item := gallery.Item{Name: "1700000000.mp4", URL: "https://example.test/videos/1700000000.mp4"}

	const callers = 5
	refs := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refs <- resolver.Resolve(context.Background(), item)
		}()
	}

	// Give the callers time to pile up on the in-flight call, then let
	// the single generation finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(refs)

	var first string
	for ref := range refs {
		if first == "" {
			first = ref
		} else if ref != first {
			t.Errorf("concurrent Resolve returned %q and %q, want one reference", first, ref)
		}
	}
	if first == resolver.Placeholder() {
		t.Error("coalesced resolution returned the placeholder")
	}
	if got := extractor.callCount(); got != 1 {
		t.Errorf("extractor called %d times for %d concurrent callers, want 1", got, callers)
	}
}

func TestResolveRegeneratesWhenFileMissing(t *testing.T) {
	extractor := &fakeExtractor{}
	resolver := newTestResolver(t, extractor)
	item := gallery.Item{Name: "1700000000.mp4", URL: "https://example.test/videos/1700000000.mp4"}

	first := resolver.Resolve(context.Background(), item)
	if err := os.Remove(first); err != nil {
		t.Fatalf("failed to remove cached thumbnail: %v", err)
	}

	second := resolver.Resolve(context.Background(), item)
	if second == resolver.Placeholder() {
		t.Fatal("Resolve returned placeholder instead of regenerating")
	}
	if _, err := os.Stat(second); err != nil {
		t.Fatalf("regenerated thumbnail not written: %v", err)
	}
	if got := extractor.callCount(); got != 2 {
		t.Errorf("extractor called %d times, want 2 (regeneration after external removal)", got)
	}
}

func TestResolveEnforcesEntryBound(t *testing.T) {
	extractor := &fakeExtractor{}
	dir := t.TempDir()

	store, err := database.New(context.Background(), filepath.Join(dir, "thumbs.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	cfg := testConfig(filepath.Join(dir, "thumbnails"))
	cfg.MaxEntries = 2
	resolver, err := NewResolver(store, extractor, cfg)
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}

	names := []string{"1700000000.mp4", "1700001000.mp4", "1700002000.mp4", "1700003000.mp4"}
	for _, name := range names {
		resolver.Resolve(context.Background(), gallery.Item{Name: name, URL: "https://example.test/videos/" + name})
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count > cfg.MaxEntries {
		t.Errorf("store holds %d entries, want at most %d", count, cfg.MaxEntries)
	}
}

func TestLetterboxDimensions(t *testing.T) {
	tests := []struct {
		name   string
		frameW int
		frameH int
	}{
		{
			name:   "wide frame",
			frameW: 1920,
			frameH: 480,
		},
		{
			name:   "tall frame",
			frameW: 480,
			frameH: 1920,
		},
		{
			name:   "matching aspect",
			frameW: 1280,
			frameH: 720,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := image.NewRGBA(image.Rect(0, 0, tt.frameW, tt.frameH))
			out := letterbox(frame, 640, 360)
			bounds := out.Bounds()
			if bounds.Dx() != 640 || bounds.Dy() != 360 {
				t.Errorf("letterbox output %dx%d, want 640x360", bounds.Dx(), bounds.Dy())
			}
		})
	}
}
