package anim

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
)

var errBoom = errors.New("boom")

// stubRenderer paints each frame a grey level derived from the frame's
// time label, so tests can read frame identity back out of the GIF.
type stubRenderer struct {
	failAt int // frame index to fail on; -1 for never

	mu    sync.Mutex
	calls int
}

func newStubRenderer() *stubRenderer {
	r := new(stubRenderer)
	r.failAt = -1
	return r
}

func (r *stubRenderer) Render(slice *dataset.Dataset, opts Options) (image.Image, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	label, ok := slice.FixedLabel("time")
	if !ok {
		return nil, errors.New("no time label on slice")
	}
	i, err := strconv.Atoi(label)
	if err != nil {
		return nil, err
	}
	if i == r.failAt {
		return nil, errBoom
	}
	return solidImage(uint8(i*40), 24, 24), nil
}

func jobDataset(t *testing.T, n int) *dataset.Dataset {
	t.Helper()
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	d, err := dataset.New(
		dataset.Axis{Name: "station", Labels: []string{"ott", "stj"}},
		dataset.Axis{Name: "time", Labels: labels},
	)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func assertArtifacts(t *testing.T, outDir string, n int, wantShade func(int) float64) {
	t.Helper()

	for i := 0; i < n; i++ {
		frame := filepath.Join(outDir, scratchDirName, strconv.Itoa(i)+".png")
		if _, err := os.Stat(frame); err != nil {
			t.Errorf("missing frame file %s: %v", frame, err)
		}
	}

	g := decodeGIF(t, filepath.Join(outDir, "test.gif"))
	if len(g.Image) != n {
		t.Fatalf("gif frame count = %d, want %d", len(g.Image), n)
	}
	for i := 0; i < n; i++ {
		want := wantShade(i)
		if got := meanRed(g, i); got < want-20 || got > want+20 {
			t.Errorf("gif frame %d mean = %.1f, want ~%.0f", i, got, want)
		}
	}
}

func TestJobCompletes(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	job := NewJob(jobDataset(t, 5), "time", outDir, "test", newStubRenderer())

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.FramePaths) != 5 {
		t.Fatalf("FramePaths = %d, want 5", len(res.FramePaths))
	}
	for i, p := range res.FramePaths {
		if filepath.Base(p) != strconv.Itoa(i)+".png" {
			t.Errorf("FramePaths[%d] = %s", i, p)
		}
	}
	assertArtifacts(t, outDir, 5, func(i int) float64 { return float64(i * 40) })
}

func TestJobSingleFrame(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	job := NewJob(jobDataset(t, 1), "time", outDir, "test", newStubRenderer())

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("single-frame job: %v", err)
	}
	assertArtifacts(t, outDir, 1, func(int) float64 { return 0 })
}

func TestJobRenderFailureAborts(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	r := newStubRenderer()
	r.failAt = 3
	job := NewJob(jobDataset(t, 5), "time", outDir, "test", r)

	_, err := job.Run(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want the renderer error", err)
	}
	var fe *FrameError
	if !errors.As(err, &fe) || fe.Index != 3 {
		t.Fatalf("err = %v, want FrameError at index 3", err)
	}

	// Frames before the failure stay on disk as debug output.
	for i := 0; i < 3; i++ {
		if _, statErr := os.Stat(filepath.Join(outDir, scratchDirName, strconv.Itoa(i)+".png")); statErr != nil {
			t.Errorf("frame %d should exist: %v", i, statErr)
		}
	}
	// No animation artifact on failure.
	if _, statErr := os.Stat(filepath.Join(outDir, "test.gif")); !os.IsNotExist(statErr) {
		t.Error("failed job must not write a gif")
	}
}

func TestJobInvalidName(t *testing.T) {
	job := NewJob(jobDataset(t, 2), "time", t.TempDir(), ".gif", newStubRenderer())
	if _, err := job.Run(context.Background()); !errors.Is(err, ErrInvalidName) {
		t.Errorf("err = %v, want ErrInvalidName", err)
	}
}

func TestJobStripsExtension(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	job := NewJob(jobDataset(t, 2), "time", outDir, "test.gif", newStubRenderer())

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "test.gif")); err != nil {
		t.Errorf("expected test.gif: %v", err)
	}
}

func TestJobAxisNotFound(t *testing.T) {
	job := NewJob(jobDataset(t, 2), "win_start", t.TempDir(), "test", newStubRenderer())
	if _, err := job.Run(context.Background()); !errors.Is(err, dataset.ErrAxisNotFound) {
		t.Errorf("err = %v, want dataset.ErrAxisNotFound", err)
	}
}

func TestJobDirectoryCreationIdempotent(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	for run := 0; run < 2; run++ {
		job := NewJob(jobDataset(t, 2), "time", outDir, "test", newStubRenderer())
		if _, err := job.Run(context.Background()); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}
}

func TestJobsIndependentDirectories(t *testing.T) {
	ds := jobDataset(t, 3)
	root := t.TempDir()

	for _, sub := range []string{"a", "b"} {
		outDir := filepath.Join(root, sub)
		job := NewJob(ds, "time", outDir, "test", newStubRenderer())
		if _, err := job.Run(context.Background()); err != nil {
			t.Fatalf("job %s: %v", sub, err)
		}
	}
	for _, sub := range []string{"a", "b"} {
		assertArtifacts(t, filepath.Join(root, sub), 3, func(i int) float64 { return float64(i * 40) })
	}
}

func TestJobDefaultStations(t *testing.T) {
	var got []string
	r := RendererFunc(func(slice *dataset.Dataset, opts Options) (image.Image, error) {
		got = opts.Stations
		return solidImage(0, 8, 8), nil
	})
	job := NewJob(jobDataset(t, 1), "time", filepath.Join(t.TempDir(), "out"), "test", r)

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "ott" || got[1] != "stj" {
		t.Errorf("default stations = %v, want all dataset stations", got)
	}
}

func TestJobCancelled(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	job := NewJob(jobDataset(t, 3), "time", outDir, "test", newStubRenderer())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := job.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "test.gif")); !os.IsNotExist(err) {
		t.Error("cancelled job must not write a gif")
	}
}

func TestJobParallelPreservesOrder(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	job := NewJob(jobDataset(t, 6), "time", outDir, "test", newStubRenderer())
	job.Workers = 3

	res, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.FramePaths) != 6 {
		t.Fatalf("FramePaths = %d, want 6", len(res.FramePaths))
	}
	assertArtifacts(t, outDir, 6, func(i int) float64 { return float64(i * 40) })
}

func TestJobParallelFailure(t *testing.T) {
	r := newStubRenderer()
	r.failAt = 2
	job := NewJob(jobDataset(t, 6), "time", filepath.Join(t.TempDir(), "out"), "test", r)
	job.Workers = 3

	if _, err := job.Run(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want the renderer error", err)
	}
}

type recordingPublisher struct {
	mu      sync.Mutex
	indices []int
}

func (p *recordingPublisher) PublishFrame(index int, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(data) == 0 {
		return fmt.Errorf("empty frame %d", index)
	}
	p.indices = append(p.indices, index)
	return nil
}

func TestJobPublishesFrames(t *testing.T) {
	pub := &recordingPublisher{}
	job := NewJob(jobDataset(t, 4), "time", filepath.Join(t.TempDir(), "out"), "test", newStubRenderer())
	job.Publisher = pub

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(pub.indices) != 4 {
		t.Fatalf("published %d frames, want 4", len(pub.indices))
	}
	for i, ix := range pub.indices {
		if ix != i {
			t.Errorf("publish order %v", pub.indices)
			break
		}
	}
}
