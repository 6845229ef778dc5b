package anim

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
	"github.com/gpdwatkins/RSG-Space-Weather/geo"
)

// scratchDirName is the subdirectory of the output directory that holds
// the per-frame PNGs.
const scratchDirName = "images_for_giffing"

// Job renders one animation: it iterates a dataset along one axis,
// renders and persists a frame per index, then encodes the frames into a
// looping GIF at <OutDir>/<BaseName>.gif.
//
// Two jobs must be given distinct output directories; sharing one races
// on the numbered frame files.
type Job struct {
	Dataset  *dataset.Dataset
	Axis     string
	OutDir   string
	BaseName string
	Renderer Renderer
	Options  Options
	Encoder  Encoder

	// Workers above 1 renders frames concurrently. Only safe when the
	// Renderer is reentrant; frame order at the encode boundary is
	// preserved either way.
	Workers int

	// Publisher, when set, receives each persisted frame.
	Publisher Publisher

	Log zerolog.Logger
}

// Result lists everything a completed job wrote. Frame files are left in
// place as an inspectable secondary output.
type Result struct {
	GIFPath    string
	FramePaths []string
}

// NewJob creates a Job with default options and a disabled logger.
func NewJob(ds *dataset.Dataset, axis, outDir, baseName string, r Renderer) *Job {
	j := new(Job)
	j.Dataset = ds
	j.Axis = axis
	j.OutDir = outDir
	j.BaseName = baseName
	j.Renderer = r
	j.Options = DefaultOptions()
	j.Log = zerolog.Nop()
	return j
}

// Run executes the job. Any error aborts it: no partial animation is
// written and no frame is retried. Cancellation is honoured between
// frames and before encoding.
func (j *Job) Run(ctx context.Context) (*Result, error) {
	name, err := StripExtension(j.BaseName)
	if err != nil {
		return nil, err
	}

	scratch := filepath.Join(j.OutDir, scratchDirName)
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, err
	}

	src, err := NewFrameSource(j.Dataset, j.Axis)
	if err != nil {
		return nil, err
	}
	opts := j.resolveOptions()

	j.Log.Info().
		Str("axis", j.Axis).
		Int("frames", src.Len()).
		Str("out", j.OutDir).
		Msg("rendering animation")

	persister := NewPersister(scratch)
	var paths []string
	if j.Workers > 1 {
		paths, err = j.renderParallel(ctx, src, persister, opts)
	} else {
		paths, err = j.renderSequential(ctx, src, persister, opts)
	}
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gifPath := filepath.Join(j.OutDir, name+".gif")
	if err := j.Encoder.Encode(paths, gifPath); err != nil {
		return nil, err
	}

	j.Log.Info().Str("gif", gifPath).Int("frames", len(paths)).Msg("animation written")

	return &Result{GIFPath: gifPath, FramePaths: paths}, nil
}

// resolveOptions fills the derived defaults: all dataset stations when
// none are named, and the view over their mean position when no
// orientation is given.
func (j *Job) resolveOptions() Options {
	opts := j.Options

	if len(opts.Stations) == 0 {
		for _, axis := range []string{"station", "first_st"} {
			if labels, err := j.Dataset.Labels(axis); err == nil {
				opts.Stations = labels
				break
			}
		}
	}

	if opts.Ortho == nil && len(opts.Coords) > 0 {
		o := geo.AutoOrtho(opts.Coords.Points(opts.Stations))
		opts.Ortho = &o
	}

	return opts
}

func (j *Job) renderFrame(src *FrameSource, persister *Persister, opts Options, i int) (string, error) {
	slice, err := src.Slice(i)
	if err != nil {
		return "", &FrameError{Index: i, Err: err}
	}

	img, err := j.Renderer.Render(slice, opts)
	if err != nil {
		return "", &FrameError{Index: i, Err: err}
	}

	path, err := persister.Persist(i, img)
	if err != nil {
		return "", &FrameError{Index: i, Err: err}
	}

	if j.Publisher != nil {
		data, err := os.ReadFile(path)
		if err == nil {
			err = j.Publisher.PublishFrame(i, data)
		}
		if err != nil {
			return "", &FrameError{Index: i, Err: err}
		}
	}

	j.Log.Debug().Int("frame", i).Str("label", src.Label(i)).Str("path", path).Msg("frame rendered")
	return path, nil
}

func (j *Job) renderSequential(ctx context.Context, src *FrameSource, persister *Persister, opts Options) ([]string, error) {
	paths := make([]string, src.Len())
	for i := 0; i < src.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := j.renderFrame(src, persister, opts, i)
		if err != nil {
			return nil, err
		}
		paths[i] = path
	}
	return paths, nil
}

// renderParallel fans frame indices out over Workers goroutines. Each
// index writes its own slot, so paths come out in axis order regardless
// of completion order. The first error wins and cancels the rest.
func (j *Job) renderParallel(ctx context.Context, src *FrameSource, persister *Persister, opts Options) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	paths := make([]string, src.Len())
	indices := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for w := 0; w < j.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				if ctx.Err() != nil {
					continue
				}
				path, err := j.renderFrame(src, persister, opts, i)
				if err != nil {
					fail(err)
					continue
				}
				paths[i] = path
			}
		}()
	}

	for i := 0; i < src.Len(); i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}
