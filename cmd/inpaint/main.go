// Command inpaint removes objects from images by filling a masked region
// from its surroundings.
//
// Single image:
//
//	inpaint -image photo.jpg -mask mask.png -out clean.png -dilate 3
//
// Batch:
//
//	inpaint -config jobs.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/inpaint"
	"github.com/gogpu/inpaint/internal/config"
	imageio "github.com/gogpu/inpaint/internal/image"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// outcome is the result of one job.
type outcome struct {
	job    config.Job
	result *inpaint.Result
	err    error
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	defaults := config.Defaults()

	fs := flag.NewFlagSet("inpaint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath   = fs.String("config", "", "YAML batch job file (replaces the single-image flags)")
		imagePath = fs.String("image", "", "input image")
		maskPath  = fs.String("mask", "", "mask image; pixels above the threshold are removed")
		outPath   = fs.String("out", "", "output image (format from extension)")
		channel   = fs.String("channel", "red", "mask channel: red, green, blue, alpha or luma")
		invert    = fs.Bool("invert", false, "invert the mask before use")
		threshold = fs.Int("threshold", inpaint.Threshold, "mask threshold; values above it are masked")
		dilate    = fs.Int("dilate", 0, "grow the mask by N pixels")
		maxIter   = fs.Int("max-iterations", 0, "fill round bound (0 = max(width, height))")
		radius    = fs.Int("radius", 0, "sample window radius (0 = 3)")
		interp    = fs.String("interp", "bilinear", "mask resampling: nearest, bilinear or catmullrom")
		noBlend   = fs.Bool("no-blend", false, "skip seam blending")
		workers   = fs.Int("workers", defaults.Workers, "goroutines per image (0 = GOMAXPROCS)")
		verbose   = fs.Bool("v", false, "verbose (debug) logging")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	inpaint.SetLogger(logger)
	defer inpaint.SetLogger(nil)

	workersSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "workers" {
			workersSet = true
		}
	})

	var file *config.File
	if *cfgPath != "" {
		f, err := config.Load(*cfgPath)
		if err != nil {
			logger.Error("invalid job file", "err", err)
			return exitUsage
		}
		if workersSet {
			f.Workers = *workers
		}
		file = f
	} else {
		t := *threshold
		f := defaults
		f.Workers = *workers
		f.Jobs = []config.Job{{
			Image:         *imagePath,
			Mask:          *maskPath,
			Output:        *outPath,
			Channel:       *channel,
			Invert:        *invert,
			Threshold:     &t,
			Dilate:        *dilate,
			MaxIterations: *maxIter,
			Radius:        *radius,
			Interpolation: *interp,
			NoBlend:       *noBlend,
		}}
		if err := f.Validate(); err != nil {
			fmt.Fprintf(stderr, "inpaint: %v\n", err)
			fs.Usage()
			return exitUsage
		}
		file = &f
	}

	outcomes := runJobs(ctx, file, logger)
	if failed := report(stdout, outcomes); failed > 0 {
		return exitFailed
	}
	return exitOK
}

// runJobs processes the jobs of f, at most f.Concurrency at a time.
// The returned outcomes are in job order.
func runJobs(ctx context.Context, f *config.File, logger *slog.Logger) []outcome {
	outcomes := make([]outcome, len(f.Jobs))

	sem := semaphore.NewWeighted(int64(max(f.Concurrency, 1)))
	var wg sync.WaitGroup

	for i, job := range f.Jobs {
		wg.Add(1)
		go func(idx int, job config.Job) {
			defer wg.Done()

			outcomes[idx].job = job
			if err := sem.Acquire(ctx, 1); err != nil {
				outcomes[idx].err = err
				return
			}
			defer sem.Release(1)

			res, err := runJob(ctx, job, f.Workers)
			if err != nil {
				logger.Error("job failed", "image", job.Image, "err", err)
			}
			outcomes[idx].result = res
			outcomes[idx].err = err
		}(i, job)
	}

	wg.Wait()
	return outcomes
}

// runJob loads the image and mask of job, removes the masked object and
// writes the output.
func runJob(ctx context.Context, job config.Job, workers int) (*inpaint.Result, error) {
	src, _, err := imageio.Load(job.Image)
	if err != nil {
		return nil, err
	}
	maskSrc, _, err := imageio.Load(job.Mask)
	if err != nil {
		return nil, err
	}

	ch, err := job.MaskChannel()
	if err != nil {
		return nil, err
	}
	mask := inpaint.NewMaskFromImage(maskSrc, ch)
	if job.Invert {
		mask.Invert()
	}

	opts, err := job.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, inpaint.WithWorkers(workers))

	res, err := inpaint.Remove(ctx, inpaint.FromImage(src), mask, opts...)
	if err != nil {
		return nil, err
	}

	if err := imageio.Save(job.Output, res.Image.ToImage()); err != nil {
		return nil, err
	}
	return res, nil
}

// report prints one line per job and returns the number of failed jobs.
func report(w io.Writer, outcomes []outcome) int {
	p := message.NewPrinter(language.English)

	failed := 0
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			failed++
			if errors.Is(o.err, context.Canceled) {
				p.Fprintf(w, "%s: canceled\n", o.job.Image)
			} else {
				p.Fprintf(w, "%s: failed: %v\n", o.job.Image, o.err)
			}
		case !o.result.FullyFilled:
			p.Fprintf(w, "%s -> %s: filled %d of %d pixels in %d rounds, %d left unfilled\n",
				o.job.Image, o.job.Output, o.result.Filled, o.result.Masked, o.result.Rounds, o.result.Remaining)
		default:
			p.Fprintf(w, "%s -> %s: filled %d pixels in %d rounds\n",
				o.job.Image, o.job.Output, o.result.Filled, o.result.Rounds)
		}
	}
	return failed
}
