// Package config loads inpaint batch job files and environment defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/inpaint"
)

// Errors returned by Parse and Validate.
var (
	ErrNoJobs     = errors.New("config: no jobs")
	ErrInvalidJob = errors.New("config: invalid job")
)

// Job describes one object removal: an image, its mask and where to write
// the result. Zero values select the library defaults.
type Job struct {
	Image  string `yaml:"image"`
	Mask   string `yaml:"mask"`
	Output string `yaml:"output"`

	// Channel is the mask channel: red, green, blue, alpha or luma.
	Channel string `yaml:"channel"`
	Invert  bool   `yaml:"invert"`

	// Threshold is nil when unset so that an explicit 0 is kept.
	Threshold     *int   `yaml:"threshold"`
	Dilate        int    `yaml:"dilate"`
	MaxIterations int    `yaml:"max_iterations"`
	Radius        int    `yaml:"radius"`
	Interpolation string `yaml:"interpolation"`
	NoBlend       bool   `yaml:"no_blend"`
}

// File is a batch job file.
//
//	concurrency: 4
//	workers: 2
//	jobs:
//	  - image: photo.jpg
//	    mask: photo-mask.png
//	    output: photo-clean.png
//	    dilate: 3
type File struct {
	// Concurrency is the number of jobs processed at once.
	Concurrency int `yaml:"concurrency"`

	// Workers is the per-job worker count passed to inpaint.WithWorkers.
	Workers int `yaml:"workers"`

	Jobs []Job `yaml:"jobs"`
}

// Defaults returns a File with no jobs and concurrency settings taken from
// INPAINT_CONCURRENCY and INPAINT_WORKERS.
func Defaults() File {
	return File{
		Concurrency: envInt("INPAINT_CONCURRENCY", runtime.NumCPU()),
		Workers:     envInt("INPAINT_WORKERS", 1),
	}
}

// Load reads and validates the job file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a job file. Unknown keys are rejected.
// Settings missing from the file keep their Defaults values.
func Parse(data []byte) (*File, error) {
	f := Defaults()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the file and every job in it.
func (f *File) Validate() error {
	if len(f.Jobs) == 0 {
		return ErrNoJobs
	}
	if f.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency %d must be at least 1", ErrInvalidJob, f.Concurrency)
	}
	for i := range f.Jobs {
		if err := f.Jobs[i].Validate(); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks that the job names its files and that every setting is
// in range.
func (j *Job) Validate() error {
	switch {
	case strings.TrimSpace(j.Image) == "":
		return fmt.Errorf("%w: image is required", ErrInvalidJob)
	case strings.TrimSpace(j.Mask) == "":
		return fmt.Errorf("%w: mask is required", ErrInvalidJob)
	case strings.TrimSpace(j.Output) == "":
		return fmt.Errorf("%w: output is required", ErrInvalidJob)
	case j.Threshold != nil && (*j.Threshold < 0 || *j.Threshold > 255):
		return fmt.Errorf("%w: threshold %d out of range [0, 255]", ErrInvalidJob, *j.Threshold)
	case j.Dilate < 0:
		return fmt.Errorf("%w: dilate %d is negative", ErrInvalidJob, j.Dilate)
	case j.MaxIterations < 0:
		return fmt.Errorf("%w: max_iterations %d is negative", ErrInvalidJob, j.MaxIterations)
	case j.Radius < 0:
		return fmt.Errorf("%w: radius %d is negative", ErrInvalidJob, j.Radius)
	}

	if _, err := inpaint.ParseChannel(j.Channel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}
	if _, err := inpaint.ParseInterpolation(j.Interpolation); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}
	return nil
}

// MaskChannel returns the channel the mask is read from.
func (j *Job) MaskChannel() (inpaint.Channel, error) {
	return inpaint.ParseChannel(j.Channel)
}

// Options converts the job settings to Remove options.
func (j *Job) Options() ([]inpaint.Option, error) {
	interp, err := inpaint.ParseInterpolation(j.Interpolation)
	if err != nil {
		return nil, err
	}

	opts := []inpaint.Option{
		inpaint.WithInterpolation(interp),
		inpaint.WithDilate(j.Dilate),
		inpaint.WithMaxIterations(j.MaxIterations),
		inpaint.WithBlend(!j.NoBlend),
	}
	if j.Threshold != nil {
		// #nosec G115 -- range checked by Validate
		opts = append(opts, inpaint.WithThreshold(uint8(*j.Threshold)))
	}
	if j.Radius > 0 {
		opts = append(opts, inpaint.WithRadius(j.Radius))
	}
	return opts, nil
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
