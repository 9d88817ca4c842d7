package renderer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ytautomation/types"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrInvalidJobID      = errors.New("job id must be a plain file name")
)

// RenderJob is one clip to render, read from a job file or a Kafka message.
type RenderJob struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	types.GenerationConfig `yaml:",inline"`
}

// Ext returns the container extension for the job, ".webm" unless mp4 was asked for.
func (j RenderJob) Ext() (string, error) {
	switch strings.ToLower(strings.TrimPrefix(j.Format, ".")) {
	case "", "webm":
		return ".webm", nil
	case "mp4":
		return ".mp4", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, j.Format)
	}
}

// CheckID rejects ids that are not a single path element, since the id names
// both the output file and the archive key. An empty id is allowed and replaced later.
func (j RenderJob) CheckID() error {
	if j.ID == "" {
		return nil
	}
	if j.ID == "." || j.ID == ".." || j.ID != filepath.Base(j.ID) || strings.ContainsAny(j.ID, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidJobID, j.ID)
	}
	return nil
}

// LoadJob reads a .json, .yaml or .yml job file. The ID defaults to the file's base name.
func LoadJob(path string) (RenderJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenderJob{}, fmt.Errorf("failed to read job: %w", err)
	}

	var job RenderJob
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &job)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &job)
	default:
		return RenderJob{}, fmt.Errorf("unknown job file type %q", ext)
	}
	if err != nil {
		return RenderJob{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if job.ID == "" {
		job.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return job, nil
}

// findJobFiles lists the job files directly inside dir.
func findJobFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to read job files: %w", err)
		}
		files = append(files, matches...)
	}
	return files, nil
}
