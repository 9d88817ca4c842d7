package renderer

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"ytautomation/config"
	"ytautomation/storage"
	"ytautomation/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClipRenderer writes a clip for cfg to outputPath.
type ClipRenderer interface {
	Render(ctx context.Context, cfg types.GenerationConfig, outputPath string) error
}

// Processor renders jobs into outputDir and archives the results when an archive is set.
type Processor struct {
	renderer  ClipRenderer
	archive   *storage.Archive
	outputDir string
	logger    *zap.Logger
}

// Result describes one processed job.
type Result struct {
	ID         string
	Path       string
	ArchiveKey string
	Skipped    bool
}

// Summary counts the outcome of a batch.
type Summary struct {
	Total    int
	Rendered int
	Skipped  int
	Failed   int
}

// NewProcessor returns a processor. archive may be nil.
func NewProcessor(renderer ClipRenderer, archive *storage.Archive, outputDir string, logger *zap.Logger) *Processor {
	return &Processor{
		renderer:  renderer,
		archive:   archive,
		outputDir: outputDir,
		logger:    logger,
	}
}

// Process renders job. Jobs already present in the archive are skipped.
func (p *Processor) Process(ctx context.Context, job RenderJob) (Result, error) {
	if err := job.CheckID(); err != nil {
		return Result{ID: job.ID}, err
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	ext, err := job.Ext()
	if err != nil {
		return Result{ID: job.ID}, err
	}

	cfg := job.GenerationConfig.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Result{ID: job.ID}, fmt.Errorf("invalid job %s: %w", job.ID, err)
	}

	log := p.logger.With(zap.String("job", job.ID))
	result := Result{ID: job.ID, Path: filepath.Join(p.outputDir, job.ID+ext)}

	if p.archive != nil {
		actx, cancel := storage.WithTimeout(ctx)
		exists, err := p.archive.Has(actx, job.ID, ext)
		cancel()
		if err != nil {
			log.Warn("Archive lookup failed", zap.Error(err))
		} else if exists {
			log.Info("Already archived, skipping")
			result.Skipped = true
			return result, nil
		}
	}

	rctx, cancel := context.WithTimeout(ctx, config.RenderTimeout)
	defer cancel()
	if err := p.renderer.Render(rctx, cfg, result.Path); err != nil {
		return result, fmt.Errorf("render %s failed: %w", job.ID, err)
	}
	log.Info("Rendered", zap.String("path", result.Path))

	if p.archive != nil {
		actx, cancel := storage.WithTimeout(ctx)
		defer cancel()
		key, err := p.archive.StoreFile(actx, result.Path)
		if err != nil {
			return result, err
		}
		result.ArchiveKey = key
	}

	return result, nil
}

// ProcessFile loads and processes a single job file.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	job, err := LoadJob(path)
	if err != nil {
		return Result{}, err
	}
	return p.Process(ctx, job)
}

// ProcessFromDirectory processes every job file in dir, at most
// MaxConcurrentRenders at a time. Individual failures are counted, not returned.
func (p *Processor) ProcessFromDirectory(ctx context.Context, dir string) (Summary, error) {
	files, err := findJobFiles(dir)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(files)}
	if len(files) == 0 {
		p.logger.Info("No job files found", zap.String("dir", dir))
		return summary, nil
	}
	p.logger.Info("Found jobs to render", zap.Int("count", len(files)))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, config.MaxConcurrentRenders)
	)

	for i, file := range files {
		wg.Add(1)

		go func(idx int, file string) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				mu.Lock()
				summary.Failed++
				mu.Unlock()
				return
			}
			defer func() { <-semaphore }()

			p.logger.Info("Processing job",
				zap.Int("n", idx+1),
				zap.Int("of", len(files)),
				zap.String("file", filepath.Base(file)))

			res, err := p.ProcessFile(ctx, file)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				p.logger.Error("Job failed", zap.String("file", file), zap.Error(err))
				summary.Failed++
			case res.Skipped:
				summary.Skipped++
			default:
				summary.Rendered++
			}
		}(i, file)
	}

	wg.Wait()
	p.logger.Info("Batch finished",
		zap.Int("rendered", summary.Rendered),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return summary, ctx.Err()
}
