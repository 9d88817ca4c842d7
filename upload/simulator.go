package upload

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"ytautomation/types"

	"go.uber.org/zap"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Simulator pretends to upload: it drains the stream and fabricates an id.
// No external service is contacted.
type Simulator struct {
	logger *zap.Logger
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator returns a Simulator seeded from the runtime.
func NewSimulator(logger *zap.Logger) *Simulator {
	return &Simulator{
		logger: logger,
		now:    time.Now,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NewSimulatorWith fixes the clock and random source, for deterministic ids.
func NewSimulatorWith(logger *zap.Logger, now func() time.Time, src rand.Source) *Simulator {
	return &Simulator{logger: logger, now: now, rng: rand.New(src)}
}

func (s *Simulator) Upload(ctx context.Context, video io.Reader, meta Metadata) (types.UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return types.UploadResult{}, err
	}

	n, err := io.Copy(io.Discard, video)
	if err != nil {
		return types.UploadResult{}, fmt.Errorf("failed to read video: %w", err)
	}

	videoID := s.newID()
	s.logger.Info("Upload simulated",
		zap.String("video_id", videoID),
		zap.String("title", meta.Title),
		zap.Strings("tags", meta.Tags),
		zap.String("privacy", string(meta.PrivacyStatus)),
		zap.Int64("bytes", n))

	return types.UploadResult{
		Success:  true,
		VideoID:  videoID,
		VideoURL: WatchURL(videoID),
		Message:  SimulatedMessage,
		Note:     SimulatedNote,
	}, nil
}

// newID builds video_<unix millis>_<9 base-36 chars>.
func (s *Simulator) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[s.rng.IntN(len(base36))]
	}
	return "video_" + strconv.FormatInt(s.now().UnixMilli(), 10) + "_" + string(suffix)
}
