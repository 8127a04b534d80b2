package flipbook

import (
	"fmt"
	"time"

	"github.com/user/flipbook-cli/video"
	"go.uber.org/zap"
)

// Stage identifies a progress checkpoint.
type Stage int

const (
	// StageSampled fires once frames have been extracted.
	StageSampled Stage = iota
	// StageInterleaved fires once composites have been built.
	StageInterleaved
	// StageWriting fires after each page is saved.
	StageWriting
	// StageWritten fires once every page is on disk.
	StageWritten
)

func (s Stage) String() string {
	switch s {
	case StageSampled:
		return "sampled"
	case StageInterleaved:
		return "interleaved"
	case StageWriting:
		return "writing"
	case StageWritten:
		return "written"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Progress is reported to the caller at each checkpoint.
type Progress struct {
	Stage   Stage
	Frames  int    // sampled frame count, once known
	Current int    // pages written so far (StageWriting, StageWritten)
	Total   int    // pages expected, once known
	Path    string // last page written (StageWriting)
}

// ProgressFunc receives checkpoints synchronously on the pipeline's goroutine.
type ProgressFunc func(Progress)

// Status is the lifecycle of a run.
type Status string

const (
	StatusPending      Status = "pending"
	StatusSampling     Status = "sampling"
	StatusInterleaving Status = "interleaving"
	StatusWriting      Status = "writing"
	StatusComplete     Status = "complete"
	StatusFailed       Status = "failed"
)

// RunState is the outcome of one pipeline invocation. It is returned on
// success and on failure, with counts reflecting how far the run got.
type RunState struct {
	Config       Config
	Decoder      string
	Status       Status
	FrameRate    float64
	FrameStep    int
	Frames       int
	Pages        int
	Font         string
	FontWarnings []FontWarning
	Err          error
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Elapsed returns the wall-clock duration of the run.
func (r *RunState) Elapsed() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Pipeline runs sampling, interleaving and page writing in sequence.
// A Pipeline holds no per-run state and may be reused.
type Pipeline struct {
	decoder video.Decoder
	fonts   func(Config) []FontCandidate
	logger  *zap.Logger
	now     func() time.Time
}

// NewPipeline returns a Pipeline decoding with decoder.
func NewPipeline(decoder video.Decoder, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		decoder: decoder,
		fonts:   FontCandidates,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes the whole pipeline synchronously and returns the number of
// pages written in the run state. Any stage error ends the run; pages
// already written are left in place.
func (p *Pipeline) Run(cfg Config, onProgress ProgressFunc) (*RunState, error) {
	if onProgress == nil {
		onProgress = func(Progress) {}
	}

	state := &RunState{
		Config:    cfg,
		Decoder:   p.decoder.Name(),
		Status:    StatusPending,
		StartedAt: p.now(),
	}
	fail := func(err error) (*RunState, error) {
		state.Status = StatusFailed
		state.Err = err
		state.FinishedAt = p.now()
		p.logger.Error("flipbook run failed", zap.String("video", cfg.VideoPath), zap.Error(err))
		return state, err
	}

	if err := cfg.Validate(); err != nil {
		return fail(fmt.Errorf("invalid config: %w", err))
	}

	log := p.logger.With(zap.String("video", cfg.VideoPath))

	state.Status = StatusSampling
	sampled, err := NewSampler(p.decoder, log).Sample(cfg.VideoPath, cfg.IntervalSeconds, cfg.TargetWidth)
	if err != nil {
		return fail(err)
	}
	state.FrameRate = sampled.FrameRate
	state.FrameStep = sampled.FrameStep
	state.Frames = len(sampled.Frames)
	log.Info("frames sampled",
		zap.Float64("frame_rate", sampled.FrameRate),
		zap.Int("frame_step", sampled.FrameStep),
		zap.Int("frames", state.Frames),
	)
	if state.Frames < 2 {
		return fail(newError(ErrInsufficientFrames, "sample video", fmt.Errorf("got %d", state.Frames)))
	}
	onProgress(Progress{Stage: StageSampled, Frames: state.Frames, Total: state.Frames})

	state.Status = StatusInterleaving
	composites, err := Interleave(sampled.Frames, cfg.SplitRatio)
	if err != nil {
		return fail(err)
	}
	onProgress(Progress{Stage: StageInterleaved, Frames: state.Frames, Total: len(composites)})

	state.Status = StatusWriting
	resolved := ResolveFont(cfg.FontSize, p.fonts(cfg), log)
	defer resolved.Close()
	state.Font = resolved.Name
	state.FontWarnings = resolved.Warnings

	writer := NewPageWriter(PageOptions{
		OutputDir: cfg.OutputDir,
		FontSize:  cfg.FontSize,
		AddBorder: cfg.AddBorder,
	}, resolved.Face, log)

	pages, err := writer.Write(composites, func(pw PageWritten) {
		state.Pages = pw.Number
		onProgress(Progress{
			Stage:   StageWriting,
			Frames:  state.Frames,
			Current: pw.Number,
			Total:   pw.Total,
			Path:    pw.Path,
		})
	})
	state.Pages = pages
	if err != nil {
		return fail(err)
	}
	onProgress(Progress{Stage: StageWritten, Frames: state.Frames, Current: pages, Total: pages})

	state.Status = StatusComplete
	state.FinishedAt = p.now()
	log.Info("flipbook written",
		zap.Int("pages", pages),
		zap.String("output", cfg.OutputDir),
		zap.String("font", resolved.Name),
		zap.Duration("elapsed", state.Elapsed()),
	)
	return state, nil
}
