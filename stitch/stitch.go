// Package stitch runs a single render: load a save file, build the ffmpeg
// trim/concat filter graph, and invoke ffmpeg to produce one output file.
package stitch

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/clip-stitch-cli/db"
	"github.com/user/clip-stitch-cli/deps"
	"github.com/user/clip-stitch-cli/filtergraph"
	"github.com/user/clip-stitch-cli/savefile"
)

// Options describes one render run.
type Options struct {
	SaveFilePath string
	VideoPath    string
	OutputPath   string

	// Stdout and Stderr receive ffmpeg's output. Either may be nil, in
	// which case that stream is discarded (stderr is still captured
	// internally for error reporting).
	Stdout io.Writer
	Stderr io.Writer
}

// Result summarises a completed render.
type Result struct {
	RunID       string
	ClipCount   int
	Duration    float64 // summed clip seconds
	OutputPath  string
	OutputBytes int64
	Elapsed     time.Duration
}

// Stitcher renders save files. DB is optional; when nil, no render history
// is recorded. History failures never fail a render.
type Stitcher struct {
	DB     *sql.DB
	Logger *zap.Logger

	// Test seams; defaults run the real thing.
	checkFfmpeg func() error
	runCommand  func(*exec.Cmd) error
}

// New returns a Stitcher recording history to database (may be nil).
func New(database *sql.DB, logger *zap.Logger) *Stitcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stitcher{
		DB:          database,
		Logger:      logger,
		checkFfmpeg: deps.CheckFfmpeg,
		runCommand:  (*exec.Cmd).Run,
	}
}

// Render executes one run synchronously. Every failure is fatal to the
// run: missing ffmpeg, an unreadable or invalid save file, an empty clip
// list, or a non-zero ffmpeg exit. No retry and no partial-output cleanup.
func (s *Stitcher) Render(ctx context.Context, opts Options) (*Result, error) {
	if err := s.checkFfmpeg(); err != nil {
		return nil, err
	}

	sf, err := savefile.Load(opts.SaveFilePath)
	if err != nil {
		return nil, err
	}
	if len(sf.Clips) == 0 {
		return nil, fmt.Errorf("save file %s has no clips; nothing to render", opts.SaveFilePath)
	}

	builder := filtergraph.NewBuilder(opts.VideoPath)
	for _, c := range sf.Clips {
		if err := builder.AddSegment(c.Start, c.End); err != nil {
			return nil, err
		}
	}
	args, err := builder.Finish(opts.OutputPath)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := s.Logger.With(zap.String("run_id", runID))

	renderID := s.recordStart(logger, runID, opts, sf)

	logger.Debug("running ffmpeg",
		zap.Int("clips", len(sf.Clips)),
		zap.Strings("args", args))

	started := time.Now()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var ffout bytes.Buffer
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = io.Discard
	}
	if opts.Stderr != nil {
		cmd.Stderr = io.MultiWriter(opts.Stderr, &ffout)
	} else {
		cmd.Stderr = &ffout
	}

	if err := s.runCommand(cmd); err != nil {
		s.recordError(logger, renderID, fmt.Sprintf("%v\n%s", err, ffout.String()))
		// When stderr was not streamed to the caller, the captured output
		// is the only diagnostic the user will see.
		if opts.Stderr == nil && ffout.Len() > 0 {
			return nil, fmt.Errorf("ffmpeg failed: %w\n%s", err, strings.TrimSpace(ffout.String()))
		}
		return nil, fmt.Errorf("ffmpeg failed: %w", err)
	}

	info, err := os.Stat(opts.OutputPath)
	if err != nil {
		s.recordError(logger, renderID, fmt.Sprintf("stat output: %v", err))
		return nil, fmt.Errorf("stat output: %w", err)
	}

	s.recordComplete(logger, renderID, info.Size())

	return &Result{
		RunID:       runID,
		ClipCount:   len(sf.Clips),
		Duration:    sf.TotalDuration(),
		OutputPath:  opts.OutputPath,
		OutputBytes: info.Size(),
		Elapsed:     time.Since(started),
	}, nil
}

// recordStart inserts a pending history row. Returns 0 when history is
// disabled or the insert fails.
func (s *Stitcher) recordStart(logger *zap.Logger, runID string, opts Options, sf *savefile.SaveFile) int64 {
	if s.DB == nil {
		return 0
	}
	id, err := db.InsertRender(s.DB, &db.Render{
		RunID:        runID,
		VideoPath:    opts.VideoPath,
		SaveFilePath: opts.SaveFilePath,
		OutputPath:   opts.OutputPath,
		ClipCount:    len(sf.Clips),
		Duration:     sf.TotalDuration(),
		StartedAt:    time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("recording render start failed", zap.Error(err))
		return 0
	}
	return id
}

func (s *Stitcher) recordComplete(logger *zap.Logger, renderID, outputBytes int64) {
	if s.DB == nil || renderID == 0 {
		return
	}
	if err := db.MarkRenderComplete(s.DB, renderID, time.Now().UTC(), outputBytes); err != nil {
		logger.Warn("recording render completion failed", zap.Error(err))
	}
}

func (s *Stitcher) recordError(logger *zap.Logger, renderID int64, message string) {
	if s.DB == nil || renderID == 0 {
		return
	}
	if err := db.MarkRenderError(s.DB, renderID, time.Now().UTC(), message); err != nil {
		logger.Warn("recording render error failed", zap.Error(err))
	}
}
