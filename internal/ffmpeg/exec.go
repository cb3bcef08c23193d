package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/hbomb79/Tubely/pkg/logger"
)

var (
	ErrToolFailed = errors.New("external media tool failed")

	log = logger.Get("FFmpeg")
)

type (
	Config struct {
		FfmpegBinPath  string        `yaml:"ffmpeg_path" env:"FFMPEG_BIN_PATH" env-default:"ffmpeg"`
		FfprobeBinPath string        `yaml:"ffprobe_path" env:"FFPROBE_BIN_PATH" env-default:"ffprobe"`
		ToolTimeout    time.Duration `yaml:"tool_timeout" env:"FFMPEG_TOOL_TIMEOUT" env-default:"10m"`
	}

	// Runner abstracts over the spawning of an external process. Implementations
	// must return the full standard output of the process once it has exited,
	// and an error wrapping ErrToolFailed if the process could not be launched
	// or exited with a non-zero status.
	Runner interface {
		Run(ctx context.Context, bin string, args ...string) ([]byte, error)
	}

	// ExecRunner is the os/exec backed Runner. Standard error of the
	// child is forwarded to Stderr (os.Stderr if nil) rather than captured,
	// and standard output is buffered in memory.
	//
	// WaitDelay bounds how long Run waits for the output pipes to close
	// once the process has been killed, as a grandchild may still hold
	// them open. DefaultWaitDelay is used if it is not positive.
	ExecRunner struct {
		Stderr    io.Writer
		WaitDelay time.Duration
	}
)

const DefaultWaitDelay = 5 * time.Second

func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stderr: os.Stderr, WaitDelay: DefaultWaitDelay}
}

func (runner *ExecRunner) Run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	stdout := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = stdout
	cmd.Stderr = runner.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.WaitDelay = runner.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	log.Debugf("Spawning %s %v\n", bin, args)
	started := time.Now()
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s did not complete: %w", ErrToolFailed, bin, ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s exited with status %d", ErrToolFailed, bin, exitErr.ExitCode())
		}

		return nil, fmt.Errorf("%w: failed to launch %s: %w", ErrToolFailed, bin, err)
	}

	log.Debugf("%s completed in %s\n", bin, time.Since(started))
	return stdout.Bytes(), nil
}

// withTimeout derives a context bounded by the configured tool timeout. A
// zero timeout leaves the parent context untouched.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
