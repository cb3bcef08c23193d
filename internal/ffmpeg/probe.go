package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/floostack/transcoder/ffmpeg"
)

var (
	ErrMalformedProbeOutput = errors.New("ffprobe output could not be parsed")
	ErrNoVideoStream        = errors.New("ffprobe reported no usable video stream")
)

// Dimensions holds the frame size of the first video stream of a file.
type Dimensions struct {
	Width  int
	Height int
}

// Prober inspects media files using ffprobe.
type Prober struct {
	runner Runner
	config Config
}

func NewProber(config Config, runner Runner) *Prober {
	return &Prober{runner: runner, config: config}
}

// Probe returns the dimensions of the first video stream in the file
// at the provided path. The output of ffprobe is only parsed once the
// process has exited.
func (prober *Prober) Probe(ctx context.Context, path string) (Dimensions, error) {
	ctx, cancel := withTimeout(ctx, prober.config.ToolTimeout)
	defer cancel()

	output, err := prober.runner.Run(ctx, prober.config.FfprobeBinPath, ProbeArgs(path)...)
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to probe %s: %w", path, err)
	}

	return parseProbeOutput(output)
}

// ProbeArgs returns the ffprobe arguments which restrict the output to the
// width and height of the first video stream, encoded as JSON.
func ProbeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		path,
	}
}

func parseProbeOutput(output []byte) (Dimensions, error) {
	var metadata ffmpeg.Metadata
	if err := json.Unmarshal(output, &metadata); err != nil {
		return Dimensions{}, fmt.Errorf("%w: %w", ErrMalformedProbeOutput, err)
	}

	streams := metadata.GetStreams()
	if len(streams) == 0 {
		return Dimensions{}, ErrNoVideoStream
	}

	width, height := streams[0].GetWidth(), streams[0].GetHeight()
	if width <= 0 || height <= 0 {
		return Dimensions{}, fmt.Errorf("%w: stream reports dimensions %dx%d", ErrNoVideoStream, width, height)
	}

	return Dimensions{Width: width, Height: height}, nil
}
