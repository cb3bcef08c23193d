package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/floostack/transcoder/ffmpeg"
)

// ProcessedSuffix is inserted between the base name and extension
// of a file to form the path of its remuxed counterpart.
const ProcessedSuffix = ".processed"

// Remuxer rewrites a video container so that its index (the MP4 'moov' atom)
// is placed at the front of the file, allowing playback to begin before
// the whole file has downloaded. Streams are copied, never re-encoded.
type Remuxer struct {
	runner Runner
	config Config
}

func NewRemuxer(config Config, runner Runner) *Remuxer {
	return &Remuxer{runner: runner, config: config}
}

// Remux writes the fast-start version of inputPath to ProcessedPath(inputPath) and
// returns that path. The input file is never removed; the caller owns both files.
func (remuxer *Remuxer) Remux(ctx context.Context, inputPath string) (string, error) {
	outputPath := ProcessedPath(inputPath)

	ctx, cancel := withTimeout(ctx, remuxer.config.ToolTimeout)
	defer cancel()

	if _, err := remuxer.runner.Run(ctx, remuxer.config.FfmpegBinPath, RemuxArgs(inputPath, outputPath)...); err != nil {
		return "", fmt.Errorf("failed to remux %s: %w", inputPath, err)
	}

	log.Debugf("Remuxed %s -> %s\n", inputPath, outputPath)
	return outputPath, nil
}

// ProcessedPath derives the output path for a remux of the given path: same
// directory and base name, with ProcessedSuffix inserted before the extension.
func ProcessedPath(path string) string {
	dir, file := filepath.Split(path)
	ext := filepath.Ext(file)
	name := strings.TrimSuffix(file, ext)

	return filepath.Join(dir, name+ProcessedSuffix+ext)
}

// RemuxArgs returns the ffmpeg arguments required to perform a fast-start
// remux of input to output: metadata preserved, all streams copied, MP4 container.
func RemuxArgs(input string, output string) []string {
	movFlags := "faststart"
	mapMetadata := "0"
	outputFormat := "mp4"
	overwrite := true
	opts := ffmpeg.Options{
		MovFlags:     &movFlags,
		MapMetadata:  &mapMetadata,
		OutputFormat: &outputFormat,
		Overwrite:    &overwrite,
	}

	args := []string{"-i", input}
	args = append(args, opts.GetStrArguments()...)

	// Options only exposes per-stream codec flags; -codec applies to every stream
	args = append(args, "-codec", "copy")

	return append(args, output)
}
