package app

import (
	"context"
	"fmt"
	"os/exec"
)

// ExtractFrame writes a single scaled JPEG frame of inputPath taken at
// the given offset (ffmpeg time syntax, e.g. "00:00:01") to outputPath.
func ExtractFrame(ctx context.Context, inputPath, offset, outputPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-ss", offset,
		"-i", inputPath,
		"-frames:v", "1",
		"-vf", "scale=640:-1",
		"-q:v", "2",
		"-y",
		outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg frame extraction failed: %v: %s", err, out)
	}
	return nil
}

// ProbeDuration returns the media duration in whole seconds via ffprobe.
func ProbeDuration(ctx context.Context, inputPath string) (int, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %v", err)
	}
	var seconds float64
	if _, err := fmt.Sscanf(string(out), "%f", &seconds); err != nil {
		return 0, fmt.Errorf("parse ffprobe output failed: %v", err)
	}
	return int(seconds), nil
}
