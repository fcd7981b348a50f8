package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// runner lets tests stub out the ffprobe invocation.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Prober reads the duration of a video file with ffprobe.
type Prober struct {
	ffprobePath string
	run         runner
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func NewProber() *Prober {
	path := os.Getenv("FFPROBE_PATH")
	if path == "" {
		path = "ffprobe"
	}
	return &Prober{ffprobePath: path, run: runCommand}
}

// Duration returns the container duration in seconds.
func (p *Prober) Duration(ctx context.Context, videoPath string) (float64, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		videoPath,
	}

	output, err := p.run(ctx, p.ffprobePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probeData ffprobeOutput
	if err := json.Unmarshal(output, &probeData); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}

	if probeData.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration for %s", videoPath)
	}
	duration, err := strconv.ParseFloat(probeData.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probeData.Format.Duration, err)
	}
	return duration, nil
}
