package voice

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/semaphore"
)

// Transcoder converts audio between containers.
type Transcoder interface {
	// ToWAV converts audio to 16 kHz mono WAV.
	ToWAV(ctx context.Context, audio []byte, format string) ([]byte, error)
	// ToVoice converts audio to OGG/Opus, shifting the pitch by a relative amount.
	ToVoice(ctx context.Context, audio []byte, format string, pitch float64) ([]byte, error)
}

// FFmpeg runs ffmpeg subprocesses. At most workers conversions run at once.
type FFmpeg struct {
	path string
	sem  *semaphore.Weighted
}

func NewFFmpeg(path string, workers int) *FFmpeg {
	if workers < 1 {
		workers = 1
	}
	return &FFmpeg{
		path: path,
		sem:  semaphore.NewWeighted(int64(workers)),
	}
}

const pitchBaseRate = 24000

func (f *FFmpeg) ToWAV(ctx context.Context, audio []byte, format string) ([]byte, error) {
	return f.run(ctx, audio, format, "wav", []string{"-ar", "16000", "-ac", "1"})
}

func (f *FFmpeg) ToVoice(ctx context.Context, audio []byte, format string, pitch float64) ([]byte, error) {
	args := []string{"-c:a", "libopus", "-b:a", "32k"}
	if filter := pitchFilter(pitch); filter != "" {
		args = append([]string{"-af", filter}, args...)
	}
	return f.run(ctx, audio, format, "ogg", args)
}

func (f *FFmpeg) run(ctx context.Context, audio []byte, inFormat, outFormat string, args []string) ([]byte, error) {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.sem.Release(1)

	dir, err := os.MkdirTemp("", "deskbot-audio-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in."+inFormat)
	out := filepath.Join(dir, "out."+outFormat)
	if err := os.WriteFile(in, audio, 0o600); err != nil {
		return nil, fmt.Errorf("write input: %w", err)
	}

	cmdArgs := append([]string{"-hide_banner", "-loglevel", "error", "-y", "-i", in}, args...)
	cmdArgs = append(cmdArgs, out)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.path, cmdArgs...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg %s->%s: %w: %s", inFormat, outFormat, err, bytes.TrimSpace(stderr.Bytes()))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	return data, nil
}

// pitchFilter resamples to shift the pitch and compensates the tempo so
// the duration stays the same. The input is first brought to a known rate,
// since asetrate relabels samples and TTS backends differ (24k, 48k).
func pitchFilter(pitch float64) string {
	if pitch == 0 {
		return ""
	}
	rate := strconv.Itoa(pitchBaseRate)
	factor := 1 + pitch
	return "aresample=" + rate +
		",asetrate=" + strconv.Itoa(int(math.Round(pitchBaseRate*factor))) +
		",aresample=" + rate +
		",atempo=" + strconv.FormatFloat(1/factor, 'f', 4, 64)
}
