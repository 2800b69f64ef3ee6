// Package media shells out to ffmpeg and ffprobe for audio extraction,
// frame sampling, and duration probing.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
)

// ExtractAudio writes the video's audio track as 16 kHz mono PCM WAV, the
// format Whisper expects. Returns the path to the temp file; the caller
// removes it.
func ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	out, err := os.CreateTemp("", "audio-*.wav")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	out.Close()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		out.Name(),
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(out.Name())
		return "", apperrors.Wrap(apperrors.ErrInternalServer,
			fmt.Errorf("ffmpeg audio extraction: %w: %s", err, tail(output)))
	}
	return out.Name(), nil
}

// ExtractFrames samples count frames evenly across the video and returns
// them base64-encoded as JPEG.
func ExtractFrames(ctx context.Context, videoPath string, count int, duration float64) ([]string, error) {
	if count <= 0 || duration <= 0 {
		return nil, nil
	}

	dir, err := os.MkdirTemp("", "frames-")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	defer os.RemoveAll(dir)

	interval := duration / float64(count+1)
	for i := 1; i <= count; i++ {
		ts := interval * float64(i)
		framePath := filepath.Join(dir, fmt.Sprintf("frame-%03d.jpg", i))
		cmd := exec.CommandContext(ctx, "ffmpeg",
			"-y",
			"-ss", strconv.FormatFloat(ts, 'f', 2, 64),
			"-i", videoPath,
			"-frames:v", "1",
			"-q:v", "5",
			framePath,
		)
		if output, err := cmd.CombinedOutput(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer,
				fmt.Errorf("ffmpeg frame extraction at %.2fs: %w: %s", ts, err, tail(output)))
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".jpg") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	frames := make([]string, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		frames = append(frames, base64.StdEncoding.EncodeToString(data))
	}
	return frames, nil
}

// ProbeDuration returns the media duration in seconds via ffprobe.
func ProbeDuration(ctx context.Context, videoPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer,
			fmt.Errorf("ffprobe duration: %w", err))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer,
			fmt.Errorf("ffprobe duration parse: %w", err))
	}
	return duration, nil
}

// tail keeps the last portion of tool output for error messages.
func tail(output []byte) string {
	s := strings.TrimSpace(string(output))
	if len(s) > 300 {
		s = s[len(s)-300:]
	}
	return s
}
