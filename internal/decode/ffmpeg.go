package decode

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"

	charmlog "github.com/charmbracelet/log"
)

// ffmpegPath is resolved once at process start; FFMPEG_PATH overrides
// the default lookup-on-PATH behavior.
var ffmpegPath = "ffmpeg"

func init() {
	if p := os.Getenv("FFMPEG_PATH"); p != "" {
		ffmpegPath = p
	}
}

// sampleRateRe picks the source rate out of ffmpeg's stream-info
// banner, e.g. "Audio: pcm_s16le, 44100 Hz, stereo, s16, 1411 kb/s".
var sampleRateRe = regexp.MustCompile(`(\d+) Hz`)

// FFmpeg is the fallback decoder: it shells out to ffmpeg for any
// container/codec the dedicated decoders don't cover, requesting mono
// signed 16-bit PCM at the source's native rate so no rate is forced
// on it — the fingerprint package's resampler handles arbitrary input
// rates itself.
func FFmpeg(path string) (Result, error) {
	cmd := exec.Command(ffmpegPath,
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("decode: ffmpeg pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("decode: start ffmpeg: %w (%s)", err, stderr.String())
	}

	data, err := io.ReadAll(stdout)
	if err != nil {
		return Result{}, fmt.Errorf("decode: read ffmpeg output: %w", err)
	}
	if waitErr := cmd.Wait(); waitErr != nil {
		charmlog.Warn("ffmpeg exited with error", "path", path, "stderr", stderr.String(), "err", waitErr)
	}

	numSamples := len(data) / 2
	if numSamples == 0 {
		return Result{}, fmt.Errorf("decode: %s: no audio decoded (stderr: %s)", path, stderr.String())
	}

	sampleRate, err := parseSampleRate(stderr.String())
	if err != nil {
		return Result{}, fmt.Errorf("decode: %s: %w", path, err)
	}

	samples := make([]int16, numSamples)
	for i := 0; i < numSamples; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
	}

	return Result{Samples: samples, SampleRate: sampleRate}, nil
}

// parseSampleRate extracts the source stream's sample rate from
// ffmpeg's stderr stream-info banner.
func parseSampleRate(stderrOutput string) (int, error) {
	m := sampleRateRe.FindStringSubmatch(stderrOutput)
	if m == nil {
		return 0, fmt.Errorf("could not determine sample rate from ffmpeg output")
	}
	rate, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("parse sample rate: %w", err)
	}
	return rate, nil
}

// FileHash fingerprints a file by content (not to be confused with the
// acoustic fingerprint produced from it) for cache-key purposes: MD5 of
// the size plus up to 1MiB from the head and tail of the file.
func FileHash(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	size := info.Size()
	const chunkSize = 1024 * 1024

	h := md5.New()
	fmt.Fprintf(h, "%d", size)

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, chunkSize)
	n, _ := f.Read(head)
	h.Write(head[:n])

	if size > chunkSize {
		if _, err := f.Seek(-chunkSize, io.SeekEnd); err == nil {
			tail := make([]byte, chunkSize)
			n, _ = f.Read(tail)
			h.Write(tail[:n])
		}
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
