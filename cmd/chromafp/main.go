// Command chromafp computes the Chromaprint-compatible fingerprint of
// a single audio file and prints its base64 text form to stdout.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/vividhyeok/chromafp/fingerprint"
	"github.com/vividhyeok/chromafp/internal/config"
	"github.com/vividhyeok/chromafp/internal/decode"
)

func main() {
	var (
		format       = pflag.String("format", "auto", "input format: wav|mp3|opus|auto")
		cfgPath      = pflag.String("config", "", "path to a YAML params file overriding the fixed constants")
		algorithm    = pflag.Uint8("algorithm", 1, "algorithm byte written into the compressed header")
		opusRate     = pflag.Int("opus-rate", 48000, "sample rate of the input when --format=opus (the length-prefixed packet stream doesn't self-describe it)")
		opusChannels = pflag.Int("opus-channels", 1, "channel count of the input when --format=opus")
		verbose      = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: chromafp [flags] <audio-file>")
		pflag.PrintDefaults()
		os.Exit(1)
	}
	path := pflag.Arg(0)

	params := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Error("failed to load config", "path", *cfgPath, "err", err)
			os.Exit(1)
		}
		params = loaded
	}
	if *algorithm != 0 {
		params.Algorithm = *algorithm
	}

	result, err := decodeFile(path, *format, *opusRate, *opusChannels)
	if err != nil {
		log.Error("decode failed", "path", path, "err", err)
		os.Exit(1)
	}

	log.Debug("decoded audio", "path", path, "sampleRate", result.SampleRate, "samples", len(result.Samples))

	text := fingerprintText(result, params)
	fmt.Println(text)
}

func decodeFile(path, format string, opusRate, opusChannels int) (decode.Result, error) {
	resolved := format
	if resolved == "auto" {
		resolved = sniffFormat(path)
	}

	switch resolved {
	case "wav":
		return decode.WAV(path)
	case "mp3":
		return decode.MP3(path)
	case "opus":
		f, err := os.Open(path)
		if err != nil {
			return decode.Result{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return decode.Opus(f, opusRate, opusChannels)
	default:
		return decode.FFmpeg(path)
	}
}

func fingerprintText(result decode.Result, params config.Params) string {
	fp := fingerprint.NewWithParams(result.SampleRate, fingerprint.Params{
		TargetSampleRate: params.TargetSampleRate,
		MinFreq:          params.MinFreq,
		MaxFreq:          params.MaxFreq,
		ResampleCutoff:   params.ResampleCutoff,
	})
	fp.Feed(result.Samples)
	fp.Finish()

	compressed := fingerprint.Compress(fp.Fingerprint(), params.Algorithm)
	return fingerprint.Encode(compressed)
}

func sniffFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "wav"
	case ".mp3":
		return "mp3"
	default:
		return "ffmpeg"
	}
}
