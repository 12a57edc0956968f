package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/vividhyeok/chromafp/internal/config"
)

func TestHealthEndpoint(t *testing.T) {
	ts := httptest.NewServer(New(config.Default()).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestFingerprintEndpointRoundTrip(t *testing.T) {
	ts := httptest.NewServer(New(config.Default()).Handler())
	defer ts.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "tone.wav")
	if err != nil {
		t.Fatal(err)
	}
	wavPath := writeTestWAV(t)
	wavFile, err := os.Open(wavPath)
	if err != nil {
		t.Fatal(err)
	}
	defer wavFile.Close()
	if _, err := io.Copy(part, wavFile); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/fingerprint", &body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header on response")
	}

	var fr FingerprintResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		t.Fatal(err)
	}
	if fr.Error != "" {
		t.Fatalf("unexpected error in response: %s", fr.Error)
	}
	if fr.SampleRate != 8000 {
		t.Errorf("sampleRate = %d, want 8000", fr.SampleRate)
	}
	if fr.Encoded == "" {
		t.Error("expected a non-empty encoded fingerprint")
	}
	if !strings.HasPrefix(fr.Encoded, "AQAA") {
		t.Errorf("encoded fingerprint = %q, want AQAA (algorithm 1) prefix", fr.Encoded)
	}
}

func TestFingerprintEndpointRejectsMissingFile(t *testing.T) {
	ts := httptest.NewServer(New(config.Default()).Handler())
	defer ts.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/fingerprint", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func writeTestWAV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	samples := make([]int, 8000)
	for i := range samples {
		samples[i] = (i % 400) - 200
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: 8000, NumChannels: 1},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
