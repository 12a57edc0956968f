// Package server exposes the fingerprinting pipeline over HTTP: a
// single upload-and-fingerprint endpoint plus a liveness probe, built
// the same way the teacher's analysis daemon is: a CORS-wrapped
// net/http mux with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vividhyeok/chromafp/fingerprint"
	"github.com/vividhyeok/chromafp/internal/config"
	"github.com/vividhyeok/chromafp/internal/decode"
)

// FingerprintResponse is the JSON envelope returned by POST
// /fingerprint.
type FingerprintResponse struct {
	Algorithm       uint8  `json:"algorithm"`
	SampleRate      int    `json:"sampleRate"`
	SubfingerprintN int    `json:"subfingerprintCount"`
	Compressed      string `json:"compressed"` // standard base64
	Encoded         string `json:"encoded"`     // URL-safe unpadded base64
	Error           string `json:"error,omitempty"`
}

// Server wires the HTTP mux over a fixed configuration.
type Server struct {
	params config.Params
	mux    *http.ServeMux

	// decodeSem bounds concurrent decode+fingerprint work in flight,
	// the same pattern the teacher uses in its batch analysis path.
	decodeSem chan struct{}
}

// New builds a Server with its routes registered.
func New(params config.Params) *Server {
	s := &Server{
		params:    params,
		mux:       http.NewServeMux(),
		decodeSem: make(chan struct{}, runtime.NumCPU()),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /fingerprint", s.handleFingerprint)
	return s
}

// Handler returns the CORS-wrapped mux ready to be passed to
// http.Serve or httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleFingerprint(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	w.Header().Set("X-Request-Id", requestID)
	logger := log.With("requestId", requestID)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		logger.Error("parse multipart form failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Error("missing file field", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	tmpPath, err := spoolUpload(file, header.Filename)
	if err != nil {
		logger.Error("failed to spool upload", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("fingerprinting", "filename", header.Filename)

	s.decodeSem <- struct{}{}
	defer func() { <-s.decodeSem }()

	result, err := decodeByExtension(tmpPath, header.Filename)
	if err != nil {
		logger.Error("decode failed", "filename", header.Filename, "err", err)
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	fp := fingerprint.NewWithParams(result.SampleRate, fingerprint.Params{
		TargetSampleRate: s.params.TargetSampleRate,
		MinFreq:          s.params.MinFreq,
		MaxFreq:          s.params.MaxFreq,
		ResampleCutoff:   s.params.ResampleCutoff,
	})
	fp.Feed(result.Samples)
	fp.Finish()

	compressed := fingerprint.Compress(fp.Fingerprint(), s.params.Algorithm)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FingerprintResponse{
		Algorithm:       s.params.Algorithm,
		SampleRate:      result.SampleRate,
		SubfingerprintN: len(fp.Fingerprint()),
		Compressed:      standardBase64(compressed),
		Encoded:         fingerprint.Encode(compressed),
	})

	logger.Info("fingerprinted", "filename", header.Filename, "subfingerprints", len(fp.Fingerprint()))
}

func decodeByExtension(path, filename string) (decode.Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return decode.WAV(path)
	case ".mp3":
		return decode.MP3(path)
	default:
		return decode.FFmpeg(path)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(FingerprintResponse{Error: err.Error()})
}

func standardBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
