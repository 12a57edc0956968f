// Package fingerprint computes compact, noise-tolerant acoustic
// fingerprints compatible with the Chromaprint/AcoustID family of
// identifiers.
//
// The package ingests mono 16-bit PCM samples at an arbitrary input
// rate and runs them through a fixed pipeline: polyphase resampling to
// 11025 Hz, framing with overlap, a windowed FFT folded to a power
// spectrum, chroma binning, temporal chroma filtering and
// normalization, a rolling integral image, Haar-like classifiers with
// Gray-coded quantization, and finally a variable-length delta
// compressor.
//
// The package does no I/O, logging, or container/codec decoding —
// callers decode their own audio and feed mono i16 PCM via Feed.
package fingerprint
