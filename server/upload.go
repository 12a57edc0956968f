package server

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// spoolUpload writes an incoming multipart file to a uniquely named
// temp path so the path-based decoders can read it, mirroring the
// teacher's sanitize-and-save handling in its own upload handler.
func spoolUpload(src io.Reader, filename string) (string, error) {
	name := filepath.Base(filename)
	dst := filepath.Join(os.TempDir(), fmt.Sprintf("chromafp-%s-%s", uuid.New().String(), name))

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("server: create spool file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("server: write spool file: %w", err)
	}
	return dst, nil
}
