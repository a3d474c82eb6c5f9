// Package archive compresses processed source logs with zstd so raw
// transcripts can be kept cheaply next to their reports.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Archive compresses srcPath into archiveDir/<basename>.zst.
// Returns the archive path.
func Archive(srcPath, archiveDir string) (string, error) {
	destPath := ArchivePath(srcPath, archiveDir)

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, src); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	return destPath, nil
}

// ReadArchived decompresses an archived log and returns its content.
func ReadArchived(archivePath string) (string, error) {
	src, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return "", fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	data, err := io.ReadAll(decoder)
	if err != nil {
		return "", fmt.Errorf("decompress: %w", err)
	}
	return string(data), nil
}

// IsArchived returns true if an archive file already exists for srcPath.
func IsArchived(srcPath, archiveDir string) bool {
	_, err := os.Stat(ArchivePath(srcPath, archiveDir))
	return err == nil
}

// ArchivePath returns the deterministic archive path for a source log.
func ArchivePath(srcPath, archiveDir string) string {
	return filepath.Join(archiveDir, filepath.Base(srcPath)+".zst")
}
