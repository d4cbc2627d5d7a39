// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

// Package historyarchive preserves the bytes [historystore.Store.Compact]
// drops from the master bank. It is the implementer's-choice addition
// spec.md §9's Design Notes license ("An implementer may add an
// opportunistic compaction... the source does not do this"): rather
// than discard tombstoned records outright, clio archives them as a
// compressed, checksummed blob next to a small CBOR manifest, so a
// compacted history can still be inspected or recovered later.
package historyarchive

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/clio-history/clio/lib/clock"
)

// manifestSuffix is appended to an archive's path to name its sibling
// manifest file.
const manifestSuffix = ".manifest"

// Manifest describes one archived blob: its original size, compressed
// size, and a checksum of the original (pre-compression) bytes so
// [Verify] can detect silent corruption.
type Manifest struct {
	Path           string `cbor:"path"`
	CreatedAtUnix  int64  `cbor:"created_at_unix"`
	OriginalSize   int64  `cbor:"original_size"`
	CompressedSize int64  `cbor:"compressed_size"`
	Checksum       string `cbor:"checksum"` // hex-encoded BLAKE3-256 of the original bytes
}

// Write lz4-compresses data and writes it to archivePath, alongside a
// CBOR-encoded manifest at archivePath+".manifest". lz4 is chosen over
// a higher-ratio codec to favor low latency over compression ratio;
// the separate, ratio-favoring zstd path is clio-history's export
// subcommand.
func Write(archivePath string, data []byte, clk clock.Clock) (*Manifest, error) {
	var compressed bytes.Buffer
	zw := lz4.NewWriter(&compressed)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("historyarchive: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("historyarchive: finalize compression: %w", err)
	}

	if err := os.WriteFile(archivePath, compressed.Bytes(), 0o600); err != nil {
		return nil, fmt.Errorf("historyarchive: write archive %s: %w", archivePath, err)
	}

	manifest := &Manifest{
		Path:           archivePath,
		CreatedAtUnix:  clk.Now().Unix(),
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(compressed.Len()),
		Checksum:       hex.EncodeToString(checksum(data)),
	}

	manifestBytes, err := cbor.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("historyarchive: encode manifest: %w", err)
	}
	if err := os.WriteFile(archivePath+manifestSuffix, manifestBytes, 0o600); err != nil {
		return nil, fmt.Errorf("historyarchive: write manifest for %s: %w", archivePath, err)
	}

	return manifest, nil
}

// ReadManifest loads and decodes the manifest for archivePath.
func ReadManifest(archivePath string) (*Manifest, error) {
	data, err := os.ReadFile(archivePath + manifestSuffix)
	if err != nil {
		return nil, fmt.Errorf("historyarchive: read manifest for %s: %w", archivePath, err)
	}
	var manifest Manifest
	if err := cbor.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("historyarchive: decode manifest for %s: %w", archivePath, err)
	}
	return &manifest, nil
}

// Read decompresses and returns the original bytes archived at
// archivePath.
func Read(archivePath string) ([]byte, error) {
	compressed, err := os.ReadFile(archivePath)
	if err != nil {
		return nil, fmt.Errorf("historyarchive: read archive %s: %w", archivePath, err)
	}
	zr := lz4.NewReader(bytes.NewReader(compressed))
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("historyarchive: decompress archive %s: %w", archivePath, err)
	}
	return data, nil
}

// Verify re-derives the checksum of the archived bytes at archivePath
// and compares it against the recorded manifest, detecting corruption
// the filesystem itself didn't catch.
func Verify(archivePath string) error {
	manifest, err := ReadManifest(archivePath)
	if err != nil {
		return err
	}
	data, err := Read(archivePath)
	if err != nil {
		return err
	}

	if int64(len(data)) != manifest.OriginalSize {
		return fmt.Errorf("historyarchive: %s: size mismatch (got %d, manifest says %d)",
			archivePath, len(data), manifest.OriginalSize)
	}
	got := hex.EncodeToString(checksum(data))
	if got != manifest.Checksum {
		return fmt.Errorf("historyarchive: %s: checksum mismatch (got %s, manifest says %s)",
			archivePath, got, manifest.Checksum)
	}
	return nil
}

// checksum computes the unkeyed BLAKE3-256 digest of data.
func checksum(data []byte) []byte {
	hasher := blake3.New()
	hasher.Write(data)
	return hasher.Sum(nil)
}
