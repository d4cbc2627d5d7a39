// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package historyarchive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/clio-history/clio/lib/clock"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive")
	data := []byte("echo hi\npwd\nls -la\n")

	manifest, err := Write(path, data, clock.Real())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if manifest.OriginalSize != int64(len(data)) {
		t.Errorf("OriginalSize = %d, want %d", manifest.OriginalSize, len(data))
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Read = %q, want %q", got, data)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive")
	data := []byte("echo hi\npwd\n")

	if _, err := Write(path, data, clock.Real()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Verify(path); err != nil {
		t.Fatalf("Verify on an untouched archive: %v", err)
	}

	manifest, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	manifest.Checksum = "0000000000000000000000000000000000000000000000000000000000000000"
	manifestBytes, err := cbor.Marshal(manifest)
	if err != nil {
		t.Fatalf("marshal tampered manifest: %v", err)
	}
	if err := os.WriteFile(path+manifestSuffix, manifestBytes, 0o600); err != nil {
		t.Fatalf("write tampered manifest: %v", err)
	}

	if err := Verify(path); err == nil {
		t.Error("Verify with a tampered checksum: want error, got nil")
	}
}
