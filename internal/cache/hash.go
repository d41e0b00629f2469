package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/jsembed/js2c/internal/config"
)

// HashSource creates a unique hash for a module source and its build
// configuration. The hash is based on:
// - Source file content
// - Build type (debug/release)
// - Snapshot tool path (selects the mode and identifies the tool)
// - Entry module name (controls source wrapping)
func HashSource(sourceFile string, cfg *config.Config) (string, error) {
	h := sha256.New()

	f, err := os.Open(sourceFile)
	if err != nil {
		return "", fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash source file: %w", err)
	}

	h.Write([]byte(cfg.BuildType))
	h.Write([]byte("|"))
	h.Write([]byte(cfg.SnapshotTool))
	h.Write([]byte("|"))
	h.Write([]byte(cfg.EntryModule))

	return hex.EncodeToString(h.Sum(nil)), nil
}
