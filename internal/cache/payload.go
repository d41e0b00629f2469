package cache

import (
	"os"
	"path/filepath"
)

// WritePayload stores payload bytes at path, creating parent directories
func WritePayload(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, payload, 0o644)
}

// ReadPayload loads payload bytes from path
func ReadPayload(path string) ([]byte, error) {
	return os.ReadFile(path)
}
