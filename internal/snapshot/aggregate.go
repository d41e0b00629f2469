package snapshot

import (
	"os"

	"go.trai.ch/zerr"

	"github.com/jsembed/js2c/internal/module"
)

// MergeAll combines the per-module snapshot blobs into one merged blob and
// returns its bytes. The per-module temp files are removed whether or not the
// merge succeeds, and the merged file itself is removed once read; only the
// in-memory payload survives.
func MergeAll(tool Tool, infos []module.SnapshotInfo, outPath string) ([]byte, error) {
	paths := make([]string, len(infos))
	for i, info := range infos {
		paths[i] = info.Path
	}

	defer func() {
		for _, p := range paths {
			os.Remove(p)
		}
	}()

	if err := tool.Merge(outPath, paths); err != nil {
		return nil, zerr.Wrap(err, "failed to merge snapshots")
	}

	blob, err := os.ReadFile(outPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read merged snapshot")
	}

	os.Remove(outPath)

	return blob, nil
}
