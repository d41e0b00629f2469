package snapshot

import (
	"errors"
	"os"
	"os/exec"

	"go.trai.ch/zerr"
)

// Tool abstracts the external snapshot executable so the pipeline can be
// tested against a fake that returns canned blobs.
type Tool interface {
	// Generate compiles one wrapped source file into a snapshot blob at outPath.
	Generate(sourcePath, outPath string) error

	// Merge combines multiple snapshot blobs into a single blob at outPath.
	Merge(outPath string, inputs []string) error
}

// Commander interface for testing
type Commander interface {
	Run() error
}

// ExecTool invokes a real snapshot executable. Calls block until the tool
// exits; there is no timeout.
type ExecTool struct {
	Path string

	execCommand func(name string, args ...string) Commander
}

// NewExecTool creates a Tool backed by the executable at path.
func NewExecTool(path string) *ExecTool {
	return &ExecTool{
		Path: path,
		execCommand: func(name string, args ...string) Commander {
			cmd := exec.Command(name, args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd
		},
	}
}

func (t *ExecTool) Generate(sourcePath, outPath string) error {
	return t.run("generate", "--context", "eval", "-o", outPath, sourcePath)
}

func (t *ExecTool) Merge(outPath string, inputs []string) error {
	args := append([]string{"merge", "-o", outPath}, inputs...)
	return t.run(args...)
}

func (t *ExecTool) run(args ...string) error {
	err := t.execCommand(t.Path, args...).Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return zerr.With(ErrToolFailed, "status", exitErr.ExitCode())
	}

	return zerr.Wrap(err, ErrToolFailed.Error())
}
