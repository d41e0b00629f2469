package cache

import "time"

// Entry represents a cached module payload
type Entry struct {
	// Hash is the unique identifier for this cache entry
	// Computed from: source file content + buildtype + snapshot configuration
	Hash string `json:"hash"`

	// SourceFile is the path to the module source file
	SourceFile string `json:"source_file"`

	// Module is the module name the payload was produced for
	Module string `json:"module"`

	// BuildType is "debug" or "release"
	BuildType string `json:"build_type"`

	// Snapshot indicates whether the payload is a snapshot blob
	// (as opposed to normalized source text)
	Snapshot bool `json:"snapshot"`

	// Size is the payload length in bytes
	Size int `json:"size"`

	// Timestamp when this entry was created
	Timestamp time.Time `json:"timestamp"`
}
