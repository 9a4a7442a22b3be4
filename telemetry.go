package gc

import (
	"bytes"
	"encoding/json"

	"github.com/natefinch/atomic"
)

// Stats is a pure-observability counter block: nothing it tracks
// participates in any GC invariant, and no GC operation ever reads it
// back. It exists so an embedder can answer "is GC keeping up" without
// instrumenting the caller's own loop.
type Stats struct {
	BlocksErased   []uint64 `json:"blocks_erased"`   // per die
	SlicesMigrated []uint64 `json:"slices_migrated"` // per die
}

func newStats(dies int) *Stats {
	return &Stats{
		BlocksErased:   make([]uint64, dies),
		SlicesMigrated: make([]uint64, dies),
	}
}

func (s *Stats) recordErase(die int) {
	s.BlocksErased[die]++
}

func (s *Stats) recordMigratedSlice(die int) {
	s.SlicesMigrated[die]++
}

// Checkpoint serializes the current Stats snapshot to path, using an
// atomic rename so a crash mid-write can never leave a torn or
// half-written file behind - the previous checkpoint (or none) is always
// what a reader sees until the new one is fully in place.
func (g *GC) Checkpoint(path string) error {
	data, err := json.MarshalIndent(g.stats, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
