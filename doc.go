// ═══════════════════════════════════════════════════════════════════════════
// Package gc: Cosmos+ FTL Garbage Collector
// ═══════════════════════════════════════════════════════════════════════════
//
// Ported from the Cosmos+ OpenSSD firmware's garbage collector. The GC
// reclaims erase blocks on one NAND die at a time: pick a victim, migrate
// any still-live slices off it, erase it.
//
// Architecture highlights:
// - Intrusive doubly-linked candidate buckets, one per invalid-slice count
// - Three interchangeable victim-selection policies behind one surface:
//   Greedy (FIFO pop of the fullest bucket), Cost-Benefit (yield vs. cost),
//   CAT (Cost-Benefit plus wear-leveling)
// - Integer-only scoring: 64-bit intermediate products narrowed to 32 bits
// - Single-threaded cooperative model: no locks, no suspension points
//
// This package is a library, not a daemon: it owns no goroutines, opens no
// sockets, and exposes no CLI. The caller's FTL loop drives it by calling
// Put/Detach as slices go stale and RunGc when it wants a die reclaimed.
// ═══════════════════════════════════════════════════════════════════════════
package gc
