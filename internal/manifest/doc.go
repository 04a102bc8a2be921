// Package manifest decodes module manifest blobs.
//
// Ownership boundary:
// - envelope and descriptor wire layout
// - the per-parse descriptor index
// - string resolution and module assembly
//
// A parse either yields a complete Result or fails with one of the
// package sentinels; nothing partial escapes. The Builder exists for
// tooling and tests only.
package manifest
