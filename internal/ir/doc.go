// Package ir provides the canonical value layer shared by the runtime, the
// trace store and the scenario harness.
//
// This package contains value and record definitions only. All other
// internal packages may import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Props and host snapshots are summarized into sealed IRValue trees
//     before they leave the runtime (functions and channels become markers)
//   - Canonical JSON follows RFC 8785 key ordering with NFC-normalized strings
//   - Content hashes use SHA-256 with domain separation
//   - Ordering uses the logical clock (Seq), never wall-clock timestamps
package ir
