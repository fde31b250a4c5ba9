package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes.
// Version suffix enables future algorithm migration.
const (
	DomainProps    = "hookrt/props/v1"
	DomainSnapshot = "hookrt/snapshot/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// PropsHash computes the content hash of summarized component props.
// Two renders with equal summaries hash identically, which lets a trace
// reader tell an update that changed props from one that did not.
func PropsHash(props IRObject) (string, error) {
	canonical, err := MarshalCanonical(props)
	if err != nil {
		return "", fmt.Errorf("PropsHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainProps, canonical), nil
}

// SnapshotHash computes the content hash of a serialized host tree.
func SnapshotHash(html string) string {
	return hashWithDomain(DomainSnapshot, []byte(html))
}
