package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content fingerprints.
// Version suffix enables future algorithm migration.
const (
	DomainIndex = "featuredb/index/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// IndexFingerprint computes a content hash of the index over its canonical
// JSON form. Two indexes with the same commits and display order have the
// same fingerprint regardless of map iteration order.
func IndexFingerprint(ci *CommitIndex) (string, error) {
	canonical, err := MarshalCanonical(ci.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("IndexFingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainIndex, canonical), nil
}

// ShortFingerprint returns the first 12 hex characters of a fingerprint,
// the form shown in CLI output.
func ShortFingerprint(fp string) string {
	if len(fp) <= 12 {
		return fp
	}
	return fp[:12]
}
