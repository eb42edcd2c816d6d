package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIndex() *CommitIndex {
	idx := NewCommitIndex()
	idx.Add(FeatureRecord{Name: "Fast Search", Description: "Find things.", Category: "core", IntroducedBy: "abc123", IntroducedOn: "2026-01-10"})
	idx.Add(FeatureRecord{Name: "Dark Mode", Description: "Easy on the eyes.", Category: "core", IntroducedBy: "def456", IntroducedOn: "2026-01-02"})
	return idx
}

func TestIndexFingerprintDeterminism(t *testing.T) {
	fp1, err := IndexFingerprint(sampleIndex())
	require.NoError(t, err)

	fp2, err := IndexFingerprint(sampleIndex())
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2, "fingerprint must be deterministic")
	assert.Len(t, fp1, 64, "SHA-256 hex is 64 characters")
}

func TestIndexFingerprintChangesWithContent(t *testing.T) {
	base, err := IndexFingerprint(sampleIndex())
	require.NoError(t, err)

	changed := sampleIndex()
	changed.Add(FeatureRecord{Name: "Export", Category: "core", IntroducedBy: "0f0f0f", IntroducedOn: "2026-02-01"})
	fp, err := IndexFingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, base, fp)

	reordered := sampleIndex()
	reordered.CategoryFeatureOrder["core"] = []string{"Dark Mode", "Fast Search"}
	fp, err = IndexFingerprint(reordered)
	require.NoError(t, err)
	assert.NotEqual(t, base, fp, "display order is part of the content")
}

func TestDomainSeparation(t *testing.T) {
	data := []byte(`{"commits":{}}`)
	assert.NotEqual(t, hashWithDomain(DomainIndex, data), hashWithDomain("featuredb/other/v1", data))
}

func TestShortFingerprint(t *testing.T) {
	assert.Equal(t, "0123456789ab", ShortFingerprint("0123456789abcdef"))
	assert.Equal(t, "abc", ShortFingerprint("abc"))
}
