package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropsHash_Deterministic(t *testing.T) {
	a := IRObject{"label": IRString("inc"), "step": IRInt(1)}
	b := IRObject{"step": IRInt(1), "label": IRString("inc")}

	ha, err := PropsHash(a)
	require.NoError(t, err)
	hb, err := PropsHash(b)
	require.NoError(t, err)

	assert.Equal(t, ha, hb, "key order must not affect the hash")
	assert.Len(t, ha, 64)
}

func TestPropsHash_ChangesWithValues(t *testing.T) {
	a, err := PropsHash(IRObject{"step": IRInt(1)})
	require.NoError(t, err)
	b, err := PropsHash(IRObject{"step": IRInt(2)})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashDomainSeparation(t *testing.T) {
	// Same bytes under different domains must never collide.
	data := `{"a":1}`
	assert.NotEqual(t,
		hashWithDomain(DomainProps, []byte(data)),
		hashWithDomain(DomainSnapshot, []byte(data)),
	)
	assert.Equal(t, hashWithDomain(DomainSnapshot, []byte(data)), SnapshotHash(data))
}
