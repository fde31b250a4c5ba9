package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRValueSealed(t *testing.T) {
	var _ IRValue = IRNull{}
	var _ IRValue = IRString("test")
	var _ IRValue = IRInt(42)
	var _ IRValue = IRBool(true)
	var _ IRValue = IRArray{IRString("a"), IRInt(1)}
	var _ IRValue = IRObject{"key": IRString("value")}
}

func TestIRObjectSortedKeysUTF16Order(t *testing.T) {
	obj := IRObject{"a": IRInt(1), "A": IRInt(2), "aa": IRInt(3), "Aa": IRInt(4)}
	assert.Equal(t, []string{"A", "Aa", "a", "aa"}, obj.SortedKeys())
}

func TestIRObjectSortedKeysSurrogates(t *testing.T) {
	// U+1F600 encodes as surrogates 0xD83D 0xDE00, which sort before U+FF61
	// in UTF-16 even though its UTF-8 encoding sorts after.
	obj := IRObject{"｡": IRInt(1), "\U0001F600": IRInt(2)}
	assert.Equal(t, []string{"\U0001F600", "｡"}, obj.SortedKeys())
}

type point struct {
	X, Y   int
	hidden string
}

func TestSummarize(t *testing.T) {
	handler := func() {}
	var nilFunc func()

	tests := []struct {
		name     string
		input    any
		expected IRValue
	}{
		{"nil", nil, IRNull{}},
		{"string", "hi", IRString("hi")},
		{"int", 7, IRInt(7)},
		{"uint8", uint8(3), IRInt(3)},
		{"bool", true, IRBool(true)},
		{"float", 1.5, IRString("1.5")},
		{"func", handler, IRString(FuncMarker)},
		{"nil func", nilFunc, IRNull{}},
		{"slice", []string{"a", "b"}, IRArray{IRString("a"), IRString("b")}},
		{"nil slice", []int(nil), IRNull{}},
		{"map", map[string]any{"n": 1, "f": handler}, IRObject{"n": IRInt(1), "f": IRString(FuncMarker)}},
		{"struct skips unexported", point{X: 1, Y: 2, hidden: "x"}, IRObject{"X": IRInt(1), "Y": IRInt(2)}},
		{"pointer followed", &point{X: 3}, IRObject{"X": IRInt(3), "Y": IRInt(0)}},
		{"ir value passthrough", IRInt(9), IRInt(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summarize(tt.input))
		})
	}
}

func TestUnmarshalIRValue_RoundTripsCanonical(t *testing.T) {
	obj := IRObject{
		"title": IRString("note"),
		"count": IRInt(3),
		"tags":  IRArray{IRString("a"), IRNull{}},
		"done":  IRBool(false),
	}
	data, err := MarshalCanonical(obj)
	require.NoError(t, err)

	back, err := UnmarshalIRValue(data)
	require.NoError(t, err)
	assert.Equal(t, obj, back)
}

func TestUnmarshalIRValue_FloatsBecomeStrings(t *testing.T) {
	v, err := UnmarshalIRValue([]byte(`{"ratio":0.25}`))
	require.NoError(t, err)
	assert.Equal(t, IRObject{"ratio": IRString("0.25")}, v)
}

func TestIRObjectUnmarshalJSON_RejectsNonObject(t *testing.T) {
	var obj IRObject
	err := obj.UnmarshalJSON([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestToGo(t *testing.T) {
	v := IRObject{"a": IRArray{IRInt(1), IRString("x"), IRBool(true), IRNull{}}}
	assert.Equal(t, map[string]any{"a": []any{int64(1), "x", true, nil}}, ToGo(v))
}
