package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestAnyToStruct(t *testing.T) {
	t.Run("nil yields zero value", func(t *testing.T) {
		out, err := AnyToStruct[samplePayload](nil)
		require.NoError(t, err)
		assert.Equal(t, samplePayload{}, *out)
	})

	t.Run("direct value", func(t *testing.T) {
		out, err := AnyToStruct[samplePayload](samplePayload{Name: "a", Count: 2})
		require.NoError(t, err)
		assert.Equal(t, samplePayload{Name: "a", Count: 2}, *out)
	})

	t.Run("pointer value", func(t *testing.T) {
		out, err := AnyToStruct[samplePayload](&samplePayload{Name: "b"})
		require.NoError(t, err)
		assert.Equal(t, "b", out.Name)
	})

	t.Run("nil pointer yields zero value", func(t *testing.T) {
		out, err := AnyToStruct[samplePayload]((*samplePayload)(nil))
		require.NoError(t, err)
		assert.Equal(t, samplePayload{}, *out)
	})

	t.Run("map via json roundtrip", func(t *testing.T) {
		out, err := AnyToStruct[samplePayload](map[string]any{
			"name":  "c",
			"count": 7,
		})
		require.NoError(t, err)
		assert.Equal(t, samplePayload{Name: "c", Count: 7}, *out)
	})

	t.Run("unmarshalable payload", func(t *testing.T) {
		_, err := AnyToStruct[samplePayload](make(chan int))
		assert.Error(t, err)
	})

	t.Run("mismatched shape", func(t *testing.T) {
		_, err := AnyToStruct[samplePayload](map[string]any{"count": "many"})
		assert.Error(t, err)
	})
}

func TestToPointer(t *testing.T) {
	value := ToPointer(42)
	require.NotNil(t, value)
	assert.Equal(t, 42, *value)

	text := ToPointer("hello")
	assert.Equal(t, "hello", *text)
}
