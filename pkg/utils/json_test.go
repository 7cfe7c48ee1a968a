package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSON(t *testing.T) {
	s, err := ToJSON([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", s)

	s, err = ToJSON([]int64{})
	require.NoError(t, err)
	assert.Equal(t, "[]", s)
}

func TestToJSONPretty(t *testing.T) {
	s, err := ToJSONPretty(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", s)
}

func TestFromJSONBytes(t *testing.T) {
	type info struct {
		Name string `json:"name"`
	}
	v, err := FromJSONBytes[info]([]byte(`{"name":"exec-1"}`))
	require.NoError(t, err)
	assert.Equal(t, "exec-1", v.Name)

	_, err = FromJSONBytes[info]([]byte(`{`))
	assert.Error(t, err)
}

func TestDecodeObject(t *testing.T) {
	obj, err := DecodeObject([]byte(`{"status":"alive","n":2}`))
	require.NoError(t, err)
	assert.Equal(t, "alive", obj["status"])
	assert.Equal(t, float64(2), obj["n"])

	obj, err = DecodeObject([]byte(`[1]`))
	require.NoError(t, err)
	assert.Nil(t, obj)

	_, err = DecodeObject([]byte(`not json`))
	assert.Error(t, err)
}
