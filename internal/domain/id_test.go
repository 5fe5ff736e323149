package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDKeepsJSONType(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`["1", 1, 2.50, "loc a", -3]`), &ids))

	assert.Equal(t, []ID{StringID("1"), NumberID("1"), NumberID("2.50"), StringID("loc a"), NumberID("-3")}, ids)
	assert.NotEqual(t, ids[0], ids[1])

	b, err := json.Marshal(ids)
	require.NoError(t, err)
	assert.Equal(t, `["1",1,2.50,"loc a",-3]`, string(b))
}

func TestIDRejectsOtherJSONTypes(t *testing.T) {
	for _, raw := range []string{`null`, `true`, `{}`, `[1]`} {
		var id ID
		assert.Error(t, json.Unmarshal([]byte(raw), &id), raw)
	}
}

func TestIDMarshalRejectsBadNumber(t *testing.T) {
	_, err := json.Marshal(NumberID("0x1F"))
	assert.Error(t, err)
}

func TestIsJSONNumber(t *testing.T) {
	assert.True(t, IsJSONNumber("0"))
	assert.True(t, IsJSONNumber("-1.5e3"))
	assert.False(t, IsJSONNumber(""))
	assert.False(t, IsJSONNumber("017"))
	assert.False(t, IsJSONNumber(".5"))
	assert.False(t, IsJSONNumber("1 2"))
	assert.False(t, IsJSONNumber(`"1"`))
}
