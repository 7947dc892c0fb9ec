package backend

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantParsesServerForms(t *testing.T) {
	want := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	for _, raw := range []string{
		`"2025-03-14T15:09:26Z"`,
		`"2025-03-14T12:09:26-03:00"`,
		`"2025-03-14T15:09:26"`,
		`"2025-03-14 15:09:26"`,
	} {
		var i Instant
		require.NoError(t, json.Unmarshal([]byte(raw), &i), raw)
		assert.True(t, want.Equal(i.Time), raw)
		assert.Equal(t, time.UTC, i.Location(), raw)
	}

	var frac Instant
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-14T15:09:26.123456"`), &frac))
	assert.Equal(t, 123456000, frac.Nanosecond())
}

func TestInstantEmptyAndInvalid(t *testing.T) {
	var i Instant
	require.NoError(t, json.Unmarshal([]byte(`null`), &i))
	assert.True(t, i.IsZero())
	require.NoError(t, json.Unmarshal([]byte(`""`), &i))
	assert.True(t, i.IsZero())

	for _, raw := range []string{`"yesterday"`, `true`, `{"at":1}`, `1.5`} {
		i = Instant{time.Now()}
		require.NoError(t, json.Unmarshal([]byte(raw), &i), raw)
		assert.True(t, i.IsZero(), raw)
	}
}

func TestInstantUnusualServerForms(t *testing.T) {
	want := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	tests := []struct {
		raw  string
		want time.Time
	}{
		{`"2025-03-14T15:09:26.123+0000"`, want.Add(123 * time.Millisecond)},
		{`1741964966000`, want},
		{`"Fri, 14 Mar 2025 15:09:26 GMT"`, want},
	}
	for _, tt := range tests {
		var i Instant
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &i), tt.raw)
		assert.True(t, tt.want.Equal(i.Time), "%s decoded to %v", tt.raw, i.Time)
	}
}

func TestInstantDisplay(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	i := Instant{time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)}

	assert.Equal(t, "14/03/2025 12:09:26", i.Display(saoPaulo))
	assert.Equal(t, "14/03/2025 15:09:26", i.Display(nil))
	assert.Equal(t, "-", Instant{}.Display(saoPaulo))
}

func TestProfileDecodesWireNames(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{
		"nome": "Ana Souza",
		"login": "ana",
		"login_em": "2025-03-14T15:09:26Z",
		"session_id": "abc"
	}`), &p))
	assert.Equal(t, "Ana Souza", p.Name)
	assert.Equal(t, "ana", p.Login)
	assert.Equal(t, "abc", p.SessionID)
	assert.Empty(t, p.Server)
}
