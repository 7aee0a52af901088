package engines

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownOptionKeys(t *testing.T) {
	opts := map[string]any{"pool_size": 10, "bogus": true, "another": "x"}
	unknown := UnknownOptionKeys(opts, "pool_size")
	assert.Equal(t, []string{"another", "bogus"}, unknown)

	assert.Nil(t, UnknownOptionKeys(nil, "pool_size"))
	assert.Nil(t, UnknownOptionKeys(map[string]any{}, "pool_size"))
	assert.Nil(t, UnknownOptionKeys(map[string]any{"pool_size": 1}, "pool_size"))
}

func TestOptionString(t *testing.T) {
	v, ok, err := OptionString(map[string]any{"sslmode": "require"}, "sslmode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "require", v)

	_, ok, err = OptionString(map[string]any{}, "sslmode")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = OptionString(map[string]any{"sslmode": 1}, "sslmode")
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestOptionInt(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  int
		fails bool
	}{
		{"int", 5, 5, false},
		{"int32", int32(6), 6, false},
		{"int64", int64(7), 7, false},
		{"integral float", float64(8), 8, false},
		{"fractional float", 8.5, 0, true},
		{"string", "9", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok, err := OptionInt(map[string]any{"n": tc.value}, "n")
			assert.True(t, ok)
			if tc.fails {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestOptionBool(t *testing.T) {
	v, ok, err := OptionBool(map[string]any{"parse_time": true}, "parse_time")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, v)

	_, _, err = OptionBool(map[string]any{"parse_time": "yes"}, "parse_time")
	assert.Error(t, err)
}

func TestOptionDuration(t *testing.T) {
	v, ok, err := OptionDuration(map[string]any{"timeout": 3 * time.Second}, "timeout")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3*time.Second, v)

	v, _, err = OptionDuration(map[string]any{"timeout": "250ms"}, "timeout")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, v)

	_, _, err = OptionDuration(map[string]any{"timeout": "nonsense"}, "timeout")
	assert.Error(t, err)

	_, _, err = OptionDuration(map[string]any{"timeout": 5}, "timeout")
	assert.Error(t, err)
}
