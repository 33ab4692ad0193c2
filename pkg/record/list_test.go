package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   List
		want List
		text string
	}{
		{name: "nil encodes as empty array", in: nil, want: List{}, text: "[]"},
		{name: "empty", in: List{}, want: List{}, text: "[]"},
		{name: "single", in: List{"BSc"}, want: List{"BSc"}, text: `["BSc"]`},
		{name: "order kept", in: List{"b", "a", "c"}, want: List{"b", "a", "c"}, text: `["b","a","c"]`},
		{name: "unicode and quotes", in: List{"Kỹ sư", `say "hi"`}, want: List{"Kỹ sư", `say "hi"`}, text: `["Kỹ sư","say \"hi\""]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text, err := Encode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)

			out, err := Decode(text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestScanEmptyValues(t *testing.T) {
	t.Parallel()

	for _, src := range []any{nil, "", []byte(""), "null"} {
		var l List
		require.NoError(t, l.Scan(src))
		assert.NotNil(t, l)
		assert.Empty(t, l)
	}
}

func TestScanRejectsGarbage(t *testing.T) {
	var l List
	assert.Error(t, l.Scan("{not json"))
	assert.Error(t, l.Scan(42))
}

func TestValueUsesJSONText(t *testing.T) {
	v, err := List{"Python", "Go"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Python","Go"]`, v)
}

func TestMarshalJSONNeverNull(t *testing.T) {
	type wrapper struct {
		Certificate List `json:"certificate"`
	}
	b, err := json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"certificate":[]}`, string(b))
}

func TestUnmarshalRequiresFields(t *testing.T) {
	type job struct {
		Certificate List `json:"certificate"`
		Degree      List `json:"degree"`
	}

	var j job
	err := Unmarshal([]byte(`{"certificate":[],"degree":["BSc"]}`), &j, "certificate", "degree")
	require.NoError(t, err)
	assert.Equal(t, List{}, j.Certificate)
	assert.Equal(t, List{"BSc"}, j.Degree)

	err = Unmarshal([]byte(`{"certificate":[]}`), &j, "certificate", "degree")
	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "degree", missing.Field)

	assert.Error(t, Unmarshal([]byte(`[1,2]`), &j))
}
