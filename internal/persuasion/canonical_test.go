package persuasion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"value":   0.5,
		"grid":    3,
		"problem": "quadratic",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"grid":3,"problem":"quadratic","value":0.5}`, string(data))
}

func TestMarshalCanonical_Floats(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"integer-valued", 1.0, "1"},
		{"third", 1.0 / 3.0, "0.3333333333333333"},
		{"quarter", 0.25, "0.25"},
		{"negative", -0.5, "-0.5"},
		{"zero", 0.0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestMarshalCanonical_Matrix(t *testing.T) {
	data, err := MarshalCanonical([][]float64{{1, 0}, {0.5, 0.25}})
	require.NoError(t, err)
	assert.Equal(t, `[[1,0],[0.5,0.25]]`, string(data))
}

func TestMarshalCanonical_Interval(t *testing.T) {
	data, err := MarshalCanonical(Interval{Lo: 0, Hi: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"hi":1,"lo":0}`, string(data))
}

func TestMarshalCanonical_RejectsNonFinite(t *testing.T) {
	_, err := MarshalCanonical(math.NaN())
	assert.Error(t, err)

	_, err = MarshalCanonical([]float64{0, math.Inf(1)})
	assert.Error(t, err)

	// Matrix errors name the offending row and column.
	_, err = MarshalCanonical([][]float64{{0, 1}, {math.NaN(), 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[1]: [0]:")
}

func TestMarshalCanonical_RejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical("a<b & c>d")
	require.NoError(t, err)
	assert.Equal(t, `"a<b & c>d"`, string(data))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	payload := map[string]any{
		"mechanism": [][]float64{{1.0 / 3, 0, 0}, {1.0 / 6, 0, 1.0 / 6}, {0, 0, 1.0 / 3}},
		"prior":     []float64{1.0 / 3, 1.0 / 3, 1.0 / 3},
	}
	first, err := MarshalCanonical(payload)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(payload)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
