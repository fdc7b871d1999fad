package geometry3D

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensorJSON(t *testing.T) {
	E := Tensor{
		math.NaN(), math.Inf(1), math.Inf(-1),
		1.5, 0, -2,
		0, 0, 1e-300,
	}
	assert.False(t, E.IsFinite())
	assert.True(t, Identity().IsFinite())

	data, err := json.Marshal(E)
	require.NoError(t, err)
	assert.Equal(t, `["NaN","+Inf","-Inf",1.5,0,-2,0,0,1e-300]`, string(data))

	var F Tensor
	require.NoError(t, json.Unmarshal(data, &F))
	assert.True(t, math.IsNaN(F[0]))
	assert.True(t, math.IsInf(F[1], 1))
	assert.True(t, math.IsInf(F[2], -1))
	assert.Equal(t, E[3:], F[3:])

	data, err = json.Marshal(Diagonal(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, `[1,0,0,0,2,0,0,0,3]`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`["big",0,0,0,0,0,0,0,0]`), &F))
	assert.Error(t, json.Unmarshal([]byte(`[true,0,0,0,0,0,0,0,0]`), &F))
}
