// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspbb/matrix"
)

func TestMetricClosure_FillsMissingEdges(t *testing.T) {
	d, err := matrix.NewDenseFromRows([][]float64{
		{0, 1, -1, 10},
		{1, 0, 2, -1},
		{-1, 2, 0, 3},
		{10, -1, 3, 0},
	})
	require.NoError(t, err)
	require.NoError(t, matrix.MetricClosure(d))
	require.Equal(t, [][]float64{
		{0, 1, 3, 6},
		{1, 0, 2, 5},
		{3, 2, 0, 3},
		{6, 5, 3, 0},
	}, d.ToRows())
	require.NoError(t, matrix.ValidateSymmetric(d, 0))
}

func TestMetricClosure_Disconnected(t *testing.T) {
	d, err := matrix.NewDenseFromRows([][]float64{
		{0, 1, -1},
		{1, 0, -1},
		{-1, -1, 0},
	})
	require.NoError(t, err)
	require.ErrorIs(t, matrix.MetricClosure(d), matrix.ErrDisconnected)
}

func TestMetricClosure_Errors(t *testing.T) {
	require.ErrorIs(t, matrix.MetricClosure(nil), matrix.ErrNilMatrix)

	r, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.ErrorIs(t, matrix.MetricClosure(r), matrix.ErrNonSquare)
}
