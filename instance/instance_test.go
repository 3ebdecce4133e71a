// SPDX-License-Identifier: MIT

package instance_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspbb/instance"
	"github.com/katalvlaran/tspbb/matrix"
)

var fourCost = [][]float64{
	{0, 29, 20, 21},
	{29, 0, 15, 17},
	{20, 15, 0, 28},
	{21, 17, 28, 0},
}

func TestDecode_AllFormats(t *testing.T) {
	cases := map[instance.Format]string{
		instance.FormatJSON: `{"name": "four", "cost": [[0,29,20,21],[29,0,15,17],[20,15,0,28],[21,17,28,0]], "upper_bound": 80}`,
		instance.FormatYAML: "name: four\nupper_bound: 80\ncost:\n  - [0, 29, 20, 21]\n  - [29, 0, 15, 17]\n  - [20, 15, 0, 28]\n  - [21, 17, 28, 0]\n",
		instance.FormatTOML: "name = \"four\"\nupper_bound = 80.0\ncost = [[0.0, 29.0, 20.0, 21.0], [29.0, 0.0, 15.0, 17.0], [20.0, 15.0, 0.0, 28.0], [21.0, 17.0, 28.0, 0.0]]\n",
	}
	for format, src := range cases {
		t.Run(string(format), func(t *testing.T) {
			f, err := instance.Decode(strings.NewReader(src), format)
			require.NoError(t, err)
			assert.Equal(t, "four", f.Name)
			assert.Equal(t, 80.0, f.UpperBound)
			assert.Equal(t, fourCost, f.Cost)
			assert.Equal(t, 4, f.N())
		})
	}
}

func TestDecode_Text(t *testing.T) {
	src := "# four cities\n4\n0 29 20 21\n29 0 15 17\n\n20 15 0 28 21 17 28 0\n"
	f, err := instance.Decode(strings.NewReader(src), instance.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "four cities", f.Comment)
	assert.Equal(t, fourCost, f.Cost)

	for _, bad := range []string{
		"",
		"x\n0 1 1 0",
		"3\n0 1 1\n1 0 1\n1 1",
		"3\n0 1 1\n1 0 one\n1 1 0",
	} {
		_, err = instance.Decode(strings.NewReader(bad), instance.FormatText)
		require.ErrorIs(t, err, instance.ErrParse, "%q", bad)
	}
}

func TestDecode_Rejects(t *testing.T) {
	_, err := instance.Decode(strings.NewReader(`{"name": "x"}`), instance.FormatJSON)
	require.ErrorIs(t, err, instance.ErrInvalidInstance, "neither cost nor points")

	_, err = instance.Decode(strings.NewReader(`{"cost": [[0,1,1],[1,0,1],[1,1,0]], "points": [[0,0],[1,1],[2,2]]}`), instance.FormatJSON)
	require.ErrorIs(t, err, instance.ErrInvalidInstance, "both")

	_, err = instance.Decode(strings.NewReader(`{"cost": [[0,1],[1,0]]}`), instance.FormatJSON)
	require.ErrorIs(t, err, instance.ErrInvalidInstance, "too small")

	_, err = instance.Decode(strings.NewReader(`{"cost": [[0,1,1],[1,0,1],[1,1,0]], "upper_bound": -1}`), instance.FormatJSON)
	require.ErrorIs(t, err, instance.ErrInvalidInstance, "negative bound")

	_, err = instance.Decode(strings.NewReader(`{"cost": [[0,1,1],[1,0,1],[1,1,0]], "extra": 1}`), instance.FormatJSON)
	require.ErrorIs(t, err, instance.ErrParse, "unknown field")

	_, err = instance.Decode(strings.NewReader("cost: [[0,1,1],[1,0,1],[1,1,0]]\nbogus: 2\n"), instance.FormatYAML)
	require.ErrorIs(t, err, instance.ErrParse)

	_, err = instance.Decode(strings.NewReader("bogus = 2\n"), instance.FormatTOML)
	require.ErrorIs(t, err, instance.ErrParse)

	_, err = instance.Decode(strings.NewReader(""), instance.Format("xml"))
	require.ErrorIs(t, err, instance.ErrUnknownFormat)
}

func TestMatrix_Points(t *testing.T) {
	f := &instance.File{Points: [][2]float64{{0, 0}, {3, 4}, {6, 8}, {0, 1.4}}}
	m, err := f.Matrix()
	require.NoError(t, err)
	rows := m.ToRows()
	assert.Equal(t, []float64{0, 5, 10, 1}, rows[0])
	assert.Equal(t, []float64{5, 0, 5, 4}, rows[1])
	assert.Equal(t, rows[0][2], rows[2][0])
}

func TestMatrix_Closure(t *testing.T) {
	f, err := instance.Decode(strings.NewReader(
		"closure: true\ncost:\n  - [0, 1, -1, 10]\n  - [1, 0, 2, -1]\n  - [-1, 2, 0, 3]\n  - [10, -1, 3, 0]\n"),
		instance.FormatYAML)
	require.NoError(t, err)
	m, err := f.Matrix()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{0, 1, 3, 6},
		{1, 0, 2, 5},
		{3, 2, 0, 3},
		{6, 5, 3, 0},
	}, m.ToRows())

	f.Cost = [][]float64{{0, 1, -1}, {1, 0, -1}, {-1, -1, 0}}
	_, err = f.Matrix()
	require.ErrorIs(t, err, instance.ErrInvalidInstance)
	require.ErrorIs(t, err, matrix.ErrDisconnected)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]instance.Format{
		"json": instance.FormatJSON, "YAML": instance.FormatYAML, "yml": instance.FormatYAML,
		"toml": instance.FormatTOML, "txt": instance.FormatText, "": instance.FormatText,
	} {
		got, err := instance.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := instance.ParseFormat("csv")
	require.ErrorIs(t, err, instance.ErrUnknownFormat)

	assert.Equal(t, instance.FormatJSON, instance.FormatFromPath("a/b.JSON"))
	assert.Equal(t, instance.FormatYAML, instance.FormatFromPath("b.yml"))
	assert.Equal(t, instance.FormatTOML, instance.FormatFromPath("b.toml"))
	assert.Equal(t, instance.FormatText, instance.FormatFromPath("b.tsp"))
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src, err := instance.Generate(7, 3)
	require.NoError(t, err)
	want, err := src.Matrix()
	require.NoError(t, err)

	for _, name := range []string{"g.json", "g.yaml", "g.toml", "g.txt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, instance.Save(path, src))
			got, err := instance.Load(path)
			require.NoError(t, err)
			m, err := got.Matrix()
			require.NoError(t, err)
			assert.Equal(t, want.ToRows(), m.ToRows())
			assert.NotEmpty(t, got.Name)
		})
	}

	_, err = instance.Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncode_Text(t *testing.T) {
	var buf bytes.Buffer
	f := &instance.File{Comment: "tri", Cost: [][]float64{{0, 1, 2.5}, {1, 0, 1}, {2.5, 1, 0}}}
	require.NoError(t, instance.Encode(&buf, f, instance.FormatText))
	assert.Equal(t, "# tri\n3\n0 1 2.5\n1 0 1\n2.5 1 0\n", buf.String())
}

func TestGenerate(t *testing.T) {
	a, err := instance.Generate(12, 42)
	require.NoError(t, err)
	b, err := instance.Generate(12, 42)
	require.NoError(t, err)
	c, err := instance.Generate(12, 43)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Points, c.Points)
	assert.Len(t, a.Points, 12)
	for _, p := range a.Points {
		assert.True(t, p[0] >= 0 && p[0] < instance.GridSize)
		assert.True(t, p[1] >= 0 && p[1] < instance.GridSize)
	}
	require.NoError(t, a.Validate())

	_, err = instance.Generate(2, 1)
	require.ErrorIs(t, err, instance.ErrInvalidInstance)
}

func TestSeriesSeeds(t *testing.T) {
	a := instance.SeriesSeeds(7, 5)
	assert.Equal(t, a, instance.SeriesSeeds(7, 5))
	assert.Len(t, a, 5)
	seen := map[int64]bool{}
	for _, s := range a {
		assert.False(t, seen[s])
		seen[s] = true
	}
	assert.Nil(t, instance.SeriesSeeds(7, 0))
}
