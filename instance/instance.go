// SPDX-License-Identifier: MIT

package instance

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/tspbb/matrix"
)

var (
	// ErrInvalidInstance is returned when a decoded File fails validation.
	ErrInvalidInstance = errors.New("instance: invalid instance")

	// ErrUnknownFormat is returned for an unsupported encoding name.
	ErrUnknownFormat = errors.New("instance: unknown format")

	// ErrParse is returned when the text encoding cannot be read.
	ErrParse = errors.New("instance: parse error")
)

// File is one TSP instance as stored on disk.
type File struct {
	Name       string       `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" validate:"max=256"`
	Comment    string       `json:"comment,omitempty" yaml:"comment,omitempty" toml:"comment,omitempty"`
	Cost       [][]float64  `json:"cost,omitempty" yaml:"cost,omitempty" toml:"cost,omitempty" validate:"omitempty,min=3,dive,min=3"`
	Points     [][2]float64 `json:"points,omitempty" yaml:"points,omitempty" toml:"points,omitempty" validate:"omitempty,min=3"`
	UpperBound float64      `json:"upper_bound,omitempty" yaml:"upper_bound,omitempty" toml:"upper_bound,omitempty" validate:"gte=0"`
	// Closure marks Cost as sparse: negative entries are missing edges and
	// are replaced by shortest-path lengths before solving.
	Closure bool `json:"closure,omitempty" yaml:"closure,omitempty" toml:"closure,omitempty"`
}

// fileValidate checks struct tags of File.
var fileValidate = validator.New()

// N returns the number of cities.
func (f *File) N() int {
	if len(f.Cost) > 0 {
		return len(f.Cost)
	}

	return len(f.Points)
}

// Validate checks that exactly one of Cost and Points is set and that the
// tagged limits hold. The cost values themselves are checked by tsp.Solve.
func (f *File) Validate() error {
	switch {
	case len(f.Cost) == 0 && len(f.Points) == 0:
		return fmt.Errorf("%w: neither cost nor points given", ErrInvalidInstance)
	case len(f.Cost) > 0 && len(f.Points) > 0:
		return fmt.Errorf("%w: both cost and points given", ErrInvalidInstance)
	}
	if err := fileValidate.Struct(f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstance, err)
	}
	var i int
	for i = range f.Points {
		if math.IsNaN(f.Points[i][0]) || math.IsNaN(f.Points[i][1]) ||
			math.IsInf(f.Points[i][0], 0) || math.IsInf(f.Points[i][1], 0) {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidInstance, i)
		}
	}

	return nil
}

// Matrix returns the cost matrix of f. For Points the distance between two
// cities is the Euclidean distance rounded to the nearest integer. With
// Closure set, missing Cost entries are filled by matrix.MetricClosure.
// Complexity: O(n²).
func (f *File) Matrix() (*matrix.Dense, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if len(f.Cost) > 0 {
		m, err := matrix.NewDenseFromRows(f.Cost)
		if err != nil || !f.Closure {
			return m, err
		}
		if err = matrix.MetricClosure(m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInstance, err)
		}

		return m, nil
	}
	var (
		n    = len(f.Points)
		i, j int
		d    float64
	)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = math.Round(math.Hypot(f.Points[i][0]-f.Points[j][0], f.Points[i][1]-f.Points[j][1]))
			if err = m.SetSym(i, j, d); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
