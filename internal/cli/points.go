package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrBadPoint is returned for a malformed --at value.
var ErrBadPoint = errors.New("bad point")

// parsePoint parses a point given either positionally ("2,3") or by name
// ("x=2,y=3", any order). Named and positional coordinates cannot be mixed.
// An expression without variables takes the empty point "".
func parsePoint(arg string, vars []string) ([]float64, error) {
	if len(vars) == 0 {
		if strings.TrimSpace(arg) != "" {
			return nil, fmt.Errorf("%w %q: expression has no variables, use --at \"\"", ErrBadPoint, arg)
		}
		return []float64{}, nil
	}
	parts := strings.Split(arg, ",")
	if len(parts) != len(vars) {
		return nil, fmt.Errorf("%w %q: %d coordinates for variables (%s)", ErrBadPoint, arg, len(parts), strings.Join(vars, ", "))
	}

	named := strings.Contains(parts[0], "=")
	point := make([]float64, len(vars))
	set := make([]bool, len(vars))

	for i, part := range parts {
		part = strings.TrimSpace(part)
		idx := i
		if named {
			name, value, ok := strings.Cut(part, "=")
			if !ok {
				return nil, fmt.Errorf("%w %q: cannot mix named and positional coordinates", ErrBadPoint, arg)
			}
			idx = slices.Index(vars, strings.TrimSpace(name))
			if idx < 0 {
				return nil, fmt.Errorf("%w %q: unknown variable %q", ErrBadPoint, arg, name)
			}
			if set[idx] {
				return nil, fmt.Errorf("%w %q: %s given twice", ErrBadPoint, arg, name)
			}
			part = strings.TrimSpace(value)
		} else if strings.Contains(part, "=") {
			return nil, fmt.Errorf("%w %q: cannot mix named and positional coordinates", ErrBadPoint, arg)
		}

		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrBadPoint, arg, err)
		}
		point[idx] = v
		set[idx] = true
	}
	return point, nil
}

func parsePoints(args []string, vars []string) ([][]float64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: at least one --at is required", ErrBadPoint)
	}
	points := make([][]float64, len(args))
	for i, arg := range args {
		p, err := parsePoint(arg, vars)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

// firstCoords flattens single-coordinate points.
func firstCoords(points [][]float64) []float64 {
	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p[0]
	}
	return xs
}
