package server

import (
	"net/url"
	"strconv"

	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/viewport"
)

const (
	// MaxRegionSide caps cols and rows of region and SVG requests.
	MaxRegionSide = 256

	defaultCols = 16
	defaultRows = 9
)

// seedParam reads ?seed=. A missing or malformed seed is the default
// seed, never an error. ok reports whether a usable seed was given.
func seedParam(q url.Values) (seed int64, ok bool) {
	return starfield.LookupSeed(q.Get("seed"))
}

// intParam reads an optional integer parameter.
func intParam(q url.Values, name string, def int64) (int64, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, Validationf("%s must be an integer, got %q", name, s)
	}
	return v, nil
}

// cellParams reads ?x=&y=.
func cellParams(q url.Values) (viewport.Cell, error) {
	x, err := intParam(q, "x", 0)
	if err != nil {
		return viewport.Cell{}, err
	}
	y, err := intParam(q, "y", 0)
	if err != nil {
		return viewport.Cell{}, err
	}
	return viewport.Cell{X: x, Y: y}, nil
}

// sizeParam reads a view side length in [1, MaxRegionSide]. Larger values
// are clamped.
func sizeParam(q url.Values, name string, def int) (int, error) {
	v, err := intParam(q, name, int64(def))
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, Validationf("%s must be at least 1, got %d", name, v)
	}
	return int(min(v, MaxRegionSide)), nil
}

// gridParams reads ?x=&y=&cols=&rows=.
func gridParams(q url.Values) (viewport.Grid, error) {
	origin, err := cellParams(q)
	if err != nil {
		return viewport.Grid{}, err
	}
	cols, err := sizeParam(q, "cols", defaultCols)
	if err != nil {
		return viewport.Grid{}, err
	}
	rows, err := sizeParam(q, "rows", defaultRows)
	if err != nil {
		return viewport.Grid{}, err
	}
	return viewport.Grid{Origin: origin, Cols: cols, Rows: rows}, nil
}

// hoverParams reads ?hover_x=&hover_y=. Both or neither must be given.
func hoverParams(q url.Values) (*viewport.Cell, error) {
	hx, hy := q.Get("hover_x"), q.Get("hover_y")
	if hx == "" && hy == "" {
		return nil, nil
	}
	if hx == "" || hy == "" {
		return nil, Validationf("hover_x and hover_y must be given together")
	}
	x, err := intParam(q, "hover_x", 0)
	if err != nil {
		return nil, err
	}
	y, err := intParam(q, "hover_y", 0)
	if err != nil {
		return nil, err
	}
	return &viewport.Cell{X: x, Y: y}, nil
}
