package server

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/litescript/ls-starfield/internal/export"
	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/version"
	"github.com/litescript/ls-starfield/internal/viewport"
)

// StarResponse is the body of /api/star.
type StarResponse struct {
	X    int64 `json:"x"`
	Y    int64 `json:"y"`
	Seed int64 `json:"seed"`
	starfield.Star
}

func (s *Server) seed(r *http.Request) int64 {
	q := r.URL.Query()
	seed, ok := seedParam(q)
	if !ok && q.Has("seed") {
		s.logger.Debug("seed %q is not a number, using %d", q.Get("seed"), seed)
	}
	return seed
}

func (s *Server) handleStar(w http.ResponseWriter, r *http.Request) {
	c, err := cellParams(r.URL.Query())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	seed := s.seed(r)
	writeJSON(w, http.StatusOK, StarResponse{
		X:    c.X,
		Y:    c.Y,
		Seed: seed,
		Star: starfield.Generate(c.X, c.Y, seed),
	})
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	g, err := gridParams(r.URL.Query())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, export.ExportRegion(s.seed(r), g, s.now()))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g, err := gridParams(q)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	hover, err := hoverParams(q)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	region := export.ExportRegion(s.seed(r), g, s.now())
	svg := export.RegionToSVG(region, export.SVGOptions{
		CellSize: s.cellSize,
		Hover:    hover,
		Labels:   q.Get("labels") != "0",
	})

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(svg))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// pageData feeds the explorer page template.
type pageData struct {
	Seed     int64
	X, Y     int64
	Cols     int
	Rows     int
	CellSize int
	Stars    int
	SVG      template.HTML
	Help     string
	Version  string
	Links    map[string]string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, s.logger, NotFoundf("no route for %s", r.URL.Path))
		return
	}

	q := r.URL.Query()
	g, err := gridParams(q)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	seed := s.seed(r)
	region := export.ExportRegion(seed, g, s.now())
	svg := export.RegionToSVG(region, export.SVGOptions{CellSize: s.cellSize, Labels: true})

	data := pageData{
		Seed:     seed,
		X:        g.Origin.X,
		Y:        g.Origin.Y,
		Cols:     g.Cols,
		Rows:     g.Rows,
		CellSize: s.cellSize,
		Stars:    region.StarCount,
		SVG:      template.HTML(svg),
		Help:     viewport.HelpLabel,
		Version:  version.Version,
		Links: map[string]string{
			"left":  pageURL(seed, g.Origin.X-1, g.Origin.Y, g),
			"right": pageURL(seed, g.Origin.X+1, g.Origin.Y, g),
			"up":    pageURL(seed, g.Origin.X, g.Origin.Y-1, g),
			"down":  pageURL(seed, g.Origin.X, g.Origin.Y+1, g),
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render page: %v", err)
	}
}

func pageURL(seed, x, y int64, g viewport.Grid) string {
	q := url.Values{}
	q.Set("seed", strconv.FormatInt(seed, 10))
	q.Set("x", strconv.FormatInt(x, 10))
	q.Set("y", strconv.FormatInt(y, 10))
	q.Set("cols", strconv.Itoa(g.Cols))
	q.Set("rows", strconv.Itoa(g.Rows))
	return "/?" + q.Encode()
}
