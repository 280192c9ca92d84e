package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-starfield/internal/census"
	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/export"
	"github.com/litescript/ls-starfield/internal/server"
	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/version"
	"github.com/litescript/ls-starfield/internal/viewport"
)

// Headless command flags
var (
	jsonOut      bool
	braille      bool
	dotsPerCell  int
	exportFormat string
	exportPath   string
	workers      int
	plotHeight   int
)

func newStarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "star X Y",
		Short: "print the star in one cell",
		Args:  cobra.ExactArgs(2),
		RunE:  runStar,
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON")
	return cmd
}

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "draw a region of the field to stdout",
		Args:  cobra.NoArgs,
		RunE:  runMap,
	}
	addRegionFlags(cmd, 40, 20)
	cmd.Flags().BoolVar(&braille, "braille", false, "draw stars as braille circles")
	cmd.Flags().IntVar(&dotsPerCell, "dots", 4, "braille dots per cell side")
	cmd.Flags().String("hover", "", "ring the cell at X,Y (braille)")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "export a region snapshot",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	addRegionFlags(cmd, 16, 9)
	cmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json, table, svg)")
	cmd.Flags().StringVar(&exportPath, "out", "-", "output file (- for stdout)")
	cmd.Flags().String("hover", "", "ring the star at X,Y (svg)")
	return cmd
}

func newCensusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "census",
		Short: "count stars and their attributes over a region",
		Args:  cobra.NoArgs,
		RunE:  runCensus,
	}
	addRegionFlags(cmd, 100, 100)
	cmd.Flags().IntVar(&workers, "workers", 0, "survey goroutines (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&plotHeight, "plot-height", 10, "chart height in lines (0 disables charts)")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the field over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			srv, err := server.New(cfg.Server, logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list named starting positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "  %-10s x: %d, y: %d\n", name, p.X, p.Y)
				fmt.Fprintf(w, "  %-10s %s\n", "", p.Description)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-starfield v%s\n", version.Version)
		},
	}
}

func runStar(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	x, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid x %q: %w", args[0], err)
	}
	y, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid y %q: %w", args[1], err)
	}

	seed := int64(cfg.Seed)
	star := starfield.Generate(x, y, seed)
	w := cmd.OutOrStdout()

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			X    int64 `json:"x"`
			Y    int64 `json:"y"`
			Seed int64 `json:"seed"`
			starfield.Star
		}{x, y, seed, star})
	}

	if !star.Exists {
		fmt.Fprintf(w, "x: %d, y: %d - empty\n", x, y)
		return nil
	}
	fmt.Fprintf(w, "x: %d, y: %d - %s\n", x, y, star.Info())
	fmt.Fprintf(w, "  diameter %d, color %s\n", star.Diameter, star.Color)
	return nil
}

// regionGrid returns the grid selected by the origin and size flags.
func regionGrid(cmd *cobra.Command) (viewport.Grid, error) {
	flags := cmd.Flags()
	cols, err := flags.GetInt("cols")
	if err != nil {
		return viewport.Grid{}, err
	}
	rows, err := flags.GetInt("rows")
	if err != nil {
		return viewport.Grid{}, err
	}
	if cols <= 0 || rows <= 0 {
		return viewport.Grid{}, fmt.Errorf("region %dx%d: %w", cols, rows, viewport.ErrInvalidSize)
	}
	home, _, err := origin(cmd)
	if err != nil {
		return viewport.Grid{}, err
	}
	return viewport.Visible(viewport.At(home.X, home.Y), cols, rows), nil
}

// region builds the snapshot selected by the region flags.
func region(cmd *cobra.Command, seed int64) (*export.RegionExport, error) {
	g, err := regionGrid(cmd)
	if err != nil {
		return nil, err
	}
	return export.ExportRegion(seed, g, time.Now().UTC()), nil
}

// hoverFlag parses --hover as X,Y. It returns nil when the flag is empty.
func hoverFlag(cmd *cobra.Command) (*viewport.Cell, error) {
	v, err := cmd.Flags().GetString("hover")
	if err != nil || v == "" {
		return nil, err
	}
	var c viewport.Cell
	if _, err := fmt.Sscanf(v, "%d,%d", &c.X, &c.Y); err != nil {
		return nil, fmt.Errorf("invalid --hover %q: %w", v, err)
	}
	return &c, nil
}

func runMap(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	r, err := region(cmd, int64(cfg.Seed))
	if err != nil {
		return err
	}

	hover, err := hoverFlag(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if !braille {
		return export.WriteGlyphMap(w, r, isTTY)
	}
	c := export.BrailleMap(r, dotsPerCell, hover)
	out := c.String()
	if isTTY {
		out = c.Render()
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	r, err := region(cmd, int64(cfg.Seed))
	if err != nil {
		return err
	}

	hover, err := hoverFlag(cmd)
	if err != nil {
		return err
	}
	opts := export.SVGOptions{Labels: true, Hover: hover}

	if exportPath == "-" {
		return export.Write(cmd.OutOrStdout(), format, r, opts)
	}

	f, err := os.Create(exportPath)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	if err := export.Write(f, format, r, opts); err != nil {
		return fmt.Errorf("write %s export: %w", format, err)
	}
	logger.Info("wrote %d stars to %s", r.StarCount, exportPath)
	return nil
}

func runCensus(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	g, err := regionGrid(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	report, err := census.Survey(cmd.Context(), int64(cfg.Seed), g, workers)
	if err != nil {
		return err
	}
	logger.Debug("surveyed %d cells in %v", report.Cells, time.Since(start).Round(time.Millisecond))

	w := cmd.OutOrStdout()
	census.WriteReport(w, report)
	if plotHeight > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, census.ColumnPlot(report, 0, plotHeight))
		fmt.Fprintln(w)
		fmt.Fprintln(w, census.RowPlot(report, 0, plotHeight))
	}
	return nil
}
