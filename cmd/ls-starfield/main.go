// Command ls-starfield explores an infinite procedurally generated starfield
// in the terminal, from scripts, or in a browser.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/ui"
	"github.com/litescript/ls-starfield/internal/version"
	"github.com/litescript/ls-starfield/internal/viewport"
)

// Global flags
var (
	configFile string
	seedFlag   string
	logLevel   string
	logFormat  string
	logFile    string
)

// Origin flags shared by explore, map, export and census
var (
	originX int64
	originY int64
	preset  string
	theme   string
)

func main() {
	// Create context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ls-starfield",
		Short:         "explore an infinite procedural starfield",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExplore,
	}
	addExploreFlags(rootCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&seedFlag, "seed", "", "field seed (decimal or 0x hex; invalid means 0)")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "", "log format (text, json)")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "open the terminal explorer",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}
	addExploreFlags(exploreCmd)

	rootCmd.AddCommand(
		exploreCmd,
		newStarCmd(),
		newMapCmd(),
		newExportCmd(),
		newCensusCmd(),
		newServeCmd(),
		newPresetsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func addExploreFlags(cmd *cobra.Command) {
	addOriginFlags(cmd)
	cmd.Flags().StringVar(&theme, "theme", "", "color theme ("+joinNames(ui.ThemeNames())+")")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the explorer runs")
}

func addOriginFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&originX, "x", 0, "top-left cell x")
	cmd.Flags().Int64Var(&originY, "y", 0, "top-left cell y")
	cmd.Flags().StringVar(&preset, "preset", "", "start at a named preset (see presets)")
}

// addRegionFlags adds the origin flags plus --cols and --rows, which
// regionGrid reads back per command.
func addRegionFlags(cmd *cobra.Command, defCols, defRows int) {
	addOriginFlags(cmd)
	cmd.Flags().Int("cols", defCols, "region width in cells")
	cmd.Flags().Int("rows", defRows, "region height in cells")
}

// setup resolves configuration with flag overrides and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Resolve(configFile)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = config.Seed(starfield.ParseSeed(seedFlag))
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}

	logger := logging.NewWithFormat(logging.ParseLevel(cfg.LogLevel), logging.ParseFormat(cfg.LogFormat))
	if flags.Changed("seed") {
		if _, ok := starfield.LookupSeed(seedFlag); !ok {
			logger.Debug("seed %q is not an integer, using %d", seedFlag, cfg.Seed)
		}
	}
	return cfg, logger, nil
}

// origin returns the requested top-left cell and its display name. A
// preset supplies the default; explicit --x and --y win over it.
func origin(cmd *cobra.Command) (viewport.Cell, string, error) {
	name := ""
	c := viewport.Cell{}
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return c, "", err
		}
		c = viewport.Cell{X: p.X, Y: p.Y}
		name = preset
	}
	if cmd.Flags().Changed("x") {
		c.X = originX
		name = ""
	}
	if cmd.Flags().Changed("y") {
		c.Y = originY
		name = ""
	}
	if name == "" {
		name = fmt.Sprintf("(%d, %d)", c.X, c.Y)
	}
	return c, name, nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	home, homeName, err := origin(cmd)
	if err != nil {
		return err
	}

	ex := cfg.Explorer
	if cmd.Flags().Changed("theme") {
		ex.Theme = theme
	}
	if _, ok := ui.ThemeByName(ex.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", ex.Theme, joinNames(ui.ThemeNames()))
	}
	layout, err := viewport.NewLayout(ex.CellWidth, ex.CellHeight)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal; logs go to a file or nowhere
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	stateCfg := state.DefaultConfig()
	stateCfg.Seed = int64(cfg.Seed)
	stateMgr := state.NewManager(stateCfg)

	model := ui.New(stateMgr, ui.Options{
		Home:          home,
		HomeName:      homeName,
		Layout:        layout,
		PanSpeed:      ex.PanSpeed,
		FrameInterval: ex.FrameInterval(),
		KeyHold:       ex.KeyHold,
		Theme:         ex.Theme,
		Logger:        logger,
	})

	logger.Info("exploring seed %d from %s", cfg.Seed, homeName)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		if !errors.Is(err, tea.ErrProgramKilled) || cmd.Context().Err() == nil {
			return fmt.Errorf("run explorer: %w", err)
		}
	}

	snap := stateMgr.Snapshot()
	logger.Info("session ended: %d frames, %d stars discovered", snap.Frames, snap.Discovered)
	return nil
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
