// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - HTTP server with browser page, SVG field rendering, rate limiting
// 0.3.0 - Census command with density histograms, braille region maps
// 0.2.0 - YAML config, .env overrides, viewport presets, discovery log
// 0.1.0 - Initial release: terminal explorer, hover readout, star lookup
