// Command ls-astrocarto computes astrocartography lines and parans for an
// instant in time and renders them as a summary table, GeoJSON, or a
// terminal map.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/litescript/ls-astrocarto/internal/acg"
	"github.com/litescript/ls-astrocarto/internal/astro"
	"github.com/litescript/ls-astrocarto/internal/cache"
	"github.com/litescript/ls-astrocarto/internal/config"
	"github.com/litescript/ls-astrocarto/internal/engine"
	"github.com/litescript/ls-astrocarto/internal/ephem"
	"github.com/litescript/ls-astrocarto/internal/geojson"
	"github.com/litescript/ls-astrocarto/internal/logging"
	"github.com/litescript/ls-astrocarto/internal/ui"
)

var (
	flagEpoch     string
	flagBodies    []string
	flagLines     []string
	flagAspects   []float64
	flagParans    []string
	flagPrecision float64

	flagConfig    string
	flagLogLevel  string
	flagCacheKind string
	flagCachePath string

	flagGeoJSON string
	flagJSON    bool
	flagSummary bool
	flagTUI     bool
)

func main() {
	root := &cobra.Command{
		Use:          "ls-astrocarto",
		Short:        "Astrocartography line and paran computation",
		SilenceUsage: true,
		RunE:         run,
	}

	root.Flags().StringVar(&flagEpoch, "epoch", "", "UTC instant in RFC 3339 form (default: now)")
	root.Flags().StringSliceVar(&flagBodies, "bodies", []string{"sun"}, "Body identifiers (sun or a bright star name)")
	root.Flags().StringSliceVar(&flagLines, "lines", []string{"MC", "IC", "AC", "DC"}, "Line types (MC, IC, AC, DC, ANGLE_ASPECT)")
	root.Flags().Float64SliceVar(&flagAspects, "aspects", nil, "Aspect degrees for ANGLE_ASPECT lines (e.g. 60,90,120)")
	root.Flags().StringSliceVar(&flagParans, "parans", nil, "Paran events to pair (rise, set, culminate, anticulminate)")
	root.Flags().Float64Var(&flagPrecision, "precision", 0, "Paran latitude precision target in degrees (0 = default)")

	root.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	root.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.Flags().StringVar(&flagCacheKind, "cache", "memory", "Result cache backend (memory, sqlite, none)")
	root.Flags().StringVar(&flagCachePath, "cache-path", defaultCachePath(), "SQLite cache file path")

	root.Flags().StringVar(&flagGeoJSON, "geojson", "", "Write GeoJSON to a file (use - for stdout)")
	root.Flags().BoolVar(&flagJSON, "json", false, "Print the raw result as JSON")
	root.Flags().BoolVar(&flagSummary, "summary", false, "Print a text summary table")
	root.Flags().BoolVar(&flagTUI, "tui", false, "Render the interactive terminal map")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := logging.New(flagLogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
	}

	backend, err := openBackend()
	if err != nil {
		return err
	}
	rc := cache.New(backend, time.Duration(cfg.CacheTTL), logger)
	defer rc.Close()

	req, err := buildRequest(ctx, logger)
	if err != nil {
		return err
	}

	eng := engine.New(cfg, rc, logger)
	res, err := eng.Compute(ctx, req)
	if err != nil {
		return err
	}

	logger.Info("computation complete",
		zap.String("request_id", res.RequestID),
		zap.Bool("cache_hit", res.CacheHit),
		zap.Int64("elapsed_ms", res.ElapsedMS))

	return writeOutput(res)
}

// buildRequest resolves flag values into a validated request via the
// built-in ephemeris.
func buildRequest(ctx context.Context, logger *zap.Logger) (*acg.Request, error) {
	epoch := time.Now().UTC().Truncate(time.Second)
	if flagEpoch != "" {
		var err error
		epoch, err = time.Parse(time.RFC3339, flagEpoch)
		if err != nil {
			return nil, fmt.Errorf("parse epoch: %w", err)
		}
	}
	jd := astro.JulianDay(epoch)

	provider := ephem.Approx{}
	bodies, err := provider.Bodies(ctx, jd, flagBodies)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved bodies",
		zap.String("provider", provider.Name()),
		zap.Int("count", len(bodies)),
		zap.Float64("jd", jd))

	lineTypes := make([]acg.AngleType, 0, len(flagLines))
	for _, lt := range flagLines {
		lineTypes = append(lineTypes, acg.AngleType(strings.ToUpper(lt)))
	}

	events := make([]acg.ParanEvent, 0, len(flagParans))
	for _, ev := range flagParans {
		events = append(events, acg.ParanEvent(strings.ToLower(ev)))
	}

	return &acg.Request{
		Epoch:              epoch.Format(time.RFC3339),
		JulianDay:          jd,
		ObliquityDeg:       provider.Obliquity(jd),
		Bodies:             bodies,
		LineTypes:          lineTypes,
		AspectDegrees:      flagAspects,
		ParanEvents:        events,
		PrecisionTargetDeg: flagPrecision,
	}, nil
}

func openBackend() (cache.Backend, error) {
	switch flagCacheKind {
	case "memory":
		return cache.NewMemory(), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(flagCachePath), 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		return cache.NewSQLite(flagCachePath)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", flagCacheKind)
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "ls-astrocarto", "results.db")
}

func writeOutput(res *engine.Result) error {
	if flagGeoJSON != "" {
		if flagGeoJSON == "-" {
			if err := geojson.Write(os.Stdout, res); err != nil {
				return err
			}
		} else {
			f, err := os.Create(flagGeoJSON)
			if err != nil {
				return fmt.Errorf("create geojson file: %w", err)
			}
			defer f.Close()
			if err := geojson.Write(f, res); err != nil {
				return err
			}
		}
	}

	if flagTUI {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("tui mode requires a terminal; use --summary or --geojson")
		}
		p := tea.NewProgram(ui.NewMapModel(res), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	if flagJSON {
		return res.WriteJSON(os.Stdout)
	}
	if flagSummary || flagGeoJSON == "" {
		res.WriteSummary(os.Stdout)
	}
	return nil
}
