package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/giserh/wtss.py/internal/catalog"
	"github.com/giserh/wtss.py/internal/config"
	"github.com/giserh/wtss.py/internal/storage"
	"github.com/giserh/wtss.py/pkg/wtss"
)

// App wires the WTSS client, the service catalog, and the snapshot store
// behind the CLI commands.
type App struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	client *wtss.Client
	store  storage.Store
	out    io.Writer
}

// New builds the CLI runtime from config.
func New(cfg *config.Config, log *zap.SugaredLogger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	client, err := buildClient(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		client: client,
		store:  store,
		out:    os.Stdout,
	}, nil
}

// buildClient resolves the target host either directly from config or from
// a named catalog entry.
func buildClient(cfg *config.Config) (*wtss.Client, error) {
	host := cfg.Host
	timeout := cfg.Timeout

	if host == "" && cfg.Service != "" {
		reg, err := catalog.Load(cfg.ServicesFile)
		if err != nil {
			return nil, fmt.Errorf("load services catalog: %w", err)
		}
		svc, ok := reg.ByID(cfg.Service)
		if !ok {
			return nil, fmt.Errorf("service %q not found in %s", cfg.Service, cfg.ServicesFile)
		}
		host = svc.Host
		timeout = svc.Timeout()
	}
	if host == "" {
		return nil, fmt.Errorf("no WTSS host configured (set WTSS_HOST or WTSS_SERVICE)")
	}

	opts := []wtss.Option{wtss.WithTimeout(timeout)}
	if !cfg.CheckStatus {
		opts = append(opts, wtss.WithoutStatusCheck())
	}
	return wtss.New(host, opts...), nil
}

// Close releases the snapshot store.
func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}

// Run dispatches a CLI command.
func (a *App) Run(ctx context.Context, args []string) error {
	if a == nil || a.client == nil {
		return fmt.Errorf("app is not initialized")
	}
	if len(args) == 0 {
		return usageError()
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "coverages":
		return a.runCoverages(ctx)
	case "describe":
		if len(rest) != 1 {
			return fmt.Errorf("usage: describe <coverage>")
		}
		return a.runDescribe(ctx, rest[0])
	case "series":
		return a.runSeries(ctx, rest)
	case "snapshots":
		return a.runSnapshots()
	case "snapshot":
		if len(rest) != 1 {
			return fmt.Errorf("usage: snapshot <key>")
		}
		return a.runSnapshot(rest[0])
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, usageError())
	}
}

func usageError() error {
	return fmt.Errorf("expected one of: coverages | describe <coverage> | series <coverage> <attr[,attr...]> <lat> <lon> [start end] | snapshots | snapshot <key>")
}

func (a *App) runCoverages(ctx context.Context) error {
	doc, err := a.client.ListCoverages(ctx)
	if err != nil {
		return fmt.Errorf("list coverages: %w", err)
	}
	names, err := doc.Names()
	if err != nil {
		return fmt.Errorf("list coverages: %w", err)
	}
	return a.render(names)
}

func (a *App) runDescribe(ctx context.Context, name string) error {
	doc, err := a.client.DescribeCoverage(ctx, name)
	if err != nil {
		return fmt.Errorf("describe coverage %q: %w", name, err)
	}
	return a.render(doc)
}

func (a *App) runSeries(ctx context.Context, args []string) error {
	if len(args) != 4 && len(args) != 6 {
		return fmt.Errorf("usage: series <coverage> <attr[,attr...]> <lat> <lon> [start end]")
	}

	coverage := args[0]
	attributes := wtss.AttributeList(strings.Split(args[1], ","))

	latitude, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("parse latitude %q: %w", args[2], err)
	}
	longitude, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("parse longitude %q: %w", args[3], err)
	}

	var startDate, endDate string
	if len(args) == 6 {
		startDate, endDate = args[4], args[5]
	}

	doc, err := a.client.TimeSeries(ctx, coverage, attributes, latitude, longitude, startDate, endDate)
	if err != nil {
		return fmt.Errorf("fetch time series: %w", err)
	}

	if err := a.snapshotSeries(coverage, args[2], args[3], startDate, endDate, doc); err != nil {
		a.log.Warnw("snapshot not saved", "error", err)
	}

	return a.render(doc)
}

// snapshotSeries archives a fetched document; failures here never fail the
// fetch itself.
func (a *App) snapshotSeries(coverage, lat, lon, start, end string, doc wtss.TimeSeriesDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	key := fmt.Sprintf("%s/%s,%s/%s..%s", coverage, lat, lon, start, end)
	return a.store.SaveSeries(key, raw)
}

func (a *App) runSnapshots() error {
	keys, err := a.store.Keys()
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	return a.render(keys)
}

func (a *App) runSnapshot(key string) error {
	raw, found, err := a.store.LoadSeries(key)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return fmt.Errorf("no snapshot stored for key %q", key)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	return a.render(doc)
}
