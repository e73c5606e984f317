package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okvist/authdns/internal/dns/common/log"
	"github.com/okvist/authdns/internal/dns/config"
	"github.com/okvist/authdns/internal/dns/gateways/transport"
	"github.com/okvist/authdns/internal/dns/gateways/wire"
	"github.com/okvist/authdns/internal/dns/repos/zonefile"
	"github.com/okvist/authdns/internal/dns/repos/zonestore"
	"github.com/okvist/authdns/internal/dns/services/resolver"
	"github.com/okvist/authdns/internal/dns/stats"
)

const (
	version = "0.1.0-dev"
	appName = "authdnsd"
)

// Application holds all the components of the DNS server.
type Application struct {
	config     *config.AppConfig
	transports []*transport.UDPTransport
	counters   *stats.Counters
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":   version,
		"env":       cfg.Env,
		"log_level": cfg.LogLevel,
		"zone_dir":  cfg.ZoneDir,
		"listen4":   cfg.Listen4,
		"listen6":   cfg.Listen6,
	}, "Starting authdns server")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Server failed")
	}

	log.Info(nil, "authdns server stopped gracefully")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	codec := wire.NewCodec()
	counters := stats.New()

	zones, err := zonefile.LoadDirectory(cfg.ZoneDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load zone directory: %w", err)
	}
	table := zonestore.NewTable(zones...)
	for _, z := range zones {
		log.Info(map[string]any{
			"zone":    z.Apex(),
			"records": z.Len(),
		}, "Zone loaded")
	}

	resolverService := resolver.New(resolver.Options{
		Zones:  table,
		Logger: logger,
		Stats:  counters,
	})

	var transports []*transport.UDPTransport
	listeners := []struct {
		network string
		addr    string
	}{
		{"udp4", cfg.Listen4},
		{"udp6", cfg.Listen6},
	}
	for _, l := range listeners {
		if l.addr == "" {
			continue
		}
		t, err := transport.NewUDP(transport.Options{
			Network: l.network,
			Addr:    l.addr,
			Codec:   codec,
			Handler: resolverService,
			Logger:  logger,
			Stats:   counters,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s transport: %w", l.network, err)
		}
		transports = append(transports, t)
	}

	return &Application{
		config:     cfg,
		transports: transports,
		counters:   counters,
	}, nil
}

// Run starts every listener and blocks until the context is cancelled.
// A listener that fails to bind is fatal; a partially listening server
// would silently lose one address family.
func (app *Application) Run(ctx context.Context) error {
	for _, t := range app.transports {
		if err := t.Start(ctx); err != nil {
			for _, started := range app.transports {
				started.Stop()
			}
			return fmt.Errorf("failed to start UDP transport: %w", err)
		}
		log.Info(map[string]any{
			"address":   t.Address(),
			"transport": "UDP",
		}, "DNS server started")
	}

	if app.config.StatsInterval > 0 {
		go app.counters.LogPeriodically(ctx, time.Duration(app.config.StatsInterval)*time.Second, log.GetLogger())
	}

	<-ctx.Done()

	log.Info(nil, "Shutdown initiated")
	for _, t := range app.transports {
		t.Stop()
	}

	s := app.counters.Snapshot()
	log.Info(map[string]any{
		"received": s.Received,
		"answered": s.Answered,
		"nxdomain": s.NXDomain,
		"refused":  s.Refused,
		"dropped":  s.Dropped,
	}, "Final query stats")

	return nil
}
