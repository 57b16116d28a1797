package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/config"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/control"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/metrics"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/monitor"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/recorder"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/stream"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/version"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s %s\n", config.AppName, version.Info())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		// Help was shown
		return
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatalf("%s: %v", config.AppName, err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	aggregator := monitor.NewAggregator(nil, monitor.DefaultConfig())
	aggregator.Start(ctx)
	defer aggregator.Stop()

	publishers := []monitor.Publisher{aggregator}
	if cfg.MetricsAddr != "" {
		metrics.Init(logger)
		publishers = append(publishers, metrics.NewPublisher())
		srv := serveMetrics(cfg.MetricsAddr, logger)
		defer shutdownServer(srv, logger)
	}
	publisher := monitor.NewMultiPublisher(publishers...)

	client := stream.NewClient(stream.Options{
		URL: cfg.TelemetryWSURL,
		Dialer: &stream.WebsocketDialer{
			ReadTimeout:  time.Duration(cfg.Stream.ReadTimeoutSeconds) * time.Second,
			PingInterval: time.Duration(cfg.Stream.PingIntervalSeconds) * time.Second,
		},
		MaxAttempts: cfg.Reconnect.MaxAttempts,
		BaseDelay:   cfg.Reconnect.BaseDelay(),
		CapFactor:   cfg.Reconnect.CapFactor,
	}, logger, publisher.Publish)
	defer client.Disconnect()

	if cfg.Record.Enabled() {
		rec, err := openRecorder(cfg.Record, logger)
		if err != nil {
			return err
		}
		rec.Start(ctx)
		defer func() {
			if err := rec.Stop(); err != nil {
				logger.Printf("recorder: close failed: %v", err)
			}
			logger.Printf("recorder: wrote %d records, dropped %d, failed %d", rec.Written(), rec.Dropped(), rec.Failed())
		}()
		unsubscribe := client.Subscribe(rec.Subscription())
		defer unsubscribe()
	}

	cli := NewCLI(aggregator, cfg, logger)
	sub := cli.Subscription()
	if cfg.VehicleID != "" {
		onConnect := sub.OnConnect
		sub.OnConnect = func() {
			onConnect()
			if err := client.SubscribeVehicle(cfg.VehicleID); err != nil {
				logger.Printf("subscribe to vehicle %s failed: %v", cfg.VehicleID, err)
			}
		}
		go logMissionStatus(ctx, cfg, logger)
	}
	unsubscribe := client.Subscribe(sub)
	defer unsubscribe()

	return cli.Run(ctx)
}

func openRecorder(cfg config.RecordConfig, logger *log.Logger) (*recorder.Recorder, error) {
	var sinks []recorder.Sink
	if cfg.DBPath != "" {
		store, err := recorder.OpenSqliteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open record database: %w", err)
		}
		sinks = append(sinks, store)
		logger.Printf("recorder: writing to %s", cfg.DBPath)
	}
	if cfg.JSONLPath != "" {
		w, err := recorder.OpenJSONLFile(cfg.JSONLPath)
		if err != nil {
			for _, s := range sinks {
				_ = s.Close()
			}
			return nil, fmt.Errorf("open record file: %w", err)
		}
		sinks = append(sinks, w)
		logger.Printf("recorder: writing to %s", cfg.JSONLPath)
	}
	return recorder.New(logger, recorder.DefaultBufferSize, sinks...), nil
}

func serveMetrics(addr string, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Printf("metrics: listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("metrics: listener failed: %v", err)
		}
	}()
	return srv
}

func shutdownServer(srv *http.Server, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("metrics: shutdown: %v", err)
	}
}

// logMissionStatus reports the vehicle's mission once at startup. The REST API
// is optional, so failures are only logged.
func logMissionStatus(ctx context.Context, cfg *config.Config, logger *log.Logger) {
	api, err := control.NewClient(cfg.APIBaseURL)
	if err != nil {
		logger.Printf("mission status: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	status, err := api.MissionStatus(ctx, cfg.VehicleID)
	if err != nil {
		logger.Printf("mission status for %s unavailable: %v", cfg.VehicleID, err)
		return
	}
	logger.Printf("mission status for %s: %s, waypoint %d/%d",
		cfg.VehicleID, status.State, status.CurrentWaypoint, status.TotalWaypoints)
}
