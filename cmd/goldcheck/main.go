// Package main is the goldcheck entry point. It wires dependencies using
// samber/do v2, runs the embedded gold piece examples, prints the report and
// exits non-zero if any example fails.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jsamuelsen11/gold-appraisal/internal/app"
	"github.com/jsamuelsen11/gold-appraisal/internal/app/selftest"
	"github.com/jsamuelsen11/gold-appraisal/internal/platform/config"
	"github.com/jsamuelsen11/gold-appraisal/internal/platform/logging"
	"github.com/jsamuelsen11/gold-appraisal/internal/platform/telemetry"
	"github.com/jsamuelsen11/gold-appraisal/internal/ports"
)

const otelShutdownTimeout = 5 * time.Second

// errExamplesFailed signals a completed run with failing cases.
var errExamplesFailed = errors.New("self-test failed")

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, ci, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		otelCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := otel.Shutdown(otelCtx); err != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", err))
		}
	}()

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector)

	runner, err := do.Invoke[*selftest.Runner](injector)
	if err != nil {
		return fmt.Errorf("resolving runner: %w", err)
	}
	appraiser := do.MustInvoke[ports.Appraiser](injector)

	report := runner.Run(ctx, selftest.Examples(appraiser))
	if err := report.Write(out, cfg.SelfTest.Format); err != nil {
		return err
	}

	if !report.OK() {
		return fmt.Errorf("%w: %d of %d cases", errExamplesFailed, report.Failed, len(report.Results))
	}
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. The providers are
// nil when telemetry is disabled; metrics are then backed by a noop meter.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		metrics, err := telemetry.NewMetrics(noop.NewMeterProvider())
		if err != nil {
			return nil, fmt.Errorf("creating noop metrics: %w", err)
		}
		return &otelProviders{metrics: metrics}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (ports.Appraiser, error) {
		cfg := do.MustInvoke[*config.Config](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return app.NewAppraisalService(cfg.Appraisal, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*selftest.Runner, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return selftest.NewRunner(metrics, logger), nil
	})
}
