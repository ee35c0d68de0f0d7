// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/gold-appraisal/internal/domain"
	"github.com/jsamuelsen11/gold-appraisal/internal/domain/gold"
	"github.com/jsamuelsen11/gold-appraisal/internal/platform/config"
	"github.com/jsamuelsen11/gold-appraisal/internal/platform/telemetry"
	"github.com/jsamuelsen11/gold-appraisal/internal/ports"
)

// Compile-time check that AppraisalService implements ports.Appraiser.
var _ ports.Appraiser = (*AppraisalService)(nil)

// AppraisalService implements ports.Appraiser by applying the configured
// per-gram rate and markup policy to the domain's price and purity
// calculations. It logs and records metrics but contains no pricing logic.
type AppraisalService struct {
	defaults config.AppraisalConfig
	metrics  *telemetry.Metrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewAppraisalService creates an AppraisalService. A nil logger is replaced
// with one that discards output.
func NewAppraisalService(defaults config.AppraisalConfig, metrics *telemetry.Metrics, logger *slog.Logger) *AppraisalService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AppraisalService{
		defaults: defaults,
		metrics:  metrics,
		tracer:   otel.Tracer(telemetry.InstrumentationName),
		logger:   logger,
	}
}

// Appraise prices the piece and reports its purity.
func (s *AppraisalService) Appraise(ctx context.Context, req ports.AppraisalRequest) (*ports.Appraisal, error) {
	if req.Piece == nil {
		err := &domain.ValidationError{Fields: map[string]string{"piece": "is required"}}
		s.logger.ErrorContext(ctx, "failed to appraise piece",
			slog.String("operation", "Appraise"),
			slog.Any("error", err),
		)
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "Appraise",
		trace.WithAttributes(attribute.String("gold.piece", req.Piece.Name())))
	defer span.End()

	result := &ports.Appraisal{
		Piece:  req.Piece.Name(),
		Price:  req.Piece.Price(s.priceOptions(req)...),
		Forced: req.ForcedPurity != nil,
	}

	purity, err := req.Piece.Purity()
	switch {
	case err == nil:
		result.Purity = purity
		result.PurityDefined = true
	case errors.Is(err, domain.ErrUndefinedPurity):
		s.logger.DebugContext(ctx, "purity undefined",
			slog.String("piece", req.Piece.Name()),
		)
	default:
		return nil, fmt.Errorf("computing purity of %s: %w", req.Piece.Name(), err)
	}

	s.record(ctx, result)

	attrs := []any{
		slog.String("piece", result.Piece),
		slog.Int("gold_mass", req.Piece.GoldMass()),
		slog.Int("total_mass", req.Piece.TotalMass()),
		slog.Int("price", result.Price),
		slog.Bool("forced", result.Forced),
	}
	if req.Owner != "" {
		attrs = append(attrs, slog.String("owner", req.Owner))
	}
	s.logger.DebugContext(ctx, "appraised piece", attrs...)

	return result, nil
}

// priceOptions layers the request overrides on top of the configured defaults.
func (s *AppraisalService) priceOptions(req ports.AppraisalRequest) []gold.PriceOption {
	perGram := s.defaults.PerGram
	if req.PerGram != nil {
		perGram = *req.PerGram
	}
	includeMarkup := s.defaults.IncludeMarkup
	if req.IncludeMarkup != nil {
		includeMarkup = *req.IncludeMarkup
	}

	opts := []gold.PriceOption{
		gold.WithPerGram(perGram),
		gold.WithMarkupIncluded(includeMarkup),
	}
	if req.ForcedPurity != nil {
		opts = append(opts, gold.WithForcedPurity(*req.ForcedPurity))
	}
	return opts
}

func (s *AppraisalService) record(ctx context.Context, a *ports.Appraisal) {
	if s.metrics == nil {
		return
	}

	priced := "measured"
	if a.Forced {
		priced = "forced"
	}
	attrs := metric.WithAttributes(
		telemetry.AttrPriced.String(priced),
		telemetry.AttrPurity.Bool(a.PurityDefined),
	)

	s.metrics.AppraisalTotal.Add(ctx, 1, attrs)
	s.metrics.AppraisedPrice.Record(ctx, int64(a.Price), attrs)
}
