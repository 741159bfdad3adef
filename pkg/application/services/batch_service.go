// Package services wires the normalization, allocation, refill and
// sales-metrics steps into a single batch run.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nordicwms/allokera/pkg/allocation"
	"github.com/nordicwms/allokera/pkg/domain/entities"
	"github.com/nordicwms/allokera/pkg/refill"
	"github.com/nordicwms/allokera/pkg/sales"
	"github.com/nordicwms/allokera/pkg/schema"
)

// BatchService runs one full pass: orders and buffer in, allocation and
// refill reports out.
type BatchService struct {
	engine *allocation.Engine
	calc   *refill.Calculator
	log    *zap.Logger
}

// NewBatchService creates the orchestrating service. A nil logger
// disables logging.
func NewBatchService(engine *allocation.Engine, calc *refill.Calculator, log *zap.Logger) *BatchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BatchService{engine: engine, calc: calc, log: log}
}

// RunInput carries the raw tables of one batch. Orders and Buffer are
// required; the rest enrich the output when present.
type RunInput struct {
	Orders  schema.Table
	Buffer  schema.Table
	Stock   *schema.Table
	Backlog *schema.Table
	PickLog *schema.Table
	// Today anchors days-since-last-pick; zero means time.Now
	Today time.Time
}

// RunOutput collects everything one batch produced
type RunOutput struct {
	Orders     *schema.Orders
	Allocation *allocation.Result
	Refill     *entities.RefillReport
	Metrics    []entities.ArticleMetrics
}

// Run executes the batch. Unresolvable required columns in the order or
// buffer tables fail the run; problems in the optional tables are logged
// and the affected enrichment degrades to a no-op.
func (s *BatchService) Run(ctx context.Context, in RunInput) (*RunOutput, error) {
	orders, err := schema.NormalizeOrders(in.Orders)
	if err != nil {
		return nil, fmt.Errorf("normalizing orders: %w", err)
	}
	buffer, err := schema.NormalizeBuffer(in.Buffer)
	if err != nil {
		return nil, fmt.Errorf("normalizing buffer: %w", err)
	}
	stock := s.loadStock(in.Stock)
	backlog := s.loadBacklog(in.Backlog)
	events := s.loadPickLog(in.PickLog)

	s.log.Info("batch starting",
		zap.Int("order_lines", len(orders.Lines)),
		zap.Int("buffer_units", len(buffer.Units)),
		zap.Int("stock_articles", len(stock)),
	)

	result, err := s.engine.Allocate(ctx, orders, buffer)
	if err != nil {
		return nil, fmt.Errorf("allocating: %w", err)
	}
	result.Lines = s.engine.Reclassify(result.Lines, stock)

	report, err := s.calc.Calculate(ctx, refill.Input{
		Allocated: result.Lines,
		Buffer:    buffer,
		Stock:     stock,
		Backlog:   backlog,
	})
	if err != nil {
		return nil, fmt.Errorf("computing refill: %w", err)
	}

	var metrics []entities.ArticleMetrics
	if len(events) > 0 {
		today := in.Today
		if today.IsZero() {
			today = time.Now().UTC()
		}
		metrics = sales.Compute(events, stock, buffer.Units, today)
		refill.Annotate(report, metrics)
	}

	return &RunOutput{
		Orders:     orders,
		Allocation: result,
		Refill:     report,
		Metrics:    metrics,
	}, nil
}

func (s *BatchService) loadStock(t *schema.Table) []entities.PickFaceStock {
	if t == nil {
		return nil
	}
	stock, err := schema.NormalizePickFaceStock(*t)
	if err != nil {
		s.log.Warn("pick-face stock table unusable, skipping enrichment", zap.Error(err))
		return nil
	}
	return stock
}

func (s *BatchService) loadBacklog(t *schema.Table) map[string]decimal.Decimal {
	if t == nil {
		return nil
	}
	backlog, err := schema.NormalizeBacklog(*t)
	if err != nil {
		s.log.Warn("backlog table unusable, skipping enrichment", zap.Error(err))
		return nil
	}
	return backlog
}

func (s *BatchService) loadPickLog(t *schema.Table) []entities.PickEvent {
	if t == nil {
		return nil
	}
	events, err := schema.NormalizePickLog(*t)
	if err != nil {
		s.log.Warn("pick log unusable, skipping sales metrics", zap.Error(err))
		return nil
	}
	return events
}
