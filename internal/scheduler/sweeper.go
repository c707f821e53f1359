package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/metrics"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

const (
	DefaultInterval  = 100 * time.Second
	DefaultBatchSize = 100
)

// ExpiredLister lista agendamentos "scheduled" que já terminaram.
type ExpiredLister interface {
	ListExpiredScheduled(ctx context.Context, now time.Time, limit int) ([]models.Appointment, error)
}

// Completer conclui um agendamento; false significa que outra escrita venceu.
type Completer interface {
	Execute(ctx context.Context, ap *models.Appointment) (bool, error)
}

type Config struct {
	Interval  time.Duration
	BatchSize int
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	return c
}

type Result struct {
	Completed int
	Skipped   int
	Failed    int
}

// Sweeper conclui agendamentos cujo horário já passou. Uma falha em um item
// é registrada e não interrompe os demais.
type Sweeper struct {
	lister    ExpiredLister
	completer Completer
	cfg       Config
	clock     timezone.Clock
	metrics   *metrics.SchedulingMetrics
	log       *zap.Logger
}

func NewSweeper(
	lister ExpiredLister,
	completer Completer,
	cfg Config,
	clock timezone.Clock,
	m *metrics.SchedulingMetrics,
	log *zap.Logger,
) *Sweeper {
	return &Sweeper{
		lister:    lister,
		completer: completer,
		cfg:       cfg.withDefaults(),
		clock:     clock,
		metrics:   m,
		log:       log,
	}
}

// Run varre uma vez na partida e depois a cada Interval, até ctx acabar.
func (s *Sweeper) Run(ctx context.Context) error {
	s.log.Info("completion sweeper started",
		zap.Duration("interval", s.cfg.Interval),
		zap.Int("batch_size", s.cfg.BatchSize),
	)

	s.tick(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("completion sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	res, err := s.SweepOnce(ctx)
	if err != nil {
		s.log.Error("sweep failed", zap.Error(err))
	}
	if res.Completed > 0 || res.Failed > 0 {
		s.log.Info("sweep finished",
			zap.Int("completed", res.Completed),
			zap.Int("skipped", res.Skipped),
			zap.Int("failed", res.Failed),
		)
	}
}

// SweepOnce processa lotes até esvaziar a fila ou um lote não avançar.
func (s *Sweeper) SweepOnce(ctx context.Context) (Result, error) {
	var total Result

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		batch, err := s.lister.ListExpiredScheduled(ctx, s.clock(), s.cfg.BatchSize)
		if err != nil {
			return total, fmt.Errorf("list expired appointments: %w", err)
		}

		res := s.processBatch(ctx, batch)
		total.Completed += res.Completed
		total.Skipped += res.Skipped
		total.Failed += res.Failed

		s.metrics.ObserveSweep("completed", res.Completed)
		s.metrics.ObserveSweep("skipped", res.Skipped)
		s.metrics.ObserveSweep("failed", res.Failed)

		if len(batch) < s.cfg.BatchSize || res.Completed+res.Skipped == 0 {
			return total, nil
		}
	}
}

func (s *Sweeper) processBatch(ctx context.Context, batch []models.Appointment) Result {
	var res Result

	for i := range batch {
		ap := &batch[i]

		ok, err := s.completer.Execute(ctx, ap)
		if err != nil {
			s.log.Warn("sweep: failed to complete appointment",
				zap.String("appointment_id", ap.ID.String()),
				zap.Error(err),
			)
			res.Failed++
			continue
		}
		if !ok {
			res.Skipped++
			continue
		}
		res.Completed++
	}

	return res
}
