package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"logistics-route-service/internal/config"
	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/services"
)

// OptimizeDailyRoutes plans one route per warehouse that has routable
// orders for the date. A failure for one warehouse is logged and the pass
// moves on; ErrNoWork is a skip, not a failure. Returns the number of
// routes committed.
func OptimizeDailyRoutes(ctx context.Context, opt *services.Optimizer, date time.Time, vehicleType domain.VehicleType) (int, error) {
	warehouses, err := opt.Warehouses.ListWithPendingOrders(ctx, date)
	if err != nil {
		return 0, err
	}

	optimized := 0
	for _, w := range warehouses {
		summary, err := opt.OptimizeRoute(ctx, services.OptimizeRequest{
			WarehouseID: w.ID,
			Date:        date,
			VehicleType: vehicleType,
		})
		switch {
		case errors.Is(err, domain.ErrNoWork):
			log.Printf("op=optimize_daily warehouse=%s skipped: no eligible orders", w.Code)
		case err != nil:
			log.Printf("op=optimize_daily warehouse=%s err=%v", w.Code, err)
		default:
			log.Printf("op=optimize_daily warehouse=%s route=%s", w.Code, summary.RouteID)
			optimized++
		}
	}

	log.Printf("op=optimize_daily date=%s optimized=%d of %d warehouse(s)",
		date.Format("2006-01-02"), optimized, len(warehouses))

	return optimized, nil
}

// Scheduler owns the periodic passes: the morning optimization run and the
// recurring delivery reconciliation.
type Scheduler struct {
	cron      *cron.Cron
	optimizer *services.Optimizer
	tracker   *services.Tracker
	cfg       config.Config
}

func NewScheduler(opt *services.Optimizer, tracker *services.Tracker, cfg config.Config) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		optimizer: opt,
		tracker:   tracker,
		cfg:       cfg,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.OptimizeSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		today := time.Now()
		if _, err := OptimizeDailyRoutes(ctx, s.optimizer, today, domain.VehicleType(s.cfg.VehicleType)); err != nil {
			log.Printf("op=optimize_daily err=%v", err)
		}
	})
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(s.cfg.ReconcileSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := s.tracker.ReconcileDeliveries(ctx, time.Now()); err != nil {
			log.Printf("op=reconcile err=%v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("scheduler started optimize=%q reconcile=%q", s.cfg.OptimizeSpec, s.cfg.ReconcileSpec)
	return nil
}

// Stop halts the cron loop; running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
