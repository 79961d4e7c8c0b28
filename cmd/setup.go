package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/groom-scheduler/internal/booking"
	"github.com/example/groom-scheduler/internal/config"
	"github.com/example/groom-scheduler/internal/db"
	"github.com/example/groom-scheduler/internal/ledger"
	"github.com/example/groom-scheduler/internal/migrate"
	"github.com/example/groom-scheduler/internal/records"
	"github.com/example/groom-scheduler/internal/salon"
)

func newLogger(devMode bool) (*zap.Logger, error) {
	if devMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// env groups everything a command needs to serve or commit bookings. The
// ledger is seeded from the booking log when a database is configured;
// otherwise the scheduler starts empty and keeps records in memory only.
type env struct {
	cfg     config.Config
	log     *zap.Logger
	db      *db.DB
	repo    *records.Repo
	service *booking.Service
}

func (e *env) close() {
	if e.db != nil {
		e.db.Close()
	}
	_ = e.log.Sync()
}

func setup(ctx context.Context, migrateUp bool) (*env, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.DevMode)
	if err != nil {
		return nil, err
	}

	cal := salon.NewCalendar()
	led := ledger.New(salon.CapacityPerSlot)

	e := &env{cfg: cfg, log: log}
	var store booking.RecordStore = records.Noop{}

	if cfg.DatabaseURL != "" {
		d, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := d.Ping(ctx); err != nil {
			d.Close()
			return nil, fmt.Errorf("db ping: %w", err)
		}
		if migrateUp {
			if err := migrate.Up(ctx, d); err != nil {
				d.Close()
				return nil, err
			}
		}
		repo := records.NewRepo(d)
		if err := repo.SeedLedger(ctx, led, todayUTC()); err != nil {
			d.Close()
			return nil, fmt.Errorf("seed ledger: %w", err)
		}
		e.db = d
		e.repo = repo
		store = repo
	}

	e.service = booking.NewService(cal, led, store, log)
	return e, nil
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
