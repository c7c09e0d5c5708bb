package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"hazardplan/db/migrations"
	httpadapter "hazardplan/internal/adapter/http"
	metricsinmem "hazardplan/internal/adapter/metrics/inmemory"
	gormrepo "hazardplan/internal/adapter/repo/gorm"
	"hazardplan/internal/adapter/repo/memory"
	"hazardplan/internal/app/evaluate"
	"hazardplan/internal/app/history"
	"hazardplan/internal/app/ports"
	"hazardplan/internal/app/roster"
	"hazardplan/internal/app/survive"
	"hazardplan/internal/config"
	"hazardplan/internal/domain/actor"
	"hazardplan/internal/domain/hazard"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type repos struct {
	states  ports.ActorStateRepository
	records ports.PlanRecordRepository
	tx      ports.TxManager
	backend string
}

func main() {
	cfg, err := config.Load(strings.TrimSpace(os.Getenv("HAZARDPLAN_CONFIG")))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := newLogger(os.Stdout, cfg.Log)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	slog.SetDefault(logger)

	planner, err := hazard.NewPlanner(cfg.Planner, cfg.Rules)
	if err != nil {
		log.Fatalf("build planner: %v", err)
	}
	r := mustBuildRepos(cfg.Server, logger)
	if err := seedDemoActor(context.Background(), r.states, cfg.Server.DemoActorID, time.Now()); err != nil {
		log.Fatalf("seed demo actor: %v (did you run SQL migrations?)", err)
	}
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		EvaluateUC: evaluate.UseCase{Planner: planner, Metrics: kpiRecorder},
		SurviveUC: survive.UseCase{
			TxManager: r.tx,
			StateRepo: r.states,
			Records:   r.records,
			Planner:   planner,
			Metrics:   kpiRecorder,
			Logger:    logger,
			Now:       time.Now,
		},
		RosterUC:  roster.UseCase{StateRepo: r.states, Now: time.Now},
		HistoryUC: history.UseCase{Records: r.records},
		Rules:     planner.Rules(),
		KPI:       kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	s.Use(httpadapter.CORSMiddleware(cfg.Server.CORSOrigin), httpadapter.AccessLogMiddleware(logger))
	h.RegisterRoutes(s)

	logger.Info("hazardplan server listening",
		slog.String("addr", cfg.Server.Addr),
		slog.String("backend", r.backend),
		slog.String("demo_actor", cfg.Server.DemoActorID),
	)
	s.Spin()
}

func mustBuildRepos(cfg config.Server, logger *slog.Logger) repos {
	if cfg.DBDSN == "" {
		store := memory.NewStore()
		return repos{
			states:  memory.NewActorStateRepo(store),
			records: memory.NewPlanRecordRepo(store),
			tx:      memory.NewTxManager(store),
			backend: "memory",
		}
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if cfg.AutoMigrate {
		applied, err := gormrepo.ApplyMigrations(context.Background(), db, migrations.FS)
		if err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		if len(applied) > 0 {
			logger.Info("migrations applied", slog.Any("versions", applied))
		}
	}
	return repos{
		states:  gormrepo.NewActorStateRepo(db),
		records: gormrepo.NewPlanRecordRepo(db),
		tx:      gormrepo.NewTxManager(db),
		backend: "postgres",
	}
}

// seedDemoActor registers a full-tank actor under id unless it already exists.
// An empty id disables seeding.
func seedDemoActor(ctx context.Context, states ports.ActorStateRepository, id string, now time.Time) error {
	if id == "" {
		return nil
	}
	_, err := states.GetByActorID(ctx, id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	seed := actor.State{
		ActorID:   id,
		Resources: hazard.Snapshot{Energy: 299, MaxEnergy: 299, Reserve: 200, MaxReserve: 200},
		Version:   1,
		UpdatedAt: now,
	}
	return states.SaveWithVersion(ctx, seed, 0)
}

func newLogger(w io.Writer, cfg config.Log) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}
