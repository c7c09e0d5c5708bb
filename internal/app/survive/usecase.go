package survive

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"hazardplan/internal/app/ports"
	"hazardplan/internal/app/shared/planrun"
	"hazardplan/internal/domain/hazard"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid survive request")

// UseCase plans a hazard against an actor's stored resources and applies the
// delta when the hazard is survivable. A record is kept either way.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.ActorStateRepository
	Records   ports.PlanRecordRepository
	Planner   hazard.Planner
	Metrics   ports.PlanMetrics
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	actorID := strings.TrimSpace(req.ActorID)
	if actorID == "" {
		return Response{}, ErrInvalidRequest
	}
	now := u.now()

	var resp Response
	err := u.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		state, err := u.StateRepo.GetByActorID(ctx, actorID)
		if err != nil {
			return err
		}
		plan, err := planrun.Run(ctx, u.Planner, state.Resources, req.Hazard)
		if err != nil {
			return err
		}

		next := state
		if plan.Survivable {
			next, err = state.Apply(plan.Delta, now)
			if err != nil {
				return err
			}
			if err := u.StateRepo.SaveWithVersion(ctx, next, state.Version); err != nil {
				return err
			}
		}

		record := ports.PlanRecord{
			ID:         u.newID(),
			ActorID:    actorID,
			HazardType: req.Hazard.Type,
			HazardKind: req.Hazard.Kind,
			Params:     req.Hazard.Params(),
			Survivable: plan.Survivable,
			Strategy:   plan.Strategy,
			Delta:      plan.Delta,
			Before:     state.Resources,
			After:      next.Resources,
			PlannedAt:  now,
		}
		if err := u.Records.Append(ctx, record); err != nil {
			return err
		}
		resp = Response{Plan: plan, State: next, RecordID: record.ID}
		return nil
	})
	if err != nil {
		u.recordError(err)
		return Response{}, err
	}

	if u.Metrics != nil {
		u.Metrics.RecordPlan(resp.Plan)
	}
	u.logger().InfoContext(ctx, "hazard planned",
		slog.String("actor_id", actorID),
		slog.String("hazard_type", string(req.Hazard.Type)),
		slog.Bool("survivable", resp.Plan.Survivable),
		slog.String("strategy", string(resp.Plan.Strategy)),
		slog.Int64("version", resp.State.Version),
	)
	return resp, nil
}

func (u UseCase) recordError(err error) {
	if u.Metrics == nil {
		return
	}
	switch {
	case errors.Is(err, ports.ErrConflict):
		u.Metrics.RecordConflict()
	case planrun.IsInvalidInput(err):
		u.Metrics.RecordInvalid()
	}
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.NewString()
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.Default()
}
