package evaluate

import (
	"context"

	"hazardplan/internal/app/ports"
	"hazardplan/internal/app/shared/planrun"
	"hazardplan/internal/domain/hazard"
)

// UseCase plans a hazard against a snapshot the caller supplies. Nothing is
// stored.
type UseCase struct {
	Planner hazard.Planner
	Metrics ports.PlanMetrics
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	plan, err := planrun.Run(ctx, u.Planner, req.Snapshot, req.Hazard)
	if err != nil {
		if u.Metrics != nil && planrun.IsInvalidInput(err) {
			u.Metrics.RecordInvalid()
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordPlan(plan)
	}

	resp := Response{Plan: plan}
	if plan.Survivable {
		after := req.Snapshot.Apply(plan.Delta)
		resp.After = &after
	}
	return resp, nil
}
