package planrun

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hazardplan/internal/app/ports"
	"hazardplan/internal/domain/hazard"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrUnknownHazardType = errors.New("unknown hazard type")

var tracer = otel.Tracer("hazardplan/planrun")

// Hazard is a hazard as callers describe it: a type, an optional kind name
// and the parameters for that type. Only the parameters matching Type are
// read.
type Hazard struct {
	Type       ports.HazardType        `json:"type"`
	Kind       string                  `json:"kind,omitempty"`
	Punctual   hazard.PunctualHazard   `json:"punctual"`
	Continuous hazard.ContinuousHazard `json:"continuous"`
}

// Params flattens the parameters that were used, for plan records.
func (h Hazard) Params() map[string]any {
	switch h.Type {
	case ports.HazardPunctual:
		return map[string]any{
			"damage_per_hit":           h.Punctual.DamagePerHit,
			"hits":                     h.Punctual.Hits,
			"can_act_before_first_hit": h.Punctual.CanActBeforeFirstHit,
		}
	case ports.HazardContinuous:
		return map[string]any{
			"damage_per_frame": h.Continuous.DamagePerFrame,
			"total_frames":     h.Continuous.TotalFrames,
			"excess_frames":    h.Continuous.ExcessFrames,
			"energy_floor":     h.Continuous.EnergyFloor,
			"interrupting":     h.Continuous.Interrupting,
			"can_act_before":   h.Continuous.CanActBefore,
		}
	default:
		return map[string]any{}
	}
}

// IsInvalidInput reports whether err came from a malformed request rather
// than from storage or transport.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrUnknownHazardType) ||
		errors.Is(err, hazard.ErrUnknownKind) ||
		errors.Is(err, hazard.ErrInvalidHazard) ||
		errors.Is(err, hazard.ErrInvalidSnapshot)
}

// Run resolves the hazard kind and plans h against snapshot.
func Run(ctx context.Context, planner hazard.Planner, snapshot hazard.Snapshot, h Hazard) (hazard.Plan, error) {
	_, span := tracer.Start(ctx, "hazard.plan")
	defer span.End()
	span.SetAttributes(
		attribute.String("hazard.type", string(h.Type)),
		attribute.String("hazard.kind", h.Kind),
		attribute.Int("snapshot.energy", snapshot.Energy),
		attribute.Int("snapshot.reserve", snapshot.Reserve),
	)

	plan, err := run(planner, snapshot, h)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return hazard.Plan{}, err
	}
	span.SetAttributes(
		attribute.Bool("plan.survivable", plan.Survivable),
		attribute.String("plan.strategy", string(plan.Strategy)),
	)
	return plan, nil
}

func run(planner hazard.Planner, snapshot hazard.Snapshot, h Hazard) (hazard.Plan, error) {
	var kind *hazard.Kind
	if strings.TrimSpace(h.Kind) != "" {
		k, err := planner.Rules().Kind(h.Kind)
		if err != nil {
			return hazard.Plan{}, err
		}
		kind = &k
	}

	switch h.Type {
	case ports.HazardPunctual:
		return planner.PlanPunctual(snapshot, h.Punctual)
	case ports.HazardContinuous:
		c := h.Continuous
		if kind != nil {
			c.Interrupting = kind.Interrupting
		}
		return planner.PlanContinuous(snapshot, c)
	default:
		return hazard.Plan{}, fmt.Errorf("%w %q", ErrUnknownHazardType, h.Type)
	}
}
