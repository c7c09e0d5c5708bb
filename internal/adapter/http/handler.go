package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hazardplan/internal/app/evaluate"
	"hazardplan/internal/app/history"
	"hazardplan/internal/app/ports"
	"hazardplan/internal/app/roster"
	"hazardplan/internal/app/shared/planrun"
	"hazardplan/internal/app/survive"
	"hazardplan/internal/domain/hazard"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	EvaluateUC evaluate.UseCase
	SurviveUC  survive.UseCase
	RosterUC   roster.UseCase
	HistoryUC  history.UseCase
	Rules      hazard.Rules
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	plan := s.Group("/api/plan")
	plan.POST("/punctual", h.planPunctual)
	plan.POST("/continuous", h.planContinuous)

	actors := s.Group("/api/actors")
	actors.POST("", h.registerActor)
	actors.GET("/:actor_id", h.getActor)
	actors.POST("/:actor_id/survive", h.survive)
	actors.GET("/:actor_id/history", h.history)

	s.GET("/api/kinds", h.kinds)
	s.GET("/ops/kpi", h.kpi)
}

type punctualPlanRequest struct {
	Snapshot hazard.Snapshot       `json:"snapshot"`
	Kind     string                `json:"kind,omitempty"`
	Hazard   hazard.PunctualHazard `json:"hazard"`
}

type continuousPlanRequest struct {
	Snapshot hazard.Snapshot         `json:"snapshot"`
	Kind     string                  `json:"kind,omitempty"`
	Hazard   hazard.ContinuousHazard `json:"hazard"`
}

type surviveRequest struct {
	Type       ports.HazardType         `json:"type"`
	Kind       string                   `json:"kind,omitempty"`
	Punctual   *hazard.PunctualHazard   `json:"punctual,omitempty"`
	Continuous *hazard.ContinuousHazard `json:"continuous,omitempty"`
}

type kindView struct {
	Name         string `json:"name"`
	Interrupting bool   `json:"interrupting"`
}

func (h Handler) planPunctual(c context.Context, ctx *app.RequestContext) {
	var body punctualPlanRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.EvaluateUC.Execute(c, evaluate.Request{
		Snapshot: body.Snapshot,
		Hazard:   planrun.Hazard{Type: ports.HazardPunctual, Kind: body.Kind, Punctual: body.Hazard},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) planContinuous(c context.Context, ctx *app.RequestContext) {
	var body continuousPlanRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.EvaluateUC.Execute(c, evaluate.Request{
		Snapshot: body.Snapshot,
		Hazard:   planrun.Hazard{Type: ports.HazardContinuous, Kind: body.Kind, Continuous: body.Hazard},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) registerActor(c context.Context, ctx *app.RequestContext) {
	var body roster.RegisterRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.RosterUC.Register(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) getActor(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RosterUC.Get(c, roster.GetRequest{ActorID: ctx.Param("actor_id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) survive(c context.Context, ctx *app.RequestContext) {
	var body surviveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	hz := planrun.Hazard{Type: body.Type, Kind: body.Kind}
	if body.Punctual != nil {
		hz.Punctual = *body.Punctual
	}
	if body.Continuous != nil {
		hz.Continuous = *body.Continuous
	}
	resp, err := h.SurviveUC.Execute(c, survive.Request{ActorID: ctx.Param("actor_id"), Hazard: hz})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeError(ctx, err)
		return
	}
	plannedFrom, err := queryInt64(ctx, "planned_from")
	if err != nil {
		writeError(ctx, err)
		return
	}
	plannedTo, err := queryInt64(ctx, "planned_to")
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.HistoryUC.Execute(c, history.Request{
		ActorID:     ctx.Param("actor_id"),
		Limit:       limit,
		PlannedFrom: plannedFrom,
		PlannedTo:   plannedTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) kinds(_ context.Context, ctx *app.RequestContext) {
	names := h.Rules.KindNames()
	out := make([]kindView, 0, len(names))
	for _, name := range names {
		out = append(out, kindView{Name: name, Interrupting: h.Rules.Kinds[name].Interrupting})
	}
	ctx.JSON(consts.StatusOK, map[string]any{"kinds": out})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

var ErrInvalidQuery = errors.New("invalid query parameter")

func queryInt(ctx *app.RequestContext, key string) (int, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, key, raw)
	}
	return n, nil
}

func queryInt64(ctx *app.RequestContext, key string) (int64, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, key, raw)
	}
	return n, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, hazard.ErrUnknownKind):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_hazard_kind", err.Error())
	case errors.Is(err, planrun.ErrUnknownHazardType):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_hazard_type", err.Error())
	case errors.Is(err, hazard.ErrInvalidHazard):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_hazard", err.Error())
	case errors.Is(err, hazard.ErrInvalidSnapshot):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_snapshot", err.Error())
	case errors.Is(err, ErrInvalidQuery),
		errors.Is(err, survive.ErrInvalidRequest),
		errors.Is(err, roster.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
