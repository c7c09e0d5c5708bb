package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"hazardplan/internal/adapter/repo/gorm/model"
	"hazardplan/internal/app/ports"
	"hazardplan/internal/domain/hazard"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanRecordRepo struct {
	db *gorm.DB
}

func NewPlanRecordRepo(db *gorm.DB) PlanRecordRepo {
	return PlanRecordRepo{db: db}
}

func (r PlanRecordRepo) Append(ctx context.Context, record ports.PlanRecord) error {
	row, err := toPlanRecordRow(record)
	if err != nil {
		return err
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r PlanRecordRepo) ListByActorID(ctx context.Context, actorID string, filter ports.RecordFilter) ([]ports.PlanRecord, error) {
	db := getDBFromCtx(ctx, r.db)
	rows := []model.PlanRecord{}
	query := db.Where(&model.PlanRecord{ActorID: actorID})
	if !filter.From.IsZero() {
		query = query.Where("planned_at >= ?", filter.From)
	}
	if !filter.Before.IsZero() {
		query = query.Where("planned_at < ?", filter.Before)
	}
	query = query.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "planned_at"}, Desc: true},
			{Column: clause.Column{Name: "id"}, Desc: true},
		},
	})
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return r.emptyListing(db, actorID, filter)
	}

	out := make([]ports.PlanRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := fromPlanRecordRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// emptyListing tells an actor without records apart from a window that
// matched none of them.
func (r PlanRecordRepo) emptyListing(db *gorm.DB, actorID string, filter ports.RecordFilter) ([]ports.PlanRecord, error) {
	if !filter.Windowed() {
		return nil, ports.ErrNotFound
	}
	var count int64
	if err := db.Model(&model.PlanRecord{}).Where(&model.PlanRecord{ActorID: actorID}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ports.ErrNotFound
	}
	return []ports.PlanRecord{}, nil
}

func toPlanRecordRow(rec ports.PlanRecord) (model.PlanRecord, error) {
	params, err := json.Marshal(rec.Params)
	if err != nil {
		return model.PlanRecord{}, fmt.Errorf("encode params: %w", err)
	}
	delta := rec.Delta
	if delta == nil {
		delta = hazard.NewLedger()
	}
	deltaJSON, err := json.Marshal(delta)
	if err != nil {
		return model.PlanRecord{}, fmt.Errorf("encode delta: %w", err)
	}
	before, err := json.Marshal(rec.Before)
	if err != nil {
		return model.PlanRecord{}, fmt.Errorf("encode before: %w", err)
	}
	after, err := json.Marshal(rec.After)
	if err != nil {
		return model.PlanRecord{}, fmt.Errorf("encode after: %w", err)
	}
	return model.PlanRecord{
		ID:          rec.ID,
		ActorID:     rec.ActorID,
		HazardType:  string(rec.HazardType),
		HazardKind:  rec.HazardKind,
		Params:      string(params),
		Survivable:  rec.Survivable,
		Strategy:    string(rec.Strategy),
		Delta:       string(deltaJSON),
		BeforeState: string(before),
		AfterState:  string(after),
		PlannedAt:   rec.PlannedAt,
	}, nil
}

func fromPlanRecordRow(row model.PlanRecord) (ports.PlanRecord, error) {
	rec := ports.PlanRecord{
		ID:         row.ID,
		ActorID:    row.ActorID,
		HazardType: ports.HazardType(row.HazardType),
		HazardKind: row.HazardKind,
		Survivable: row.Survivable,
		Strategy:   hazard.Strategy(row.Strategy),
		PlannedAt:  row.PlannedAt,
	}
	for _, f := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"params", row.Params, &rec.Params},
		{"delta", row.Delta, &rec.Delta},
		{"before_state", row.BeforeState, &rec.Before},
		{"after_state", row.AfterState, &rec.After},
	} {
		if f.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return ports.PlanRecord{}, fmt.Errorf("decode %s of plan record %s: %w", f.name, row.ID, err)
		}
	}
	return rec, nil
}
