package gormrepo

import (
	"context"
	"errors"

	"hazardplan/internal/adapter/repo/gorm/model"
	"hazardplan/internal/app/ports"
	"hazardplan/internal/domain/actor"
	"hazardplan/internal/domain/hazard"

	"gorm.io/gorm"
)

type ActorStateRepo struct {
	db *gorm.DB
}

func NewActorStateRepo(db *gorm.DB) ActorStateRepo {
	return ActorStateRepo{db: db}
}

func (r ActorStateRepo) GetByActorID(ctx context.Context, actorID string) (actor.State, error) {
	var m model.ActorState
	if err := getDBFromCtx(ctx, r.db).Where("actor_id = ?", actorID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return actor.State{}, ports.ErrNotFound
		}
		return actor.State{}, err
	}
	return actor.State{
		ActorID: m.ActorID,
		Resources: hazard.Snapshot{
			Energy:     int(m.Energy),
			MaxEnergy:  int(m.MaxEnergy),
			Reserve:    int(m.Reserve),
			MaxReserve: int(m.MaxReserve),
		},
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r ActorStateRepo) SaveWithVersion(ctx context.Context, state actor.State, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.ActorState{
			ActorID:    state.ActorID,
			Energy:     int32(state.Resources.Energy),
			MaxEnergy:  int32(state.Resources.MaxEnergy),
			Reserve:    int32(state.Resources.Reserve),
			MaxReserve: int32(state.Resources.MaxReserve),
			Version:    state.Version,
			UpdatedAt:  state.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"energy":      int32(state.Resources.Energy),
		"max_energy":  int32(state.Resources.MaxEnergy),
		"reserve":     int32(state.Resources.Reserve),
		"max_reserve": int32(state.Resources.MaxReserve),
		"version":     state.Version,
		"updated_at":  state.UpdatedAt,
	}

	res := db.Model(&model.ActorState{}).
		Where("actor_id = ? AND version = ?", state.ActorID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
