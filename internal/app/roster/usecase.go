package roster

import (
	"context"
	"errors"
	"strings"
	"time"

	"hazardplan/internal/app/ports"
	"hazardplan/internal/domain/actor"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid roster request")

// UseCase registers actors with a starting resource pool and reads them back.
type UseCase struct {
	StateRepo ports.ActorStateRepository
	Now       func() time.Time
	NewID     func() string
}

// Register creates the actor at version 1. An existing actor is a conflict.
func (u UseCase) Register(ctx context.Context, req RegisterRequest) (Response, error) {
	if err := req.Resources.Validate(); err != nil {
		return Response{}, errors.Join(ErrInvalidRequest, err)
	}
	actorID := strings.TrimSpace(req.ActorID)
	if actorID == "" {
		actorID = u.newID()
	}

	state := actor.State{
		ActorID:   actorID,
		Resources: req.Resources,
		Version:   1,
		UpdatedAt: u.now(),
	}
	if err := u.StateRepo.SaveWithVersion(ctx, state, 0); err != nil {
		return Response{}, err
	}
	return Response{State: state}, nil
}

func (u UseCase) Get(ctx context.Context, req GetRequest) (Response, error) {
	if strings.TrimSpace(req.ActorID) == "" {
		return Response{}, ErrInvalidRequest
	}
	state, err := u.StateRepo.GetByActorID(ctx, req.ActorID)
	if err != nil {
		return Response{}, err
	}
	return Response{State: state}, nil
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
