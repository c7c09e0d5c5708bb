package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"hazardplan/internal/app/ports"
	"hazardplan/internal/domain/hazard"
)

var ErrInvalidRequest = errors.New("invalid history request")

const (
	defaultLimit = 50
	maxLimit     = 500
)

type UseCase struct {
	Records ports.PlanRecordRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.ActorID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.PlannedFrom > 0 && req.PlannedTo > 0 && req.PlannedFrom > req.PlannedTo {
		return Response{}, ErrInvalidRequest
	}
	records, err := u.Records.ListByActorID(ctx, req.ActorID, recordFilter(req))
	if err != nil {
		return Response{}, err
	}
	return Response{Records: records, Latest: latest(records)}, nil
}

func clampLimit(limit int) int {
	if limit == 0 {
		return defaultLimit
	}
	return min(limit, maxLimit)
}

// recordFilter turns the request's inclusive unix-second window into the
// repository's half-open one.
func recordFilter(req Request) ports.RecordFilter {
	filter := ports.RecordFilter{Limit: clampLimit(req.Limit)}
	if req.PlannedFrom > 0 {
		filter.From = time.Unix(req.PlannedFrom, 0)
	}
	if req.PlannedTo > 0 {
		filter.Before = time.Unix(req.PlannedTo+1, 0)
	}
	return filter
}

// latest is the resources left by the newest record. Records arrive newest
// first.
func latest(records []ports.PlanRecord) *hazard.Snapshot {
	if len(records) == 0 {
		return nil
	}
	after := records[0].After
	return &after
}
