package internal

import (
	"context"
	"log"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/rm-hull/medevents-gateway/internal/gateway"
	"github.com/rm-hull/medevents-gateway/internal/models"
)

// ResourceSource is the subset of the gateway the syncer pulls from.
type ResourceSource interface {
	GetEvents(ctx context.Context) gateway.Result[[]models.Document]
	GetHospitals(ctx context.Context) gateway.Result[[]models.Document]
}

type Syncer struct {
	source ResourceSource
	repo   SnapshotRepository
	now    func() time.Time
}

func NewSyncer(source ResourceSource, repo SnapshotRepository) *Syncer {
	return &Syncer{
		source: source,
		repo:   repo,
		now:    time.Now,
	}
}

func (s *Syncer) SyncEvents(ctx context.Context) (int, error) {
	return s.sync(RESOURCE_EVENTS, s.source.GetEvents(ctx))
}

func (s *Syncer) SyncHospitals(ctx context.Context) (int, error) {
	return s.sync(RESOURCE_HOSPITALS, s.source.GetHospitals(ctx))
}

// SyncAll syncs every resource, continuing past individual failures.
func (s *Syncer) SyncAll(ctx context.Context) error {
	var combined error
	for resource, syncFn := range map[string]func(context.Context) (int, error){
		RESOURCE_EVENTS:    s.SyncEvents,
		RESOURCE_HOSPITALS: s.SyncHospitals,
	} {
		count, err := syncFn(ctx)
		if err != nil {
			combined = errors.CombineErrors(combined, err)
			continue
		}
		log.Printf("synced %d %s", count, resource)
	}
	return combined
}

func (s *Syncer) sync(resource string, result gateway.Result[[]models.Document]) (int, error) {
	if err := result.Err(); err != nil {
		return 0, errors.Wrapf(err, "failed to fetch %s", resource)
	}

	count, err := s.repo.Upsert(resource, result.Data, s.now())
	if err != nil {
		return 0, errors.Wrapf(err, "failed to store %s", resource)
	}
	return count, nil
}
