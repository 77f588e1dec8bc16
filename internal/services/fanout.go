package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/models"
)

// FanoutResult reports what a reconciliation changed.
type FanoutResult struct {
	Assigned int
	Removed  int
}

// Fanout materializes a link's audience as student_link rows and keeps them
// consistent when the scope changes. Reconciliation is diff-based: the desired
// set comes from the resolver, the current set from the store, and only the
// difference is written. The unique (link_id, student_id) index absorbs races
// with concurrent reconciles.
type Fanout struct {
	resolver    *AudienceResolver
	assignments StudentLinkStore
	links       LinkStore
	log         zerolog.Logger
}

func NewFanout(resolver *AudienceResolver, assignments StudentLinkStore, links LinkStore, log zerolog.Logger) *Fanout {
	return &Fanout{resolver: resolver, assignments: assignments, links: links, log: log}
}

// Reconcile brings the assignment set for the link in line with its current
// audience scope. Safe to call repeatedly; an unchanged audience is a no-op.
func (f *Fanout) Reconcile(ctx context.Context, link models.Link) (FanoutResult, error) {
	students, err := f.resolver.Resolve(ctx, AudienceFromLink(link))
	if err != nil {
		return FanoutResult{}, err
	}

	current, err := f.assignments.StudentIDs(ctx, link.ID)
	if err != nil {
		return FanoutResult{}, err
	}

	desired := make([]bson.ObjectID, len(students))
	emails := make(map[bson.ObjectID]string, len(students))
	for i, s := range students {
		desired[i] = s.ID
		emails[s.ID] = s.Email
	}

	added, removed := DiffIDs(current, desired)

	var res FanoutResult
	now := time.Now().UTC()

	if len(added) > 0 {
		rows := make([]models.StudentLink, len(added))
		for i, id := range added {
			rows[i] = models.StudentLink{
				LinkID:       link.ID,
				StudentID:    id,
				StudentEmail: emails[id],
				AssignedAt:   now,
			}
		}
		inserted, err := f.assignments.InsertMany(ctx, rows)
		res.Assigned = inserted
		if err != nil {
			return res, err
		}
	}

	if len(removed) > 0 {
		deleted, err := f.assignments.DeleteForLink(ctx, link.ID, removed)
		res.Removed = int(deleted)
		if err != nil {
			return res, err
		}
	}

	if err := f.links.MarkAudienceSynced(ctx, link.ID, now); err != nil {
		// the assignments themselves are in place; a missing sync stamp only
		// means the next resync will run a full diff again
		f.log.Warn().Err(err).Str("link_id", link.ID.Hex()).Msg("failed to stamp audience sync")
	}

	return res, nil
}

// ReconcileBestEffort runs Reconcile and downgrades failure to a warning.
// Link writes succeed even when fan-out partially fails; the admin resync
// endpoint re-runs the same reconciliation.
func (f *Fanout) ReconcileBestEffort(ctx context.Context, link models.Link) FanoutResult {
	res, err := f.Reconcile(ctx, link)
	if err != nil {
		f.log.Warn().Err(err).Str("link_id", link.ID.Hex()).
			Int("assigned", res.Assigned).Int("removed", res.Removed).
			Msg("assignment fan-out incomplete")
	}
	return res
}

// DiffIDs computes the set difference between the current and desired id
// sets: ids to add (desired but not current) and ids to remove (current but
// not desired). Order follows the input slices.
func DiffIDs(current, desired []bson.ObjectID) (added, removed []bson.ObjectID) {
	cur := make(map[bson.ObjectID]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	des := make(map[bson.ObjectID]struct{}, len(desired))
	for _, id := range desired {
		des[id] = struct{}{}
	}
	for _, id := range desired {
		if _, ok := cur[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range current {
		if _, ok := des[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
