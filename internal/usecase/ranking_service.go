package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/ranking"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
)

// TaskSubmitter is satisfied by *ants.Pool.
type TaskSubmitter interface {
	Submit(task func()) error
}

// Rankings is the leaderboard of one event.
type Rankings struct {
	Event           event.Event
	TotalActivities int
	TotalTeams      int
	Board           ranking.Board
}

type RankingService struct {
	events     event.Repository
	activities activity.Repository
	teams      team.Repository
	scores     score.Repository
	leaders    leader.Repository
	pool       TaskSubmitter
}

// NewRankingService loads ranking inputs through pool. A nil pool runs the loads sequentially.
func NewRankingService(
	events event.Repository,
	activities activity.Repository,
	teams team.Repository,
	scores score.Repository,
	leaders leader.Repository,
	pool TaskSubmitter,
) *RankingService {
	return &RankingService{
		events:     events,
		activities: activities,
		teams:      teams,
		scores:     scores,
		leaders:    leaders,
		pool:       pool,
	}
}

func (s *RankingService) Rankings(ctx context.Context, eventID int64) (Rankings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Rankings")
	defer span.End()

	if eventID <= 0 {
		return Rankings{}, invalidInput("Event ID is required")
	}

	ev, exists, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return Rankings{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return Rankings{}, notFound("Event not found")
	}

	in := ranking.Input{EventID: eventID}
	loads := []func() error{
		func() (err error) {
			in.Activities, err = s.activities.ListByEvent(ctx, eventID)
			return wrapLoad("activities", err)
		},
		func() (err error) {
			in.Categories, err = s.activities.ListCategoriesByEvent(ctx, eventID)
			return wrapLoad("score categories", err)
		},
		func() (err error) {
			in.Teams, err = s.teams.ListByEvent(ctx, eventID)
			return wrapLoad("teams", err)
		},
		func() (err error) {
			in.Scores, err = s.scores.ListByEvent(ctx, eventID)
			return wrapLoad("scores", err)
		},
		func() (err error) {
			in.Leaders, err = s.leaders.ListByEvent(ctx, eventID)
			return wrapLoad("leaders", err)
		},
	}
	if err := s.runAll(loads); err != nil {
		return Rankings{}, err
	}

	return Rankings{
		Event:           ev,
		TotalActivities: len(in.Activities),
		TotalTeams:      len(in.Teams),
		Board:           ranking.Compute(in),
	}, nil
}

func (s *RankingService) runAll(tasks []func() error) error {
	if s.pool == nil {
		for _, task := range tasks {
			if err := task(); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, len(tasks))
	var workers sync.WaitGroup
	for i, task := range tasks {
		workers.Add(1)
		if err := s.pool.Submit(func() {
			defer workers.Done()
			errs[i] = task()
		}); err != nil {
			workers.Done()
			if errors.Is(err, ants.ErrPoolOverload) || errors.Is(err, ants.ErrPoolClosed) {
				errs[i] = fmt.Errorf("%w: ranking worker pool: %v", ErrDependencyUnavailable, err)
				continue
			}
			errs[i] = fmt.Errorf("submit ranking load: %w", err)
		}
	}
	workers.Wait()

	return errors.Join(errs...)
}

func wrapLoad(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}
