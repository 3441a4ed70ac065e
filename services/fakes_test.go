package services

import (
	"context"
	"sync"
	"time"

	"github.com/deadmouser/Uni-Arena/models"
	"github.com/deadmouser/Uni-Arena/repositories"
)

// In-memory repository fakes. Services run them without a database handle;
// withTx passes a nil executor straight through.

type fakeSportRepo struct {
	sports map[int]*models.Sport
}

func (f *fakeSportRepo) GetByID(_ context.Context, id int) (*models.Sport, error) {
	sport, ok := f.sports[id]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	return sport, nil
}

func (f *fakeSportRepo) List(_ context.Context) ([]*models.Sport, error) {
	out := make([]*models.Sport, 0, len(f.sports))
	for _, sport := range f.sports {
		out = append(out, sport)
	}
	return out, nil
}

type fakeTeamRepo struct {
	idsBySport map[int][]int
}

func (f *fakeTeamRepo) ListIDsBySport(_ context.Context, sportID int) ([]int, error) {
	return f.idsBySport[sportID], nil
}

type fakePlayerRepo struct {
	idsBySport map[int][]int
}

func (f *fakePlayerRepo) ListIDsBySport(_ context.Context, sportID int) ([]int, error) {
	return f.idsBySport[sportID], nil
}

type fakeScheduleRepo struct {
	nextID    int
	schedules map[int]*models.Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{nextID: 1, schedules: map[int]*models.Schedule{}}
}

func (f *fakeScheduleRepo) Create(_ context.Context, _ repositories.SQLExecutor, schedule *models.Schedule) error {
	schedule.ID = f.nextID
	schedule.CreatedAt = time.Now()
	f.nextID++
	f.schedules[schedule.ID] = schedule
	return nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int) (*models.Schedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return nil, repositories.ErrScheduleNotFound
	}
	return schedule, nil
}

func (f *fakeScheduleRepo) List(_ context.Context, sportID *int) ([]*models.Schedule, error) {
	out := make([]*models.Schedule, 0, len(f.schedules))
	for _, schedule := range f.schedules {
		if sportID != nil && schedule.SportID != *sportID {
			continue
		}
		out = append(out, schedule)
	}
	return out, nil
}

type fakeMatchRepo struct {
	mu             sync.Mutex
	nextID         int
	matches        map[int]*models.Match
	participations []*models.MatchParticipation
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1, matches: map[int]*models.Match{}}
}

func (f *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	match.ID = f.nextID
	match.CreatedAt = time.Now()
	f.nextID++
	copied := *match
	f.matches[match.ID] = &copied
	return nil
}

func (f *fakeMatchRepo) CreateParticipation(_ context.Context, _ repositories.SQLExecutor, p *models.MatchParticipation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.participations = append(f.participations, p)
	return nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (f *fakeMatchRepo) List(_ context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Match, 0, len(f.matches))
	for _, match := range f.matches {
		if filter.SportID != nil && match.SportID != *filter.SportID {
			continue
		}
		if filter.Status != nil && match.Status != *filter.Status {
			continue
		}
		copied := *match
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeMatchRepo) ListBySchedule(_ context.Context, scheduleID int) ([]*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Match, 0)
	for _, match := range f.matches {
		if match.ScheduleID != nil && *match.ScheduleID == scheduleID {
			copied := *match
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) Update(_ context.Context, match *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	copied := *match
	f.matches[match.ID] = &copied
	return nil
}

func (f *fakeMatchRepo) MarkLive(_ context.Context, _ repositories.SQLExecutor, id int, startedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if match.Status != models.MatchStatusScheduled {
		return repositories.ErrMatchNotInStatus
	}
	match.Status = models.MatchStatusLive
	if match.ActualStartTime == nil {
		match.ActualStartTime = &startedAt
	}
	return nil
}

func (f *fakeMatchRepo) MarkCompleted(_ context.Context, _ repositories.SQLExecutor, id int, endedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Status = models.MatchStatusCompleted
	if match.ActualEndTime == nil {
		match.ActualEndTime = &endedAt
	}
	return nil
}

type fakeScoreRepo struct {
	mu      sync.Mutex
	nextID  int
	scores  map[int]*models.Score // keyed by match id
	updates []*models.ScoreUpdate
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{nextID: 1, scores: map[int]*models.Score{}}
}

func (f *fakeScoreRepo) GetByMatch(_ context.Context, matchID int) (*models.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	score, ok := f.scores[matchID]
	if !ok {
		return nil, repositories.ErrScoreNotFound
	}
	copied := *score
	return &copied, nil
}

func (f *fakeScoreRepo) Upsert(_ context.Context, _ repositories.SQLExecutor, score *models.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.scores[score.MatchID]; ok {
		score.ID = existing.ID
		score.CreatedAt = existing.CreatedAt
	} else {
		score.ID = f.nextID
		score.CreatedAt = time.Now()
		f.nextID++
	}
	now := time.Now()
	score.UpdatedAt = &now
	copied := *score
	f.scores[score.MatchID] = &copied
	return nil
}

func (f *fakeScoreRepo) AppendUpdate(_ context.Context, _ repositories.SQLExecutor, update *models.ScoreUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	update.ID = len(f.updates) + 1
	update.CreatedAt = time.Now()
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeScoreRepo) ListUpdates(_ context.Context, matchID int) ([]*models.ScoreUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.ScoreUpdate, 0)
	for _, update := range f.updates {
		if update.MatchID == matchID {
			out = append(out, update)
		}
	}
	return out, nil
}

// fakeBroadcaster records every room broadcast.
type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []broadcastCall
}

type broadcastCall struct {
	room    string
	message interface{}
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, broadcastCall{room: roomID, message: message})
}

func (f *fakeBroadcaster) calls() []broadcastCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]broadcastCall(nil), f.messages...)
}
