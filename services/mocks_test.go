package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/tournament-aggregator/clients"
	"github.com/Dosada05/tournament-aggregator/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type finishCall struct {
	matchID   int
	homeScore *int
	awayScore *int
}

// fakeMatchAPI реализует clients.MatchAPI в памяти для тестов.
type fakeMatchAPI struct {
	mu           sync.Mutex
	records      map[int]*models.MatchRecord
	failing      map[int]error
	nextCreateID int
	createCalls  int
	fetchCalls   int
	finishCalls  []finishCall
}

func newFakeMatchAPI() *fakeMatchAPI {
	return &fakeMatchAPI{
		records: make(map[int]*models.MatchRecord),
		failing: make(map[int]error),
	}
}

func (f *fakeMatchAPI) addRecord(record *models.MatchRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.ID] = record
}

func (f *fakeMatchAPI) failWith(matchID int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[matchID] = err
}

func (f *fakeMatchAPI) FetchByID(ctx context.Context, id int) (*models.MatchRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetchCalls++
	if err, ok := f.failing[id]; ok {
		return nil, err
	}
	record, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: match %d", clients.ErrNotFound, id)
	}
	copied := *record
	return &copied, nil
}

// Create регистрирует созданную запись, как это сделал бы matches-service,
// чтобы последующий fetch того же прохода её нашёл.
func (f *fakeMatchAPI) Create(ctx context.Context, homeTeamID, awayTeamID int, scheduledAt time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.nextCreateID == 0 {
		return 0
	}
	id := f.nextCreateID
	dt := scheduledAt.UTC().Format(time.RFC3339)
	f.records[id] = &models.MatchRecord{
		ID:         id,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		Status:     "scheduled",
		DateTime:   &dt,
	}
	return id
}

func (f *fakeMatchAPI) MarkFinished(ctx context.Context, id int, homeScore, awayScore *int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finishCalls = append(f.finishCalls, finishCall{matchID: id, homeScore: homeScore, awayScore: awayScore})
}

// fakeTeamAPI реализует clients.TeamAPI в памяти.
type fakeTeamAPI struct {
	mu        sync.Mutex
	teams     []models.RawTeam
	listCalls int
}

func newFakeTeamAPI(teams ...models.RawTeam) *fakeTeamAPI {
	return &fakeTeamAPI{teams: teams}
}

func (f *fakeTeamAPI) List(ctx context.Context) []models.RawTeam {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]models.RawTeam(nil), f.teams...)
}

func (f *fakeTeamAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// --- Фикстуры ---

func rawTeam(id int, name string) models.RawTeam {
	return models.RawTeam{ID: id, Name: name}
}

func finishedMatch(id, homeID, awayID, homeScore, awayScore int) *models.MatchRecord {
	hs, as := homeScore, awayScore
	return &models.MatchRecord{
		ID:         id,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Status:     "finished",
		HomeScore:  &hs,
		AwayScore:  &as,
	}
}

func scheduledMatch(id, homeID, awayID int) *models.MatchRecord {
	return &models.MatchRecord{
		ID:         id,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Status:     "scheduled",
	}
}
