package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-aggregator/bracket"
	"github.com/Dosada05/tournament-aggregator/clients"
	"github.com/Dosada05/tournament-aggregator/models"
)

func newFinalFixture() (*FinalScheduler, *bracket.Store, *fakeMatchAPI, *StateCache) {
	store := bracket.NewStore([]string{"group-a", "group-b"}, 2)
	matches := newFakeMatchAPI()
	cache := NewStateCache(45 * time.Second)
	return NewFinalScheduler(matches, store, cache, testLogger()), store, matches, cache
}

func champion(id int, name string) *models.TeamSlotView {
	roster := NewTeamRoster()
	detail := EnrichTeam(rawTeam(id, name), 0)
	roster.Put(detail)
	slot := boundTeamSlot(detail)
	return &slot
}

func TestBuildFinal_NoChampionsProducesPlaceholderWithoutRemoteCalls(t *testing.T) {
	scheduler, store, matches, _ := newFinalFixture()
	roster := NewTeamRoster()

	view := scheduler.BuildFinal(context.Background(), nil, nil, roster, time.Now())

	assert.True(t, view.IsPlaceholder)
	assert.Equal(t, "Esperando ganadores", view.StatusLabel)
	assert.Equal(t, "Ganador Grupo A", view.TeamA.DisplayName)
	assert.Equal(t, "Ganador Grupo B", view.TeamB.DisplayName)
	assert.Zero(t, matches.createCalls, "no creation call when champions are missing")
	assert.Nil(t, store.FinalMatchID())
}

func TestBuildFinal_KnownChampionShownInPlaceholder(t *testing.T) {
	scheduler, _, matches, _ := newFinalFixture()

	view := scheduler.BuildFinal(context.Background(), champion(1, "Lions"), nil, NewTeamRoster(), time.Now())

	assert.True(t, view.IsPlaceholder)
	assert.Equal(t, "Lions", view.TeamA.DisplayName)
	assert.Equal(t, "Ganador Grupo B", view.TeamB.DisplayName)
	assert.Zero(t, matches.createCalls)
}

func TestBuildFinal_SameChampionBothSidesIsPlaceholder(t *testing.T) {
	scheduler, _, matches, _ := newFinalFixture()

	view := scheduler.BuildFinal(context.Background(), champion(1, "Lions"), champion(1, "Lions"), NewTeamRoster(), time.Now())

	assert.True(t, view.IsPlaceholder)
	assert.Zero(t, matches.createCalls)
}

func TestBuildFinal_CreatesFinalAndReflectsItImmediately(t *testing.T) {
	scheduler, store, matches, _ := newFinalFixture()
	matches.nextCreateID = 77
	reference := time.Date(2025, 11, 10, 18, 0, 0, 0, time.UTC)

	view := scheduler.BuildFinal(context.Background(), champion(1, "Lions"), champion(4, "Wolves"), NewTeamRoster(), reference)

	assert.Equal(t, 1, matches.createCalls)
	require.NotNil(t, store.FinalMatchID())
	assert.Equal(t, 77, *store.FinalMatchID())

	// Одно и то же чтение сразу отражает живой финал, а не заглушку.
	assert.False(t, view.IsPlaceholder)
	assert.Equal(t, "final", view.Round)
	assert.Equal(t, "77", view.ID)

	// Финал назначается через два дня после опорной даты.
	created, err := matches.FetchByID(context.Background(), 77)
	require.NoError(t, err)
	scheduled := created.ScheduledAt()
	require.NotNil(t, scheduled)
	assert.Equal(t, reference.Add(48*time.Hour), scheduled.UTC())
}

func TestBuildFinal_CreateFailureYieldsSchedulingPlaceholder(t *testing.T) {
	scheduler, store, matches, _ := newFinalFixture()
	matches.nextCreateID = 0 // создание падает

	view := scheduler.BuildFinal(context.Background(), champion(1, "Lions"), champion(4, "Wolves"), NewTeamRoster(), time.Now())

	assert.Equal(t, 1, matches.createCalls, "exactly one creation attempt per composition pass")
	assert.True(t, view.IsPlaceholder)
	assert.Equal(t, "Programar final", view.StatusLabel)
	assert.Equal(t, "Lions", view.TeamA.DisplayName)
	assert.Equal(t, "Wolves", view.TeamB.DisplayName)
	assert.Nil(t, store.FinalMatchID(), "no id is stored on creation failure")

	// Следующий проход композиции повторяет попытку сам.
	matches.nextCreateID = 80
	view = scheduler.BuildFinal(context.Background(), champion(1, "Lions"), champion(4, "Wolves"), NewTeamRoster(), time.Now())
	assert.Equal(t, 2, matches.createCalls)
	assert.False(t, view.IsPlaceholder)
}

func TestBuildFinal_ExistingFinalIsFetchedNotRecreated(t *testing.T) {
	scheduler, store, matches, _ := newFinalFixture()
	matches.addRecord(finishedMatch(77, 1, 4, 90, 85))
	store.SetFinalMatchID(intPtr(77))

	view := scheduler.BuildFinal(context.Background(), champion(1, "Lions"), champion(4, "Wolves"), NewTeamRoster(), time.Now())

	assert.Zero(t, matches.createCalls, "idempotent: a stored final id is never recreated")
	assert.False(t, view.IsPlaceholder)
	assert.Equal(t, "final", view.Round)
	require.NotNil(t, view.WinnerID)
	assert.Equal(t, "1", *view.WinnerID)
}

func TestBuildFinal_FetchFailureKeepsStoredID(t *testing.T) {
	scheduler, store, matches, _ := newFinalFixture()
	store.SetFinalMatchID(intPtr(77))
	matches.failWith(77, fmt.Errorf("%w: outage", clients.ErrRemoteUnavailable))

	view := scheduler.BuildFinal(context.Background(), champion(1, "Lions"), champion(4, "Wolves"), NewTeamRoster(), time.Now())

	assert.True(t, view.IsPlaceholder)
	assert.Equal(t, "Lions", view.TeamA.DisplayName)
	assert.Equal(t, "Wolves", view.TeamB.DisplayName)
	require.NotNil(t, store.FinalMatchID(), "a transient outage must not erase the assignment")
	assert.Equal(t, 77, *store.FinalMatchID())
}

func TestBuildFinal_SuccessfulCreationClearsCache(t *testing.T) {
	scheduler, _, matches, cache := newFinalFixture()
	matches.nextCreateID = 77
	cache.Put(testState())

	scheduler.BuildFinal(context.Background(), champion(1, "Lions"), champion(4, "Wolves"), NewTeamRoster(), time.Now())

	_, ok := cache.Get(false)
	assert.False(t, ok, "storing a new final id invalidates the composed view")
}
