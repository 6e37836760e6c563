package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/tournament-aggregator/bracket"
	"github.com/Dosada05/tournament-aggregator/clients"
)

func newValidatorFixture() (*SlotValidator, *bracket.Store, *fakeMatchAPI) {
	store := bracket.NewStore([]string{"group-a", "group-b"}, 2)
	matches := newFakeMatchAPI()
	return NewSlotValidator(store, matches, testLogger()), store, matches
}

func TestValidate_RejectsNonPositiveID(t *testing.T) {
	validator, _, _ := newValidatorFixture()
	assert.ErrorIs(t, validator.Validate(context.Background(), "group-a", 0, 0), ErrMatchIDInvalid)
	assert.ErrorIs(t, validator.Validate(context.Background(), "group-a", 0, -3), ErrMatchIDInvalid)
}

func TestValidate_RejectsDuplicateAssignment(t *testing.T) {
	validator, store, matches := newValidatorFixture()
	matches.addRecord(scheduledMatch(10, 1, 2))
	store.SetSlot("group-a", 0, intPtr(10))

	err := validator.Validate(context.Background(), "group-b", 0, 10)
	assert.ErrorIs(t, err, ErrMatchAlreadyUsed)
}

func TestValidate_RejectsMatchAssignedAsFinal(t *testing.T) {
	validator, store, matches := newValidatorFixture()
	matches.addRecord(scheduledMatch(10, 1, 2))
	store.SetFinalMatchID(intPtr(10))

	err := validator.Validate(context.Background(), "group-a", 0, 10)
	assert.ErrorIs(t, err, ErrMatchAlreadyUsed)
}

func TestValidate_UnknownMatchIsValidationFailure(t *testing.T) {
	validator, _, _ := newValidatorFixture()
	err := validator.Validate(context.Background(), "group-a", 0, 10)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestValidate_RemoteUnavailablePropagates(t *testing.T) {
	validator, _, matches := newValidatorFixture()
	matches.failWith(10, fmt.Errorf("%w: boom", clients.ErrRemoteUnavailable))

	err := validator.Validate(context.Background(), "group-a", 0, 10)
	assert.ErrorIs(t, err, clients.ErrRemoteUnavailable)
}

func TestValidate_RejectsDuplicateTeams(t *testing.T) {
	validator, _, matches := newValidatorFixture()
	matches.addRecord(scheduledMatch(10, 1, 1))

	err := validator.Validate(context.Background(), "group-a", 0, 10)
	assert.ErrorIs(t, err, ErrMatchTeamsConflict)
}

func TestValidate_RejectsTeamOverlapWithOtherSlot(t *testing.T) {
	validator, store, matches := newValidatorFixture()
	matches.addRecord(scheduledMatch(10, 1, 2)) // Lions vs Tigers en group-a
	matches.addRecord(scheduledMatch(11, 2, 3)) // Tigers vs Bears
	store.SetSlot("group-a", 0, intPtr(10))

	err := validator.Validate(context.Background(), "group-b", 0, 11)
	assert.ErrorIs(t, err, ErrTeamAlreadyBooked)
}

func TestValidate_RejectsTeamOverlapWithFinal(t *testing.T) {
	validator, store, matches := newValidatorFixture()
	matches.addRecord(scheduledMatch(50, 1, 4))
	matches.addRecord(scheduledMatch(11, 4, 5))
	store.SetFinalMatchID(intPtr(50))

	err := validator.Validate(context.Background(), "group-a", 0, 11)
	assert.ErrorIs(t, err, ErrTeamAlreadyBooked)
}

func TestValidate_ExcludesSlotBeingOverwritten(t *testing.T) {
	validator, store, matches := newValidatorFixture()
	matches.addRecord(scheduledMatch(10, 1, 2))
	matches.addRecord(scheduledMatch(11, 1, 2)) // те же команды, но заменяет тот же слот
	store.SetSlot("group-a", 0, intPtr(10))

	err := validator.Validate(context.Background(), "group-a", 0, 11)
	assert.NoError(t, err, "the slot being overwritten must not count as a conflict")
}

func TestValidate_SkipsUnreachableOtherRecords(t *testing.T) {
	validator, store, matches := newValidatorFixture()
	matches.addRecord(scheduledMatch(11, 3, 4))
	matches.failWith(10, fmt.Errorf("%w: down", clients.ErrRemoteUnavailable))
	store.SetSlot("group-a", 0, intPtr(10))

	// Запись 10 недоступна: проверка пересечения по ней пропускается.
	err := validator.Validate(context.Background(), "group-b", 0, 11)
	assert.NoError(t, err)
}

func TestValidate_AcceptsDisjointTeams(t *testing.T) {
	validator, store, matches := newValidatorFixture()
	matches.addRecord(scheduledMatch(10, 1, 2))
	matches.addRecord(scheduledMatch(11, 3, 4))
	store.SetSlot("group-a", 0, intPtr(10))

	assert.NoError(t, validator.Validate(context.Background(), "group-b", 0, 11))
}
