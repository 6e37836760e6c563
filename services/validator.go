package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-aggregator/bracket"
	"github.com/Dosada05/tournament-aggregator/clients"
	"github.com/Dosada05/tournament-aggregator/models"
)

// SlotValidator проверяет кандидата на назначение в слот против всего
// остального брекета: уникальность записи и непересечение пар команд.
// Store здесь не мутируется, только читается.
type SlotValidator struct {
	store   *bracket.Store
	matches clients.MatchAPI
	logger  *slog.Logger
}

func NewSlotValidator(store *bracket.Store, matches clients.MatchAPI, logger *slog.Logger) *SlotValidator {
	return &SlotValidator{store: store, matches: matches, logger: logger}
}

// Validate отклоняет назначение matchID в (groupID, slotIndex), если оно
// нарушает инварианты брекета. Валидационные отказы возвращаются сентинелями из errors.go;
// недоступность matches-service пробрасывается как ошибка записи: назначать
// вслепую, не зная состояния конфликтов, нельзя.
func (v *SlotValidator) Validate(ctx context.Context, groupID string, slotIndex, matchID int) error {
	if matchID <= 0 {
		return ErrMatchIDInvalid
	}
	if v.store.Contains(matchID) {
		return ErrMatchAlreadyUsed
	}

	candidate, err := v.matches.FetchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return fmt.Errorf("%w: partido %d", ErrMatchNotFound, matchID)
		}
		return fmt.Errorf("validate assignment of match %d: %w", matchID, err)
	}

	if candidate.HomeTeamID == candidate.AwayTeamID {
		return ErrMatchTeamsConflict
	}

	others := v.fetchOtherAssigned(ctx, groupID, slotIndex)
	for _, other := range others {
		if teamPairsOverlap(candidate, other) {
			return ErrTeamAlreadyBooked
		}
	}
	return nil
}

// fetchOtherAssigned собирает записи всех остальных занятых слотов (включая
// финал, исключая перезаписываемый слот). Запросы идут параллельно; сбой
// одного запроса логируется и пропускается, так вела себя и валидация
// до выноса в отдельный сервис.
func (v *SlotValidator) fetchOtherAssigned(ctx context.Context, excludeGroup string, excludeSlot int) []*models.MatchRecord {
	snap := v.store.Snapshot()

	var targets []int
	for groupID, slots := range snap.Groups {
		for slotIndex, matchID := range slots {
			if groupID == excludeGroup && slotIndex == excludeSlot {
				continue
			}
			if matchID == nil {
				continue
			}
			targets = append(targets, *matchID)
		}
	}
	if snap.FinalMatchID != nil {
		targets = append(targets, *snap.FinalMatchID)
	}

	var mu sync.Mutex
	records := make([]*models.MatchRecord, 0, len(targets))

	g, gCtx := errgroup.WithContext(ctx)
	for _, matchID := range targets {
		matchID := matchID
		g.Go(func() error {
			record, err := v.matches.FetchByID(gCtx, matchID)
			if err != nil {
				// Не возвращаем ошибку: недоступная запись не должна
				// блокировать проверку по остальным.
				v.logger.Warn("validation fetch failed",
					slog.Int("match_id", matchID),
					slog.Any("error", err))
				return nil
			}
			mu.Lock()
			records = append(records, record)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return records
}

func teamPairsOverlap(a, b *models.MatchRecord) bool {
	return a.HomeTeamID == b.HomeTeamID || a.HomeTeamID == b.AwayTeamID ||
		a.AwayTeamID == b.HomeTeamID || a.AwayTeamID == b.AwayTeamID
}
