package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/Dosada05/tournament-aggregator/bracket"
	"github.com/Dosada05/tournament-aggregator/clients"
	"github.com/Dosada05/tournament-aggregator/models"
)

// FinalScheduler гарантирует существование записи финала, когда известны оба
// чемпиона, и встраивает её живое состояние в представление. Идемпотичен:
// повторные вызовы с сохранённым id финала ничего не создают.
type FinalScheduler struct {
	matches clients.MatchAPI
	store   *bracket.Store
	cache   *StateCache
	logger  *slog.Logger
}

func NewFinalScheduler(matches clients.MatchAPI, store *bracket.Store, cache *StateCache, logger *slog.Logger) *FinalScheduler {
	return &FinalScheduler{matches: matches, store: store, cache: cache, logger: logger}
}

// BuildFinal реализует машину из трёх состояний.
//
//  1. Чемпионы неизвестны (или совпадают): заглушка, к matches-service не
//     обращаемся вовсе.
//  2. Чемпионы известны, id финала не сохранён: пытаемся создать запись на
//     два дня позже referenceDate. При успехе сохраняем id, сбрасываем кеш и
//     один раз переходим в состояние 3 с новым id, чтобы то же чтение сразу
//     отразило живой финал. При неудаче возвращаем заглушку "Programar final", id не
//     сохраняется; повтор произойдёт сам на следующем проходе композиции.
//  3. Id финала сохранён: тянем запись. Сбой выборки деградирует до заглушки
//     с обоими чемпионами, но сохранённый id не трогаем: временный отказ
//     удалённого сервиса не должен стирать назначение.
func (f *FinalScheduler) BuildFinal(ctx context.Context, championA, championB *models.TeamSlotView, roster *TeamRoster, referenceDate time.Time) models.MatchView {
	if championA == nil || championB == nil || sameTeam(championA, championB) {
		return f.awaitingChampionsView(championA, championB)
	}

	finalID := f.store.FinalMatchID()
	if finalID == nil {
		homeID, errA := strconv.Atoi(derefString(championA.ID))
		awayID, errB := strconv.Atoi(derefString(championB.ID))
		if errA != nil || errB != nil {
			f.logger.Warn("champion ids are not numeric",
				slog.String("champion_a", derefString(championA.ID)),
				slog.String("champion_b", derefString(championB.ID)))
			return f.needsSchedulingView(championA, championB)
		}

		scheduledAt := referenceDate.Add(48 * time.Hour)
		newID := f.matches.Create(ctx, homeID, awayID, scheduledAt)
		if newID == 0 {
			return f.needsSchedulingView(championA, championB)
		}

		f.store.SetFinalMatchID(&newID)
		f.cache.Clear()
		finalID = &newID
		// Единственный ограниченный повторный вход: дальше обычный fetch.
	}

	record, err := f.matches.FetchByID(ctx, *finalID)
	if err != nil {
		f.logger.Warn("final match fetch failed",
			slog.Int("match_id", *finalID),
			slog.Any("error", err))
		return f.needsSchedulingView(championA, championB)
	}

	view := BuildMatchView(record, roster, "final", 0)
	view.Round = "final"
	if derefString(record.Label) == "" {
		view.Label = "Final"
	}
	return view
}

func (f *FinalScheduler) awaitingChampionsView(championA, championB *models.TeamSlotView) models.MatchView {
	teamA := placeholderTeamSlot("Ganador Grupo A")
	if championA != nil {
		teamA = *championA
	}
	teamB := placeholderTeamSlot("Ganador Grupo B")
	if championB != nil {
		teamB = *championB
	}
	return finalPlaceholderView("Esperando ganadores", "Pendiente", teamA, teamB)
}

func (f *FinalScheduler) needsSchedulingView(championA, championB *models.TeamSlotView) models.MatchView {
	return finalPlaceholderView("Programar final", "Selecciona partido", *championA, *championB)
}

func finalPlaceholderView(statusLabel, scheduleLabel string, teamA, teamB models.TeamSlotView) models.MatchView {
	return models.MatchView{
		ID:            "final-slot",
		Label:         "Final",
		Round:         "final",
		Status:        models.StatusScheduled,
		StatusLabel:   statusLabel,
		ScheduleLabel: scheduleLabel,
		Venue:         "Arena Nacional",
		TeamA:         teamA,
		TeamB:         teamB,
		GroupID:       "final",
		IsPlaceholder: true,
	}
}

func sameTeam(a, b *models.TeamSlotView) bool {
	return a.ID != nil && b.ID != nil && *a.ID == *b.ID
}
