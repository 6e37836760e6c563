package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Dosada05/tournament-aggregator/bracket"
	"github.com/Dosada05/tournament-aggregator/clients"
	"github.com/Dosada05/tournament-aggregator/models"
)

const (
	tournamentID   = "cup-current"
	tournamentCode = "CUP-2025"
	tournamentName = "Copa Invitacional"
)

// AggregationService оркеструет путь чтения (GetState) и два пути записи
// (AssignSlot, ReportMatchUpdate) поверх хранилища назначений и удалённых
// сервисов.
type AggregationService interface {
	GetState(ctx context.Context, force bool) (*models.TournamentState, error)
	AssignSlot(ctx context.Context, groupID string, slotIndex int, matchID *int) (*models.TournamentState, error)
	ReportMatchUpdate(ctx context.Context, matchID int, status string, scoreA, scoreB *int) (*models.TournamentState, error)
	TournamentID() string
}

type aggregationService struct {
	store       *bracket.Store
	matches     clients.MatchAPI
	teams       clients.TeamAPI
	validator   *SlotValidator
	viewBuilder *ViewBuilder
	final       *FinalScheduler
	cache       *StateCache
	rebuilds    singleflight.Group
	clock       Clock
	logger      *slog.Logger
}

func NewAggregationService(
	store *bracket.Store,
	matches clients.MatchAPI,
	teams clients.TeamAPI,
	validator *SlotValidator,
	viewBuilder *ViewBuilder,
	final *FinalScheduler,
	cache *StateCache,
	clock Clock,
	logger *slog.Logger,
) AggregationService {
	if clock == nil {
		clock = realClock{}
	}
	return &aggregationService{
		store:       store,
		matches:     matches,
		teams:       teams,
		validator:   validator,
		viewBuilder: viewBuilder,
		final:       final,
		cache:       cache,
		clock:       clock,
		logger:      logger,
	}
}

func (s *aggregationService) TournamentID() string {
	return tournamentID
}

// GetState возвращает кешированное представление или пересобирает его.
// Одновременные промахи кеша схлопываются в одну пересборку: два гонящихся
// читателя инициируют один набор удалённых запросов.
func (s *aggregationService) GetState(ctx context.Context, force bool) (*models.TournamentState, error) {
	if entry, ok := s.cache.Get(force); ok {
		return entry, nil
	}

	result, err, _ := s.rebuilds.Do(tournamentID, func() (interface{}, error) {
		return s.rebuild(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.TournamentState), nil
}

// AssignSlot выполняет запись назначения слота. Очистка (matchID == nil) всегда
// проходит без валидации; назначение валидируется целиком до какой-либо
// мутации: слот либо записывается полностью, либо store остаётся нетронутым.
func (s *aggregationService) AssignSlot(ctx context.Context, groupID string, slotIndex int, matchID *int) (*models.TournamentState, error) {
	if !s.store.HasGroup(groupID) {
		return nil, ErrGroupNotFound
	}
	if slotIndex < 0 || slotIndex >= s.store.SlotCount(groupID) {
		return nil, ErrSlotIndexInvalid
	}

	if matchID != nil {
		if err := s.validator.Validate(ctx, groupID, slotIndex, *matchID); err != nil {
			return nil, err
		}
	}

	// Каскад внутри SetSlot сбрасывает и финал.
	s.store.SetSlot(groupID, slotIndex, matchID)
	s.cache.Clear()
	return s.GetState(ctx, true)
}

// ReportMatchUpdate пробрасывает завершение матча в matches-service
// (best-effort) и в любом случае пересобирает представление: агрегатор должен
// отражать то, что сейчас отдаёт удалённый сервис, даже если конкретно эта
// запись не прошла.
func (s *aggregationService) ReportMatchUpdate(ctx context.Context, matchID int, status string, scoreA, scoreB *int) (*models.TournamentState, error) {
	if matchID <= 0 {
		return nil, ErrMatchIDInvalid
	}

	if models.NormalizeStatus(status) == models.StatusFinished {
		s.matches.MarkFinished(ctx, matchID, scoreA, scoreB)
	}

	s.cache.Clear()
	return s.GetState(ctx, true)
}

// rebuild выполняет один полный проход композиции.
func (s *aggregationService) rebuild(ctx context.Context) (*models.TournamentState, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("composition canceled: %w", err)
	}

	roster := NewTeamRoster()
	for i, raw := range s.teams.List(ctx) {
		roster.Put(EnrichTeam(raw, i))
	}

	snap := s.store.Snapshot()
	groups, champions, realMatches := s.viewBuilder.BuildGroups(ctx, snap, roster)

	var championA, championB *models.TeamSlotView
	if len(snap.GroupOrder) > 0 {
		championA = champions[snap.GroupOrder[0]]
	}
	if len(snap.GroupOrder) > 1 {
		championB = champions[snap.GroupOrder[1]]
	}

	now := s.clock.Now()
	referenceDate := now
	for _, match := range realMatches {
		if match.ScheduledAtUTC == nil {
			continue
		}
		if t, err := time.Parse(time.RFC3339, *match.ScheduledAtUTC); err == nil && t.After(referenceDate) {
			referenceDate = t
		}
	}

	finalView := s.final.BuildFinal(ctx, championA, championB, roster, referenceDate)

	matchesPlayed := 0
	totalMatches := len(realMatches)
	for _, match := range realMatches {
		if match.Status == models.StatusFinished {
			matchesPlayed++
		}
	}
	if !finalView.IsPlaceholder {
		totalMatches++
		if finalView.Status == models.StatusFinished {
			matchesPlayed++
		}
	}

	progress := 0.0
	if totalMatches > 0 {
		progress = float64(matchesPlayed) / float64(totalMatches)
	}

	var winner *models.TeamSlotView
	if finalView.Status == models.StatusFinished && finalView.WinnerID != nil {
		switch {
		case finalView.TeamA.ID != nil && *finalView.TeamA.ID == *finalView.WinnerID:
			w := finalView.TeamA
			winner = &w
		case finalView.TeamB.ID != nil && *finalView.TeamB.ID == *finalView.WinnerID:
			w := finalView.TeamB
			winner = &w
		}
	}

	detail := models.TournamentDetail{
		ID:            tournamentID,
		Code:          tournamentCode,
		Name:          tournamentName,
		HeroTitle:     tournamentName + " " + now.Format("2006"),
		Season:        now.Format("2006"),
		Location:      "Sedes Oficiales",
		Venue:         "Arena Nacional",
		Description:   "Torneo armado con partidos programados en el servicio de partidos.",
		ScheduleLabel: seasonScheduleLabel(now),
		UpdatedLabel:  formatUpdatedLabel(now),
		Domain:        "scoreboard.local",
		Progress:      progress,
		MatchesPlayed: matchesPlayed,
		TotalMatches:  totalMatches,
		Summary:       "Selecciona dos partidos por grupo y deja que los ganadores se enfrenten en la final.",
		Groups:        groups,
		Final:         finalView,
		Winner:        winner,
		Teams:         roster.Details(),
		TeamsIndex:    roster.Index(),
	}

	state := &models.TournamentState{
		Summary: models.TournamentSummary{
			ID:            detail.ID,
			Code:          detail.Code,
			Name:          detail.Name,
			Season:        detail.Season,
			HeroTitle:     detail.HeroTitle,
			Location:      detail.Location,
			ScheduleLabel: detail.ScheduleLabel,
			Progress:      detail.Progress,
			MatchesPlayed: detail.MatchesPlayed,
			TotalMatches:  detail.TotalMatches,
		},
		Detail: detail,
	}

	s.cache.Put(state)
	return state, nil
}

func seasonScheduleLabel(now time.Time) string {
	end := now.Add(14 * 24 * time.Hour)
	return fmt.Sprintf("%s %d - %s %d", shortMonth(now), now.Year(), shortMonth(end), end.Year())
}
