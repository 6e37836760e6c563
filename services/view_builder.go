package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-aggregator/bracket"
	"github.com/Dosada05/tournament-aggregator/clients"
	"github.com/Dosada05/tournament-aggregator/models"
)

// ViewBuilder собирает представления групп из назначений и живых записей
// matches-service. Отказ одного матча деградирует до заглушки и никогда не
// валит построение целиком.
type ViewBuilder struct {
	matches clients.MatchAPI
	logger  *slog.Logger
}

func NewViewBuilder(matches clients.MatchAPI, logger *slog.Logger) *ViewBuilder {
	return &ViewBuilder{matches: matches, logger: logger}
}

// GroupResult содержит производный результат одной группы.
type GroupResult struct {
	Winners  []models.TeamSlotView
	Champion *models.TeamSlotView
}

// BuildGroups строит все группы по снапшоту назначений. Возвращает
// представления групп, чемпионов по группам и список реальных (не заглушек)
// матчей для подсчёта прогресса.
func (b *ViewBuilder) BuildGroups(ctx context.Context, snap bracket.Snapshot, roster *TeamRoster) ([]models.GroupView, map[string]*models.TeamSlotView, []models.MatchView) {
	records := b.fetchAssigned(ctx, snap)

	groups := make([]models.GroupView, 0, len(snap.GroupOrder))
	champions := make(map[string]*models.TeamSlotView, len(snap.GroupOrder))
	var realMatches []models.MatchView

	for groupIndex, groupID := range snap.GroupOrder {
		slots := snap.Groups[groupID]
		matchViews := make([]models.MatchView, 0, len(slots))

		for slotIndex, matchID := range slots {
			if matchID == nil {
				matchViews = append(matchViews, PlaceholderMatchView(
					fmt.Sprintf("Slot %d", slotIndex+1), groupID, slotIndex))
				continue
			}

			record, ok := records[*matchID]
			if !ok {
				// Запись не удалось получить: слот деградирует до заглушки,
				// причина уже в логе fetchAssigned.
				matchViews = append(matchViews, PlaceholderMatchView(
					fmt.Sprintf("Slot %d", slotIndex+1), groupID, slotIndex))
				continue
			}

			view := BuildMatchView(record, roster, groupID, slotIndex)
			matchViews = append(matchViews, view)
			realMatches = append(realMatches, view)
		}

		result := ResolveGroup(matchViews)
		champions[groupID] = result.Champion

		groups = append(groups, models.GroupView{
			ID:         groupID,
			Name:       groupDisplayName(groupIndex),
			Color:      PaletteFor(groupIndex).Secondary,
			Matches:    matchViews,
			Qualifiers: result.Winners,
		})
	}

	return groups, champions, realMatches
}

// fetchAssigned параллельно тянет все назначенные записи одного прохода.
// Ошибки отдельных запросов логируются и пропускаются.
func (b *ViewBuilder) fetchAssigned(ctx context.Context, snap bracket.Snapshot) map[int]*models.MatchRecord {
	var ids []int
	for _, slots := range snap.Groups {
		for _, matchID := range slots {
			if matchID != nil {
				ids = append(ids, *matchID)
			}
		}
	}

	var mu sync.Mutex
	records := make(map[int]*models.MatchRecord, len(ids))

	g, gCtx := errgroup.WithContext(ctx)
	for _, matchID := range ids {
		matchID := matchID
		g.Go(func() error {
			record, err := b.matches.FetchByID(gCtx, matchID)
			if err != nil {
				b.logger.Warn("failed to fetch match",
					slog.Int("match_id", matchID),
					slog.Any("error", err))
				return nil
			}
			mu.Lock()
			records[matchID] = record
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return records
}

// BuildMatchView проецирует запись матча в представление, связывая обе стороны
// с карточками из общего реестра. Команды, неизвестные каталогу, синтезируются
// из имён, вшитых в запись, с индексом, продолжающим текущий размер реестра.
func BuildMatchView(record *models.MatchRecord, roster *TeamRoster, groupID string, slotIndex int) models.MatchView {
	status := models.NormalizeStatus(record.Status)

	homeDetail := resolveTeamDetail(roster, record.HomeTeamID, record.HomeTeamName)
	awayDetail := resolveTeamDetail(roster, record.AwayTeamID, record.AwayTeamName)

	scheduledAt := record.ScheduledAt()
	scheduleLabel := "Sin fecha"
	var scheduledAtUTC *string
	if scheduledAt != nil {
		scheduleLabel = formatScheduleLabel(*scheduledAt)
		scheduledAtUTC = strPtr(scheduledAt.UTC().Format(time.RFC3339))
	}

	label := derefString(record.Label)
	if label == "" {
		label = fmt.Sprintf("Partido %d", record.ID)
	}
	round := derefString(record.Round)
	if round == "" {
		round = "group"
	}
	venue := derefString(record.Venue)
	if venue == "" {
		venue = "Estadio Principal"
	}

	view := models.MatchView{
		ID:             strconv.Itoa(record.ID),
		Label:          label,
		Round:          round,
		Status:         status,
		StatusLabel:    statusLabels[status],
		ScheduleLabel:  scheduleLabel,
		ScheduledAtUTC: scheduledAtUTC,
		Venue:          venue,
		Broadcast:      record.Broadcast,
		TeamA:          boundTeamSlot(homeDetail),
		TeamB:          boundTeamSlot(awayDetail),
		GroupID:        groupID,
		SlotIndex:      slotIndex,
	}

	// Счёт попадает в представление только у завершённого матча.
	if status == models.StatusFinished {
		view.TeamA.Score = record.HomeScore
		view.TeamB.Score = record.AwayScore
		if view.TeamA.Score != nil && view.TeamB.Score != nil {
			switch {
			case *view.TeamA.Score > *view.TeamB.Score:
				view.WinnerID = view.TeamA.ID
			case *view.TeamB.Score > *view.TeamA.Score:
				view.WinnerID = view.TeamB.ID
			}
			// Ничья оставляет WinnerID пустым.
		}
	}

	return view
}

// ResolveGroup выводит победителей группы в порядке матчей и её чемпиона.
// Чемпионом считается победитель последнего решённого матча: в группе два слота, и
// представителем в финале считается исход более позднего из них. Заглушки,
// незавершённые матчи и ничьи пропускаются.
func ResolveGroup(matchViews []models.MatchView) GroupResult {
	var winners []models.TeamSlotView
	seen := make(map[string]bool)

	for _, match := range matchViews {
		if match.IsPlaceholder || match.Status != models.StatusFinished || match.WinnerID == nil {
			continue
		}

		var winner models.TeamSlotView
		switch {
		case match.TeamA.ID != nil && *match.TeamA.ID == *match.WinnerID:
			winner = match.TeamA
		case match.TeamB.ID != nil && *match.TeamB.ID == *match.WinnerID:
			winner = match.TeamB
		default:
			continue
		}

		if !seen[*winner.ID] {
			winners = append(winners, winner)
			seen[*winner.ID] = true
		}
	}

	result := GroupResult{Winners: winners}
	if len(winners) > 0 {
		last := winners[len(winners)-1]
		result.Champion = &last
	}
	return result
}

// PlaceholderMatchView строит синтетическую заглушку для незаполненного или
// недоступного слота.
func PlaceholderMatchView(label, groupID string, slotIndex int) models.MatchView {
	return models.MatchView{
		ID:            fmt.Sprintf("%s-slot-%d", groupID, slotIndex),
		Label:         label,
		Round:         "group",
		Status:        models.StatusScheduled,
		StatusLabel:   "Sin asignar",
		ScheduleLabel: "Selecciona un partido",
		Venue:         "Por definir",
		TeamA:         placeholderTeamSlot("Equipo A"),
		TeamB:         placeholderTeamSlot("Equipo B"),
		GroupID:       groupID,
		SlotIndex:     slotIndex,
		IsPlaceholder: true,
	}
}

func resolveTeamDetail(roster *TeamRoster, teamID int, embeddedName *string) models.TeamDetail {
	id := strconv.Itoa(teamID)
	if detail, ok := roster.Get(id); ok {
		return detail
	}
	detail := EnrichTeam(FallbackTeam(teamID, embeddedName), roster.Size())
	roster.Put(detail)
	return detail
}

func boundTeamSlot(detail models.TeamDetail) models.TeamSlotView {
	palette := detail.Palette
	return models.TeamSlotView{
		ID:          strPtr(detail.ID),
		DisplayName: detail.Name,
		ShortName:   strPtr(detail.ShortName),
		Seed:        intPtr(detail.Seed),
		Record:      strPtr(detail.Record),
		Detail:      &detail,
		Palette:     &palette,
	}
}

func placeholderTeamSlot(label string) models.TeamSlotView {
	return models.TeamSlotView{
		DisplayName:   label,
		IsPlaceholder: true,
	}
}

func groupDisplayName(index int) string {
	return fmt.Sprintf("Grupo %c", 'A'+rune(index))
}
