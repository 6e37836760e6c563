package services

import (
	"fmt"
	"time"

	"github.com/Dosada05/tournament-aggregator/models"
)

// --- Общие хелперы ---

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

// --- Локализованные подписи (продукт испаноязычный, см. фронтенд) ---

var statusLabels = map[models.MatchStatus]string{
	models.StatusScheduled: "Programado",
	models.StatusLive:      "En juego",
	models.StatusFinished:  "Finalizado",
}

var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

func shortMonth(t time.Time) string {
	return spanishMonths[int(t.Month())-1]
}

func formatScheduleLabel(t time.Time) string {
	return fmt.Sprintf("%d %s %d, %02d:%02d", t.Day(), shortMonth(t), t.Year(), t.Hour(), t.Minute())
}

func formatUpdatedLabel(t time.Time) string {
	return fmt.Sprintf("Actualizado %s", formatScheduleLabel(t))
}

// --- Реестр команд одного прохода композиции ---

// TeamRoster накапливает обогащённые карточки команд в порядке появления.
// Общий реестр на весь проход гарантирует, что одна и та же команда получает
// одинаковые палитру и seed во всех группах и в финале.
type TeamRoster struct {
	byID  map[string]models.TeamDetail
	order []string
}

func NewTeamRoster() *TeamRoster {
	return &TeamRoster{byID: make(map[string]models.TeamDetail)}
}

func (r *TeamRoster) Get(id string) (models.TeamDetail, bool) {
	detail, ok := r.byID[id]
	return detail, ok
}

func (r *TeamRoster) Put(detail models.TeamDetail) {
	if _, exists := r.byID[detail.ID]; !exists {
		r.order = append(r.order, detail.ID)
	}
	r.byID[detail.ID] = detail
}

// Size возвращает количество известных команд; используется как стартовый индекс для
// команд, обнаруженных только через запись матча, чтобы палитры не совпадали.
func (r *TeamRoster) Size() int {
	return len(r.order)
}

func (r *TeamRoster) Details() []models.TeamDetail {
	details := make([]models.TeamDetail, 0, len(r.order))
	for _, id := range r.order {
		details = append(details, r.byID[id])
	}
	return details
}

func (r *TeamRoster) Index() map[string]models.TeamDetail {
	index := make(map[string]models.TeamDetail, len(r.byID))
	for id, detail := range r.byID {
		index[id] = detail
	}
	return index
}
