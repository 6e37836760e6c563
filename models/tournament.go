package models

import "time"

// TournamentDetail описывает полное составное представление турнира, отдаваемое
// фронтенду. Производное: пересобирается целиком при каждом промахе кеша.
type TournamentDetail struct {
	ID            string                `json:"id"`
	Code          string                `json:"code"`
	Name          string                `json:"name"`
	HeroTitle     string                `json:"heroTitle"`
	Season        string                `json:"season"`
	Location      string                `json:"location"`
	Venue         string                `json:"venue"`
	Description   string                `json:"description"`
	ScheduleLabel string                `json:"scheduleLabel"`
	UpdatedLabel  string                `json:"updatedLabel"`
	Domain        string                `json:"domain"`
	Progress      float64               `json:"progress"`
	MatchesPlayed int                   `json:"matchesPlayed"`
	TotalMatches  int                   `json:"totalMatches"`
	Summary       string                `json:"summary"`
	Groups        []GroupView           `json:"groups"`
	Final         MatchView             `json:"final"`
	Winner        *TeamSlotView         `json:"winner"`
	Teams         []TeamDetail          `json:"teams"`
	TeamsIndex    map[string]TeamDetail `json:"teamsIndex"`
}

// TournamentSummary описывает сокращённую карточку для списка турниров.
type TournamentSummary struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Season        string  `json:"season"`
	HeroTitle     string  `json:"heroTitle"`
	Location      string  `json:"location"`
	ScheduleLabel string  `json:"scheduleLabel"`
	Progress      float64 `json:"progress"`
	MatchesPlayed int     `json:"matchesPlayed"`
	TotalMatches  int     `json:"totalMatches"`
}

// TournamentState задаёт единицу кеширования: summary + detail одного построения.
type TournamentState struct {
	Summary   TournamentSummary `json:"summary"`
	Detail    TournamentDetail  `json:"detail"`
	CreatedAt time.Time         `json:"-"`
}
