package models

import (
	"strings"
	"time"
)

// MatchStatus нормализует статус матча, как его отдаёт matches-service.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
)

// NormalizeStatus приводит произвольное значение статуса к одному из известных.
// Неизвестные значения считаются "scheduled": matches-service исторически
// присылал и пустые строки, и статусы в верхнем регистре.
func NormalizeStatus(raw string) MatchStatus {
	switch MatchStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusLive:
		return StatusLive
	case StatusFinished:
		return StatusFinished
	default:
		return StatusScheduled
	}
}

// MatchRecord описывает запись матча, принадлежащую matches-service. Здесь она только
// читается: счёт, таймеры и персистентность остаются зоной ответственности того сервиса.
type MatchRecord struct {
	ID           int     `json:"id"`
	HomeTeamID   int     `json:"homeTeamId"`
	AwayTeamID   int     `json:"awayTeamId"`
	HomeTeamName *string `json:"homeTeamName,omitempty"`
	AwayTeamName *string `json:"awayTeamName,omitempty"`
	Status       string  `json:"status"`
	HomeScore    *int    `json:"homeScore,omitempty"`
	AwayScore    *int    `json:"awayScore,omitempty"`
	DateTime     *string `json:"dateTime,omitempty"`
	Label        *string `json:"label,omitempty"`
	Round        *string `json:"round,omitempty"`
	Venue        *string `json:"venue,omitempty"`
	Broadcast    *string `json:"broadcast,omitempty"`
}

// ScheduledAt парсит dateTime записи. Сервис присылает либо RFC3339, либо
// локальное время без зоны ("2006-01-02T15:04:05").
func (m *MatchRecord) ScheduledAt() *time.Time {
	if m.DateTime == nil || *m.DateTime == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, *m.DateTime); err == nil {
			return &t
		}
	}
	return nil
}
