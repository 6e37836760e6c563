package models

// TeamSlotView описывает одну из двух сторон матча в представлении: либо заглушка
// ("Ganador Grupo A"), либо привязка к конкретной TeamDetail.
type TeamSlotView struct {
	ID            *string     `json:"id"`
	DisplayName   string      `json:"displayName"`
	ShortName     *string     `json:"shortName,omitempty"`
	Seed          *int        `json:"seed,omitempty"`
	Record        *string     `json:"record,omitempty"`
	Score         *int        `json:"score"`
	IsPlaceholder bool        `json:"isPlaceholder"`
	OriginLabel   *string     `json:"originLabel"`
	Detail        *TeamDetail `json:"detail"`
	Palette       *Palette    `json:"palette"`
}

// MatchView описывает матч в составе турнирного представления. Либо заглушка для
// незаполненного/недоступного слота, либо проекция живой записи matches-service.
type MatchView struct {
	ID             string       `json:"id"`
	Label          string       `json:"label"`
	Round          string       `json:"round"`
	Status         MatchStatus  `json:"status"`
	StatusLabel    string       `json:"statusLabel"`
	ScheduleLabel  string       `json:"scheduleLabel"`
	ScheduledAtUTC *string      `json:"scheduledAtUtc"`
	Venue          string       `json:"venue"`
	Broadcast      *string      `json:"broadcast"`
	TeamA          TeamSlotView `json:"teamA"`
	TeamB          TeamSlotView `json:"teamB"`
	WinnerID       *string      `json:"winnerId"`
	GroupID        string       `json:"groupId"`
	SlotIndex      int          `json:"slotIndex"`
	IsPlaceholder  bool         `json:"isPlaceholder"`
}

// GroupView описывает группу с её матчами и производными результатами.
type GroupView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Color      string         `json:"color"`
	Matches    []MatchView    `json:"matches"`
	Qualifiers []TeamSlotView `json:"qualifiers"`
	SemiFinal  *MatchView     `json:"semiFinal"`
}
