package models

// RawTeam описывает команду в том виде, в котором её отдаёт teams-service.
type RawTeam struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Acronym *string `json:"acronym,omitempty"`
	City    *string `json:"city,omitempty"`
	Coach   *string `json:"coach,omitempty"`
}

// Palette задаёт пару цветов команды для фронтенда.
type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// TeamStat описывает одну строку сгенерированной статистики (чисто презентационная).
type TeamStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TeamDetail описывает обогащённую карточку команды. Собирается заново на каждом
// построении представления турнира, нигде не хранится.
type TeamDetail struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ShortName string     `json:"shortName"`
	City      *string    `json:"city"`
	Coach     *string    `json:"coach"`
	Seed      int        `json:"seed"`
	Record    string     `json:"record"`
	Streak    string     `json:"streak"`
	Palette   Palette    `json:"palette"`
	Narrative string     `json:"narrative"`
	Players   []string   `json:"players"`
	Stats     []TeamStat `json:"stats"`
}
