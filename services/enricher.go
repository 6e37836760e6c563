package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/tournament-aggregator/models"
)

// Палитры фронтенда. Выбор детерминированный: index mod len(paletteTable).
var paletteTable = []models.Palette{
	{Primary: "#2563eb", Secondary: "#60a5fa"},
	{Primary: "#f97316", Secondary: "#fed7aa"},
	{Primary: "#10b981", Secondary: "#6ee7b7"},
	{Primary: "#7c3aed", Secondary: "#c4b5fd"},
	{Primary: "#14b8a6", Secondary: "#5eead4"},
	{Primary: "#0ea5e9", Secondary: "#93c5fd"},
	{Primary: "#f87171", Secondary: "#fecaca"},
	{Primary: "#a855f7", Secondary: "#d8b4fe"},
}

// PaletteFor возвращает палитру по индексу появления команды или группы.
func PaletteFor(index int) models.Palette {
	return paletteTable[index%len(paletteTable)]
}

// EnrichTeam превращает сырую команду каталога в карточку для отображения.
// Чистая функция от (raw, index): никакие инварианты от сгенерированных
// narrative/stats не зависят, это чистая косметика.
func EnrichTeam(raw models.RawTeam, index int) models.TeamDetail {
	name := raw.Name
	if name == "" {
		name = fmt.Sprintf("Equipo %d", raw.ID)
	}

	// Короткий код строится из сырых полей, без дефолтного имени: иначе
	// команда без названия получала бы "EQU" вместо кода из id.
	short := derefString(raw.Acronym)
	if short == "" {
		short = raw.Name
	}
	if short == "" {
		short = "EQ" + strconv.Itoa(raw.ID)
	}
	shortRunes := []rune(short)
	if len(shortRunes) > 3 {
		shortRunes = shortRunes[:3]
	}

	city := "la liga"
	if raw.City != nil && *raw.City != "" {
		city = *raw.City
	}
	coach := "su cuerpo técnico actual"
	if raw.Coach != nil && *raw.Coach != "" {
		coach = *raw.Coach
	}

	return models.TeamDetail{
		ID:        strconv.Itoa(raw.ID),
		Name:      name,
		ShortName: strings.ToUpper(string(shortRunes)),
		City:      raw.City,
		Coach:     raw.Coach,
		Seed:      index + 1,
		Record:    "0-0",
		Streak:    "N/A",
		Palette:   PaletteFor(index),
		Narrative: fmt.Sprintf("El conjunto %s representa a %s dirigido por %s.", name, city, coach),
		Players: []string{
			name + " Player 1",
			name + " Player 2",
			name + " Player 3",
		},
		Stats: []models.TeamStat{
			{Label: "PPG", Value: fmt.Sprintf("%.1f", 70.0+float64(index)*2)},
			{Label: "RPG", Value: fmt.Sprintf("%.1f", 34.0+float64(index))},
			{Label: "APG", Value: fmt.Sprintf("%.1f", 18.0+float64(index))},
		},
	}
}

// FallbackTeam синтезирует сырую команду из фрагмента записи матча. Нужна для
// команд, которых нет в каталоге, но на которые ссылается назначенный матч.
func FallbackTeam(teamID int, embeddedName *string) models.RawTeam {
	name := derefString(embeddedName)
	if name == "" {
		name = fmt.Sprintf("Equipo %d", teamID)
	}
	return models.RawTeam{ID: teamID, Name: name}
}

