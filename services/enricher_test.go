package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/tournament-aggregator/models"
)

func TestEnrichTeam_BasicFields(t *testing.T) {
	city := "Madrid"
	coach := "García"
	detail := EnrichTeam(models.RawTeam{ID: 7, Name: "Lions", City: &city, Coach: &coach}, 0)

	assert.Equal(t, "7", detail.ID)
	assert.Equal(t, "Lions", detail.Name)
	assert.Equal(t, "LIO", detail.ShortName)
	assert.Equal(t, 1, detail.Seed)
	assert.Equal(t, "0-0", detail.Record)
	assert.Equal(t, paletteTable[0], detail.Palette)
	assert.Contains(t, detail.Narrative, "Lions")
	assert.Contains(t, detail.Narrative, "Madrid")
	assert.Contains(t, detail.Narrative, "García")
}

func TestEnrichTeam_AcronymPreferredForShortName(t *testing.T) {
	acronym := "lns"
	detail := EnrichTeam(models.RawTeam{ID: 1, Name: "Lions", Acronym: &acronym}, 0)
	assert.Equal(t, "LNS", detail.ShortName)
}

func TestEnrichTeam_FallbackNameFromID(t *testing.T) {
	detail := EnrichTeam(models.RawTeam{ID: 12}, 0)
	assert.Equal(t, "Equipo 12", detail.Name)
	assert.Equal(t, "EQ1", detail.ShortName, "short code comes from the id, not the defaulted name")
}

func TestEnrichTeam_ShortCodeFromIDWhenNameAndAcronymMissing(t *testing.T) {
	// "EQ" + id, обрезанный до трёх рун.
	assert.Equal(t, "EQ7", EnrichTeam(models.RawTeam{ID: 7}, 0).ShortName)
	assert.Equal(t, "EQ1", EnrichTeam(models.RawTeam{ID: 104}, 0).ShortName)
}

func TestEnrichTeam_PaletteWrapsAroundTable(t *testing.T) {
	first := EnrichTeam(rawTeam(1, "A"), 0)
	wrapped := EnrichTeam(rawTeam(2, "B"), len(paletteTable))
	assert.Equal(t, first.Palette, wrapped.Palette)

	shifted := EnrichTeam(rawTeam(3, "C"), 1)
	assert.NotEqual(t, first.Palette, shifted.Palette)
}

func TestEnrichTeam_Deterministic(t *testing.T) {
	a := EnrichTeam(rawTeam(5, "Bears"), 3)
	b := EnrichTeam(rawTeam(5, "Bears"), 3)
	assert.Equal(t, a, b)
}

func TestFallbackTeam_UsesEmbeddedName(t *testing.T) {
	name := "Wolves"
	raw := FallbackTeam(4, &name)
	assert.Equal(t, 4, raw.ID)
	assert.Equal(t, "Wolves", raw.Name)

	raw = FallbackTeam(4, nil)
	assert.Equal(t, "Equipo 4", raw.Name)
}

func TestTeamRoster_IndexContinuation(t *testing.T) {
	roster := NewTeamRoster()
	roster.Put(EnrichTeam(rawTeam(1, "Lions"), 0))
	roster.Put(EnrichTeam(rawTeam(2, "Tigers"), 1))

	assert.Equal(t, 2, roster.Size())

	// Команда, найденная только в записи матча, продолжает нумерацию.
	fallback := EnrichTeam(FallbackTeam(3, nil), roster.Size())
	roster.Put(fallback)
	assert.Equal(t, 3, fallback.Seed)
	assert.Equal(t, paletteTable[2], fallback.Palette)

	details := roster.Details()
	assert.Equal(t, []string{"1", "2", "3"}, []string{details[0].ID, details[1].ID, details[2].ID})
}
