package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_CasingAndWhitespace(t *testing.T) {
	assert.Equal(t, "best dentist vancouver", Normalize("  Best   Dentist Vancouver "))
}

func TestNormalize_PunctuationStripped(t *testing.T) {
	assert.Equal(t, "plumbers emergency repair", Normalize("Plumbers: Emergency-Repair!"))
}

func TestNormalize_EntitiesDecoded(t *testing.T) {
	assert.Equal(t, "roofing siding", Normalize("Roofing &amp; Siding"))
}

func TestNormalize_DiacriticsFolded(t *testing.T) {
	assert.Equal(t, "cafe montreal", Normalize("Café Montréal"))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize("   "))
}

func TestWords_Empty(t *testing.T) {
	assert.Nil(t, Words(""))
}

func TestWords_Split(t *testing.T) {
	assert.Equal(t, []string{"local", "seo", "services"}, Words("Local SEO Services"))
}

func TestSignificantWords_FiltersShortWords(t *testing.T) {
	words := SignificantWords("best spa in the city", 2)
	assert.Equal(t, []string{"best", "spa", "the", "city"}, words)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "emergency-plumbing-repair", Slugify("Emergency Plumbing & Repair"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Water Heater Installation", TitleCase("water heater installation"))
}
