package cluster

import "github.com/jonathan/keyword-atlas/internal/textnorm"

// minWordLength filters connective words out of similarity scoring.
const minWordLength = 2

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range textnorm.SignificantWords(text, minWordLength) {
		set[w] = true
	}
	return set
}

// placeNames lists locations commonly embedded in local-intent keywords.
// A shared place name is a stronger clustering signal than an ordinary
// shared word.
var placeNames = map[string]bool{
	"vancouver": true,
	"toronto":   true,
	"calgary":   true,
	"edmonton":  true,
	"ottawa":    true,
	"montreal":  true,
	"winnipeg":  true,
	"victoria":  true,
	"surrey":    true,
	"burnaby":   true,
	"richmond":  true,
	"seattle":   true,
	"portland":  true,
	"denver":    true,
	"phoenix":   true,
	"houston":   true,
	"dallas":    true,
	"austin":    true,
	"chicago":   true,
	"miami":     true,
	"atlanta":   true,
}
