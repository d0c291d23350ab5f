package deck

import (
	"errors"
	"math/rand"

	"github.com/Vishkec/monopoly/app/models"
)

var ErrEmptyDeck = errors.New("deck has no cards")

// Shuffle returns a deck holding a uniform random permutation of cards.
func Shuffle(cards []models.Card, rng *rand.Rand) models.Deck {
	shuffled := append([]models.Card(nil), cards...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return models.Deck{Cards: shuffled}
}

// Draw takes the front card and puts it back at the bottom.
func Draw(d *models.Deck) (models.Card, error) {
	if len(d.Cards) == 0 {
		return models.Card{}, ErrEmptyDeck
	}
	card := d.Cards[0]
	copy(d.Cards, d.Cards[1:])
	d.Cards[len(d.Cards)-1] = card
	return card, nil
}
