package game

import (
	"math/rand"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
)

// Deck is a per-game shuffled pile with its discard counterpart. Decks are
// created at game start so no deck state is shared between games. When the
// draw pile empties the discard pile is reshuffled into a new draw pile.
// Get-out-of-jail cards are retained by the drawing player and only return
// to the discard pile when consumed.
type Deck struct {
	kind    board.DeckKind
	draw    []*board.Card
	discard []*board.Card
	rng     *rand.Rand
}

// NewDeck builds a shuffled deck from static card definitions.
func NewDeck(kind board.DeckKind, cards []*board.Card, rng *rand.Rand) *Deck {
	d := &Deck{
		kind:    kind,
		draw:    make([]*board.Card, len(cards)),
		discard: make([]*board.Card, 0, len(cards)),
		rng:     rng,
	}
	copy(d.draw, cards)
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// Draw takes the top card, reshuffling the discard pile first if the draw
// pile is empty. Returns nil only if every card is held by players.
func (d *Deck) Draw() *board.Card {
	if len(d.draw) == 0 {
		if len(d.discard) == 0 {
			return nil
		}
		d.draw = d.discard
		d.discard = make([]*board.Card, 0, len(d.draw))
		d.shuffle()
	}
	card := d.draw[0]
	d.draw = d.draw[1:]
	return card
}

// Discard returns a drawn card to the discard pile.
func (d *Deck) Discard(card *board.Card) {
	d.discard = append(d.discard, card)
}

// Remaining reports how many cards are left in the draw pile.
func (d *Deck) Remaining() int {
	return len(d.draw)
}
