package game

import (
	"fmt"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/board"
	"github.com/Vishkec/monopoly/platform/deck"
)

// resolveLanding dispatches on the tile the player now stands on. Anything
// that needs the player's confirmation becomes the pending decision.
func (e *Engine) resolveLanding(st *models.GameState, p *models.Player, diceTotal int) {
	tile := &st.Tiles[p.Position]
	switch tile.Type {
	case models.TileProperty, models.TileRailroad, models.TileUtility:
		e.landOnOwnable(st, p, tile, diceTotal)
	case models.TileChance:
		e.landOnCard(st, p, tile, models.DeckChance)
	case models.TileCommunity:
		e.landOnCard(st, p, tile, models.DeckCommunity)
	case models.TileTax:
		e.await(st, models.Decision{Kind: models.DecisionTax, PlayerId: p.Id, TileId: tile.Id, Amount: tile.Amount, Creditor: models.NoOwner})
	case models.TileGoToJail:
		e.SendToJail(st, p)
	}
}

func (e *Engine) landOnOwnable(st *models.GameState, p *models.Player, tile *models.Tile, diceTotal int) {
	switch tile.Owner {
	case models.NoOwner:
		e.await(st, models.Decision{Kind: models.DecisionBuy, PlayerId: p.Id, TileId: tile.Id, Amount: tile.Price, Creditor: models.NoOwner})
	case p.Id:
		// own tile
	default:
		rent := RentFor(st, tile, diceTotal)
		e.await(st, models.Decision{Kind: models.DecisionRent, PlayerId: p.Id, TileId: tile.Id, Amount: rent, Creditor: tile.Owner})
	}
}

func (e *Engine) landOnCard(st *models.GameState, p *models.Player, tile *models.Tile, kind models.DeckKind) {
	card, err := deck.Draw(st.Deck(kind))
	if err != nil {
		e.log.WithError(err).WithField("deck", kind).Warn("card draw failed")
		return
	}
	e.await(st, models.Decision{Kind: models.DecisionCard, PlayerId: p.Id, TileId: tile.Id, Creditor: models.NoOwner, Deck: kind, Card: &card})
}

func (e *Engine) await(st *models.GameState, d models.Decision) {
	st.Pending = &d
	st.AwaitingDecision = true
}

// ResolveDecision settles the pending decision. accept buys the tile on a buy
// decision; rent and tax cannot be declined and a card is applied either way.
func (e *Engine) ResolveDecision(st *models.GameState, playerID int, accept bool) error {
	if st.Over {
		return ErrGameOver
	}
	d := st.Pending
	if d == nil {
		return ErrNoDecision
	}
	if playerID != d.PlayerId {
		return ErrNotYourTurn
	}
	if !accept && (d.Kind == models.DecisionRent || d.Kind == models.DecisionTax) {
		return ErrMandatory
	}
	p := &st.Players[d.PlayerId]
	st.Pending = nil
	st.AwaitingDecision = false

	switch d.Kind {
	case models.DecisionBuy:
		tile := &st.Tiles[d.TileId]
		if accept {
			e.buy(st, p, tile)
		} else {
			addLog(st, "%s skipped buying %s.", p.Name, tile.Name)
		}
	case models.DecisionRent:
		creditor := &st.Players[d.Creditor]
		addLog(st, "%s paid $%d to %s.", p.Name, d.Amount, creditor.Name)
		e.ChargePlayer(st, p, d.Amount, d.Creditor)
	case models.DecisionTax:
		addLog(st, "%s paid $%d in taxes.", p.Name, d.Amount)
		e.ChargePlayer(st, p, d.Amount, models.NoOwner)
	case models.DecisionCard:
		e.applyCard(st, p, *d.Card)
	default:
		return fmt.Errorf("unknown decision kind %q", d.Kind)
	}

	if st.Over {
		return nil
	}
	if st.Pending != nil {
		// the card moved the player onto another tile that needs an answer
		st.AwaitingDecision = true
		return nil
	}
	if st.AutoEndAfterDecision || p.Bankrupt || p.Jailed {
		e.advance(st)
	}
	return nil
}

func (e *Engine) buy(st *models.GameState, p *models.Player, tile *models.Tile) {
	if tile.Owner != models.NoOwner {
		return
	}
	if p.Money < tile.Price {
		addLog(st, "%s cannot afford %s.", p.Name, tile.Name)
		e.log.WithField("player", p.Name).WithField("tile", tile.Name).Debug(ErrInsufficientFunds)
		return
	}
	p.Money -= tile.Price
	tile.Owner = p.Id
	p.Properties = append(p.Properties, tile.Id)
	addLog(st, "%s bought %s.", p.Name, tile.Name)
}

// applyCard carries out a drawn card. Relocations resolve the new landing with
// the last dice total, since no fresh roll happens.
func (e *Engine) applyCard(st *models.GameState, p *models.Player, card models.Card) {
	diceTotal := st.Dice[0] + st.Dice[1]
	switch card.Action {
	case models.CardMoney:
		addLog(st, "%s: %s", p.Name, card.Text)
		if card.Value >= 0 {
			p.Money += card.Value
		} else {
			e.ChargePlayer(st, p, -card.Value, models.NoOwner)
		}
	case models.CardMove:
		addLog(st, "%s: %s", p.Name, card.Text)
		e.MovePlayer(st, p, board.Wrap(card.Value-p.Position))
		e.resolveLanding(st, p, diceTotal)
	case models.CardMoveSteps:
		addLog(st, "%s: %s", p.Name, card.Text)
		e.MovePlayer(st, p, card.Value)
		e.resolveLanding(st, p, diceTotal)
	case models.CardJail:
		addLog(st, "%s: %s", p.Name, card.Text)
		e.SendToJail(st, p)
	case models.CardNearestRail:
		addLog(st, "%s: %s", p.Name, card.Text)
		e.MovePlayer(st, p, board.Wrap(nearestRail(p.Position)-p.Position))
		e.resolveLanding(st, p, diceTotal)
	case models.CardJailFree:
		p.JailFreeCards++
		addLog(st, "%s received a Get Out of Jail Free card.", p.Name)
	}
}

// nearestRail is the first railroad strictly ahead of pos, wrapping to the first one.
func nearestRail(pos int) int {
	rails := board.Railroads()
	for _, id := range rails {
		if id > pos {
			return id
		}
	}
	return rails[0]
}
