package game

import (
	"fmt"
	"strings"

	"github.com/Vishkec/monopoly/app/models"
)

// ProposeTrade validates an offer from the current player and parks it until
// the counterparty answers. Invalid offers never reach the counterparty.
func (e *Engine) ProposeTrade(st *models.GameState, offer models.TradeOffer) error {
	from, err := checkTurn(st, offer.From)
	if err != nil {
		return err
	}
	if st.Trade != nil {
		return ErrTradePending
	}
	if err := validateTrade(st, offer); err != nil {
		addLog(st, "Trade rejected: %v", err)
		return err
	}
	to := &st.Players[offer.To]
	st.Trade = &offer
	addLog(st, "%s offers %s for %s.", from.Name, describeSide(st, offer.OfferMoney, offer.OfferProperty), describeSide(st, offer.RequestMoney, offer.RequestProperty))
	e.log.WithField("from", from.Name).WithField("to", to.Name).Debug("trade proposed")
	return nil
}

// RespondTrade lets the counterparty accept or decline. Acceptance applies
// both sides together after re-checking the offer against the current state.
func (e *Engine) RespondTrade(st *models.GameState, playerID int, accept bool) error {
	if st.Over {
		return ErrGameOver
	}
	offer := st.Trade
	if offer == nil {
		return ErrNoTrade
	}
	if playerID != offer.To {
		return ErrNotYourTurn
	}
	st.Trade = nil
	from, to := &st.Players[offer.From], &st.Players[offer.To]
	if !accept {
		addLog(st, "%s declined trade with %s.", to.Name, from.Name)
		return nil
	}
	if err := validateTrade(st, *offer); err != nil {
		addLog(st, "Trade between %s and %s is no longer valid.", from.Name, to.Name)
		return err
	}

	from.Money += offer.RequestMoney - offer.OfferMoney
	to.Money += offer.OfferMoney - offer.RequestMoney
	if offer.OfferProperty != models.NoTile {
		transfer(st, from, to, offer.OfferProperty)
	}
	if offer.RequestProperty != models.NoTile {
		transfer(st, to, from, offer.RequestProperty)
	}
	addLog(st, "%s accepted trade with %s.", to.Name, from.Name)
	return nil
}

func (e *Engine) CancelTrade(st *models.GameState, playerID int) error {
	if st.Trade == nil {
		return ErrNoTrade
	}
	if st.Trade.From != playerID {
		return ErrNotYourTurn
	}
	addLog(st, "%s cancelled the trade.", st.Players[playerID].Name)
	st.Trade = nil
	return nil
}

func transfer(st *models.GameState, from, to *models.Player, tileID int) {
	from.RemoveProperty(tileID)
	to.Properties = append(to.Properties, tileID)
	st.Tiles[tileID].Owner = to.Id
}

func validateTrade(st *models.GameState, offer models.TradeOffer) error {
	if offer.To < 0 || offer.To >= len(st.Players) || offer.To == offer.From {
		return fmt.Errorf("%w: no such counterparty", ErrInvalidTrade)
	}
	from, to := &st.Players[offer.From], &st.Players[offer.To]
	if to.Bankrupt || from.Bankrupt {
		return fmt.Errorf("%w: bankrupt players cannot trade", ErrInvalidTrade)
	}
	if offer.OfferMoney < 0 || offer.RequestMoney < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidTrade)
	}
	if offer.OfferMoney == 0 && offer.RequestMoney == 0 &&
		offer.OfferProperty == models.NoTile && offer.RequestProperty == models.NoTile {
		return fmt.Errorf("%w: select a property or money to trade", ErrInvalidTrade)
	}
	if offer.OfferMoney > from.Money || offer.RequestMoney > to.Money {
		return fmt.Errorf("%w: trade amounts exceed available money", ErrInvalidTrade)
	}
	if offer.OfferProperty != models.NoTile && !ownsTile(st, from, offer.OfferProperty) {
		return fmt.Errorf("%w: %s does not own the offered property", ErrInvalidTrade, from.Name)
	}
	if offer.RequestProperty != models.NoTile && !ownsTile(st, to, offer.RequestProperty) {
		return fmt.Errorf("%w: %s does not own the requested property", ErrInvalidTrade, to.Name)
	}
	return nil
}

func ownsTile(st *models.GameState, p *models.Player, tileID int) bool {
	if tileID < 0 || tileID >= len(st.Tiles) {
		return false
	}
	return st.Tiles[tileID].Owner == p.Id && p.Owns(tileID)
}

func describeSide(st *models.GameState, money, tileID int) string {
	var parts []string
	if money > 0 {
		parts = append(parts, fmt.Sprintf("$%d", money))
	}
	if tileID != models.NoTile {
		parts = append(parts, st.Tiles[tileID].Name)
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " and ")
}
