package game

import (
	"context"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/board"
)

// Roll runs TakeTurn and then advances the turn the way the host does after
// every roll: immediately when nothing is pending, or once the pending
// decision is resolved. A doubles roll leaves the turn open for another roll.
func (e *Engine) Roll(ctx context.Context, st *models.GameState, playerID int, jail models.JailOption) error {
	if err := e.TakeTurn(ctx, st, playerID, jail); err != nil {
		return err
	}
	if st.Over {
		return nil
	}
	p := &st.Players[playerID]
	if st.AwaitingDecision {
		st.AutoEndAfterDecision = st.HasRolled
		return nil
	}
	if st.HasRolled || p.Bankrupt {
		e.advance(st)
	}
	return nil
}

// TakeTurn resolves one roll for the current player: jail, dice, movement and
// landing. It never advances the turn.
func (e *Engine) TakeTurn(ctx context.Context, st *models.GameState, playerID int, jail models.JailOption) error {
	p, err := checkTurn(st, playerID)
	if err != nil {
		return err
	}
	if st.TurnInProgress {
		return ErrTurnInProgress
	}
	if st.AwaitingDecision {
		return ErrDecisionPending
	}
	if st.HasRolled {
		return ErrAlreadyRolled
	}
	if p.Bankrupt {
		return nil
	}

	if p.Jailed {
		switch jail {
		case models.JailPay:
			e.PayJailFine(st, p)
			if p.Bankrupt {
				return nil
			}
		case models.JailCard:
			if err := e.UseJailFreeCard(st, p); err != nil {
				return err
			}
		}
	}

	st.TurnInProgress = true
	if e.rolling != nil {
		e.rolling(st)
	}
	dice, err := e.dice.Roll(ctx)
	st.TurnInProgress = false
	if err != nil {
		return err
	}
	st.Dice = dice
	total := dice[0] + dice[1]
	doubles := dice[0] == dice[1]
	e.log.WithField("player", p.Name).WithField("dice", dice).Debug("rolled")

	if p.Jailed {
		st.HasRolled = true
		st.DoublesStreak = 0
		if !e.jailRoll(st, p, doubles) {
			return nil
		}
		e.MovePlayer(st, p, total)
		e.resolveLanding(st, p, total)
		return nil
	}

	st.HasRolled = true
	if doubles && e.rules.DoublesRollAgain {
		st.DoublesStreak++
		if st.DoublesStreak >= e.rules.SpeedingLimit {
			addLog(st, "%s rolled doubles %d times in a row.", p.Name, st.DoublesStreak)
			e.SendToJail(st, p)
			return nil
		}
		st.HasRolled = false
	} else {
		st.DoublesStreak = 0
	}

	e.MovePlayer(st, p, total)
	e.resolveLanding(st, p, total)
	return nil
}

// jailRoll reports whether the roll freed the player so they may move with it.
// Only doubles move; the forced release after the last failed attempt does not.
func (e *Engine) jailRoll(st *models.GameState, p *models.Player, doubles bool) bool {
	if doubles {
		p.Jailed = false
		p.JailTurns = 0
		addLog(st, "%s rolled doubles and left Jail.", p.Name)
		return true
	}
	p.JailTurns++
	if p.JailTurns >= e.rules.MaxJailTurns {
		p.Jailed = false
		p.JailTurns = 0
		addLog(st, "%s paid $%d to leave Jail.", p.Name, e.rules.JailFine)
		e.ChargePlayer(st, p, e.rules.JailFine, models.NoOwner)
		return false
	}
	addLog(st, "%s remains in Jail.", p.Name)
	return false
}

func (e *Engine) PayJailFine(st *models.GameState, p *models.Player) {
	p.Jailed = false
	p.JailTurns = 0
	addLog(st, "%s paid $%d to leave Jail.", p.Name, e.rules.JailFine)
	e.ChargePlayer(st, p, e.rules.JailFine, models.NoOwner)
}

func (e *Engine) UseJailFreeCard(st *models.GameState, p *models.Player) error {
	if !p.Jailed {
		return ErrNotJailed
	}
	if p.JailFreeCards <= 0 {
		return ErrNoJailFreeCard
	}
	p.JailFreeCards--
	p.Jailed = false
	p.JailTurns = 0
	addLog(st, "%s used a Get Out of Jail Free card.", p.Name)
	return nil
}

// MovePlayer moves p by steps (negative moves backwards). A forward move that
// reaches or crosses GO pays the bonus once, however many laps it spans.
func (e *Engine) MovePlayer(st *models.GameState, p *models.Player, steps int) {
	old := p.Position
	p.Position = board.Wrap(old + steps)
	if steps > 0 && old+steps >= board.TileCount {
		p.Money += e.rules.PassGoBonus
		addLog(st, "%s passed GO and collected $%d", p.Name, e.rules.PassGoBonus)
	}
}

// SendToJail also ends any doubles run: a jailed player never rolls again this turn.
func (e *Engine) SendToJail(st *models.GameState, p *models.Player) {
	p.Jailed = true
	p.JailTurns = 0
	p.Position = board.JailPos
	st.DoublesStreak = 0
	if p.Id == st.CurrentPlayerIndex {
		st.HasRolled = true
	}
	addLog(st, "%s was sent to Jail.", p.Name)
}

// EndTurn passes the turn to the next player still in the game.
func (e *Engine) EndTurn(st *models.GameState, playerID int) error {
	p, err := checkTurn(st, playerID)
	if err != nil {
		return err
	}
	if st.TurnInProgress {
		return ErrTurnInProgress
	}
	if st.AwaitingDecision {
		return ErrDecisionPending
	}
	if !st.HasRolled && !p.Bankrupt {
		return ErrMustRoll
	}
	e.advance(st)
	return nil
}

func (e *Engine) advance(st *models.GameState) {
	st.TurnInProgress = false
	st.AwaitingDecision = false
	st.AutoEndAfterDecision = false
	st.HasRolled = false
	st.DoublesStreak = 0
	st.Pending = nil
	if st.Trade != nil {
		addLog(st, "Pending trade expired.")
		st.Trade = nil
	}
	if e.checkGameOver(st) {
		return
	}
	n := len(st.Players)
	for {
		st.CurrentPlayerIndex = (st.CurrentPlayerIndex + 1) % n
		if !st.Players[st.CurrentPlayerIndex].Bankrupt {
			break
		}
	}
	addLog(st, "Turn: %s", st.Players[st.CurrentPlayerIndex].Name)
}
