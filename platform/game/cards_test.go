package game

import (
	"context"
	"testing"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/board"
)

// landOnChance rolls the current player from pos onto the chance tile at 7 and
// acknowledges the drawn card.
func landOnChance(t *testing.T, e *Engine, st *models.GameState, from int) {
	t.Helper()
	st.Players[st.CurrentPlayerIndex].Position = from
	if err := e.Roll(context.Background(), st, st.CurrentPlayerIndex, models.JailRoll); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if st.Pending == nil || st.Pending.Kind != models.DecisionCard {
		t.Fatalf("expected a card decision, got %+v", st.Pending)
	}
	if err := e.ResolveDecision(st, st.CurrentPlayerIndex, true); err != nil {
		t.Fatalf("acknowledge card: %v", err)
	}
}

func TestCardMoveChainsIntoBuyDecision(t *testing.T) {
	e, st := newTestGame(t, []string{"Ann", "Bob"}, [2]int{1, 2})
	withChance(st, models.Card{Text: "Advance to Tokyo", Action: models.CardMove, Value: 31})
	landOnChance(t, e, st, 4)

	if st.Players[0].Position != 31 {
		t.Fatalf("expected Tokyo, got %d", st.Players[0].Position)
	}
	if !st.AwaitingDecision || st.Pending == nil || st.Pending.Kind != models.DecisionBuy || st.Pending.TileId != 31 {
		t.Fatalf("expected buy decision on Tokyo, got %+v", st.Pending)
	}
	if st.CurrentPlayerIndex != 0 {
		t.Fatalf("turn must wait for the chained decision")
	}
	if err := e.ResolveDecision(st, 0, false); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if st.CurrentPlayerIndex != 1 {
		t.Fatalf("turn should pass once the chain resolves")
	}
}

func TestAdvanceToGoPaysBonus(t *testing.T) {
	e, st := newTestGame(t, []string{"Ann", "Bob"}, [2]int{1, 2})
	withChance(st, models.Card{Text: "Advance to GO", Action: models.CardMove, Value: 0})
	landOnChance(t, e, st, 4)
	ann := st.Players[0]
	if ann.Position != 0 || ann.Money != board.StartMoney+board.PassGoBonus {
		t.Fatalf("expected GO with bonus, got %+v", ann)
	}
}

func TestGoBackThreeSpaces(t *testing.T) {
	e, st := newTestGame(t, []string{"Ann", "Bob"}, [2]int{1, 2})
	withChance(st, models.Card{Text: "Go back 3 spaces", Action: models.CardMoveSteps, Value: -3})
	landOnChance(t, e, st, 4)
	ann := st.Players[0]
	if ann.Position != 4 || ann.Money != board.StartMoney {
		t.Fatalf("expected Income Tax without bonus, got %+v", ann)
	}
	if st.Pending == nil || st.Pending.Kind != models.DecisionTax || st.Pending.Amount != 200 {
		t.Fatalf("expected income tax decision, got %+v", st.Pending)
	}
}

func TestNearestRailWrapsAndChargesRent(t *testing.T) {
	e, st := newTestGame(t, []string{"Ann", "Bob"}, [2]int{1, 2})
	give(st, 1, 5, 15)
	withChance(st, models.Card{Text: "Advance to nearest station", Action: models.CardNearestRail})
	landOnChance(t, e, st, 33)

	ann := st.Players[0]
	if ann.Position != 5 {
		t.Fatalf("expected North Station, got %d", ann.Position)
	}
	if ann.Money != board.StartMoney+board.PassGoBonus {
		t.Fatalf("wrapping forward should pay GO, money %d", ann.Money)
	}
	if st.Pending == nil || st.Pending.Kind != models.DecisionRent || st.Pending.Amount != 50 || st.Pending.Creditor != 1 {
		t.Fatalf("expected $50 station rent to Bob, got %+v", st.Pending)
	}
}

func TestNearestRailAhead(t *testing.T) {
	if got := nearestRail(7); got != 15 {
		t.Fatalf("expected 15, got %d", got)
	}
	if got := nearestRail(35); got != 5 {
		t.Fatalf("expected wrap to 5, got %d", got)
	}
}

func TestUtilityRentUsesLastRoll(t *testing.T) {
	e, st := newTestGame(t, []string{"Ann", "Bob"}, [2]int{4, 5})
	give(st, 1, 12, 28)
	st.CommunityDeck = models.Deck{Cards: []models.Card{{Text: "Go back", Action: models.CardMoveSteps, Value: -5}}}
	st.Players[0].Position = 24
	if err := e.Roll(context.Background(), st, 0, models.JailRoll); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if st.Players[0].Position != 33 {
		t.Fatalf("expected community chest at 33, got %d", st.Players[0].Position)
	}
	if err := e.ResolveDecision(st, 0, true); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if st.Players[0].Position != 28 || st.Pending == nil || st.Pending.Amount != 9*10 {
		t.Fatalf("expected water works rent from the last roll, got %+v", st.Pending)
	}
}

func TestMoneyAndJailFreeCards(t *testing.T) {
	e, st := newTestGame(t, []string{"Ann", "Bob"}, [2]int{1, 2})
	withChance(st,
		models.Card{Text: "Pay poor tax of $15", Action: models.CardMoney, Value: -15},
		models.Card{Text: "Get out of jail free", Action: models.CardJailFree},
	)
	landOnChance(t, e, st, 4)
	if st.Players[0].Money != board.StartMoney-15 {
		t.Fatalf("expected poor tax, money %d", st.Players[0].Money)
	}

	st.CurrentPlayerIndex = 0
	st.HasRolled = false
	landOnChance(t, e, st, 4)
	if st.Players[0].JailFreeCards != 1 {
		t.Fatalf("expected a jail free card")
	}
	if len(st.ChanceDeck.Cards) != 2 {
		t.Fatalf("deck size must not change")
	}
}

func TestMoneyCardCanBankrupt(t *testing.T) {
	e, st := newTestGame(t, []string{"Ann", "Bob", "Cy"}, [2]int{1, 2})
	withChance(st, models.Card{Text: "Pay", Action: models.CardMoney, Value: -50})
	st.Players[0].Money = 10
	landOnChance(t, e, st, 4)
	if !st.Players[0].Bankrupt {
		t.Fatalf("expected bankruptcy")
	}
	if st.CurrentPlayerIndex != 1 {
		t.Fatalf("turn should pass from a bankrupt player")
	}
}

func TestJailCard(t *testing.T) {
	e, st := newTestGame(t, []string{"Ann", "Bob"}, [2]int{1, 2})
	withChance(st, models.Card{Text: "Go to Jail", Action: models.CardJail})
	landOnChance(t, e, st, 4)
	if !st.Players[0].Jailed || st.Players[0].Position != board.JailPos {
		t.Fatalf("expected jail")
	}
	if st.CurrentPlayerIndex != 1 {
		t.Fatalf("turn should pass")
	}
}
