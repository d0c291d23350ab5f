package game

import (
	"fmt"
	"math/rand"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/board"
	"github.com/Vishkec/monopoly/platform/deck"
	"github.com/sirupsen/logrus"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

type Rules struct {
	StartMoney   int
	PassGoBonus  int
	JailFine     int
	MaxJailTurns int
	// DoublesRollAgain lets a player roll again after doubles; SpeedingLimit
	// consecutive doubles send them to jail instead.
	DoublesRollAgain bool
	SpeedingLimit    int
	LogWindow        int
}

func DefaultRules() Rules {
	return Rules{
		StartMoney:       board.StartMoney,
		PassGoBonus:      board.PassGoBonus,
		JailFine:         board.JailFine,
		MaxJailTurns:     3,
		DoublesRollAgain: true,
		SpeedingLimit:    3,
		LogWindow:        12,
	}
}

// Engine applies turn and economic operations to a GameState handed to it.
// It keeps no game state of its own.
type Engine struct {
	rules   Rules
	dice    Roller
	rng     *rand.Rand
	log     *logrus.Entry
	rolling func(*models.GameState)
}

func New(rules Rules, dice Roller, rng *rand.Rand, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{rules: rules, dice: dice, rng: rng, log: log.WithField("component", "engine")}
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// OnRollStart registers fn to observe the state while the dice are rolling.
func (e *Engine) OnRollStart(fn func(*models.GameState)) {
	e.rolling = fn
}

// NewGame seats the players and shuffles both decks.
func (e *Engine) NewGame(seats []models.Seat) (*models.GameState, error) {
	if len(seats) < MinPlayers || len(seats) > MaxPlayers {
		return nil, fmt.Errorf("%w: %d", ErrPlayerCount, len(seats))
	}
	st := &models.GameState{
		Tiles:         board.Tiles(),
		Players:       make([]models.Player, len(seats)),
		Dice:          [2]int{1, 1},
		ChanceDeck:    deck.Shuffle(deck.ChanceCards(), e.rng),
		CommunityDeck: deck.Shuffle(deck.CommunityCards(), e.rng),
		Logs:          []string{},
		Winner:        models.NoOwner,
	}
	for i, seat := range seats {
		st.Players[i] = e.newPlayer(i, seat)
	}
	addLog(st, "Game started!")
	e.log.WithField("players", len(seats)).Info("game started")
	return st, nil
}

func (e *Engine) newPlayer(id int, seat models.Seat) models.Player {
	name := seat.Name
	if name == "" {
		name = fmt.Sprintf("Player %d", id+1)
	}
	color := seat.Color
	if color == "" {
		color = board.PlayerColors[id%len(board.PlayerColors)]
	}
	return models.Player{
		Id:         id,
		Name:       name,
		Color:      color,
		Money:      e.rules.StartMoney,
		Properties: []int{},
	}
}

// ActivePlayers returns the players still in the game.
func ActivePlayers(st *models.GameState) []*models.Player {
	var active []*models.Player
	for i := range st.Players {
		if !st.Players[i].Bankrupt {
			active = append(active, &st.Players[i])
		}
	}
	return active
}

// RecentLogs returns up to n entries, newest first.
func RecentLogs(st *models.GameState, n int) []string {
	out := make([]string, 0, n)
	for i := len(st.Logs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, st.Logs[i])
	}
	return out
}

func addLog(st *models.GameState, format string, args ...interface{}) {
	st.Logs = append(st.Logs, fmt.Sprintf(format, args...))
}

func player(st *models.GameState, id int) (*models.Player, error) {
	if id < 0 || id >= len(st.Players) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	return &st.Players[id], nil
}

// checkTurn guards operations that only the current player may perform.
func checkTurn(st *models.GameState, playerID int) (*models.Player, error) {
	if st.Over {
		return nil, ErrGameOver
	}
	p, err := player(st, playerID)
	if err != nil {
		return nil, err
	}
	if playerID != st.CurrentPlayerIndex {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// checkGameOver ends the game once a single player is left standing.
func (e *Engine) checkGameOver(st *models.GameState) bool {
	if st.Over {
		return true
	}
	active := ActivePlayers(st)
	if len(active) > 1 {
		return false
	}
	st.Over = true
	st.Pending = nil
	st.Trade = nil
	st.AwaitingDecision = false
	st.AutoEndAfterDecision = false
	if len(active) == 1 {
		st.Winner = active[0].Id
		addLog(st, "%s wins!", active[0].Name)
		e.log.WithField("winner", active[0].Name).Info("game over")
	}
	return true
}
