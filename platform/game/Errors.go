package game

import "errors"

var (
	ErrGameOver          = errors.New("game is over")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrTurnInProgress    = errors.New("dice are still rolling")
	ErrAlreadyRolled     = errors.New("you have already rolled the dice")
	ErrMustRoll          = errors.New("you must roll the dice first")
	ErrDecisionPending   = errors.New("a decision is pending")
	ErrNoDecision        = errors.New("no decision is pending")
	ErrMandatory         = errors.New("this payment cannot be declined")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotBuildable      = errors.New("cannot build on this tile")
	ErrNotJailed         = errors.New("player is not in jail")
	ErrNoJailFreeCard    = errors.New("no get out of jail free card")
	ErrInvalidTrade      = errors.New("invalid trade")
	ErrTradePending      = errors.New("a trade is already pending")
	ErrNoTrade           = errors.New("no trade is pending")
	ErrPlayerCount       = errors.New("unsupported number of players")
)
