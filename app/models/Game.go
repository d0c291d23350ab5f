package models

import "encoding/json"

type DecisionKind string

const (
	DecisionBuy  DecisionKind = "buy"
	DecisionRent DecisionKind = "rent"
	DecisionCard DecisionKind = "card"
	DecisionTax  DecisionKind = "tax"
)

// Decision is a landing consequence waiting on the current player.
type Decision struct {
	Kind     DecisionKind `json:"kind"`
	PlayerId int          `json:"playerId"`
	TileId   int          `json:"tileId"`
	Amount   int          `json:"amount,omitempty"`
	Creditor int          `json:"creditor"`
	Deck     DeckKind     `json:"deck,omitempty"`
	Card     *Card        `json:"card,omitempty"`
}

// TradeOffer moves money and at most one property each way between two players.
type TradeOffer struct {
	From            int `json:"from"`
	To              int `json:"to"`
	OfferMoney      int `json:"offerMoney"`
	RequestMoney    int `json:"requestMoney"`
	OfferProperty   int `json:"offerProperty"`
	RequestProperty int `json:"requestProperty"`
}

// GameState is the replicated aggregate. The host owns the only writable copy.
type GameState struct {
	Version              uint64      `json:"version"`
	Tiles                []Tile      `json:"tiles"`
	Players              []Player    `json:"players"`
	CurrentPlayerIndex   int         `json:"currentPlayerIndex"`
	Dice                 [2]int      `json:"dice"`
	DoublesStreak        int         `json:"doublesStreak"`
	ChanceDeck           Deck        `json:"chanceDeck"`
	CommunityDeck        Deck        `json:"communityDeck"`
	AwaitingDecision     bool        `json:"awaitingDecision"`
	AutoEndAfterDecision bool        `json:"autoEndAfterDecision"`
	TurnInProgress       bool        `json:"turnInProgress"`
	HasRolled            bool        `json:"hasRolled"`
	Pending              *Decision   `json:"pending,omitempty"`
	Trade                *TradeOffer `json:"trade,omitempty"`
	Logs                 []string    `json:"logs"`
	Over                 bool        `json:"over"`
	Winner               int         `json:"winner"`
}

func (s *GameState) CurrentPlayer() *Player {
	return &s.Players[s.CurrentPlayerIndex]
}

// Deck returns the deck of the given kind.
func (s *GameState) Deck(kind DeckKind) *Deck {
	if kind == DeckChance {
		return &s.ChanceDeck
	}
	return &s.CommunityDeck
}

// UnmarshalJSON treats an omitted property on either side as no property.
func (t *TradeOffer) UnmarshalJSON(data []byte) error {
	type plain TradeOffer
	out := plain{OfferProperty: NoTile, RequestProperty: NoTile}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*t = TradeOffer(out)
	return nil
}
