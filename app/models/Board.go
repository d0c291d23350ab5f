package models

type TileType string

const (
	TileGo        TileType = "go"
	TileProperty  TileType = "property"
	TileCommunity TileType = "community"
	TileTax       TileType = "tax"
	TileRailroad  TileType = "railroad"
	TileChance    TileType = "chance"
	TileJail      TileType = "jail"
	TileUtility   TileType = "utility"
	TileFree      TileType = "free"
	TileGoToJail  TileType = "goToJail"
)

const (
	// NoOwner marks a tile held by the bank, or a charge with no creditor.
	NoOwner = -1
	NoTile  = -1
)

type Tile struct {
	Id        int      `json:"id"`
	Type      TileType `json:"type"`
	Name      string   `json:"name"`
	Country   string   `json:"country,omitempty"`
	Price     int      `json:"price,omitempty"`
	Rent      []int    `json:"rent,omitempty"`
	HouseCost int      `json:"houseCost,omitempty"`
	Color     string   `json:"color,omitempty"`
	Amount    int      `json:"amount,omitempty"` // tax tiles only

	Owner  int  `json:"owner"`
	Houses int  `json:"houses"`
	Hotel  bool `json:"hotel"`
}

// Ownable reports whether the tile can be bought.
func (t Tile) Ownable() bool {
	return t.Type == TileProperty || t.Type == TileRailroad || t.Type == TileUtility
}

type CardAction string

const (
	CardMove        CardAction = "move"
	CardJail        CardAction = "jail"
	CardMoney       CardAction = "money"
	CardNearestRail CardAction = "nearestRail"
	CardJailFree    CardAction = "jailFree"
	CardMoveSteps   CardAction = "moveSteps"
)

type Card struct {
	Text   string     `json:"text"`
	Action CardAction `json:"action"`
	Value  int        `json:"value,omitempty"`
}

type DeckKind string

const (
	DeckChance    DeckKind = "chance"
	DeckCommunity DeckKind = "community"
)

// Deck is drawn from the front; drawn cards go back to the bottom.
type Deck struct {
	Cards []Card `json:"cards"`
}
