package game

import (
	"fmt"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/board"
)

// ChargePlayer debits amount from p and credits creditor, if any, the same
// amount. A negative balance bankrupts p in favour of the creditor.
func (e *Engine) ChargePlayer(st *models.GameState, p *models.Player, amount int, creditor int) {
	p.Money -= amount
	if creditor != models.NoOwner {
		st.Players[creditor].Money += amount
	}
	if p.Money < 0 {
		e.ApplyBankruptcy(st, p, creditor)
	}
}

// ApplyBankruptcy writes off p's debt, hands every holding to creditor (or the
// bank) with its buildings razed, and takes p out of the rotation for good.
func (e *Engine) ApplyBankruptcy(st *models.GameState, p *models.Player, creditor int) {
	p.Bankrupt = true
	p.Money = 0
	for _, id := range p.Properties {
		tile := &st.Tiles[id]
		tile.Owner = creditor
		if creditor != models.NoOwner {
			st.Players[creditor].Properties = append(st.Players[creditor].Properties, id)
		}
		tile.Houses = 0
		tile.Hotel = false
	}
	p.Properties = []int{}
	if st.Trade != nil && (st.Trade.From == p.Id || st.Trade.To == p.Id) {
		st.Trade = nil
	}
	addLog(st, "%s is bankrupt.", p.Name)
	e.log.WithField("player", p.Name).WithField("creditor", creditor).Info("bankruptcy")
	e.checkGameOver(st)
}

func PropertyRent(tile *models.Tile) int {
	if tile.Hotel {
		return tile.Rent[5]
	}
	if tile.Houses > 0 {
		return tile.Rent[tile.Houses]
	}
	return tile.Rent[0]
}

// RailroadRent scales with how many railroads the owner holds.
func RailroadRent(st *models.GameState, owner int) int {
	table := st.Tiles[board.Railroads()[0]].Rent
	owned := countOwned(st, models.TileRailroad, owner)
	if owned < 1 || owned > len(table) {
		return table[0]
	}
	return table[owned-1]
}

func UtilityRent(st *models.GameState, owner int, diceTotal int) int {
	if countOwned(st, models.TileUtility, owner) == 2 {
		return diceTotal * 10
	}
	return diceTotal * 4
}

// RentFor is the rent due on tile; utilities use diceTotal.
func RentFor(st *models.GameState, tile *models.Tile, diceTotal int) int {
	switch tile.Type {
	case models.TileProperty:
		return PropertyRent(tile)
	case models.TileRailroad:
		return RailroadRent(st, tile.Owner)
	case models.TileUtility:
		return UtilityRent(st, tile.Owner, diceTotal)
	}
	return 0
}

func countOwned(st *models.GameState, t models.TileType, owner int) int {
	n := 0
	for _, tile := range st.Tiles {
		if tile.Type == t && tile.Owner == owner {
			n++
		}
	}
	return n
}

// OwnsSet reports whether playerID holds every tile of the color set.
func OwnsSet(st *models.GameState, playerID int, color string) bool {
	set := board.ColorSet(color)
	if len(set) == 0 {
		return false
	}
	for _, id := range set {
		if st.Tiles[id].Owner != playerID {
			return false
		}
	}
	return true
}

type BuildOption struct {
	TileId   int    `json:"tileId"`
	Name     string `json:"name"`
	Cost     int    `json:"cost"`
	Houses   int    `json:"houses"`
	CanHotel bool   `json:"canHotel"`
}

// AvailableBuilds lists the tiles playerID may build on next.
func AvailableBuilds(st *models.GameState, playerID int) []BuildOption {
	var out []BuildOption
	for i := range st.Tiles {
		tile := &st.Tiles[i]
		if tile.Type != models.TileProperty || tile.Owner != playerID || tile.Hotel {
			continue
		}
		if !OwnsSet(st, playerID, tile.Color) {
			continue
		}
		out = append(out, BuildOption{
			TileId:   tile.Id,
			Name:     tile.Name,
			Cost:     tile.HouseCost,
			Houses:   tile.Houses,
			CanHotel: tile.Houses >= 4,
		})
	}
	return out
}

// Build adds a house, or turns four houses into a hotel.
func (e *Engine) Build(st *models.GameState, playerID int, tileID int) error {
	p, err := checkTurn(st, playerID)
	if err != nil {
		return err
	}
	if tileID < 0 || tileID >= len(st.Tiles) {
		return fmt.Errorf("%w: no tile %d", ErrNotBuildable, tileID)
	}
	tile := &st.Tiles[tileID]
	if tile.Type != models.TileProperty || tile.Owner != playerID {
		return fmt.Errorf("%w: %s is not your property", ErrNotBuildable, tile.Name)
	}
	if !OwnsSet(st, playerID, tile.Color) {
		return fmt.Errorf("%w: you do not own a full set yet", ErrNotBuildable)
	}
	if tile.Hotel {
		return fmt.Errorf("%w: %s is fully built", ErrNotBuildable, tile.Name)
	}
	if p.Money < tile.HouseCost {
		addLog(st, "%s cannot afford building.", p.Name)
		return ErrInsufficientFunds
	}
	p.Money -= tile.HouseCost
	if tile.Houses == 4 {
		tile.Hotel = true
		tile.Houses = 0
	} else {
		tile.Houses++
	}
	addLog(st, "%s built on %s.", p.Name, tile.Name)
	return nil
}
