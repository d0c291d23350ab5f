package board

import (
	"errors"

	"github.com/Vishkec/monopoly/app/models"
)

const (
	TileCount   = 40
	JailPos     = 10
	StartMoney  = 1500
	PassGoBonus = 200
	JailFine    = 50
)

var PlayerColors = []string{"#2563eb", "#dc2626", "#16a34a", "#d97706"}

var ErrNotFound = errors.New("not found")

// Tiles returns a fresh runtime copy of the board: every tile unowned and unbuilt.
func Tiles() []models.Tile {
	tiles := make([]models.Tile, TileCount)
	for i, tile := range layout {
		tile.Owner = models.NoOwner
		tile.Houses = 0
		tile.Hotel = false
		if tile.Rent != nil {
			tile.Rent = append([]int(nil), tile.Rent...)
		}
		tiles[i] = tile
	}
	return tiles
}

func GetByPos(pos int) (models.Tile, error) {
	if pos < 0 || pos >= TileCount {
		return models.Tile{}, ErrNotFound
	}
	tile := layout[pos]
	tile.Owner = models.NoOwner
	return tile, nil
}

func GetByName(name string) (models.Tile, error) { // O(N) time complexity
	for _, tile := range layout {
		if tile.Name == name {
			tile.Owner = models.NoOwner
			return tile, nil
		}
	}
	return models.Tile{}, ErrNotFound
}

// ColorSet returns the tile ids forming the monopoly for color.
func ColorSet(color string) []int {
	return sets[color]
}

func ColorSets() map[string][]int {
	out := make(map[string][]int, len(sets))
	for color, ids := range sets {
		out[color] = append([]int(nil), ids...)
	}
	return out
}

// Railroads returns railroad tile ids in traversal order.
func Railroads() []int {
	var ids []int
	for _, tile := range layout {
		if tile.Type == models.TileRailroad {
			ids = append(ids, tile.Id)
		}
	}
	return ids
}

// Wrap normalises any integer position onto the board.
func Wrap(pos int) int {
	pos %= TileCount
	if pos < 0 {
		pos += TileCount
	}
	return pos
}
