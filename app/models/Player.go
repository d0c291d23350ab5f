package models

type Player struct {
	Id            int    `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	Money         int    `json:"money"`
	Position      int    `json:"position"`
	Properties    []int  `json:"properties"`
	Jailed        bool   `json:"jailed"`
	JailTurns     int    `json:"jailTurns"`
	JailFreeCards int    `json:"jailFreeCards"`
	Bankrupt      bool   `json:"bankrupt"`
}

// Owns reports whether tileId is in the player's holdings.
func (p *Player) Owns(tileId int) bool {
	for _, id := range p.Properties {
		if id == tileId {
			return true
		}
	}
	return false
}

func (p *Player) RemoveProperty(tileId int) {
	kept := p.Properties[:0]
	for _, id := range p.Properties {
		if id != tileId {
			kept = append(kept, id)
		}
	}
	p.Properties = kept
}

// Seat is a roster entry a game is started from.
type Seat struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
