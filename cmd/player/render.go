package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/game"
	"github.com/pterm/pterm"
)

func playersTable(st *models.GameState, me int) (string, error) {
	data := pterm.TableData{{"#", "Player", "Money", "Tile", "Owns", "Status"}}
	for _, p := range st.Players {
		name := p.Name
		if p.Id == me {
			name = pterm.LightCyan(name + " (you)")
		}
		status := pterm.LightGreen("playing")
		switch {
		case p.Bankrupt:
			status = pterm.LightRed("bankrupt")
		case p.Jailed:
			status = pterm.Yellow(fmt.Sprintf("jailed (%d)", p.JailTurns))
		}
		if p.Id == st.CurrentPlayer().Id && !st.Over {
			status += " *"
		}
		data = append(data, []string{
			strconv.Itoa(p.Id),
			name,
			fmt.Sprintf("$%d", p.Money),
			st.Tiles[p.Position].Name,
			strconv.Itoa(len(p.Properties)),
			status,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func ownedTable(st *models.GameState) (string, error) {
	data := pterm.TableData{{"Tile", "Name", "Owner", "Buildings"}}
	for _, t := range st.Tiles {
		if !t.Ownable() || t.Owner == models.NoOwner {
			continue
		}
		buildings := strings.Repeat("^", t.Houses)
		if t.Hotel {
			buildings = "H"
		}
		data = append(data, []string{strconv.Itoa(t.Id), t.Name, st.Players[t.Owner].Name, buildings})
	}
	if len(data) == 1 {
		return "nobody owns anything yet\n", nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func describePending(st *models.GameState) string {
	d := st.Pending
	if d == nil {
		return ""
	}
	who := st.Players[d.PlayerId].Name
	tile := st.Tiles[d.TileId].Name
	switch d.Kind {
	case models.DecisionBuy:
		return fmt.Sprintf("%s may buy %s for $%d (buy / skip)", who, tile, d.Amount)
	case models.DecisionRent:
		return fmt.Sprintf("%s owes $%d rent to %s (ok)", who, d.Amount, st.Players[d.Creditor].Name)
	case models.DecisionTax:
		return fmt.Sprintf("%s owes $%d tax (ok)", who, d.Amount)
	case models.DecisionCard:
		return fmt.Sprintf("%s drew: %s (ok)", who, d.Card.Text)
	}
	return ""
}

func describeTrade(st *models.GameState) string {
	t := st.Trade
	if t == nil {
		return ""
	}
	side := func(money, tile int) string {
		parts := []string{}
		if money > 0 {
			parts = append(parts, fmt.Sprintf("$%d", money))
		}
		if tile != models.NoTile {
			parts = append(parts, st.Tiles[tile].Name)
		}
		if len(parts) == 0 {
			return "nothing"
		}
		return strings.Join(parts, " + ")
	}
	return fmt.Sprintf("%s offers %s to %s for %s (accept / decline)",
		st.Players[t.From].Name, side(t.OfferMoney, t.OfferProperty),
		st.Players[t.To].Name, side(t.RequestMoney, t.RequestProperty))
}

// renderState draws the whole view for player me.
func renderState(st *models.GameState, me int, logWindow int) (string, error) {
	var b strings.Builder
	if st.Over {
		winner := "nobody"
		if st.Winner >= 0 && st.Winner < len(st.Players) {
			winner = st.Players[st.Winner].Name
		}
		b.WriteString(pterm.DefaultBox.WithTitle(pterm.LightGreen("GAME OVER")).Sprint(winner + " wins!"))
		b.WriteString("\n")
	}

	players, err := playersTable(st, me)
	if err != nil {
		return "", err
	}
	b.WriteString(players)

	dice := fmt.Sprintf("Dice: %d + %d", st.Dice[0], st.Dice[1])
	if st.TurnInProgress {
		dice = "Dice: rolling..."
	}
	b.WriteString(dice + "\n")
	if s := describePending(st); s != "" {
		b.WriteString(pterm.Yellow(s) + "\n")
	}
	if s := describeTrade(st); s != "" {
		b.WriteString(pterm.LightMagenta(s) + "\n")
	}
	if me >= 0 && me < len(st.Players) {
		for _, opt := range game.AvailableBuilds(st, me) {
			what := "house"
			if opt.CanHotel {
				what = "hotel"
			}
			b.WriteString(fmt.Sprintf("  build %d: %s on %s for $%d\n", opt.TileId, what, opt.Name, opt.Cost))
		}
	}

	logs := game.RecentLogs(st, logWindow)
	if len(logs) > 0 {
		b.WriteString(pterm.DefaultBox.WithTitle("Log").Sprint(strings.Join(logs, "\n")))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func rosterLine(roster []models.RosterEntry) string {
	names := make([]string, 0, len(roster))
	for _, r := range roster {
		n := fmt.Sprintf("%d:%s", r.Id, r.Name)
		if r.IsHost {
			n += " (host)"
		}
		names = append(names, n)
	}
	return strings.Join(names, ", ")
}
