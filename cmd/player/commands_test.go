package main

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/board"
	"github.com/Vishkec/monopoly/platform/game"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		line   string
		action models.ActionType
		check  func(models.Intent) bool
	}{
		{"roll", models.ActionRoll, func(i models.Intent) bool { return i.Jail == "" }},
		{"ROLL pay", models.ActionRoll, func(i models.Intent) bool { return i.Jail == models.JailPay }},
		{"buy", models.ActionDecide, func(i models.Intent) bool { return i.Accept }},
		{"skip", models.ActionDecide, func(i models.Intent) bool { return !i.Accept }},
		{"build 39", models.ActionBuild, func(i models.Intent) bool { return i.TileId == 39 }},
		{"accept", models.ActionRespondTrade, func(i models.Intent) bool { return i.Accept }},
		{"cancel", models.ActionCancelTrade, nil},
		{"end", models.ActionEndTurn, nil},
		{"trade 1 100 0", models.ActionTrade, func(i models.Intent) bool {
			return i.Trade.To == 1 && i.Trade.OfferMoney == 100 && i.Trade.OfferProperty == models.NoTile && i.Trade.RequestProperty == models.NoTile
		}},
		{"trade 2 0 50 - 6", models.ActionTrade, func(i models.Intent) bool {
			return i.Trade.OfferProperty == models.NoTile && i.Trade.RequestProperty == 6 && i.Trade.RequestMoney == 50
		}},
	}
	for _, c := range cases {
		cmd, err := parseCommand(c.line)
		if err != nil {
			t.Fatalf("%q: %v", c.line, err)
		}
		if cmd.intent == nil || cmd.intent.Action != c.action {
			t.Fatalf("%q: unexpected command %+v", c.line, cmd)
		}
		if c.check != nil && !c.check(*cmd.intent) {
			t.Fatalf("%q: unexpected intent %+v", c.line, *cmd.intent)
		}
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, line := range []string{"", "dance", "roll maybe", "build", "build x", "trade 1", "trade a 1 1", "trade 1 1 1 x"} {
		if _, err := parseCommand(line); err == nil {
			t.Fatalf("%q should not parse", line)
		}
	}
	if cmd, err := parseCommand("board"); err != nil || cmd.local != "board" || cmd.intent != nil {
		t.Fatalf("board is a local command")
	}
}

func TestRenderState(t *testing.T) {
	e := game.New(game.DefaultRules(), game.NewSequenceDice(), rand.New(rand.NewSource(1)), nil)
	st, err := e.NewGame([]models.Seat{{Name: "Ann"}, {Name: "Bob"}})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	st.Tiles[1].Owner = 1
	out, err := renderState(st, 0, 12)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Ann", "Bob", "$1500", "Game started!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}
	owned, err := ownedTable(st)
	if err != nil || !strings.Contains(owned, board.Tiles()[1].Name) {
		t.Fatalf("expected owned tile listed: %v\n%s", err, owned)
	}
}
