package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Vishkec/monopoly/app/models"
)

const help = `commands:
  start                       deal a new game (host only)
  roll [pay|card]             roll, or leave jail by paying or with a card first
  buy | skip | ok             answer the pending decision
  build <tile>                add a house or hotel
  trade <to> <give$> <want$> [giveTile] [wantTile]
  accept | decline | cancel   answer or withdraw a trade
  end                         end your turn
  board | help | quit`

var errUsage = errors.New("unknown command, type help")

// command is either an intent for the host or a local verb such as "board".
type command struct {
	local  string
	intent *models.Intent
}

func intent(action models.ActionType) command {
	return command{intent: &models.Intent{Action: action}}
}

func tileArg(s string) (int, error) {
	if s == "-" {
		return models.NoTile, nil
	}
	return strconv.Atoi(s)
}

func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, errUsage
	}
	args := fields[1:]
	switch fields[0] {
	case "start", "board", "help", "quit":
		return command{local: fields[0]}, nil
	case "roll":
		c := intent(models.ActionRoll)
		if len(args) > 0 {
			switch models.JailOption(args[0]) {
			case models.JailPay, models.JailCard, models.JailRoll:
				c.intent.Jail = models.JailOption(args[0])
			default:
				return command{}, fmt.Errorf("roll takes pay or card, not %q", args[0])
			}
		}
		return c, nil
	case "buy", "ok":
		c := intent(models.ActionDecide)
		c.intent.Accept = true
		return c, nil
	case "skip":
		return intent(models.ActionDecide), nil
	case "build":
		if len(args) != 1 {
			return command{}, errors.New("usage: build <tile>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return command{}, fmt.Errorf("bad tile %q", args[0])
		}
		c := intent(models.ActionBuild)
		c.intent.TileId = id
		return c, nil
	case "trade":
		return parseTrade(args)
	case "accept":
		c := intent(models.ActionRespondTrade)
		c.intent.Accept = true
		return c, nil
	case "decline":
		return intent(models.ActionRespondTrade), nil
	case "cancel":
		return intent(models.ActionCancelTrade), nil
	case "end":
		return intent(models.ActionEndTurn), nil
	}
	return command{}, errUsage
}

func parseTrade(args []string) (command, error) {
	if len(args) < 3 || len(args) > 5 {
		return command{}, errors.New("usage: trade <to> <give$> <want$> [giveTile] [wantTile]")
	}
	nums := make([]int, 3)
	for i := range nums {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return command{}, fmt.Errorf("bad number %q", args[i])
		}
		nums[i] = n
	}
	offer := models.TradeOffer{To: nums[0], OfferMoney: nums[1], RequestMoney: nums[2], OfferProperty: models.NoTile, RequestProperty: models.NoTile}
	var err error
	if len(args) > 3 {
		if offer.OfferProperty, err = tileArg(args[3]); err != nil {
			return command{}, fmt.Errorf("bad tile %q", args[3])
		}
	}
	if len(args) > 4 {
		if offer.RequestProperty, err = tileArg(args[4]); err != nil {
			return command{}, fmt.Errorf("bad tile %q", args[4])
		}
	}
	c := intent(models.ActionTrade)
	c.intent.Trade = &offer
	return c, nil
}
