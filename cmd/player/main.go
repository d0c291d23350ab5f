package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/config"
	"github.com/Vishkec/monopoly/platform/game"
	"github.com/Vishkec/monopoly/platform/logging"
	"github.com/Vishkec/monopoly/platform/participant"
	"github.com/pterm/pterm"
)

func main() {
	logging.Init()
	cfg := config.Load()

	url := flag.String("url", "ws://localhost"+cfg.HTTPAddr+"/ws", "relay websocket endpoint")
	name := flag.String("name", "", "player name")
	color := flag.String("color", "", "player color, e.g. #2563eb")
	room := flag.String("room", "", "room code to join; a new room is created when empty")
	flag.Parse()

	log := logging.For("player")
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client, err := participant.Dial(ctx, *url)
	if err != nil {
		pterm.Error.Printfln("cannot reach relay at %s: %v", *url, err)
		os.Exit(1)
	}
	defer client.Close()

	dice := game.NewAnimatedDice(rand.New(rand.NewSource(time.Now().UnixNano())), cfg.RollDelay)
	engine := game.New(game.DefaultRules(), dice, rand.New(rand.NewSource(time.Now().UnixNano()+1)), log)
	rules := engine.Rules()
	p := participant.NewParticipant(engine, client, log)
	go p.Run(ctx)

	go func() {
		err := client.Listen(ctx, func(env models.Envelope) {
			changed, err := p.Receive(env)
			var roomErr *participant.ErrRoom
			switch {
			case errors.As(err, &roomErr):
				pterm.Error.Println(roomErr.Message)
				if p.RoomCode() == "" {
					cancel()
				}
				return
			case err != nil:
				log.WithError(err).Debug("message dropped")
				return
			}
			switch env.Event {
			case "roomCreated", "roomJoined", "roomUpdate":
				pterm.Info.Printfln("room %s: %s", p.RoomCode(), rosterLine(p.Roster()))
			}
			if changed {
				show(p, rules.LogWindow)
			}
		})
		if err != nil && ctx.Err() == nil {
			pterm.Error.Printfln("connection lost: %v", err)
		}
		cancel()
	}()

	if *room == "" {
		err = client.CreateRoom(*name, *color)
	} else {
		err = client.JoinRoom(*room, *name, *color)
	}
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		cancel()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line := <-lines:
			if quit := execute(p, line, rules.LogWindow); quit {
				return
			}
		}
	}
}

func show(p *participant.Participant, logWindow int) {
	st := p.State()
	if st == nil {
		return
	}
	out, err := renderState(st, p.PlayerID(), logWindow)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	pterm.Print(out)
}

func execute(p *participant.Participant, line string, logWindow int) bool {
	cmd, err := parseCommand(line)
	if err != nil {
		pterm.Warning.Println(err)
		return false
	}
	switch cmd.local {
	case "quit":
		return true
	case "help":
		pterm.Println(help)
	case "start":
		if err := p.Start(); err != nil {
			pterm.Warning.Println(err)
		}
	case "board":
		if st := p.State(); st != nil {
			out, err := ownedTable(st)
			if err != nil {
				pterm.Error.Println(err)
				return false
			}
			pterm.Print(out)
		}
	}
	if cmd.intent != nil {
		if err := p.Submit(*cmd.intent); err != nil {
			pterm.Warning.Println(err)
		}
	}
	return false
}
