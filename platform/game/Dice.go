package game

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Roller produces a pair of dice. Rolling may take time.
type Roller interface {
	Roll(ctx context.Context) ([2]int, error)
}

// AnimatedDice waits out the roll animation before settling on a result.
type AnimatedDice struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay time.Duration
}

func NewAnimatedDice(rng *rand.Rand, delay time.Duration) *AnimatedDice {
	return &AnimatedDice{rng: rng, delay: delay}
}

func (d *AnimatedDice) Roll(ctx context.Context) ([2]int, error) {
	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return [2]int{}, ctx.Err()
		case <-timer.C:
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return [2]int{d.rng.Intn(6) + 1, d.rng.Intn(6) + 1}, nil
}

// SequenceDice replays fixed rolls in order, then repeats the last one.
type SequenceDice struct {
	mu    sync.Mutex
	rolls [][2]int
	next  int
}

func NewSequenceDice(rolls ...[2]int) *SequenceDice {
	return &SequenceDice{rolls: rolls}
}

func (d *SequenceDice) Roll(ctx context.Context) ([2]int, error) {
	if err := ctx.Err(); err != nil {
		return [2]int{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.rolls) == 0 {
		return [2]int{1, 2}, nil
	}
	if d.next >= len(d.rolls) {
		return d.rolls[len(d.rolls)-1], nil
	}
	roll := d.rolls[d.next]
	d.next++
	return roll, nil
}
