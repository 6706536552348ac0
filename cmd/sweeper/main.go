package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"govel.dev/sweeper/internal/mines"
	"govel.dev/sweeper/internal/player"
)

var (
	log = logrus.New()

	width     = flag.Int("width", 9, "board width")
	height    = flag.Int("height", 9, "board height")
	mineCount = flag.Int("mines", 10, "number of mines")
	seed      = flag.Uint64("seed", 0, "rng seed (0 picks one)")
	delay     = flag.Duration("delay", 0, "pause between moves")
	verbose   = flag.Bool("v", false, "log every deduction")
)

func newRand() *rand.Rand {
	if *seed != 0 {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
		player.Log = log
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	params := mines.GameParams{
		Width:     *width,
		Height:    *height,
		MineCount: *mineCount,
	}
	// one stream for placement and play: a second rand built from the
	// same seed would replay the placement draws as the opening guess
	r := newRand()
	game, err := mines.NewGame(params, r)
	if err != nil {
		log.Fatal(err)
	}

	p := player.New(game, r)

	for !game.Dead && !game.Won {
		if ctx.Err() != nil {
			log.Fatal("interrupted")
		}

		move, err := p.Step()
		if errors.Is(err, player.ErrNoMoves) {
			log.Info("no cells left to probe")
			break
		}
		if err != nil {
			log.Fatal("inference failure: ", err)
		}

		fmt.Printf(
			"move %d: %s %s\n%s\n",
			len(p.Moves), move.Kind, move.Cell,
			game.PlayerGrid.ToString(game.Width),
		)

		if *delay > 0 {
			time.Sleep(*delay)
		}
	}

	game.RevealPlayerGrid()
	fmt.Println(game.PlayerGrid.ToString(game.Width))

	switch {
	case game.Won:
		log.WithFields(logrus.Fields{
			"moves": len(p.Moves),
			"mines": len(p.KB.Mines()),
		}).Info("solved it")
	case game.Dead:
		log.WithField("moves", len(p.Moves)).Info("stepped on a mine")
	}
}
