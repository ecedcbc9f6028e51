package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/Garsondee/Lawn-Sense/internal/episode"
	"github.com/Garsondee/Lawn-Sense/internal/game"
	"github.com/Garsondee/Lawn-Sense/internal/learn"
)

const frame = 50 * time.Millisecond

type command int

const (
	cmdQuit command = iota
	cmdPause
	cmdFaster
	cmdSlower
)

func main() {
	var (
		policyName string
		seed       int64
		statePath  string
		logPath    string
	)
	flag.StringVar(&policyName, "policy", "evolution", "policy: evolution, value or scripted")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "RNG seed")
	flag.StringVar(&statePath, "state", "", "load and save learned policy state at this path")
	flag.StringVar(&logPath, "log", "lawn-term.log", "log file (the terminal is owned by the display)")
	flag.Parse()

	lf, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer lf.Close()
	logger := slog.New(slog.NewTextHandler(lf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	engine, err := game.NewEngine(game.DefaultConfig(), game.WithSeed(seed))
	if err != nil {
		log.Fatal(err)
	}
	rng := rand.New(rand.NewSource(seed + 1)) // #nosec G404 -- simulation randomness, not security
	policy, err := learn.New(policyName, rng, logger)
	if err != nil {
		log.Fatal(err)
	}
	learn.LoadPolicyOrDefaults(statePath, policy, logger)
	ctl, err := episode.New(engine, policy, episode.DefaultConfig(), episode.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	if err := termbox.Init(); err != nil {
		log.Fatal(err)
	}
	run(ctl)
	termbox.Close()

	if statePath != "" {
		if err := learn.SavePolicy(statePath, policy); err != nil {
			log.Fatal(err)
		}
	}
	if last, ok := ctl.Last(); ok {
		fmt.Println(episode.FormatResult(last))
	}
}

// pollKeys forwards key presses as commands. termbox.PollEvent blocks, so it
// runs on its own goroutine; the simulation stays on the caller's.
func pollKeys(cmds chan<- command) {
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		if ev.Type != termbox.EventKey {
			continue
		}
		switch {
		case ev.Key == termbox.KeyEsc || ev.Ch == 'q':
			cmds <- cmdQuit
			return
		case ev.Key == termbox.KeySpace || ev.Ch == 'p':
			cmds <- cmdPause
		case ev.Ch == '+' || ev.Ch == '.':
			cmds <- cmdFaster
		case ev.Ch == '-' || ev.Ch == ',':
			cmds <- cmdSlower
		}
	}
}

func run(ctl *episode.Controller) {
	cmds := make(chan command, 4)
	go pollKeys(cmds)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	// Ticks per frame; 3 is real time at 60 TPS with 50ms frames.
	speed := 3
	paused := false
	for {
		select {
		case c := <-cmds:
			switch c {
			case cmdQuit:
				return
			case cmdPause:
				paused = !paused
			case cmdFaster:
				speed = min(speed*2, 192)
			case cmdSlower:
				speed = max(speed/2, 1)
			}
		case <-ticker.C:
			if !paused {
				for i := 0; i < speed; i++ {
					ctl.Tick()
				}
			}
			draw(ctl, speed, paused)
		}
	}
}

func draw(ctl *episode.Controller, speed int, paused bool) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	w, _ := termbox.Size()
	width := max(min(w-4, 120), 20)
	s := ctl.Engine().Snapshot()

	putText(0, 0, statusLine(s, ctl.Policy().Name(), len(ctl.Results())+1, speed, paused), termbox.ColorWhite)
	for row := 0; row < s.Rows(); row++ {
		y := 2 + row*2
		putText(0, y, fmt.Sprintf("%d ", row), termbox.ColorYellow)
		for i, r := range renderLane(s, row, width) {
			termbox.SetCell(2+i, y, r, glyphColor(r), termbox.ColorDefault)
		}
	}
	y := 3 + s.Rows()*2
	if last, ok := ctl.Last(); ok {
		putText(0, y, "last: "+episode.FormatResult(last), termbox.ColorCyan)
	}
	putText(0, y+2, "q quit  space pause  +/- speed   S sunflower P pea W wallnut R repeater  z/c/f enemies  $ resource", termbox.ColorBlue)
	termbox.Flush()
}

func glyphColor(r rune) termbox.Attribute {
	switch r {
	case 'S', '$':
		return termbox.ColorYellow
	case 'P', 'R', '-':
		return termbox.ColorGreen
	case 'W':
		return termbox.ColorMagenta
	case 'z', 'c', 'f':
		return termbox.ColorRed
	case '|':
		return termbox.ColorRed | termbox.AttrBold
	default:
		return termbox.ColorDefault
	}
}

func putText(x, y int, text string, fg termbox.Attribute) {
	for i, r := range []rune(text) {
		termbox.SetCell(x+i, y, r, fg, termbox.ColorDefault)
	}
}
