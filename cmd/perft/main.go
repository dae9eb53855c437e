package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"fianchetto/pkg/chess"
)

type Settings struct {
	Fen     string
	Depth   int
	Threads int
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var err = run()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	var settings = Settings{
		Fen:     chess.InitialPositionFen,
		Depth:   5,
		Threads: max(1, runtime.NumCPU()/2),
	}
	flag.StringVar(&settings.Fen, "fen", settings.Fen, "Position to count from")
	flag.IntVar(&settings.Depth, "depth", settings.Depth, "Perft depth")
	flag.IntVar(&settings.Threads, "threads", settings.Threads, "Number of threads")
	flag.Parse()

	log.Printf("%+v", settings)

	if settings.Depth <= 0 {
		return fmt.Errorf("depth must be positive")
	}
	pos, err := chess.NewPositionFromFEN(settings.Fen)
	if err != nil {
		return err
	}

	var start = time.Now()
	var rootMoves = pos.GenerateLegalMoves()
	var counts = make([]int64, len(rootMoves))
	var total int64

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(settings.Threads)
	for i := range rootMoves {
		var i = i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			var child = pos
			var u chess.Undo
			child.MakeMove(rootMoves[i], &u)
			var count = chess.Perft(&child, settings.Depth-1)
			counts[i] = count
			atomic.AddInt64(&total, count)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, m := range rootMoves {
		fmt.Printf("%v: %v\n", m, counts[i])
	}
	fmt.Printf("\nNodes: %v\nTime: %v\n", total, time.Since(start).Round(time.Millisecond))
	return nil
}
