package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/tatianab/detective-quest/internal/config"
	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/logging"
	"github.com/tatianab/detective-quest/internal/models"
	"github.com/tatianab/detective-quest/internal/verdict"
)

const maxTurns = 10

func main() {
	games := flag.Int("games", 1, "number of games to simulate")
	seed := flag.Uint64("seed", 1, "random seed for the player")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, closeLog, err := logging.Open(cfg.Debug, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer closeLog()

	// Narration only happens when an API key is configured.
	eng, err := engine.NewEngine(ctx, cfg.Gemini.APIKey, engine.WithModel(cfg.Gemini.Model), engine.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer eng.Close()

	c, err := models.DefaultCase()
	if err != nil {
		log.Fatalf("Failed to load case: %v", err)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	sustained := 0
	for i := 1; i <= *games; i++ {
		fmt.Printf("===== Game %d =====\n", i)
		a, err := play(ctx, eng, c, rng)
		if err != nil {
			log.Fatalf("Game %d failed: %v", i, err)
		}
		if a.Verdict == verdict.Sustained {
			sustained++
		}
		fmt.Println()
	}
	fmt.Printf("Sustained accusations: %d of %d\n", sustained, *games)
}

func play(ctx context.Context, eng *engine.Engine, c *models.Case, rng *rand.Rand) (verdict.Accusation, error) {
	session, err := eng.NewSession(c)
	if err != nil {
		return verdict.Accusation{}, err
	}
	defer session.Close()
	report(ctx, eng, session, session.Arrive())

	for turn := 1; turn <= maxTurns && !session.Done(); turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)
		action := choose(session, rng)
		fmt.Printf("Player Action: %s\n", action)

		r := session.Step(action)
		fmt.Printf("Outcome: %s\n", r.Outcome)
		if r.Outcome == engine.Moved {
			report(ctx, eng, session, r.Arrival)
		}
	}

	clues := session.CollectedClues()
	fmt.Printf("Clues: %v\n", clues)

	suspect := bestGuess(session)
	a, err := session.Accuse(ctx, suspect)
	if err != nil {
		return verdict.Accusation{}, err
	}
	fmt.Printf("Accused %s with %d clue(s): %s\n", a.Suspect, a.Evidence, a.Verdict)
	return a, nil
}

func report(ctx context.Context, eng *engine.Engine, session *engine.Session, a engine.Arrival) {
	fmt.Printf("Room: %s\n", a.Room)
	if a.Found {
		fmt.Printf("DISCOVERED: %s\n", a.Clue)
	}
	if !eng.Narrates() {
		return
	}
	text, err := eng.Narrate(ctx, session.Scene(a))
	if err != nil {
		fmt.Printf("Narration failed: %v\n", err)
		return
	}
	fmt.Printf("Narrator: %s\n", text)
}

// choose mostly follows an open exit, sometimes stops and sometimes types
// something the game does not understand.
func choose(session *engine.Session, rng *rand.Rand) string {
	switch n := rng.IntN(10); {
	case n == 0:
		return "?"
	case n == 1:
		return engine.CommandStop.Key()
	}
	ts := session.Transitions()
	if len(ts) == 1 && rng.IntN(2) == 0 {
		return []string{"e", "d"}[rng.IntN(2)]
	}
	return ts[rng.IntN(len(ts))].Command.Key()
}

// bestGuess accuses the suspect most of the collected clues point to.
func bestGuess(session *engine.Session) string {
	best, bestCount := "", -1
	for _, s := range session.Index.Suspects() {
		if n := verdict.Tally(s, session.Clues, session.Index); n > bestCount {
			best, bestCount = s, n
		}
	}
	return best
}
