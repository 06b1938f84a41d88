// Package console plays the game as a plain line-oriented transcript.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/logging"
	"github.com/tatianab/detective-quest/internal/verdict"
)

// Result summarises a finished game.
type Result struct {
	Visited    []string
	Clues      []string
	Accusation *verdict.Accusation // nil when the player accused nobody
}

// Game binds a session to an input and an output stream.
type Game struct {
	engine  *engine.Engine
	session *engine.Session
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// NewGame prepares a console game for session.
func NewGame(eng *engine.Engine, session *engine.Session, in io.Reader, out io.Writer, opts ...Option) *Game {
	g := &Game{
		engine:  eng,
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logging.NewLogger(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("source", "console")
	return g
}

// Play runs exploration, shows the collected clues and asks for an
// accusation. Every game outcome is a normal return; only input errors are
// reported.
func (g *Game) Play(ctx context.Context) (Result, error) {
	ctx = logging.WithAttrs(ctx, slog.String("session", g.session.ID))

	g.banner()
	if err := g.explore(ctx); err != nil {
		return Result{}, err
	}

	res := Result{
		Visited: g.session.Visited(),
		Clues:   g.session.CollectedClues(),
	}
	g.printClues(res.Clues)

	a, err := g.accuse(ctx)
	if err != nil {
		return Result{}, err
	}
	res.Accusation = a

	g.printf("\nObrigado por jogar %s!\n", g.session.Case.Title)
	return res, nil
}

func (g *Game) banner() {
	rule := strings.Repeat("=", 41)
	g.printf("%s\n %s\n%s\n", rule, strings.ToUpper(g.session.Case.Title), rule)
	if d := g.session.Case.Description; d != "" {
		g.printf("%s\n", d)
	}
	g.printf("Navegue com: 'e' (esquerda), 'd' (direita) ou 's' (sair).\n")
}

func (g *Game) explore(ctx context.Context) error {
	g.arrive(ctx, g.session.Arrive())
	for {
		g.printOptions()
		line, ok, err := g.readLine()
		if err != nil {
			return err
		}
		if !ok {
			g.printf("\nFim da entrada.\n")
			line = engine.CommandStop.Key()
		}

		r := g.session.Step(line)
		switch r.Outcome {
		case engine.Moved:
			g.arrive(ctx, r.Arrival)
		case engine.Blocked:
			if r.Command == engine.CommandLeft {
				g.printf("Não há caminho à esquerda.\n")
			} else {
				g.printf("Não há caminho à direita.\n")
			}
		case engine.Invalid:
			g.printf("Opção inválida. Use 'e', 'd' ou 's'.\n")
		case engine.Stopped:
			g.printf("Exploração encerrada pelo jogador.\n")
			return nil
		}
	}
}

func (g *Game) arrive(ctx context.Context, a engine.Arrival) {
	g.printf("\nVocê está na sala: %s\n", a.Room)
	if g.engine != nil && g.engine.Narrates() {
		text, err := g.engine.Narrate(ctx, g.session.Scene(a))
		if err != nil {
			g.logger.WarnContext(ctx, "narration failed", slog.String("room", a.Room), slog.Any("error", err))
		} else if text != "" {
			g.printf("%s\n", text)
		}
	}
	if a.Found {
		g.printf("Pista encontrada: %q\n", a.Clue)
	} else {
		g.printf("Nenhuma pista nova nesta sala.\n")
	}
}

func (g *Game) printOptions() {
	g.printf("\nOpções:\n")
	for _, t := range g.session.Transitions() {
		switch t.Command {
		case engine.CommandLeft:
			g.printf(" (e) Ir para %s (esquerda)\n", t.Room)
		case engine.CommandRight:
			g.printf(" (d) Ir para %s (direita)\n", t.Room)
		case engine.CommandStop:
			g.printf(" (s) Sair e ir ao julgamento\n")
		}
	}
	g.printf("Escolha: ")
}

func (g *Game) printClues(clues []string) {
	g.printf("\n\n===== PISTAS COLETADAS =====\n")
	if len(clues) == 0 {
		g.printf("Nenhuma pista coletada.\n")
		return
	}
	for _, c := range clues {
		g.printf(" - %s\n", c)
	}
}

func (g *Game) accuse(ctx context.Context) (*verdict.Accusation, error) {
	if names := g.session.Case.Suspects(); len(names) > 0 {
		g.printf("\nSuspeitos: %s\n", strings.Join(names, ", "))
	}
	g.printf("\nDigite o nome do suspeito que você deseja acusar (ex.: Suspeito A):\n> ")

	line, _, err := g.readLine()
	if err != nil {
		return nil, err
	}

	a, err := g.session.Accuse(ctx, line)
	if errors.Is(err, engine.ErrNoSuspect) {
		g.printf("Nenhum suspeito informado. Encerrando.\n")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g.printf("\nVocê acusou: %s\n", a.Suspect)
	if !g.session.KnownSuspect(a.Suspect) {
		if s := g.session.SuggestSuspect(a.Suspect); s != "" {
			g.printf("(Esse nome não consta na investigação. Você quis dizer %q?)\n", s)
		}
	}
	g.printf("Evidências encontradas que apontam para %s: %d\n", a.Suspect, a.Evidence)
	if a.Verdict == verdict.Sustained {
		g.printf("\nResultado: ACUSAÇÃO SUSTENTADA. Parece que você tem evidências suficientes!\n")
	} else {
		g.printf("\nResultado: ACUSAÇÃO FRACA. Poucas evidências. Falta prova contundente.\n")
	}

	return &a, nil
}

// readLine returns the next input line. ok is false at end of input.
func (g *Game) readLine() (line string, ok bool, err error) {
	if g.in.Scan() {
		return g.in.Text(), true, nil
	}
	if err := g.in.Err(); err != nil {
		return "", false, fmt.Errorf("failed to read input: %w", err)
	}
	return "", false, nil
}

func (g *Game) printf(format string, args ...any) {
	fmt.Fprintf(g.out, format, args...)
}
