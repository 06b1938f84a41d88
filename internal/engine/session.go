package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/schollz/closestmatch"
	"github.com/tatianab/detective-quest/internal/archive"
	"github.com/tatianab/detective-quest/internal/ledger"
	"github.com/tatianab/detective-quest/internal/mansion"
	"github.com/tatianab/detective-quest/internal/models"
	"github.com/tatianab/detective-quest/internal/suspects"
	"github.com/tatianab/detective-quest/internal/verdict"
)

// ErrNoSuspect is returned by Accuse when no suspect was named.
var ErrNoSuspect = errors.New("no suspect named")

// Session owns everything a single investigation needs: the mansion, the
// collected clues and the suspect index.
type Session struct {
	ID    string
	Case  *models.Case
	Rooms *mansion.Room
	Clues *ledger.Ledger
	Index *suspects.Index

	explorer *Explorer
	recorder Recorder
	logger   *slog.Logger
}

func newSession(c *models.Case, recorder Recorder, logger *slog.Logger) (*Session, error) {
	rooms, err := mansion.Build(c.Entry, c.Rooms)
	if err != nil {
		return nil, fmt.Errorf("failed to build mansion for %q: %w", c.Title, err)
	}

	index := suspects.New()
	for _, a := range c.Associations {
		index.Associate(a.Clue, a.Suspect)
	}

	clues := ledger.New()
	id := uuid.NewString()
	s := &Session{
		ID:       id,
		Case:     c,
		Rooms:    rooms,
		Clues:    clues,
		Index:    index,
		explorer: NewExplorer(rooms, clues),
		recorder: recorder,
		logger:   logger.With("session", id),
	}
	s.logger.Debug("session started", slog.Int("rooms", rooms.Count()), slog.Int("associations", index.Len()))
	return s, nil
}

// Arrive processes the current room, collecting its clue.
func (s *Session) Arrive() Arrival {
	a := s.explorer.Arrive()
	s.logArrival(a)
	return a
}

// Step applies one line of player input.
func (s *Session) Step(input string) StepResult {
	return s.logStep(input, s.explorer.Step(input))
}

// Apply executes a parsed command.
func (s *Session) Apply(cmd Command) StepResult {
	return s.logStep(cmd.Key(), s.explorer.Apply(cmd))
}

// Current returns the room the player stands in.
func (s *Session) Current() *mansion.Room {
	return s.explorer.Current()
}

// Done reports whether the player has stopped exploring.
func (s *Session) Done() bool {
	return s.explorer.Done()
}

// Visited returns the names of the rooms entered so far, in order.
func (s *Session) Visited() []string {
	return s.explorer.Visited()
}

// Transitions lists the commands available from the current room.
func (s *Session) Transitions() []Transition {
	return s.explorer.Transitions()
}

func (s *Session) logStep(input string, r StepResult) StepResult {
	s.logger.Debug("step", slog.String("input", input), slog.String("outcome", r.Outcome.String()))
	if r.Outcome == Moved {
		s.logArrival(r.Arrival)
	}
	return r
}

func (s *Session) logArrival(a Arrival) {
	s.logger.Debug("arrived", slog.String("room", a.Room), slog.Bool("found", a.Found), slog.String("clue", a.Clue))
}

// Scene describes the current room for the narrator.
func (s *Session) Scene(a Arrival) Scene {
	scene := Scene{Case: s.Case.Description, Room: a.Room, Clue: a.Clue}
	for _, t := range s.Transitions() {
		if t.Room != "" {
			scene.Exits = append(scene.Exits, t.Room)
		}
	}
	return scene
}

// CollectedClues returns the clues gathered so far, in alphabetical order.
func (s *Session) CollectedClues() []string {
	return slices.Collect(s.Clues.InOrder())
}

// Accuse scores an accusation against the collected clues and archives it
// when the engine has a recorder. A blank name returns ErrNoSuspect. Archive
// failures are logged, never returned.
func (s *Session) Accuse(ctx context.Context, name string) (verdict.Accusation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return verdict.Accusation{}, ErrNoSuspect
	}
	a := verdict.Evaluate(name, s.Clues, s.Index)
	s.logger.InfoContext(ctx, "accusation", slog.String("suspect", name), slog.Int("evidence", a.Evidence), slog.String("verdict", a.Verdict.String()),
		slog.Int("clues", s.Clues.Len()), slog.Int("ledger_height", s.Clues.Height()))

	if s.recorder != nil {
		_, err := s.recorder.Save(ctx, archive.Record{
			SessionID: s.ID,
			Case:      s.Case.Title,
			Suspect:   a.Suspect,
			Evidence:  a.Evidence,
			Verdict:   a.Verdict.String(),
			Clues:     a.Matching,
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "could not archive verdict", slog.Any("error", err))
		}
	}
	return a, nil
}

// Close ends the session and releases the mansion and the collected clues.
// The session must not be used afterwards.
func (s *Session) Close() {
	s.logger.Debug("session ended", slog.Int("visited", len(s.explorer.Visited())), slog.Int("clues", s.Clues.Len()))
	s.Clues.Clear()
	s.Rooms = nil
	s.explorer = nil
}

// KnownSuspect reports whether name is a suspect of the case.
func (s *Session) KnownSuspect(name string) bool {
	return slices.Contains(s.Index.Suspects(), name)
}

// SuggestSuspect returns the known suspect closest to name, or "" when
// nothing is close enough.
func (s *Session) SuggestSuspect(name string) string {
	names := s.Index.Suspects()
	if len(names) == 0 {
		return ""
	}
	cm := closestmatch.New(names, []int{2})
	return cm.Closest(name)
}
