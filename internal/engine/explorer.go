package engine

import (
	"strings"

	"github.com/tatianab/detective-quest/internal/ledger"
	"github.com/tatianab/detective-quest/internal/mansion"
)

// Command is a navigation command typed by the player.
type Command int

const (
	CommandLeft  Command = iota // "e", esquerda
	CommandRight                // "d", direita
	CommandStop                 // "s", sair
)

// Key returns the single-letter form of the command.
func (c Command) Key() string {
	switch c {
	case CommandLeft:
		return "e"
	case CommandRight:
		return "d"
	default:
		return "s"
	}
}

// ParseCommand accepts "e", "d" or "s" in either case, ignoring surrounding
// whitespace.
func ParseCommand(input string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "e":
		return CommandLeft, true
	case "d":
		return CommandRight, true
	case "s":
		return CommandStop, true
	}
	return 0, false
}

// Transition is a command available from the current room.
type Transition struct {
	Command Command
	Room    string // destination; empty for CommandStop
}

// Arrival describes what happened when the player entered a room.
type Arrival struct {
	Room  string
	Clue  string
	Found bool // the room held a clue and it was collected
	New   bool // the clue was not already in the ledger
}

// Outcome classifies the result of a step.
type Outcome int

const (
	Moved Outcome = iota
	Blocked
	Stopped
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Blocked:
		return "blocked"
	case Stopped:
		return "stopped"
	default:
		return "invalid"
	}
}

// StepResult is returned by Explorer.Step.
type StepResult struct {
	Outcome Outcome
	Command Command
	Arrival Arrival // set when Outcome is Moved
}

// Explorer walks the mansion, moving clues from rooms into the ledger.
type Explorer struct {
	current *mansion.Room
	clues   *ledger.Ledger
	visited []string
	stopped bool
}

// NewExplorer places the player in the entry room. Call Arrive to process
// the entry room before the first step.
func NewExplorer(entry *mansion.Room, clues *ledger.Ledger) *Explorer {
	return &Explorer{current: entry, clues: clues}
}

// Current returns the room the player stands in.
func (e *Explorer) Current() *mansion.Room {
	return e.current
}

// Done reports whether the player has stopped exploring.
func (e *Explorer) Done() bool {
	return e.stopped
}

// Visited returns the names of the rooms entered so far, in order.
func (e *Explorer) Visited() []string {
	out := make([]string, len(e.visited))
	copy(out, e.visited)
	return out
}

// Arrive records a visit to the current room and collects its clue if one
// is still there.
func (e *Explorer) Arrive() Arrival {
	a := Arrival{Room: e.current.Name}
	e.visited = append(e.visited, e.current.Name)
	if clue, ok := e.current.CollectClue(); ok {
		a.Clue = clue
		a.Found = true
		a.New = e.clues.Insert(clue)
	}
	return a
}

// Transitions lists the commands available from the current room. Stop is
// always last.
func (e *Explorer) Transitions() []Transition {
	var out []Transition
	if l := e.current.Child(mansion.Left); l != nil {
		out = append(out, Transition{Command: CommandLeft, Room: l.Name})
	}
	if r := e.current.Child(mansion.Right); r != nil {
		out = append(out, Transition{Command: CommandRight, Room: r.Name})
	}
	return append(out, Transition{Command: CommandStop})
}

// Step parses and applies one line of player input. Unknown input and moves
// toward a missing exit leave the explorer where it is.
func (e *Explorer) Step(input string) StepResult {
	cmd, ok := ParseCommand(input)
	if !ok && !e.stopped {
		return StepResult{Outcome: Invalid}
	}
	return e.Apply(cmd)
}

// Apply executes a parsed command.
func (e *Explorer) Apply(cmd Command) StepResult {
	if e.stopped || cmd == CommandStop {
		e.stopped = true
		return StepResult{Outcome: Stopped, Command: CommandStop}
	}

	dir := mansion.Left
	if cmd == CommandRight {
		dir = mansion.Right
	}
	next := e.current.Child(dir)
	if next == nil {
		return StepResult{Outcome: Blocked, Command: cmd}
	}
	e.current = next
	return StepResult{Outcome: Moved, Command: cmd, Arrival: e.Arrive()}
}
