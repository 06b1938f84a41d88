// Package mansion holds the fixed binary tree of rooms the player walks.
package mansion

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tatianab/detective-quest/internal/models"
)

// MaxNameLength bounds a room name, in runes.
const MaxNameLength = 79

// ErrInvalidLayout is returned by Build when the layout is not a tree rooted
// at the entry room.
var ErrInvalidLayout = errors.New("invalid mansion layout")

// Direction selects one of a room's two exits.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "esquerda"
	}
	return "direita"
}

// Room is a node of the mansion. It owns its two children.
type Room struct {
	Name  string
	clue  string
	left  *Room
	right *Room
}

// NewRoom creates a room with an optional clue. An empty clue means none.
func NewRoom(name, clue string) *Room {
	return &Room{Name: truncate(name), clue: clue}
}

// Clue returns the clue still lying in the room, if any, without taking it.
func (r *Room) Clue() (string, bool) {
	return r.clue, r.clue != ""
}

// CollectClue takes the room's clue. A room yields its clue at most once.
func (r *Room) CollectClue() (string, bool) {
	if r.clue == "" {
		return "", false
	}
	clue := r.clue
	r.clue = ""
	return clue, true
}

// Child returns the room behind the given exit, or nil.
func (r *Room) Child(d Direction) *Room {
	if d == Left {
		return r.left
	}
	return r.right
}

// Attach sets the room behind the given exit.
func (r *Room) Attach(d Direction, child *Room) {
	if d == Left {
		r.left = child
	} else {
		r.right = child
	}
}

// IsLeaf reports whether the room has no exits.
func (r *Room) IsLeaf() bool {
	return r.left == nil && r.right == nil
}

// Walk visits the subtree rooted at r in pre-order (room, left, right).
func (r *Room) Walk(fn func(room *Room, depth int)) {
	var walk func(*Room, int)
	walk = func(room *Room, depth int) {
		if room == nil {
			return
		}
		fn(room, depth)
		walk(room.left, depth+1)
		walk(room.right, depth+1)
	}
	walk(r, 0)
}

// Count returns the number of rooms in the subtree rooted at r.
func (r *Room) Count() int {
	n := 0
	r.Walk(func(*Room, int) { n++ })
	return n
}

// Build constructs the mansion from a flat list of room specs and returns the
// entry room. Every room must be reachable from the entry by exactly one path.
func Build(entry string, specs []models.RoomSpec) (*Room, error) {
	rooms := make(map[string]*Room, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: room without a name", ErrInvalidLayout)
		}
		if _, dup := rooms[s.Name]; dup {
			return nil, fmt.Errorf("%w: room %q declared twice", ErrInvalidLayout, s.Name)
		}
		rooms[s.Name] = NewRoom(s.Name, s.Clue)
	}

	root, ok := rooms[entry]
	if !ok {
		return nil, fmt.Errorf("%w: entry room %q not declared", ErrInvalidLayout, entry)
	}

	parent := make(map[string]string, len(specs))
	for _, s := range specs {
		for _, exit := range []struct {
			dir  Direction
			name string
		}{{Left, s.Left}, {Right, s.Right}} {
			if exit.name == "" {
				continue
			}
			child, ok := rooms[exit.name]
			if !ok {
				return nil, fmt.Errorf("%w: %q leads to unknown room %q", ErrInvalidLayout, s.Name, exit.name)
			}
			if exit.name == entry {
				return nil, fmt.Errorf("%w: %q leads back to the entry room", ErrInvalidLayout, s.Name)
			}
			if p, taken := parent[exit.name]; taken {
				return nil, fmt.Errorf("%w: %q is reachable from both %q and %q", ErrInvalidLayout, exit.name, p, s.Name)
			}
			parent[exit.name] = s.Name
			rooms[s.Name].Attach(exit.dir, child)
		}
	}

	// With one parent per room, anything not reached from the entry sits on a cycle
	// or in a separate tree.
	if n := root.Count(); n != len(rooms) {
		return nil, fmt.Errorf("%w: %d of %d rooms unreachable from %q", ErrInvalidLayout, len(rooms)-n, len(rooms), entry)
	}

	return root, nil
}

func truncate(name string) string {
	if utf8.RuneCountInString(name) <= MaxNameLength {
		return name
	}
	runes := []rune(name)
	return string(runes[:MaxNameLength])
}
