package models

// Case is the static definition of an investigation: the mansion layout and
// the knowledge base linking clues to suspects.
type Case struct {
	Title        string        `yaml:"title"`
	Description  string        `yaml:"description"`
	Entry        string        `yaml:"entry"` // name of the room the player starts in
	Rooms        []RoomSpec    `yaml:"rooms"`
	Associations []Association `yaml:"associations"`
}

// RoomSpec describes a single room and its two optional exits.
type RoomSpec struct {
	Name  string `yaml:"name"`
	Clue  string `yaml:"clue,omitempty"`
	Left  string `yaml:"left,omitempty"`  // "esquerda"
	Right string `yaml:"right,omitempty"` // "direita"
}

// Association links a clue to the suspect it incriminates.
type Association struct {
	Clue    string `yaml:"clue"`
	Suspect string `yaml:"suspect"`
}

// Suspects returns the distinct suspects named by the case, in the order they
// first appear.
func (c *Case) Suspects() []string {
	seen := make(map[string]bool)
	var suspects []string
	for _, a := range c.Associations {
		if a.Suspect == "" || seen[a.Suspect] {
			continue
		}
		seen[a.Suspect] = true
		suspects = append(suspects, a.Suspect)
	}
	return suspects
}
