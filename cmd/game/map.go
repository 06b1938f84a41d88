package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tatianab/detective-quest/internal/mansion"
	"github.com/tatianab/detective-quest/internal/models"
)

var (
	roomStyle = lipgloss.NewStyle().Bold(true)
	clueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F"))
	edgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print the mansion layout with every clue (spoilers)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := models.DefaultCase()
		if err != nil {
			return err
		}
		return printMap(cmd.OutOrStdout(), c)
	},
}

func printMap(w io.Writer, c *models.Case) error {
	root, err := mansion.Build(c.Entry, c.Rooms)
	if err != nil {
		return err
	}

	suspectOf := make(map[string]string, len(c.Associations))
	for _, a := range c.Associations {
		suspectOf[a.Clue] = a.Suspect
	}

	fmt.Fprintf(w, "%s (%d salas)\n\n", roomStyle.Render(c.Title), root.Count())
	printRoom(w, root, "", suspectOf)
	return nil
}

func printRoom(w io.Writer, r *mansion.Room, label string, suspectOf map[string]string) {
	line := roomStyle.Render(r.Name)
	if label != "" {
		line = edgeStyle.Render(label) + line
	}
	if clue, ok := r.Clue(); ok {
		line += " " + clueStyle.Render(fmt.Sprintf("[%s]", clue))
		if s, ok := suspectOf[clue]; ok {
			line += edgeStyle.Render(" -> " + s)
		}
	}
	fmt.Fprintln(w, line)

	indent := strings.Repeat(" ", len([]rune(label)))
	for _, d := range []mansion.Direction{mansion.Left, mansion.Right} {
		if child := r.Child(d); child != nil {
			printRoom(w, child, indent+"("+d.String()[:1]+") ", suspectOf)
		}
	}
}
