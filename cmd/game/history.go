package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tatianab/detective-quest/internal/archive"
	"github.com/tatianab/detective-quest/internal/config"
)

var historyLimit int

var (
	sustainedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87D787")).Bold(true)
	weakStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent accusations from the verdict archive",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		a, err := archive.Open(cfg.Archive.Path)
		if errors.Is(err, archive.ErrDisabled) {
			return errors.New("the verdict archive is disabled; set archive.path or DETECTIVE_ARCHIVE_PATH")
		}
		if err != nil {
			return fmt.Errorf("error opening archive: %w", err)
		}
		defer a.Close()

		return printHistory(cmd.Context(), cmd.OutOrStdout(), a, historyLimit)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of verdicts to show")
}

func printHistory(ctx context.Context, w io.Writer, a *archive.Archive, limit int) error {
	records, err := a.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "Nenhum veredicto arquivado.")
		return nil
	}

	for _, r := range records {
		v := weakStyle.Render("FRACA")
		if r.Verdict == "sustained" {
			v = sustainedStyle.Render("SUSTENTADA")
		}
		fmt.Fprintf(w, "%s  %-20s %d evidência(s)  %s  (%s)\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Suspect, r.Evidence, v, r.Case)
		for _, c := range r.Clues {
			fmt.Fprintf(w, "    - %s\n", c)
		}
	}
	return nil
}
