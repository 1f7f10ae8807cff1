package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/state"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played sources",
	Long: `Show the sources played most recently and the item each one stopped
at. 'reel play --resume <source>' starts from that item.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of sources to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

type historyEntry struct {
	Source    string    `json:"source"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	Index     int       `json:"index"`
	Count     int       `json:"count"`
	PlayCount int64     `json:"play_count"`
	PlayedAt  time.Time `json:"played_at"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !cfg.History.Enabled {
		fmt.Fprintln(out, "Play history is disabled.")
		return nil
	}

	hist, err := state.Open(cfg.History.File, nil)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpHistoryOpen, cfg.History.File, err))
	}
	defer hist.Close()

	recent, err := hist.Recent(max(historyLimit, 1))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpHistoryRead, err))
	}

	if historyJSON {
		entries := make([]historyEntry, 0, len(recent))
		for _, s := range recent {
			entries = append(entries, historyEntry(s))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(recent) == 0 {
		fmt.Fprintln(out, "Nothing played yet.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tLAST ITEM\tPOSITION\tPLAYS\tWHEN")
	for _, s := range recent {
		name := s.Name
		if name == "" {
			name = "(" + cfg.Placeholder + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\t%s\n",
			s.Source, name, s.Index+1, s.Count, s.PlayCount, humanize.Time(s.PlayedAt))
	}
	return w.Flush()
}
