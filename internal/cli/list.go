package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/llehouerou/reel/internal/catalog"
	"github.com/llehouerou/reel/internal/errmsg"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list <source>",
	Short: "Print the playlist built from a listing",
	Long: `Print the items reel would play, in order.

<source> is an http(s) URL of a directory listing page, a local HTML file or
a local directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

type listedItem struct {
	Index int            `json:"index"`
	ID    catalog.ItemID `json:"id"`
	Name  string         `json:"name"`
	URL   string         `json:"url"`
}

func runList(cmd *cobra.Command, args []string) error {
	log, err := newLogger(true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	loader := catalog.NewLoader(
		catalog.WithExtensions(cfg.Listing.Extensions),
		catalog.WithLogger(log.Named("catalog")),
	)
	cat, err := loader.Load(cmd.Context(), args[0])
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpCatalogLoad, args[0], err))
	}

	items := make([]listedItem, 0, cat.Len())
	for i, it := range cat.Items() {
		items = append(items, listedItem{Index: i, ID: it.ID, Name: it.Name, URL: it.URL})
	}

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "No playable items.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tURL")
	for _, it := range items {
		name := it.Name
		if name == "" {
			name = "(" + cfg.Placeholder + ")"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", it.Index+1, name, it.URL)
	}
	return w.Flush()
}
