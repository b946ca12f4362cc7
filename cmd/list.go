package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giantswarm/emotion-bench/internal/catalog"
)

func newListCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the emotions in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return fmt.Errorf("failed to load emotion catalog: %w", err)
			}

			fmt.Printf("Emotion catalog: %d emotions, %d phrases\n\n", cat.Len(), len(cat.All()))

			// Group by category, keeping catalog order for both the
			// categories and the emotions within them.
			var order []string
			grouped := make(map[string][]catalog.Entry)
			for _, e := range cat.Entries() {
				if _, ok := grouped[e.Category]; !ok {
					order = append(order, e.Category)
				}
				grouped[e.Category] = append(grouped[e.Category], e)
			}

			for _, category := range order {
				fmt.Printf("%s:\n", category)
				for _, e := range grouped[category] {
					fmt.Printf("  - %s (%d phrases)\n", e.Tag, len(e.Phrases))
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "External emotion catalog YAML (default embedded catalog)")

	return cmd
}
