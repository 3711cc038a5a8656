package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"archlens/config"
	"archlens/internal/adapter/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.NewRunStore(config.RunDBPath(GetRootDir()))
		if err != nil {
			return fmt.Errorf("failed to open run store: %w", err)
		}
		defer st.Close()

		ids, err := st.ListRunIDs()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No runs stored. Run 'archlens analyze' first.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
