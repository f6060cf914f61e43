package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/roster/internal/platform"
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the storage medium and the size of every collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		state := c.State().(platform.ConsoleState)
		t := &table{headers: []string{"COLLECTION", "ITEMS", "PERSISTENT"}}
		t.add("adapter", state.Adapter, state.Location)
		for _, key := range []string{core.KeyEmployees, core.KeyEmployers, core.KeyTests, core.KeyActivities} {
			if cs, ok := state.Collections[key].(store.CollectionState); ok {
				t.add(key, cs.Items, cs.Persistent)
			}
		}
		return render(cmd, state, t)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
