package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
	"github.com/aretw0/roster/pkg/view"
)

var (
	activityAll bool

	logType        string
	logUser        string
	logDescription string
	logDetails     string
	logTargetID    int
	logTargetName  string

	clearDays int
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Read and maintain the activity feed",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent activity, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		entries := c.Activity.Recent()
		if activityAll {
			entries = c.Activity.All()
		}

		now := time.Now()
		t := &table{headers: []string{"ID", "WHEN", "TYPE", "USER", "DESCRIPTION", "TARGET", "DETAILS"}}
		for _, e := range entries {
			t.add(e.ID, view.RelativeTime(e.Timestamp, now), view.Display(e.Type).Label,
				e.User, e.Description, e.TargetName, e.Details)
		}
		return render(cmd, entries, t)
	},
}

var activityLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Append an entry to the activity feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		in := core.NewActivity{
			Type:        core.ActivityType(logType),
			User:        logUser,
			Description: logDescription,
			Details:     logDetails,
			TargetName:  logTargetName,
		}
		if cmd.Flags().Changed("target-id") {
			in.TargetID = core.IntRef(logTargetID)
		}

		e, err := c.Activity.Log(in)
		if err != nil {
			return fmt.Errorf("failed to log activity: %w", err)
		}
		return confirm(cmd, e, "Activity %d logged.", e.ID)
	},
}

var activityClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop activity older than --days days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		removed, err := c.Activity.ClearOld(clearDays)
		if err != nil {
			return fmt.Errorf("failed to clear activity: %w", err)
		}
		return confirm(cmd, map[string]int{"removed": removed}, "%d entries removed.", removed)
	},
}

var activitySummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count activity per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		s := view.Summarize(c.Activity.All())
		t := &table{headers: []string{"CATEGORY", "COUNT"}}
		t.add("employees", s.Employees)
		t.add("employers", s.Employers)
		t.add("tests", s.Tests)
		t.add("total", s.Total)
		return render(cmd, s, t)
	},
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityListCmd, activityLogCmd, activityClearCmd, activitySummaryCmd)

	activityListCmd.Flags().BoolVar(&activityAll, "all", false, "Show the whole log instead of the latest entries")

	activityLogCmd.Flags().StringVar(&logType, "type", "", "Activity type (e.g. user_login)")
	activityLogCmd.Flags().StringVar(&logUser, "user", "", "User name")
	activityLogCmd.Flags().StringVar(&logDescription, "description", "", "Description")
	activityLogCmd.Flags().StringVar(&logDetails, "details", "", "Details")
	activityLogCmd.Flags().IntVar(&logTargetID, "target-id", 0, "Id of the affected entity")
	activityLogCmd.Flags().StringVar(&logTargetName, "target-name", "", "Name of the affected entity")
	activityLogCmd.MarkFlagRequired("type")
	activityLogCmd.MarkFlagRequired("user")

	activityClearCmd.Flags().IntVar(&clearDays, "days", store.DefaultRetentionDays, "Maximum age in days")
}
