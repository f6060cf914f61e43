package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

var (
	testTitle       string
	testDescription string
	testCategory    string
	testDifficulty  string
	testDuration    int
	testQuestions   int
	testTags        []string
	testActive      bool

	filterActive     bool
	filterCategory   string
	filterDifficulty string

	runUser  string
	runScore int
)

var testsCmd = &cobra.Command{
	Use:     "tests",
	Aliases: []string{"test"},
	Short:   "Manage skill tests and record test runs",
}

var testsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tests, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := store.TestFilter{Category: filterCategory, ActiveOnly: filterActive}
		if filterDifficulty != "" {
			d, err := core.ParseDifficulty(filterDifficulty)
			if err != nil {
				return err
			}
			f.Difficulty = d
		}

		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		list := c.Tests.Filter(f)
		t := &table{headers: []string{"ID", "TITLE", "CATEGORY", "DIFFICULTY", "MINUTES", "QUESTIONS", "ACTIVE"}}
		for _, tt := range list {
			t.add(tt.ID, tt.Title, tt.Category, tt.Difficulty, tt.Duration, tt.QuestionsCount, tt.IsActive)
		}
		return render(cmd, list, t)
	},
}

var testsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		tt, ok := c.Tests.ByID(id)
		if !ok {
			return fmt.Errorf("test %d not found", id)
		}
		t := &table{headers: []string{"FIELD", "VALUE"}}
		t.add("Title", tt.Title)
		t.add("Category", tt.Category)
		t.add("Difficulty", tt.Difficulty)
		t.add("Duration", fmt.Sprintf("%d min", tt.Duration))
		t.add("Questions", tt.QuestionsCount)
		t.add("Tags", strings.Join(tt.Tags, ", "))
		t.add("Active", tt.IsActive)
		t.add("Created", tt.CreatedAt)
		return render(cmd, tt, t)
	},
}

var testsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a test",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := core.ParseDifficulty(testDifficulty)
		if err != nil {
			return err
		}
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		tt, err := c.Tests.Add(core.NewTest{
			Title:          testTitle,
			Description:    testDescription,
			Category:       testCategory,
			Difficulty:     d,
			Duration:       testDuration,
			QuestionsCount: testQuestions,
			Tags:           testTags,
			IsActive:       testActive,
		})
		if err != nil {
			return fmt.Errorf("failed to add test: %w", err)
		}
		return confirm(cmd, tt, "Test %d added.", tt.ID)
	},
}

var testsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the given fields of a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var patch core.TestPatch
		flags := cmd.Flags()
		if flags.Changed("title") {
			patch.Title = &testTitle
		}
		if flags.Changed("description") {
			patch.Description = &testDescription
		}
		if flags.Changed("category") {
			patch.Category = &testCategory
		}
		if flags.Changed("difficulty") {
			d, err := core.ParseDifficulty(testDifficulty)
			if err != nil {
				return err
			}
			patch.Difficulty = &d
		}
		if flags.Changed("duration") {
			patch.Duration = &testDuration
		}
		if flags.Changed("questions") {
			patch.QuestionsCount = &testQuestions
		}
		if flags.Changed("tags") {
			patch.Tags = append([]string{}, testTags...)
		}
		if flags.Changed("active") {
			patch.IsActive = &testActive
		}

		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		found, err := c.Tests.Update(id, patch)
		if err != nil {
			return fmt.Errorf("failed to update test: %w", err)
		}
		if !found {
			return fmt.Errorf("test %d not found", id)
		}
		tt, _ := c.Tests.ByID(id)
		return confirm(cmd, tt, "Test %d updated.", id)
	},
}

var testsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		found, err := c.Tests.Delete(id)
		if err != nil {
			return fmt.Errorf("failed to delete test: %w", err)
		}
		if !found {
			return fmt.Errorf("test %d not found", id)
		}
		return confirm(cmd, map[string]int{"deleted": id}, "Test %d deleted.", id)
	},
}

var testsStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Record a user starting a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		entry, err := c.TestRuns.Start(runUser, id)
		if err != nil {
			return err
		}
		return confirm(cmd, entry, "%s started %q.", runUser, entry.TargetName)
	},
}

var testsCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Record a user completing a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if runScore < 0 || runScore > 100 {
			return fmt.Errorf("score must be in 0..100 (got %d)", runScore)
		}
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		entry, err := c.TestRuns.Complete(runUser, id, runScore)
		if err != nil {
			return err
		}
		return confirm(cmd, entry, "%s completed %q (%s).", runUser, entry.TargetName, entry.Details)
	},
}

func init() {
	rootCmd.AddCommand(testsCmd)
	testsCmd.AddCommand(testsListCmd, testsShowCmd, testsAddCmd, testsUpdateCmd,
		testsDeleteCmd, testsStartCmd, testsCompleteCmd)

	testsListCmd.Flags().BoolVar(&filterActive, "active", false, "Only active tests")
	testsListCmd.Flags().StringVar(&filterCategory, "category", "", "Filter by category")
	testsListCmd.Flags().StringVar(&filterDifficulty, "difficulty", "", "Filter by difficulty (easy, medium, hard)")

	for _, cmd := range []*cobra.Command{testsAddCmd, testsUpdateCmd} {
		cmd.Flags().StringVar(&testTitle, "title", "", "Title")
		cmd.Flags().StringVar(&testDescription, "description", "", "Description")
		cmd.Flags().StringVar(&testCategory, "category", "", "Category")
		cmd.Flags().StringVar(&testDifficulty, "difficulty", "medium", "Difficulty (easy, medium, hard)")
		cmd.Flags().IntVar(&testDuration, "duration", 30, "Duration in minutes")
		cmd.Flags().IntVar(&testQuestions, "questions", 10, "Number of questions")
		cmd.Flags().StringSliceVar(&testTags, "tags", nil, "Comma-separated tags")
		cmd.Flags().BoolVar(&testActive, "active", true, "Whether the test is offered")
	}
	testsAddCmd.MarkFlagRequired("title")

	for _, cmd := range []*cobra.Command{testsStartCmd, testsCompleteCmd} {
		cmd.Flags().StringVar(&runUser, "user", "", "Name of the user taking the test")
		cmd.MarkFlagRequired("user")
	}
	testsCompleteCmd.Flags().IntVar(&runScore, "score", 0, "Score in percent")
	testsCompleteCmd.MarkFlagRequired("score")
}
