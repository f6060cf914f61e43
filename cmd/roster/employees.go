package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/store"
)

var (
	empName       string
	empTitle      string
	empDepartment string
	empSkills     []string
	empImage      string
	empNotes      string

	rateScore   int
	rateComment string
	rateAuthor  string
	rateDate    string
)

var employeesCmd = &cobra.Command{
	Use:     "employees",
	Aliases: []string{"employee", "emp"},
	Short:   "Manage employees and their ratings",
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees with their average rating",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		return renderEmployees(cmd, c.Employees.WithAverages())
	},
}

var employeesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search employees by name, title, department or skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		return renderEmployees(cmd, c.Employees.Search(args[0]))
	},
}

var employeesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an employee and their ratings",
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

		e, ok := c.Employees.ByID(id)
		if !ok {
			return fmt.Errorf("employee %d not found", id)
		}
		summary := store.EmployeeSummary{Employee: e, AverageRating: store.AverageRating(e.Ratings)}

		t := &table{headers: []string{"RATING", "AUTHOR", "DATE", "COMMENT"}}
		for _, r := range e.Ratings {
			t.add(r.Rating, r.Author, r.Date, r.Comment)
		}
		if output == "table" {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n%s, %s\nSkills: %s\nAverage: %.1f\n\n",
				e.ID, e.Name, e.Title, e.Department, strings.Join(e.Skills, ", "), summary.AverageRating)
		}
		return render(cmd, summary, t)
	},
}

var employeesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		e, err := c.Employees.Add(core.NewEmployee{
			Name:       empName,
			Title:      empTitle,
			Department: empDepartment,
			Skills:     empSkills,
			Image:      empImage,
			Notes:      empNotes,
		})
		if err != nil {
			return fmt.Errorf("failed to add employee: %w", err)
		}
		return confirm(cmd, e, "Employee %d added.", e.ID)
	},
}

var employeesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the given fields of an employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var patch core.EmployeePatch
		flags := cmd.Flags()
		if flags.Changed("name") {
			patch.Name = &empName
		}
		if flags.Changed("title") {
			patch.Title = &empTitle
		}
		if flags.Changed("department") {
			patch.Department = &empDepartment
		}
		if flags.Changed("skills") {
			patch.Skills = append([]string{}, empSkills...)
		}
		if flags.Changed("image") {
			patch.Image = &empImage
		}
		if flags.Changed("notes") {
			patch.Notes = &empNotes
		}

		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		found, err := c.Employees.Update(id, patch)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		if !found {
			return fmt.Errorf("employee %d not found", id)
		}
		e, _ := c.Employees.ByID(id)
		return confirm(cmd, e, "Employee %d updated.", id)
	},
}

var employeesRateCmd = &cobra.Command{
	Use:   "rate <id>",
	Short: "Add a rating to an employee",
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

		r, found, err := c.Employees.AddRating(id, core.NewRating{
			Rating:  rateScore,
			Comment: rateComment,
			Author:  rateAuthor,
			Date:    rateDate,
		})
		if err != nil {
			return fmt.Errorf("failed to add rating: %w", err)
		}
		if !found {
			return fmt.Errorf("employee %d not found", id)
		}
		return confirm(cmd, r, "Rating %d added to employee %d.", r.ID, id)
	},
}

func renderEmployees(cmd *cobra.Command, list []store.EmployeeSummary) error {
	t := &table{headers: []string{"ID", "NAME", "TITLE", "DEPARTMENT", "RATING", "SKILLS"}}
	for _, e := range list {
		t.add(e.ID, e.Name, e.Title, e.Department, fmt.Sprintf("%.1f", e.AverageRating), strings.Join(e.Skills, ", "))
	}
	return render(cmd, list, t)
}

func init() {
	rootCmd.AddCommand(employeesCmd)
	employeesCmd.AddCommand(employeesListCmd, employeesSearchCmd, employeesShowCmd,
		employeesAddCmd, employeesUpdateCmd, employeesRateCmd)

	for _, cmd := range []*cobra.Command{employeesAddCmd, employeesUpdateCmd} {
		cmd.Flags().StringVar(&empName, "name", "", "Full name")
		cmd.Flags().StringVar(&empTitle, "title", "", "Job title")
		cmd.Flags().StringVar(&empDepartment, "department", "", "Department")
		cmd.Flags().StringSliceVar(&empSkills, "skills", nil, "Comma-separated skills")
		cmd.Flags().StringVar(&empImage, "image", "", "Avatar URL")
		cmd.Flags().StringVar(&empNotes, "notes", "", "Free-form notes")
	}
	employeesAddCmd.MarkFlagRequired("name")

	employeesRateCmd.Flags().IntVar(&rateScore, "rating", 0, "Score from 1 to 5")
	employeesRateCmd.Flags().StringVar(&rateComment, "comment", "", "Comment")
	employeesRateCmd.Flags().StringVar(&rateAuthor, "author", "", "Rating author")
	employeesRateCmd.Flags().StringVar(&rateDate, "date", "", "Rating date YYYY-MM-DD (default today)")
	employeesRateCmd.MarkFlagRequired("rating")
	employeesRateCmd.MarkFlagRequired("author")
}
