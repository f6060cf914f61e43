package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/roster/pkg/core"
)

var (
	erCompany     string
	erContact     string
	erEmail       string
	erPhone       string
	erIndustry    string
	erWebsite     string
	erAddress     string
	erDescription string
	erLogo        string
)

var employersCmd = &cobra.Command{
	Use:     "employers",
	Aliases: []string{"employer"},
	Short:   "Manage employers",
}

var employersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employers, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		return renderEmployers(cmd, c.Employers.Sorted())
	},
}

var employersSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search employers by company, contact, industry or email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		return renderEmployers(cmd, c.Employers.Search(args[0]))
	},
}

var employersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an employer",
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

		e, ok := c.Employers.ByID(id)
		if !ok {
			return fmt.Errorf("employer %d not found", id)
		}
		t := &table{headers: []string{"FIELD", "VALUE"}}
		t.add("Company", e.CompanyName)
		t.add("Contact", e.ContactPerson)
		t.add("Email", e.Email)
		t.add("Phone", e.Phone)
		t.add("Industry", e.Industry)
		t.add("Website", e.Website)
		t.add("Address", e.Address)
		t.add("Created", e.CreatedAt)
		return render(cmd, e, t)
	},
}

var employersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		e, err := c.Employers.Add(core.NewEmployer{
			CompanyName:   erCompany,
			ContactPerson: erContact,
			Email:         erEmail,
			Phone:         erPhone,
			Industry:      erIndustry,
			Website:       erWebsite,
			Address:       erAddress,
			Description:   erDescription,
			Logo:          erLogo,
		})
		if err != nil {
			return fmt.Errorf("failed to add employer: %w", err)
		}
		return confirm(cmd, e, "Employer %d added.", e.ID)
	},
}

var employersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the given fields of an employer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var patch core.EmployerPatch
		fields := map[string]struct {
			dst **string
			src *string
		}{
			"company":     {&patch.CompanyName, &erCompany},
			"contact":     {&patch.ContactPerson, &erContact},
			"email":       {&patch.Email, &erEmail},
			"phone":       {&patch.Phone, &erPhone},
			"industry":    {&patch.Industry, &erIndustry},
			"website":     {&patch.Website, &erWebsite},
			"address":     {&patch.Address, &erAddress},
			"description": {&patch.Description, &erDescription},
			"logo":        {&patch.Logo, &erLogo},
		}
		for name, f := range fields {
			if cmd.Flags().Changed(name) {
				*f.dst = f.src
			}
		}

		c, err := openConsole()
		if err != nil {
			return err
		}
		defer c.Close()

		found, err := c.Employers.Update(id, patch)
		if err != nil {
			return fmt.Errorf("failed to update employer: %w", err)
		}
		if !found {
			return fmt.Errorf("employer %d not found", id)
		}
		e, _ := c.Employers.ByID(id)
		return confirm(cmd, e, "Employer %d updated.", id)
	},
}

var employersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an employer",
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

		found, err := c.Employers.Delete(id)
		if err != nil {
			return fmt.Errorf("failed to delete employer: %w", err)
		}
		if !found {
			return fmt.Errorf("employer %d not found", id)
		}
		return confirm(cmd, map[string]int{"deleted": id}, "Employer %d deleted.", id)
	},
}

func renderEmployers(cmd *cobra.Command, list []core.Employer) error {
	t := &table{headers: []string{"ID", "COMPANY", "CONTACT", "INDUSTRY", "EMAIL", "CREATED"}}
	for _, e := range list {
		t.add(e.ID, e.CompanyName, e.ContactPerson, e.Industry, e.Email, e.CreatedAt)
	}
	return render(cmd, list, t)
}

func init() {
	rootCmd.AddCommand(employersCmd)
	employersCmd.AddCommand(employersListCmd, employersSearchCmd, employersShowCmd,
		employersAddCmd, employersUpdateCmd, employersDeleteCmd)

	for _, cmd := range []*cobra.Command{employersAddCmd, employersUpdateCmd} {
		cmd.Flags().StringVar(&erCompany, "company", "", "Company name")
		cmd.Flags().StringVar(&erContact, "contact", "", "Contact person")
		cmd.Flags().StringVar(&erEmail, "email", "", "Contact email")
		cmd.Flags().StringVar(&erPhone, "phone", "", "Contact phone")
		cmd.Flags().StringVar(&erIndustry, "industry", "", "Industry")
		cmd.Flags().StringVar(&erWebsite, "website", "", "Website URL")
		cmd.Flags().StringVar(&erAddress, "address", "", "Postal address")
		cmd.Flags().StringVar(&erDescription, "description", "", "Description")
		cmd.Flags().StringVar(&erLogo, "logo", "", "Logo URL")
	}
	employersAddCmd.MarkFlagRequired("company")
}
