package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giygas/lactancia-api/entities"
)

func newShowCmd(a *app) *cobra.Command {
	var name, format string

	cmd := &cobra.Command{
		Use:   "show <type> <id> [--name <name>]",
		Short: "Shows the record for a term identifier.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := entities.ParseTermType(args[0])
			if err != nil {
				return err
			}
			id, err := a.validator.ValidateTermID(args[1])
			if err != nil {
				return err
			}
			if name != "" {
				if name, err = a.validator.ValidateQuery(name); err != nil {
					return err
				}
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			record := svc.LookupByID(cmd.Context(), id, kind, name)

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), record)
			case "table":
				renderRecord(cmd.OutOrStdout(), record)
				return nil
			}
			return fmt.Errorf("unknown format %q, use json or table", format)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name to use when the page has none")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or table")
	return cmd
}
