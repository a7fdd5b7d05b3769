package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giygas/lactancia-api/lookup"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Searches a medication. Prints the record, or a table of candidates.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := a.validator.ValidateQuery(strings.Join(args, " "))
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			outcome, err := svc.Search(cmd.Context(), query)
			switch {
			case errors.Is(err, lookup.ErrNotFound):
				return fmt.Errorf("nenhum medicamento encontrado para %q", query)
			case err != nil:
				return err
			}

			if outcome.Medication != nil {
				return writeJSON(cmd.OutOrStdout(), outcome.Medication)
			}

			renderSuggestions(cmd.OutOrStdout(), outcome.Suggestions)
			fmt.Fprintln(cmd.OutOrStdout(), "lactancia show <type> <id> para ver um resultado")
			return nil
		},
	}
}
