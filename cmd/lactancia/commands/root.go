// Package commands implements the lactancia command line: one-shot searches
// and lookups against e-lactancia from the terminal.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/giygas/lactancia-api/config"
	"github.com/giygas/lactancia-api/interfaces"
	"github.com/giygas/lactancia-api/logging"
	"github.com/giygas/lactancia-api/lookup"
	"github.com/giygas/lactancia-api/validation"
)

// LookupFactory builds the lookup service once a command actually runs
type LookupFactory func() (interfaces.MedicationLookup, error)

type app struct {
	build     LookupFactory
	lookup    interfaces.MedicationLookup
	validator interfaces.InputValidator
}

func (a *app) service() (interfaces.MedicationLookup, error) {
	if a.lookup != nil {
		return a.lookup, nil
	}
	svc, err := a.build()
	if err != nil {
		return nil, err
	}
	a.lookup = svc
	return svc, nil
}

// NewRootCmd assembles the command tree around build
func NewRootCmd(build LookupFactory) *cobra.Command {
	a := &app{build: build, validator: validation.NewInputValidator()}

	root := &cobra.Command{
		Use:           "lactancia",
		Short:         "lactancia looks up breastfeeding compatibility of medications on e-lactancia.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSearchCmd(a), newShowCmd(a))
	return root
}

// ExecuteContext runs the CLI against the live upstream services
func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd(liveLookup).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func liveLookup() (interfaces.MedicationLookup, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logging.Init(logging.Options{
		Dir:            filepath.Join(os.TempDir(), "lactancia-logs"),
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
		Console:        os.Stderr,
	})

	svc, _, err := lookup.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
