package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iho/conta/internal/adapter/http/dto"
	"github.com/iho/conta/internal/domain"
)

func entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Journal entry tools",
	}

	var file, accounts string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate an entry file offline against a chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateEntryFile(cmd.OutOrStdout(), file, accounts)
		},
	}
	validate.Flags().StringVar(&file, "file", "", "Entry JSON file")
	validate.Flags().StringVar(&accounts, "accounts", "", "Chart of accounts JSON file (optional)")
	_ = validate.MarkFlagRequired("file")

	cmd.AddCommand(validate)
	return cmd
}

// validateEntryFile runs the entry rules on file. Without a catalog file
// account existence is not checked.
func validateEntryFile(out io.Writer, file, accountsFile string) error {
	body, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	req, err := dto.DecodeEntry(body)
	if err != nil {
		return err
	}

	var catalog *domain.Catalog
	if accountsFile != "" {
		catalog, err = loadCatalog(accountsFile)
		if err != nil {
			return err
		}
	}

	result := domain.ValidateEntry(req.ToDraft().Normalized(), catalog)
	if err := printJSON(out, dto.ValidationFromDomain(result)); err != nil {
		return err
	}

	if !result.OK {
		return errCheckFailed
	}
	return nil
}

func loadCatalog(path string) (*domain.Catalog, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []dto.CreateAccountRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	accounts := make([]domain.Account, 0, len(raw))
	for _, r := range raw {
		t, err := domain.ParseAccountType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", r.Code, err)
		}
		active := true
		if r.Active != nil {
			active = *r.Active
		}
		accounts = append(accounts, domain.Account{Code: r.Code, Name: r.Name, Type: t, Active: active})
	}

	return domain.NewCatalog(accounts)
}
