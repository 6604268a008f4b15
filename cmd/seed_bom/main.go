// Comando seed_bom: aplica el esquema y carga listas de materiales desde CSV.
//
//	go run ./cmd/seed_bom migrate
//	go run ./cmd/seed_bom import --company <uuid> --file recetas.csv --encoding windows1252 --apply
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seed_bom",
		Short:         "Esquema y carga de listas de materiales del POS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newImportCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "seed_bom: %v\n", err)
		os.Exit(1)
	}
}
