package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-bom/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-bom/pkg/config"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var (
		companyID string
		file      string
		out       string
		encoding  string
		delimiter string
		apply     bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convierte un CSV de recetas en SQL de productos y listas de materiales",
		Long: "Columnas: parent_sku, parent_name, parent_price, component_sku, component_name, quantity, uom.\n" +
			"Los componentes que no existen se crean como productos estándar; las listas existentes se reemplazan.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := uuid.Parse(companyID); err != nil {
				return fmt.Errorf("--company debe ser un UUID: %w", err)
			}
			if len([]rune(delimiter)) != 1 {
				return fmt.Errorf("--delimiter debe ser un solo carácter")
			}
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()

			in, err := decodeInput(f, encoding)
			if err != nil {
				return err
			}
			recipes, err := parseRecipes(in, []rune(delimiter)[0])
			if err != nil {
				return err
			}
			script := renderSQL(companyID, recipes)

			if apply {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("cargar configuración: %w", err)
				}
				pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
				if err != nil {
					return err
				}
				defer pool.Close()
				if _, err := pool.Exec(cmd.Context(), script); err != nil {
					return fmt.Errorf("aplicar recetas: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "importadas %d listas de materiales\n", len(recipes))
				return nil
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				of, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("crear archivo: %w", err)
				}
				defer of.Close()
				w = of
			}
			_, err = io.WriteString(w, script)
			return err
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "UUID de la empresa")
	cmd.Flags().StringVar(&file, "file", "", "ruta del CSV de recetas")
	cmd.Flags().StringVar(&out, "out", "", "archivo SQL de salida (por defecto stdout)")
	cmd.Flags().StringVar(&encoding, "encoding", "utf8", "codificación del CSV: utf8, windows1252, latin1")
	cmd.Flags().StringVar(&delimiter, "delimiter", ";", "separador de columnas")
	cmd.Flags().BoolVar(&apply, "apply", false, "ejecutar el SQL contra la base configurada")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
