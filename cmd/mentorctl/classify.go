package main

import (
	"fmt"

	"github.com/impulso-stone/mentores-api/internal/catalog"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var especialidades string

	cmd := &cobra.Command{
		Use:   "classify <setor>",
		Short: "Show which categories a sector string falls into",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mentor := &models.Mentor{
				Setor:          args[0],
				Especialidades: models.SplitList(especialidades),
			}

			slugs := catalog.Classify(mentor)
			out := cmd.OutOrStdout()
			if len(slugs) == 0 {
				fmt.Fprintln(out, "sem categoria")
				return nil
			}

			for _, slug := range slugs {
				category, _ := catalog.CategoryBySlug(slug)
				fmt.Fprintf(out, "%s\t%s\n", slug, category.Nome)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&especialidades, "especialidades", "", "comma-separated specialties, matched like the sector")

	return cmd
}
