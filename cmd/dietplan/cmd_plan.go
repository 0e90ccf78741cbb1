package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Skufu/dietplan/internal/diet"
	"github.com/Skufu/dietplan/internal/report"
)

func newPlanCmd() *cobra.Command {
	var (
		pf          profileFlags
		preference  string
		catalogPath string
		pdfPath     string
		asJSON      bool
		seed        uint64
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a diet plan for a profile",
		Example: `  dietplan plan --age 40 --weight 82 --disease Diabetes
  dietplan plan --diet Vegan --pdf diet_plan.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := diet.DefaultCatalog()
			if catalogPath != "" {
				c, err := diet.LoadCatalog(catalogPath)
				if err != nil {
					return err
				}
				catalog = c
			}

			var opts []report.Option
			if seed != 0 {
				opts = append(opts, report.WithPermuter(rand.New(rand.NewPCG(seed, seed))))
			}
			planner, err := report.NewPlanner(catalog, opts...)
			if err != nil {
				return err
			}

			rep, err := planner.Plan(diet.Profile{
				Age:            pf.age,
				WeightKg:       pf.weight,
				HeightCm:       pf.height,
				Gender:         diet.Gender(pf.gender),
				Disease:        diet.Disease(pf.disease),
				Severity:       diet.Severity(pf.severity),
				ActivityLevel:  diet.ActivityLevel(pf.activity),
				DietPreference: diet.DietPreference(preference),
			})
			if err != nil {
				return err
			}
			logger.Info("plan generated",
				zap.String("id", rep.ID),
				zap.String("category", string(rep.Category)),
				zap.Float64("bmi", rep.BMI.Value),
			)

			if pdfPath != "" {
				if err := writePDFFile(pdfPath, rep); err != nil {
					return err
				}
				logger.Info("pdf written", zap.String("path", pdfPath))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			_, err = fmt.Fprintln(out, renderReport(rep))
			if err == nil && pdfPath != "" {
				_, err = fmt.Fprintf(out, "PDF report written to %s\n", pdfPath)
			}
			return err
		},
	}

	pf.register(cmd, 25, 70, 170)
	fs := cmd.Flags()
	fs.StringVar(&preference, "diet", string(diet.PreferenceNone), "None, Vegan, Vegetarian or Gluten-Free")
	fs.StringVar(&catalogPath, "catalog", "", "YAML catalog overriding the builtin templates")
	fs.StringVar(&pdfPath, "pdf", "", "write the PDF report to this file")
	fs.BoolVar(&asJSON, "json", false, "print the report as JSON")
	fs.Uint64Var(&seed, "seed", 0, "seed for the weekly schedule (0 picks a random one)")
	return cmd
}

func writePDFFile(path string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := report.WritePDF(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
