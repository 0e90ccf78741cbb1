package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Skufu/dietplan/internal/chart"
	"github.com/Skufu/dietplan/internal/diet"
)

func newChartCmd() *cobra.Command {
	var (
		pf           profileFlags
		restrictions string
		allergies    string
		category     string
		useLLM       bool
		llmCfg       chart.LLMConfig
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Recommend a diet chart with a classifier",
		Long: `Scores the profile with a classifier and prints the matching diet chart.
By default a static classifier answers --category; with --llm an
OpenAI-compatible model is asked instead (key from LLM_API_KEY).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var predictor chart.Predictor = chart.StaticPredictor{Category: chart.Category(category)}
			if useLLM {
				llmCfg.APIKey = os.Getenv("LLM_API_KEY")
				p, err := chart.NewLLMPredictor(llmCfg)
				if err != nil {
					return err
				}
				predictor = p
			}

			rec, err := chart.NewService(predictor).Recommend(cmd.Context(), chart.Profile{
				Age:                 pf.age,
				Gender:              diet.Gender(pf.gender),
				WeightKg:            pf.weight,
				HeightCm:            pf.height,
				Disease:             diet.Disease(pf.disease),
				Severity:            diet.Severity(pf.severity),
				ActivityLevel:       diet.ActivityLevel(pf.activity),
				DietaryRestrictions: restrictions,
				Allergies:           allergies,
			})
			if err != nil {
				return err
			}
			logger.Info("chart recommended", zap.String("category", string(rec.Category)))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderChart(rec))
			return err
		},
	}

	pf.register(cmd, diet.MinAge, diet.MinWeightKg, diet.MinHeightCm)
	fs := cmd.Flags()
	fs.StringVar(&restrictions, "restrictions", "None", "dietary restrictions, comma separated")
	fs.StringVar(&allergies, "allergies", "None", "allergies, comma separated")
	fs.StringVar(&category, "category", string(chart.CategoryBalanced), "label answered by the static classifier")
	fs.BoolVar(&useLLM, "llm", false, "classify with an LLM instead of the static classifier")
	fs.StringVar(&llmCfg.BaseURL, "llm-base-url", "https://openrouter.ai/api/v1", "OpenAI-compatible API base URL")
	fs.StringVar(&llmCfg.Model, "llm-model", "", "model name")
	return cmd
}
