// Command dietplan builds diet reports from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Skufu/dietplan/internal/diet"
	"github.com/Skufu/dietplan/internal/logging"
)

var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "dietplan",
		Short: "Rule-based diet plan generator",
		Long: `dietplan maps a health profile to one of the builtin diet templates
and prints the daily plan, a weekly schedule and a grocery list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newPlanCmd(), newCatalogCmd(), newChartCmd())
	return root
}

// profileFlags binds the shared profile fields onto a command.
type profileFlags struct {
	age      int
	weight   float64
	height   float64
	gender   string
	disease  string
	severity string
	activity string
}

func (f *profileFlags) register(cmd *cobra.Command, defaultAge int, defaultWeight, defaultHeight float64) {
	fs := cmd.Flags()
	fs.IntVar(&f.age, "age", defaultAge, "age in years (10-100)")
	fs.Float64Var(&f.weight, "weight", defaultWeight, "weight in kg (10-200)")
	fs.Float64Var(&f.height, "height", defaultHeight, "height in cm (100-220)")
	fs.StringVar(&f.gender, "gender", string(diet.GenderMale), "Male, Female or Other")
	fs.StringVar(&f.disease, "disease", string(diet.DiseaseNone), "None, Diabetes, Hypertension, Heart Disease, PCOS, Thyroid or Obesity")
	fs.StringVar(&f.severity, "severity", string(diet.SeverityNone), "None, Low, Moderate or High")
	fs.StringVar(&f.activity, "activity", string(diet.ActivityLow), "Low, Moderate or High")
}
