package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"property-price-service/internal/adapters/secondary/csvfile"
	"property-price-service/internal/adapters/secondary/regressor"
	"property-price-service/internal/core/domain"
	"property-price-service/internal/core/services"
)

const (
	defaultDataPath  = "data/melb_data.csv"
	defaultModelPath = "models/melb_price_model.json"
	defaultTarget    = "Price"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "property",
		Short:         "Train and query a regression model for Melbourne property prices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newTrainCmd(), newResolveCmd(), newPredictCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the regression model and persist the frozen artifact",
		RunE:  runTrain,
	}
	cmd.Flags().String("data", defaultDataPath, "Path to the reference dataset CSV")
	cmd.Flags().String("model", defaultModelPath, "Output model path")
	cmd.Flags().String("target", defaultTarget, "Target column name in the dataset")
	cmd.Flags().Float64("test-size", 0.2, "Hold-out ratio")
	cmd.Flags().Int64("seed", 42, "Random seed for the train/test split")
	return cmd
}

func runTrain(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	modelPath, _ := cmd.Flags().GetString("model")
	target, _ := cmd.Flags().GetString("target")
	testSize, _ := cmd.Flags().GetFloat64("test-size")
	seed, _ := cmd.Flags().GetInt64("seed")

	table, err := csvfile.NewReader().ReadTable(context.Background(), dataPath)
	if err != nil {
		return err
	}

	model, err := regressor.NewTrainer().Fit(table, regressor.TrainConfig{
		TargetColumn: target,
		TestSize:     testSize,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	if err := regressor.NewStore().Save(modelPath, model); err != nil {
		return err
	}

	fmt.Println("Training complete. Metrics:")
	fmt.Printf("  r2_score: %.4f\n", model.Metrics.R2)
	fmt.Printf("  mae: %.2f\n", model.Metrics.MAE)
	fmt.Printf("  rmse: %.2f\n", model.Metrics.RMSE)
	fmt.Printf("Model saved to %s\n", modelPath)
	return nil
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the complete feature row a prediction would use, without running it",
		RunE:  runResolve,
	}
	addQueryFlags(cmd)
	return cmd
}

func newPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Load a trained model and predict the price for a custom property",
		RunE:  runPredict,
	}
	addQueryFlags(cmd)
	return cmd
}

// addQueryFlags registers the shared resolve/predict flag set: the data,
// model and target locations plus one named flag per known feature alias.
// Unset feature flags leave the dataset default in place.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", defaultDataPath, "Dataset used for feature defaults")
	cmd.Flags().String("model", defaultModelPath, "Path to the saved model")
	cmd.Flags().String("target", defaultTarget, "Target column used during training")

	for _, binding := range domain.MelbourneAliases {
		cmd.Flags().String(binding.Alias, "", binding.Help)
	}
	cmd.Flags().StringArray("feature", nil,
		"Custom COLUMN=VALUE overrides (repeatable). Useful for columns without dedicated flags")
}

// collectOverrides gathers named feature flags in declaration order, then
// the repeatable generic feature pairs.
func collectOverrides(cmd *cobra.Command) ([]domain.Override, error) {
	overrides := make([]domain.Override, 0)
	for _, binding := range domain.MelbourneAliases {
		if !cmd.Flags().Changed(binding.Alias) {
			continue
		}
		value, _ := cmd.Flags().GetString(binding.Alias)
		overrides = append(overrides, domain.Override{
			Key:    binding.Alias,
			Value:  value,
			Source: domain.SourceNamed,
		})
	}

	pairs, _ := cmd.Flags().GetStringArray("feature")
	generic, err := services.ParseFeaturePairs(pairs, domain.SourceGeneric)
	if err != nil {
		return nil, err
	}
	return append(overrides, generic...), nil
}

func newQueryService(cmd *cobra.Command) *services.PredictionService {
	dataPath, _ := cmd.Flags().GetString("data")
	modelPath, _ := cmd.Flags().GetString("model")
	target, _ := cmd.Flags().GetString("target")
	return services.NewPredictionService(csvfile.NewReader(), regressor.NewStore(),
		dataPath, modelPath, target, domain.MelbourneAliases)
}

func runResolve(cmd *cobra.Command, args []string) error {
	overrides, err := collectOverrides(cmd)
	if err != nil {
		return err
	}

	resolved, err := newQueryService(cmd).Resolve(context.Background(), overrides)
	if err != nil {
		return err
	}

	fmt.Println("Resolved feature row:")
	for _, name := range sortedNames(resolved.Features) {
		marker := ""
		if _, overridden := resolved.Applied[name]; overridden {
			marker = " (override)"
		}
		fmt.Printf("  %s: %v%s\n", name, resolved.Features[name].Raw(), marker)
	}
	return nil
}

func runPredict(cmd *cobra.Command, args []string) error {
	overrides, err := collectOverrides(cmd)
	if err != nil {
		return err
	}

	result, err := newQueryService(cmd).Predict(context.Background(), overrides)
	if err != nil {
		return err
	}

	fmt.Println("Prediction inputs (overrides applied):")
	for _, name := range sortedNames(result.Applied) {
		fmt.Printf("  %s: %v\n", name, result.Applied[name].Raw())
	}

	fmt.Printf("\nPredicted price: $%.0f\n", result.Value)
	return nil
}

func sortedNames(features domain.FeatureVector) []string {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
