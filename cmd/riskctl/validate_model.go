package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bibbank/creditrisk/internal/domain/service"
	"github.com/bibbank/creditrisk/internal/infrastructure/artifact"
)

func newValidateModelCmd() *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "validate-model",
		Short: "Validate a parameter artifact",
		Long:  "Loads an artifact through the same schema, range and compatibility checks the service runs at startup.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			art, err := artifact.Load(modelPath)
			if err != nil {
				return err
			}
			if _, err := service.NewScoringEngine(art.Parameters); err != nil {
				return err
			}

			params := art.Parameters
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "model_version:  %s\n", params.ModelVersion())
			fmt.Fprintf(w, "feature_schema: %s\n", params.FeatureSchema())
			fmt.Fprintf(w, "features:       %d\n", len(params.FeatureNames()))
			fmt.Fprintf(w, "format:         %s\n", art.Format)
			fmt.Fprintf(w, "digest:         %s\n", art.Digest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "Path to the parameter artifact (required)")
	if err := cmd.MarkFlagRequired("model"); err != nil {
		panic(fmt.Sprintf("failed to mark model flag as required: %v", err))
	}
	return cmd
}
