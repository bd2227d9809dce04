package main

import (
	"encoding/json"
	"strings"

	"dhruvtara/internal/ml"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type predictOutput struct {
	Scores     ml.SurveyResponse `json:"scores"`
	TopCareers []ml.Career       `json:"top_careers"`
}

func newPredictCmd(root *rootOptions) *cobra.Command {
	var modelDir string
	scores := make(map[string]*int, ml.FeatureCount)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score one survey against the model artifacts and print the top careers as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, lg, err := root.setup()
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			paths := ml.Paths{
				Dir:          cfg.Model.Dir,
				Scaler:       cfg.Model.ScalerPath,
				Classifier:   cfg.Model.ClassifierPath,
				LabelEncoder: cfg.Model.LabelEncoderPath,
			}
			if modelDir != "" {
				paths = ml.Paths{Dir: modelDir}
			}

			predictor, err := ml.Load(paths)
			if err != nil {
				return err
			}
			lg.Debug("model loaded", zap.Strings("careers", predictor.Labels()))

			survey := make(ml.SurveyResponse, ml.FeatureCount)
			for _, col := range ml.FeatureColumns {
				survey[col] = *scores[col]
			}

			careers, err := predictor.Predict(survey)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(predictOutput{Scores: survey, TopCareers: careers})
		},
	}

	cmd.Flags().StringVar(&modelDir, "model-dir", "", "directory holding scaler.json, classifier.json and label_encoder.json (default MODEL_DIR)")
	for _, col := range ml.FeatureColumns {
		scores[col] = cmd.Flags().Int(strings.ReplaceAll(col, "_", "-"), 0, "answer for "+col)
	}
	return cmd
}
