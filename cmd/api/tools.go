package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"accident-risk-api/alcohol"
	"accident-risk-api/handlers"
	"accident-risk-api/i18n"
	"accident-risk-api/risk"
	"accident-risk-api/services"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

var (
	inputPath string
	lang      string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score a prediction input read from a JSON file (- for stdin)",
	RunE:  runPredict,
}

var alcoholCmd = &cobra.Command{
	Use:   "alcohol <text>",
	Short: "Look up a drink description in the alcohol table",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAlcohol,
}

var hashSecretCmd = &cobra.Command{
	Use:   "hash-secret <secret>",
	Short: "Print the bcrypt hash of an API client secret for AUTH_CLIENTS",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashSecret,
}

func init() {
	predictCmd.Flags().StringVarP(&inputPath, "input", "i", "", "prediction input JSON file")
	predictCmd.Flags().StringVar(&lang, "lang", "en", "response language (en, tr)")
	_ = predictCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(predictCmd, alcoholCmd, hashSecretCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if inputPath == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var req handlers.PredictionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	validate := validator.New()
	validate.SetTagName("binding")
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	table, err := alcohol.LoadDefault()
	if err != nil {
		return err
	}
	translator, err := i18n.New()
	if err != nil {
		return err
	}

	in, drink, err := req.Input(table)
	if err != nil {
		return err
	}
	view := handlers.RenderPrediction(translator, translator.Match(lang), risk.New().Predict(in))
	return writeJSON(cmd, handlers.PredictionResponse{Prediction: view, Alcohol: drink})
}

func runAlcohol(cmd *cobra.Command, args []string) error {
	table, err := alcohol.LoadDefault()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	res, ok := table.Search(text)
	if !ok {
		msg := fmt.Sprintf("no match for %q", text)
		if s, found := table.Suggest(text); found {
			msg += fmt.Sprintf(", did you mean %q?", s)
		}
		return errors.New(msg)
	}
	return writeJSON(cmd, res)
}

func runHashSecret(cmd *cobra.Command, args []string) error {
	hash, err := services.HashSecret(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
