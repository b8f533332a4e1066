package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ekhoe-pll/pll-contracts/contracts"
	"github.com/ekhoe-pll/pll-contracts/schema"
)

var (
	// Version information
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "contract-lint",
		Short: "Validate contract documents and schemas",
		Long: `contract-lint validates event, API, and data-model contract documents
against the built-in structural rules, and checks schema definitions for
well-formedness. Documents may be JSON or YAML.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildTime),
	}

	var kind string

	validateCmd := &cobra.Command{
		Use:   "validate <file> [file...]",
		Short: "Validate contract documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				result, err := validateFile(path, kind)
				if err != nil {
					return err
				}
				printResult(cmd, path, result)
				if !result.Valid {
					failed = true
				}
			}
			if failed {
				// Data-level problems are reported, not raised.
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				os.Exit(1)
			}
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&kind, "kind", "k", "auto", "Contract kind: event, api, data-model, or auto")

	schemaCmd := &cobra.Command{
		Use:   "check-schema <file> [file...]",
		Short: "Check schema definitions for well-formedness",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := checkSchemaFile(path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				cmd.Printf("%s: ok\n", path)
			}
			return nil
		},
	}

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

// validateFile loads one contract document and runs the kind-appropriate
// validator. File-level problems (unreadable, undecodable, unknown kind) are
// errors; contract-level problems land in the result.
func validateFile(path, kind string) (*schema.ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if isYAML(path) {
		data, err = schema.JSONFromYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if kind == "auto" {
		kind, err = detectKind(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	switch contracts.Kind(kind) {
	case contracts.KindEvent:
		var c contracts.EventContract
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%s: failed to decode event contract: %w", path, err)
		}
		return schema.ValidateEventContract(c), nil
	case contracts.KindAPI:
		var c contracts.APIContract
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%s: failed to decode API contract: %w", path, err)
		}
		return schema.ValidateAPIContract(c), nil
	case contracts.KindDataModel:
		var c contracts.DataModelContract
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%s: failed to decode data-model contract: %w", path, err)
		}
		return schema.ValidateDataModelContract(c), nil
	default:
		return nil, fmt.Errorf("unknown contract kind %q", kind)
	}
}

// detectKind infers the contract kind from its discriminating fields.
func detectKind(data []byte) (string, error) {
	doc, err := schema.DocumentFromJSON(data)
	if err != nil {
		return "", err
	}
	switch {
	case doc["eventType"] != nil:
		return string(contracts.KindEvent), nil
	case doc["modelName"] != nil:
		return string(contracts.KindDataModel), nil
	case doc["path"] != nil || doc["method"] != nil:
		return string(contracts.KindAPI), nil
	default:
		return "", fmt.Errorf("cannot infer contract kind: no eventType, modelName, or method/path field")
	}
}

func checkSchemaFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isYAML(path) {
		_, err = schema.ParseSchemaYAML(data)
	} else {
		_, err = schema.ParseSchemaJSON(data)
	}
	return err
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func printResult(cmd *cobra.Command, path string, result *schema.ValidationResult) {
	if result.Valid {
		cmd.Printf("%s: valid\n", path)
		return
	}
	cmd.Printf("%s: invalid (%d errors)\n", path, len(result.Errors))
	for _, e := range result.Errors {
		if e.Expected != "" {
			cmd.Printf("  %s: %s (expected %s)\n", e.Path, e.Message, e.Expected)
		} else {
			cmd.Printf("  %s: %s\n", e.Path, e.Message)
		}
	}
}
