package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/medflow/resume-parser/internal/resume/domain"
	"github.com/medflow/resume-parser/internal/resume/processor"
	"github.com/medflow/resume-parser/internal/resume/service"
	"github.com/medflow/resume-parser/internal/resume/storage"
	"github.com/medflow/resume-parser/pkg/config"
	"github.com/medflow/resume-parser/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a resume file and print the result as JSON",
	Long:  "Runs the same pipeline as POST /parse on a local PDF or text file and writes the JSON record to stdout (or --out).",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var (
	parseLegacy  bool
	parseRawText bool
	parseOutFile string
	parseVerbose bool
)

func init() {
	parseCmd.Flags().BoolVar(&parseLegacy, "legacy", false, "Print the reduced /parse_resume record")
	parseCmd.Flags().BoolVar(&parseRawText, "raw", false, "Include the extracted text as raw_data")
	parseCmd.Flags().StringVarP(&parseOutFile, "out", "o", "", "Write JSON to this file instead of stdout")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Log pipeline details to stderr")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(config.ServiceName)
	if err != nil {
		return err
	}

	// stdout carries the result, so logs go to stderr
	level := zerolog.WarnLevel
	if parseVerbose {
		level = zerolog.DebugLevel
	}
	base := logger.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, config.ServiceName)
	log := &logger.Logger{Logger: base.Level(level)}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	store := storage.NewTempStorage(cfg.Jobs.TTL)
	defer store.Close()

	svc := service.NewService(processor.DefaultRegistry(), newParser(cfg, log), store, nil, log)
	upload := domain.Upload{Filename: filepath.Base(args[0]), Data: data}

	ctx := context.Background()

	var result interface{}
	if parseLegacy {
		result, err = svc.ParseLegacy(ctx, upload)
	} else {
		result, err = svc.Parse(ctx, upload, service.ParseOptions{IncludeRawText: parseRawText})
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if parseOutFile == "" {
		fmt.Println(string(out))
		return nil
	}

	if err := os.WriteFile(parseOutFile, out, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Parsed resume written to %s\n", parseOutFile)
	return nil
}
