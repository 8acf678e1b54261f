package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-enhancer/internal/bulk"
	"github.com/jonathan/resume-enhancer/internal/processor"
)

var bulkCommand = &cobra.Command{
	Use:   "bulk",
	Short: "Process every resume in a directory concurrently",
	Long: `Runs the enhancement pipeline over every .docx file in a directory
with a bounded worker pool. Each document is independent; failures are
reported per file and never abort the batch.`,
	RunE: runBulkCmd,
}

var (
	bulkDir        string
	bulkOutDir     string
	bulkStacksPath string
	bulkConfigPath string
	bulkWorkers    int
)

func init() {
	bulkCommand.Flags().StringVarP(&bulkDir, "dir", "d", "", "Directory of DOCX resumes (required)")
	bulkCommand.Flags().StringVarP(&bulkOutDir, "out", "o", "", "Output directory (defaults to <dir>/enhanced)")
	bulkCommand.Flags().StringVarP(&bulkStacksPath, "stacks", "s", "", "Path to tech-stack text file (required)")
	bulkCommand.Flags().StringVar(&bulkConfigPath, "config", "", "Path to parsing keyword config JSON")
	bulkCommand.Flags().IntVarP(&bulkWorkers, "workers", "w", bulk.DefaultWorkers, "Concurrent workers")

	_ = bulkCommand.MarkFlagRequired("dir")
	_ = bulkCommand.MarkFlagRequired("stacks")
	rootCmd.AddCommand(bulkCommand)
}

func runBulkCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadParsingConfig(bulkConfigPath)
	if err != nil {
		return err
	}
	stacks, err := loadStacks(bulkStacksPath, cfg)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(bulkDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var jobs []bulk.Job
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".docx") {
			continue
		}
		path := filepath.Join(bulkDir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		jobs = append(jobs, bulk.Job{Filename: entry.Name(), Content: content, Stacks: stacks})
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no .docx files found in %s", bulkDir)
	}

	outDir := bulkOutDir
	if outDir == "" {
		outDir = filepath.Join(bulkDir, "enhanced")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	runner := bulk.NewRunner(processor.New(cfg), bulkWorkers)
	results, err := runner.Run(context.Background(), jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result == nil || !result.Success {
			failed++
			name, msg := "unknown", "no result"
			if result != nil {
				name, msg = result.Filename, result.Error
			}
			fmt.Fprintf(os.Stderr, "FAIL %s: %s\n", name, msg)
			continue
		}
		out := filepath.Join(outDir, result.Filename)
		if err := os.WriteFile(out, result.ModifiedContent, 0o644); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Filename, err)
			continue
		}
		fmt.Printf("OK   %s: %d points added\n", result.Filename, result.PointsAdded)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(jobs))
	}
	return nil
}
