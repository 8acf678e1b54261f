package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-enhancer/internal/config"
	"github.com/jonathan/resume-enhancer/internal/distribute"
	"github.com/jonathan/resume-enhancer/internal/observability"
	"github.com/jonathan/resume-enhancer/internal/parsing"
	"github.com/jonathan/resume-enhancer/internal/processor"
	"github.com/jonathan/resume-enhancer/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Process one resume document",
	Long: `Detects the projects in a DOCX resume, distributes the given bullet
points across the top projects, and writes the modified document.

Points are read from a tech-stack text file: a technology name line
followed by its point lines, blocks separated by blank lines. The legacy
"Tech: • point • point" format is also accepted.`,
	RunE: runProcessCmd,
}

var (
	runInput      string
	runOutput     string
	runStacksPath string
	runConfigPath string
	runDryRun     bool
	runVerbose    bool
)

func init() {
	runCommand.Flags().StringVarP(&runInput, "input", "i", "", "Path to the DOCX resume (required)")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Output path (defaults to <input>_enhanced.docx)")
	runCommand.Flags().StringVarP(&runStacksPath, "stacks", "s", "", "Path to tech-stack text file (required unless --dry-run)")
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to parsing keyword config JSON")
	runCommand.Flags().BoolVar(&runDryRun, "dry-run", false, "Detect projects only, modify nothing")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed processing information")

	_ = runCommand.MarkFlagRequired("input")
	rootCmd.AddCommand(runCommand)
}

func runProcessCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadParsingConfig(runConfigPath)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(runInput)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	proc := processor.New(cfg)
	printer := observability.NewPrinter(os.Stdout)

	if runDryRun {
		projects, err := proc.DetectProjects(content)
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			return fmt.Errorf("no projects detected in %s", runInput)
		}
		printer.PrintProjects(projects)
		return nil
	}

	if runStacksPath == "" {
		return fmt.Errorf("--stacks is required unless --dry-run is set")
	}
	stacks, err := loadStacks(runStacksPath, cfg)
	if err != nil {
		return err
	}

	result, err := proc.ProcessNamed(runInput, content, stacks)
	if runVerbose {
		printer.PrintResult(result)
	}
	if err != nil {
		return err
	}

	output := runOutput
	if output == "" {
		output = strings.TrimSuffix(runInput, ".docx") + "_enhanced.docx"
	}
	if err := os.WriteFile(output, result.ModifiedContent, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Added %d points across %d projects -> %s\n", result.PointsAdded, result.ProjectsUsed, output)
	return nil
}

// loadParsingConfig loads the keyword config file, or the defaults when
// no path is given.
func loadParsingConfig(path string) (*config.Parsing, error) {
	if path == "" {
		return config.DefaultParsing(), nil
	}
	cfg, err := config.LoadParsing(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadStacks reads and parses a tech-stack text file.
func loadStacks(path string, cfg *config.Parsing) ([]types.TechStack, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stacks file: %w", err)
	}
	points, techs := parsing.New(cfg).Parse(string(text))
	stacks := distribute.Normalize(points, techs)
	if len(stacks) == 0 {
		return nil, fmt.Errorf("no bullet points found in %s", path)
	}
	return stacks, nil
}
