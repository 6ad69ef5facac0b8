package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dupliscan/dupliscan/app"
	"github.com/dupliscan/dupliscan/domain"
	"github.com/dupliscan/dupliscan/internal/constants"
	"github.com/dupliscan/dupliscan/service"
)

// DetectCommand handles the clone detection CLI command
type DetectCommand struct {
	// Input parameters
	recursive       bool
	configFile      string
	extensions      []string
	includePatterns []string
	excludePatterns []string

	// Detection configuration
	sensitivity float64

	// Output format flags (only one should be true)
	json bool
	yaml bool
	csv  bool
	pdf  bool

	// Output options
	sortBy     string
	showSource bool

	// Performance options
	timeout time.Duration
	verbose bool
}

// NewDetectCommand creates a new clone detection command
func NewDetectCommand() *DetectCommand {
	return &DetectCommand{
		recursive:       true,
		extensions:      []string{".py", ".java"},
		includePatterns: []string{},
		excludePatterns: []string{},
		sensitivity:     constants.DefaultSensitivity,
		sortBy:          "location",
		showSource:      false,
		timeout:         5 * time.Minute,
	}
}

// CreateCobraCommand creates the Cobra command for clone detection
func (c *DetectCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [paths...]",
		Short: "Detect line-level code clones",
		Long: `Detect duplicated and near-duplicated lines inside source files.

Every unordered pair of lines within a file is normalized (comments,
imports and blank lines stripped), scored with a longest-common-block
similarity ratio and classified into a clone tier. The sensitivity
setting scales all three tier cutoffs together and is fixed for the
whole run.

Examples:
  # Detect clones in the current directory
  dupliscan detect .

  # Relax the cutoffs to surface looser matches
  dupliscan detect --sensitivity 0.7 src/

  # Write the report as CSV
  dupliscan detect --csv src/

  # Scan additional languages
  dupliscan detect --extensions .py,.java,.go src/`,
		RunE: c.runDetection,
	}

	// Input flags
	cmd.Flags().BoolVarP(&c.recursive, "recursive", "r", c.recursive,
		"Recursively analyze directories")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", c.configFile,
		"Path to configuration file")
	cmd.Flags().StringSliceVar(&c.extensions, "extensions", c.extensions,
		"Source file extensions to analyze")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", c.includePatterns,
		"File patterns to include (doublestar globs)")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", c.excludePatterns,
		"File patterns to exclude (doublestar globs)")

	// Detection flags
	cmd.Flags().Float64VarP(&c.sensitivity, "sensitivity", "s", c.sensitivity,
		"Detection sensitivity in (0.0, 1.0]; scales all tier cutoffs")

	// Output format flags
	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().BoolVar(&c.pdf, "pdf", false, "Generate PDF report file")

	// Output options
	cmd.Flags().StringVar(&c.sortBy, "sort", c.sortBy,
		"Sort results by: location, similarity, type")
	cmd.Flags().BoolVar(&c.showSource, "show-source", c.showSource,
		"Preview the cloned source lines in text output")

	// Performance flags
	cmd.Flags().DurationVar(&c.timeout, "timeout", c.timeout,
		"Maximum time for a detection run (e.g. 5m, 30s)")
	cmd.Flags().BoolVarP(&c.verbose, "verbose", "v", c.verbose,
		"Enable verbose output")

	return cmd
}

// runDetection executes the clone detection command
func (c *DetectCommand) runDetection(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	request, err := c.createCloneRequest(args)
	if err != nil {
		return fmt.Errorf("failed to create clone request: %w", err)
	}

	// Merge config file values under explicitly set flags
	configLoader := service.NewCloneConfigurationLoaderWithFlags(GetExplicitFlags(cmd))
	fileRequest := configLoader.GetDefaultCloneConfig()
	if c.configFile != "" {
		fileRequest, err = configLoader.LoadCloneConfig(c.configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	request = configLoader.MergeWithFlags(fileRequest, request)

	if err := request.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	useCase, err := c.createCloneUseCase(configLoader)
	if err != nil {
		return fmt.Errorf("failed to create clone use case: %w", err)
	}

	if err := useCase.Execute(context.Background(), *request); err != nil {
		return fmt.Errorf("clone detection failed: %w", err)
	}

	return nil
}

// determineOutputFormat determines the output format based on flags
func (c *DetectCommand) determineOutputFormat() (domain.OutputFormat, string, error) {
	formatCount := 0
	var format domain.OutputFormat
	var extension string

	if c.json {
		formatCount++
		format = domain.OutputFormatJSON
		extension = "json"
	}
	if c.yaml {
		formatCount++
		format = domain.OutputFormatYAML
		extension = "yaml"
	}
	if c.csv {
		formatCount++
		format = domain.OutputFormatCSV
		extension = "csv"
	}
	if c.pdf {
		formatCount++
		format = domain.OutputFormatPDF
		extension = "pdf"
	}

	if formatCount > 1 {
		return "", "", fmt.Errorf("only one output format flag can be specified")
	}
	if formatCount == 0 {
		return domain.OutputFormatText, "", nil
	}

	return format, extension, nil
}

// createCloneRequest creates a clone request from command line flags
func (c *DetectCommand) createCloneRequest(paths []string) (*domain.CloneRequest, error) {
	outputFormat, extension, err := c.determineOutputFormat()
	if err != nil {
		return nil, err
	}

	sortBy, err := c.parseSortCriteria(c.sortBy)
	if err != nil {
		return nil, err
	}

	var outputWriter io.Writer
	var outputPath string

	if outputFormat == domain.OutputFormatText {
		outputWriter = os.Stdout
	} else {
		outputPath = generateOutputFilePath("clones", extension, c.configFile)
	}

	return &domain.CloneRequest{
		Paths:           paths,
		Recursive:       c.recursive,
		Extensions:      c.extensions,
		IncludePatterns: c.includePatterns,
		ExcludePatterns: c.excludePatterns,
		Sensitivity:     c.sensitivity,
		OutputFormat:    outputFormat,
		OutputWriter:    outputWriter,
		OutputPath:      outputPath,
		SortBy:          sortBy,
		ShowSource:      c.showSource,
		ConfigPath:      c.configFile,
		Timeout:         c.timeout,
	}, nil
}

// parseSortCriteria parses and validates the sort criteria
func (c *DetectCommand) parseSortCriteria(sort string) (domain.SortCriteria, error) {
	switch strings.ToLower(sort) {
	case "location":
		return domain.SortByLocation, nil
	case "similarity":
		return domain.SortBySimilarity, nil
	case "type":
		return domain.SortByType, nil
	default:
		return "", fmt.Errorf("unsupported sort criteria: %s (supported: location, similarity, type)", sort)
	}
}

// createCloneUseCase creates a clone use case with all dependencies
func (c *DetectCommand) createCloneUseCase(configLoader domain.CloneConfigurationLoader) (*app.CloneUseCase, error) {
	fileReader := service.NewFileReader()

	var progress domain.ProgressManager
	if c.verbose {
		progress = service.NewProgressManager()
	} else {
		progress = service.NewSilentProgressManager()
	}

	var formatter domain.CloneOutputFormatter
	if c.showSource {
		formatter = service.NewCloneOutputFormatter(fileReader)
	} else {
		formatter = service.NewCloneOutputFormatter(nil)
	}

	return app.NewCloneUseCaseBuilder().
		WithService(service.NewCloneService(fileReader, progress)).
		WithFileReader(fileReader).
		WithFormatter(formatter).
		WithConfigLoader(configLoader).
		WithReportWriter(service.NewFileOutputWriter(os.Stderr)).
		Build()
}

// addDetectCommand adds the detect command to the root command
func addDetectCommand(rootCmd *cobra.Command) {
	detectCmd := NewDetectCommand()
	rootCmd.AddCommand(detectCmd.CreateCobraCommand())
}
