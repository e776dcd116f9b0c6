package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/ochairo/openssf-assess/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/openssf-assess/internal/domain-orchestrators"
	"github.com/ochairo/openssf-assess/internal/domain/entities"
	"github.com/ochairo/openssf-assess/internal/domain/interfaces"
	"github.com/ochairo/openssf-assess/internal/domain/services"
	"github.com/ochairo/openssf-assess/internal/external-adapters/gpg"
	"github.com/ochairo/openssf-assess/internal/external-adapters/logrus"
	"github.com/ochairo/openssf-assess/internal/external-adapters/report"
	"github.com/ochairo/openssf-assess/internal/external-adapters/yaml"
)

// Output formats
const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// errUsage marks invalid command-line input
var errUsage = errors.New("usage error")

type options struct {
	root          string
	configPath    string
	configSig     string
	configKeyring string
	maxDepth      int
	maxFiles      int
	format        string
	referencesDir string
	logLevel      string
	logFormat     string
	listChecks    bool
}

// run executes the CLI and returns the process exit code.
// Only the report is written to stdout; logs and errors go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "Error: internal fault: %v\n", r)
			code = exitFatal
		}
	}()

	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	catalog, err := loadCatalog(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFatal
	}

	if opts.listChecks {
		if err := printChecks(stdout, catalog); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFatal
		}
		return exitOK
	}

	logger, err := logrus.New(stderr, opts.logLevel, opts.logFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if err := runAssessment(ctx, opts, catalog, logger, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFatal
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("assess", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", getEnv("ASSESS_CONFIG", ""), "YAML policy file overlaying the built-in checks")
	fs.StringVar(&opts.configSig, "config-signature", getEnv("ASSESS_CONFIG_SIGNATURE", ""), "Detached GPG signature the policy file must verify against")
	fs.StringVar(&opts.configKeyring, "config-keyring", getEnv("ASSESS_CONFIG_KEYRING", ""), "Public keyring file used with --config-signature")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum directory depth to traverse (default from policy, 12)")
	fs.IntVar(&opts.maxFiles, "max-files", 0, "Maximum number of files to visit (default from policy, 50000)")
	fs.StringVar(&opts.format, "format", formatJSON, "Output format: json or markdown")
	fs.StringVar(&opts.referencesDir, "references-dir", getEnv("ASSESS_REFERENCES_DIR", ""), "Reference corpus used to verify recommendation links")
	fs.StringVar(&opts.logLevel, "log-level", getEnv("ASSESS_LOG_LEVEL", "warn"), "Log level: debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log-format", logrus.FormatText, "Log format: text or json")
	fs.BoolVar(&opts.listChecks, "list-checks", false, "Print the effective check catalog and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: assess [options] [path]

Assess a project directory against OpenSSF security practices and print a
JSON report with prioritized recommendations. Path defaults to ".".

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), `
Examples:
  assess
  assess ./my-project
  assess --format markdown ./my-project
  assess --config policy.yaml --max-depth 6 .
  assess --config policy.yaml --config-signature policy.yaml.asc --config-keyring team.asc .
  assess --list-checks
`)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	// Allow flags after the path argument
	if fs.NArg() > 0 {
		opts.root = fs.Arg(0)
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		if fs.NArg() > 0 {
			return nil, fmt.Errorf("%w: expected at most one path, got extra %q", errUsage, fs.Arg(0))
		}
	}
	if opts.root == "" {
		opts.root = "."
	}

	if opts.configSig != "" && (opts.configPath == "" || opts.configKeyring == "") {
		return nil, fmt.Errorf("%w: --config-signature requires --config and --config-keyring", errUsage)
	}
	if opts.maxDepth < 0 || opts.maxFiles < 0 {
		return nil, fmt.Errorf("%w: --max-depth and --max-files must not be negative", errUsage)
	}
	if opts.format != formatJSON && opts.format != formatMarkdown {
		return nil, fmt.Errorf("%w: unknown format %q (want json or markdown)", errUsage, opts.format)
	}

	return opts, nil
}

// loadCatalog builds the effective catalog: defaults, then the policy file, then flags
func loadCatalog(opts *options) (entities.Catalog, error) {
	var policy *entities.Policy
	if opts.configPath != "" {
		p, err := loadPolicy(opts)
		if err != nil {
			return entities.Catalog{}, fmt.Errorf("failed to load config: %w", err)
		}
		policy = p
	}

	catalog, err := services.ApplyPolicy(services.DefaultCatalog(), policy)
	if err != nil {
		return entities.Catalog{}, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.maxDepth > 0 {
		catalog.Limits.MaxDepth = opts.maxDepth
	}
	if opts.maxFiles > 0 {
		catalog.Limits.MaxFiles = opts.maxFiles
	}

	return catalog, nil
}

// loadPolicy parses the policy file, verifying its signature first when one is given
func loadPolicy(opts *options) (*entities.Policy, error) {
	parser := yaml.NewPolicyParser()
	if opts.configSig == "" {
		return parser.ParseFile(opts.configPath)
	}

	//nolint:gosec // G304: configPath is the policy path given on the command line
	data, err := os.ReadFile(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", opts.configPath, err)
	}

	verifier := gpg.NewVerifier()
	if err := verifier.ImportKeyFromFile(opts.configKeyring); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrUntrustedPolicy, err)
	}
	if err := verifier.VerifyDetached(data, opts.configSig); err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrUntrustedPolicy, err)
	}

	return parser.Parse(data)
}

func runAssessment(ctx context.Context, opts *options, catalog entities.Catalog, logger interfaces.Logger, stdout io.Writer) error {
	logger = logger.With(interfaces.F("run_id", uuid.NewString()))

	fsGateway := gateways.NewFileSystemGateway()
	service := services.NewAssessmentService(fsGateway, catalog, opts.referencesDir)
	orchestrator := orchestrators.NewAssessmentOrchestrator(fsGateway, service, catalog, logger)

	result, err := orchestrator.Assess(ctx, opts.root)
	if err != nil {
		logger.Error("assessment failed", interfaces.F("error", err.Error()))
		return err
	}

	// Render fully before writing so a failure never leaves half a report on stdout
	var buf bytes.Buffer
	switch opts.format {
	case formatMarkdown:
		err = report.WriteMarkdown(&buf, result)
	default:
		err = report.WriteJSON(&buf, result)
	}
	if err != nil {
		return err
	}

	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
