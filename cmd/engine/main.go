package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/logging"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type CLI struct {
	DataDir string `help:"Engine data directory (config.yml, report database)." env:"TRUTHRECRUIT_DATA_DIR" default:"." type:"path"`
	Verbose bool   `help:"Enable debug logging." short:"v"`

	VersionFlag kong.VersionFlag `name:"version-flag" help:"Print version."`

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API."`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze one LinkedIn company page and print the result."`
	Config  ConfigCmd  `cmd:"" help:"Inspect configuration."`
	Version VersionCmd `cmd:"" help:"Print version."`
}

// Context is handed to every command's Run.
type Context struct {
	Out     io.Writer
	Err     io.Writer
	DataDir string
	CfgPath string
	Config  config.Config
	Logger  *zap.Logger
	Version string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cli := &CLI{}
	versionString := buildVersion()

	parser, err := kong.New(cli,
		kong.Name("engine"),
		kong.Description("Hiring authenticity analyzer for LinkedIn company pages."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	// version needs neither the data dir nor a config file.
	if kctx.Command() == "version" {
		if err := kctx.Run(&Context{Out: stdout, Err: stderr, Version: versionString}); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		return 0
	}

	if err := os.MkdirAll(cli.DataDir, 0o755); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	cfgPath, err := config.EnsureUserConfig(cli.DataDir)
	if err != nil {
		fmt.Fprintf(stderr, "error: config bootstrap failed: %v\n", err)
		return 1
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: config load failed (%s): %v\n", cfgPath, err)
		return 1
	}
	// Commands see the normalized values; validation errors surface per command.
	cfg, _ = config.NormalizeAndValidate(cfg)

	level := cfg.Logging.Level
	if cli.Verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	runCtx := &Context{
		Out:     stdout,
		Err:     stderr,
		DataDir: cli.DataDir,
		CfgPath: cfgPath,
		Config:  cfg,
		Logger:  logger,
		Version: versionString,
	}

	if err := kctx.Run(runCtx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.Version)
	return err
}
