package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	internalcli "github.com/swaglabs-qa/storefront-e2e/internal/cli"
	"github.com/swaglabs-qa/storefront-e2e/internal/config"
	"github.com/swaglabs-qa/storefront-e2e/internal/database"
	"github.com/swaglabs-qa/storefront-e2e/internal/fixtures"
	"github.com/swaglabs-qa/storefront-e2e/internal/handlers"
	"github.com/swaglabs-qa/storefront-e2e/internal/repository"
	"github.com/swaglabs-qa/storefront-e2e/internal/runner"
	"github.com/swaglabs-qa/storefront-e2e/internal/services"
)

var version = "0.1.0"

// openReportDB connects to the report database and creates its tables
func openReportDB(ctx context.Context) (*sql.DB, error) {
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("failed to load postgres config: %w", err)
	}

	db, err := database.Open(ctx, pgConfig)
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database successfully")

	if err := database.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return db, nil
}

// buildServerDependencies creates all dependencies needed for the server
func buildServerDependencies() (internalcli.ServerDependencies, error) {
	var deps internalcli.ServerDependencies

	serverConfig, err := config.LoadServerConfig(os.Getenv)
	if err != nil {
		return deps, fmt.Errorf("invalid server configuration: %w", err)
	}
	deps.ServerConfig = serverConfig

	seed, err := fixtures.Open(os.Getenv(fixtures.EnvFixturesDir)).Reqres()
	if err != nil {
		return deps, fmt.Errorf("failed to load fake API seed data: %w", err)
	}

	var opts []handlers.ReqresOption
	if serverConfig.RequireAPIKey {
		opts = append(opts, handlers.WithAPIKey(serverConfig.APIKey))
	}
	deps.APIHandler = handlers.NewReqresHandler(seed, opts...).Routes()

	return deps, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local fake of the REST API",
		Action: func(c *cli.Context) error {
			deps, err := buildServerDependencies()
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the browser and API specs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "suite", Value: "all", Usage: "specs to run: ui, api or all"},
			&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
			&cli.StringFlag{Name: "grep", Usage: "only run tests matching this regular expression"},
			&cli.BoolFlag{Name: "record", Usage: "store the run in the report database"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print each test as it starts"},
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Minute, Usage: "go test timeout"},
			&cli.StringFlag{Name: "dir", Value: ".", Usage: "module root"},
		},
		Action: func(c *cli.Context) error {
			suite, err := runner.ParseSuite(c.String("suite"))
			if err != nil {
				return err
			}

			suiteConfig, err := config.LoadSuiteConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid suite configuration: %w", err)
			}

			console := runner.NewConsoleReporter(color.Output)
			console.Verbose = c.Bool("verbose")

			deps := internalcli.RunDependencies{
				Options: runner.Options{
					Suite:   suite,
					Headed:  c.Bool("headed"),
					Grep:    c.String("grep"),
					Timeout: c.Duration("timeout"),
					Dir:     c.String("dir"),
				},
				Reporter: console,
				BaseURL:  suiteConfig.BaseURL,
				Headless: suiteConfig.Headless && !c.Bool("headed"),
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if c.Bool("record") {
				db, err := openReportDB(ctx)
				if err != nil {
					return err
				}
				defer db.Close()
				deps.RunService = services.NewRunService(repository.NewRunRepository(db))
			}

			_, err = internalcli.RunSuite(ctx, deps)
			if errors.Is(err, internalcli.ErrTestsFailed) {
				return cli.Exit("", 1)
			}
			return err
		},
	}
}

// MigrateCommand returns the migrate command
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the report database tables",
		Action: func(c *cli.Context) error {
			db, err := openReportDB(c.Context)
			if err != nil {
				return err
			}
			return db.Close()
		},
	}
}

// ReportCommand returns the report command
func ReportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Print a recorded run",
		ArgsUsage: "<run-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("report requires exactly one run id", 2)
			}

			db, err := openReportDB(c.Context)
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := services.NewRunService(repository.NewRunRepository(db)).GetReport(c.Context, c.Args().First())
			if err != nil {
				return err
			}

			run := report.Run
			fmt.Fprintf(color.Output, "Run %s (%s) against %s: %s\n", run.ID, run.Suite, run.BaseURL, run.Status)
			fmt.Fprintf(color.Output, "%d passed, %d failed, %d skipped in %s\n",
				run.Passed, run.Failed, run.Skipped, run.Duration().Round(time.Millisecond))
			for _, res := range report.Failures() {
				color.New(color.FgRed).Fprintf(color.Output, "FAILED: %s.%s\n", res.Package, res.Test)
			}
			return nil
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "swaglabs",
		Usage:   "Storefront end-to-end suite and fake REST API",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ServeCommand(),
			MigrateCommand(),
			ReportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
