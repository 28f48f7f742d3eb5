package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docvault/internal/app"
)

var (
	configPath string
	flagCfg    app.Config
	appCtx     *app.App
)

// Execute runs the CLI until it finishes or is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	configPath = ""
	flagCfg = app.Config{}
	appCtx = nil

	root := &cobra.Command{
		Use:          "docvault",
		Short:        "Embedded JSON/YAML document store with encryption at rest",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			mergeFlags(cmd, &cfg)
			cfg.ApplyEnv()

			log, err := app.NewLogger(os.Stderr, cfg.LogLevel)
			if err != nil {
				return err
			}
			appCtx = app.New(cfg, log)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&flagCfg.Source, "source", "", "document file (.json, .yaml or .yml)")
	pf.StringVar(&flagCfg.BaseDir, "base-dir", "", "directory a relative --source is resolved against")
	pf.BoolVar(&flagCfg.Encryption, "encrypt", false, "encrypt the file at rest")
	pf.StringVarP(&flagCfg.Secret, "secret", "s", "", "secret for encryption (default $"+app.SecretEnv+")")
	pf.IntVar(&flagCfg.Iterations, "iterations", 0, "PBKDF2 iterations for new envelopes (default 50000)")
	pf.BoolVar(&flagCfg.Empty, "empty", false, "discard existing content and start empty")
	pf.StringVar(&flagCfg.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		getCmd(), hasCmd(), keysCmd(), stateCmd(), findCmd(),
		setCmd(), deleteCmd(), pushCmd(), incrCmd(), decrCmd(),
		clearCmd(), destroyCmd(), watchCmd(),
	)
	return root
}

// mergeFlags overrides cfg with the flags set on the command line.
func mergeFlags(cmd *cobra.Command, cfg *app.Config) {
	f := cmd.Flags()
	if f.Changed("source") {
		cfg.Source = flagCfg.Source
	}
	if f.Changed("base-dir") {
		cfg.BaseDir = flagCfg.BaseDir
	}
	if f.Changed("encrypt") {
		cfg.Encryption = flagCfg.Encryption
	}
	if f.Changed("secret") {
		cfg.Secret = flagCfg.Secret
	}
	if f.Changed("iterations") {
		cfg.Iterations = flagCfg.Iterations
	}
	if f.Changed("empty") {
		cfg.Empty = flagCfg.Empty
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flagCfg.LogLevel
	}
}
