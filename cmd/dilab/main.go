package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sghaida/dilab/config"
	"github.com/sghaida/dilab/di"
	"github.com/sghaida/dilab/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// run executes the CLI and returns an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if a.log != nil {
		_ = a.log.Sync()
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "dilab:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app is the state shared by every command once the root pre-run has
// loaded the configuration.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	cfg        config.Config
	props      *di.ViperProperties
	log        *zap.Logger
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "dilab",
		Short:             "Run the dependency wiring labs",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")

	root.AddCommand(
		a.orderCommand(),
		a.notifyCommand(),
		a.userCommand(),
		a.helloCommand(),
	)
	return root
}

func (a *app) load(*cobra.Command, []string) error {
	cfg, props, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	log, err := logging.NewZapLogger(cfg.Log, a.stderr)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cfg, a.props, a.log = cfg, props, log.With(zap.String("env", cfg.Env))
	return nil
}
