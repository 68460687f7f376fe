package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	psdreader "github.com/layerkit/psd-reader"
	"github.com/layerkit/psd-reader/psd"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:          "psdinfo",
		Short:        "Inspect layered-image documents",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every decoded section and field")
	root.AddCommand(infoCmd(), inspectCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// decodeOptions returns the decode options implied by the global flags
// and a flush function to defer.
func decodeOptions() ([]psd.Option, func(), error) {
	if !verbose {
		return nil, func() {}, nil
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	opts := []psd.Option{psd.WithObserver(psdreader.ZapObserver(log))}
	return opts, func() { _ = log.Sync() }, nil
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.psd>",
		Short: "Decode a document and print its section summaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, flush, err := decodeOptions()
			if err != nil {
				return err
			}
			defer flush()

			doc, err := psd.DecodeFile(args[0], opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.psd>",
		Short: "Browse a decoded document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("inspect needs a terminal; use `psdinfo info` instead")
			}
			doc, err := psd.DecodeFile(args[0])
			if err != nil {
				return err
			}
			return runInteractive(args[0], doc)
		},
	}
}
