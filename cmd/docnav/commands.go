package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cylondata/docnav/internal/app"
	"github.com/cylondata/docnav/internal/config"
	"github.com/cylondata/docnav/internal/domain"
	"github.com/cylondata/docnav/internal/logger"
	"github.com/cylondata/docnav/internal/sidebar"
	"github.com/cylondata/docnav/internal/sources/docusaurus"
	"github.com/cylondata/docnav/internal/version"
)

const appName = "docnav"

func newRootCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Documentation sidebar service",
		Long: `docnav holds the navigation sidebar of the Cylon documentation site.

It validates sidebar files, re-encodes them for the site generator and
serves the current sidebar over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newServeCmd(),
		newValidateCmd(fs),
		newExportCmd(fs),
		newVersionCmd(),
	)
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service (configured from DOCNAV_* environment variables)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.New(cfg.LogLevel, cfg.PrettyLog)
			defer func() { _ = log.Sync() }()

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}

func newValidateCmd(fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a sidebar file, or the authored sidebar when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, source, err := loadSidebar(fs, args)
			if err != nil {
				return err
			}

			if err := spec.Validate(); err != nil {
				violations := domain.Violations(err)
				for _, v := range violations {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", source, v)
				}
				return fmt.Errorf("%s: %d violation(s)", source, len(violations))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sections, %d docs, %d links)\n",
				source, len(spec.Sections), spec.EntryCount(domain.KindDoc), spec.EntryCount(domain.KindLink))
			return nil
		},
	}
}

func newExportCmd(fs afero.Fs) *cobra.Command {
	var (
		format string
		minify bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Re-encode a sidebar file, or the authored sidebar, as js, json or yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := docusaurus.ParseFormat(format)
			if err != nil {
				return err
			}
			if minify && f != docusaurus.FormatJS {
				return errors.New("--minify only applies to --format js")
			}

			spec, source, err := loadSidebar(fs, args)
			if err != nil {
				return err
			}
			if err := spec.Validate(); err != nil {
				return fmt.Errorf("%s is invalid, run validate for details: %w", source, err)
			}

			var buf bytes.Buffer
			if err := docusaurus.Encode(&buf, spec, docusaurus.EncodeOptions{Format: f, Minify: minify}); err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := afero.WriteFile(fs, output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(docusaurus.FormatJS), "Output format (js, json, yaml)")
	cmd.Flags().BoolVar(&minify, "minify", false, "Minify the sidebars.js output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version.String())
		},
	}
}

// loadSidebar reads args[0] when given, otherwise the authored sidebar.
func loadSidebar(fs afero.Fs, args []string) (*domain.SidebarSpec, string, error) {
	if len(args) == 0 {
		return sidebar.Default(), "authored", nil
	}
	spec, err := docusaurus.NewLoaderFs(fs, args[0]).Load()
	if err != nil {
		return nil, args[0], err
	}
	return spec, args[0], nil
}
