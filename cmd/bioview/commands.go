package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Cyclone1070/bioview/internal/app"
	"github.com/Cyclone1070/bioview/internal/tool/file"
	"github.com/Cyclone1070/bioview/internal/tool/readme"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// withDeps runs fn with CLI dependencies and closes them afterwards.
func withDeps(opts *globalOptions, fn func(*Dependencies) error) error {
	deps, err := buildDependencies(opts, false)
	if err != nil {
		return err
	}
	defer deps.Close()
	return fn(deps)
}

func newScanCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [FOLDER]",
		Short: "Find readme files and store the list",
		Long: `Scan FOLDER, or the saved work folder, for readme files. The list is
stored for the browser and FOLDER becomes the work folder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(opts, func(deps *Dependencies) error {
				req := map[string]any{}
				if len(args) == 1 {
					req["root"] = args[0]
				}
				res, err := app.Call[*app.ScanReadmesResponse](cmd.Context(), deps.Dispatcher, app.ActionScanReadmes, req)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, f := range res.Files {
					fmt.Fprintln(out, f)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Found %d readme files in %s (%s)\n", len(res.Files), res.Root, res.Duration.Round(time.Millisecond))
				return nil
			})
		},
	}
	return cmd
}

func newListCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the readme files found by the last scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(opts, func(deps *Dependencies) error {
				res, err := app.Call[*app.ListReadmesResponse](cmd.Context(), deps.Dispatcher, app.ActionListReadmes, nil)
				if err != nil {
					return err
				}
				if len(res.Files) == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), "No readme files listed; run 'bioview scan FOLDER' first")
					return nil
				}
				for _, f := range res.Files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			})
		},
	}
	return cmd
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	var info bool

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a readme file decoded to UTF-8",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(opts, func(deps *Dependencies) error {
				res, err := app.Call[*app.LoadReadmeResponse](cmd.Context(), deps.Dispatcher, app.ActionLoadReadme, map[string]any{"path": args[0]})
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), file.Placeholder(err))
					return err
				}

				if info {
					enc := res.DecodedWith
					if res.Fallback {
						enc += fmt.Sprintf(" (fallback, sniffed %s)", res.Encoding)
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", res.Path, enc)
				}
				fmt.Fprint(cmd.OutOrStdout(), res.Text)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&info, "info", false, "print the detected encoding to stderr")
	return cmd
}

func newSaveCmd(opts *globalOptions) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Replace a readme file, keeping a dated backup",
		Long: `Write new content to FILE, read from --from or standard input. When FILE
was last written on an earlier day its previous version is kept as FILE.1
and older backups shift up to FILE.4.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if from != "" {
				data, err = os.ReadFile(from)
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read new content: %w", err)
			}

			return withDeps(opts, func(deps *Dependencies) error {
				res, err := app.Call[*app.SaveReadmeResponse](cmd.Context(), deps.Dispatcher, app.ActionSaveReadme, map[string]any{
					"path": args[0],
					"text": string(data),
				})
				if err != nil {
					return err
				}
				msg := fmt.Sprintf("Saved %s (%d bytes)", res.Path, res.Bytes)
				if res.Rotated {
					msg += ", previous version kept as " + res.Path + ".1"
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "read the new content from this file instead of stdin")
	return cmd
}

func newCreateCmd(opts *globalOptions) *cobra.Command {
	var (
		policy string
		name   string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "create FOLDER",
		Short: "Create a readme file in a folder",
		Long: `Create a readme file in FOLDER. The policy selects the body:

  empty           header only
  files           header and the folder's file list
  template        header and the active template
  template-files  the template with the file list after its "File list" line`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(opts, func(deps *Dependencies) error {
				res, err := app.Call[*app.CreateReadmeResponse](cmd.Context(), deps.Dispatcher, app.ActionCreateReadme, map[string]any{
					"dir":       args[0],
					"name":      name,
					"policy":    policy,
					"overwrite": force,
				})
				if errors.Is(err, readme.ErrFileExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", res.Path, res.Policy.Label())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&policy, "policy", "p", "empty", "content policy: empty, files, template, template-files")
	cmd.Flags().StringVar(&name, "name", "", "file name (default: files.readme_name)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newBackupsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups FILE",
		Short: "List the dated backups of a readme file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(opts, func(deps *Dependencies) error {
				res, err := app.Call[*app.ListBackupsResponse](cmd.Context(), deps.Dispatcher, app.ActionListBackups, map[string]any{"path": args[0]})
				if err != nil {
					return err
				}
				if len(res.Members) == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "No backups of %s\n", res.Path)
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "BACKUP\tSIZE\tMODIFIED")
				for _, m := range res.Members {
					fmt.Fprintf(w, "%s\t%d\t%s\n", m.Path, m.Size, m.ModTime.Format(time.DateTime))
				}
				return w.Flush()
			})
		},
	}
	return cmd
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "search TERM...",
		Short: "Find listed readme files containing every term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(opts, func(deps *Dependencies) error {
				res, err := app.Call[*app.SearchReadmesResponse](cmd.Context(), deps.Dispatcher, app.ActionSearchReadmes, map[string]any{
					"terms":  args,
					"offset": offset,
					"limit":  limit,
				})
				if err != nil {
					return err
				}

				for _, m := range res.Matches {
					lines := make([]string, len(m.Lines))
					for i, n := range m.Lines {
						lines[i] = fmt.Sprint(n)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", m.Path, strings.Join(lines, ","))
				}
				for _, s := range res.Skipped {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped unreadable %s\n", s)
				}
				if res.Truncated {
					fmt.Fprintf(cmd.ErrOrStderr(), "showing %d of %d matches (use --offset to page)\n", len(res.Matches), res.Total)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "skip this many matches")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many matches (0 for all)")
	return cmd
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration and manage workspace settings",
	}

	cmd.AddCommand(
		newConfigShowCmd(opts),
		newConfigWorkFolderCmd(opts),
		newConfigTemplateCmd(opts),
		newConfigTemplatesCmd(opts),
	)
	return cmd
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigWorkFolderCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "work-folder [FOLDER]",
		Short: "Print or set the work folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(opts, func(deps *Dependencies) error {
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), deps.State.WorkFolder())
					return nil
				}
				info, err := deps.FS.Stat(args[0])
				if err != nil {
					return err
				}
				if !info.IsDir() {
					return fmt.Errorf("%s is not a directory", args[0])
				}
				return deps.State.SetWorkFolder(args[0])
			})
		},
	}
}

func newConfigTemplateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "template [NAME]",
		Short: "Print or select the template used for new readme files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(opts, func(deps *Dependencies) error {
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), activeTemplate(deps))
					return nil
				}
				names, err := readme.AvailableTemplates(deps.FS, deps.Config.Files.TemplateDir)
				if err != nil {
					return err
				}
				for _, n := range names {
					if n == args[0] {
						return deps.State.SetActiveTemplate(n)
					}
				}
				return fmt.Errorf("no template %q in %s", args[0], deps.Config.Files.TemplateDir)
			})
		},
	}
}

func newConfigTemplatesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(opts, func(deps *Dependencies) error {
				names, err := readme.AvailableTemplates(deps.FS, deps.Config.Files.TemplateDir)
				if err != nil {
					return err
				}
				active := activeTemplate(deps)
				for _, n := range names {
					marker := "  "
					if n == active {
						marker = "* "
					}
					fmt.Fprintln(cmd.OutOrStdout(), marker+n)
				}
				return nil
			})
		},
	}
}

func activeTemplate(deps *Dependencies) string {
	if active := deps.State.ActiveTemplate(); active != "" {
		return active
	}
	return deps.Config.Files.ActiveTemplate
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bioview version %s\n", Version)
		},
	}
}
