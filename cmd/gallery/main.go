package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-gallery/internal/app"
	"github.com/treykane/cli-gallery/internal/catalog"
	"github.com/treykane/cli-gallery/internal/config"
	"github.com/treykane/cli-gallery/internal/export"
	"github.com/treykane/cli-gallery/internal/gallery"
	"github.com/treykane/cli-gallery/internal/logging"
	"github.com/treykane/cli-gallery/internal/media"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var log = logging.New("cli")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// options holds the flags shared by every command.
type options struct {
	catalogPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "gallery",
		Short: "Browse a portfolio catalog as a masonry gallery in the terminal",
		Long: `gallery shows a catalog of photos and posts as a masonry grid.

Open an item to view it full size, flip through neighbours, zoom, copy its
share link or download the image. Pins and hides last for the session.

Without --catalog or a "catalog" entry in ~/.cli-gallery/config.json a
built-in sample catalog is shown.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.catalogPath, "catalog", "c", "", "catalog YAML file (default: config catalog or built-in sample)")

	root.AddCommand(
		newInitCmd(),
		newExportCmd(opts),
		newLayoutCmd(opts),
		newMirrorCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadCatalog resolves the catalog from the flag, then the config, then the
// built-in sample. path is empty for the sample.
func loadCatalog(opts *options, cfg config.Config) (cat catalog.Catalog, path string, err error) {
	path = strings.TrimSpace(opts.catalogPath)
	if path == "" {
		path = cfg.Catalog
	}
	if path == "" {
		return catalog.Sample(), "", nil
	}
	path, err = config.NormalizePath(path)
	if err != nil {
		return catalog.Catalog{}, "", err
	}
	cat, err = catalog.Load(path)
	if err != nil {
		return catalog.Catalog{}, "", err
	}
	return cat.WithDefaultBaseURL(cfg.BaseURL), path, nil
}

// setup loads config and points logging at the configured destination. The
// TUI always logs to a file since it owns the terminal.
func setup(tui bool) (config.Config, io.Closer, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return config.Config{}, nil, err
	}
	file := cfg.LogFile
	if env := strings.TrimSpace(os.Getenv("CLI_GALLERY_LOG_FILE")); env != "" {
		file = env
	}
	if file == "" && tui {
		file = config.DefaultLogPath()
	}
	closer, err := logging.Configure(logging.Options{Level: cfg.LogLevel, File: file})
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("configure logging: %w", err)
	}
	return cfg, closer, nil
}

func runTUI(ctx context.Context, opts *options) error {
	cfg, closer, err := setup(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, path, err := loadCatalog(opts, cfg)
	if err != nil {
		return err
	}
	log.Info("starting gallery", "catalog", path, "items", len(cat.Items))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := app.NewTerminalOutput(os.Stdout)
	m := app.New(app.Options{Config: cfg, Catalog: cat, Output: out})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithOutput(out))
	if path != "" {
		go func() {
			if err := app.WatchCatalog(ctx, p, path); err != nil {
				log.Warn("catalog watcher stopped", "path", path, "error", err)
			}
		}()
	}

	_, err = p.Run()
	m.Teardown()
	return err
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		out     string
		columns int
		pins    []string
		hides   []string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as a static HTML masonry page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closer, err := setup(false)
			if err != nil {
				return err
			}
			defer closer.Close()
			cat, _, err := loadCatalog(opts, cfg)
			if err != nil {
				return err
			}
			path, err := config.NormalizePath(out)
			if err != nil {
				return fmt.Errorf("--out: %w", err)
			}
			if err := export.WriteFile(path, cat, export.Options{Columns: columns, Pinned: pins, Hidden: hides}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d items)\n", path, len(cat.Items))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "gallery.html", "output HTML file")
	cmd.Flags().IntVar(&columns, "columns", export.DefaultColumns, "number of masonry columns")
	cmd.Flags().StringSliceVar(&pins, "pin", nil, "ids to pin to the front")
	cmd.Flags().StringSliceVar(&hides, "hide", nil, "ids to leave out")
	return cmd
}

// layoutOutput is the JSON printed by the layout command.
type layoutOutput struct {
	Columns [][]string `json:"columns"`
	Order   []string   `json:"order"`
}

func newLayoutCmd(opts *options) *cobra.Command {
	var (
		columns int
		section string
		pins    []string
		hides   []string
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the masonry column assignment as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closer, err := setup(false)
			if err != nil {
				return err
			}
			defer closer.Close()
			cat, _, err := loadCatalog(opts, cfg)
			if err != nil {
				return err
			}
			items := cat.Items
			if section != "" {
				items = cat.Filter(gallery.ParseSection(section))
			}
			pinned, hidden := gallery.NewIDSet(pins...), gallery.NewIDSet(hides...)
			return writeLayout(cmd.OutOrStdout(), gallery.Arrange(items, pinned, hidden, columns), gallery.Order(items, pinned, hidden))
		},
	}
	cmd.Flags().IntVar(&columns, "columns", 3, "number of columns")
	cmd.Flags().StringVar(&section, "section", "", "only items of this section (photos, blog, stories, projects)")
	cmd.Flags().StringSliceVar(&pins, "pin", nil, "ids to pin")
	cmd.Flags().StringSliceVar(&hides, "hide", nil, "ids to hide")
	return cmd
}

func writeLayout(w io.Writer, columns gallery.Columns, ordered []gallery.Item) error {
	out := layoutOutput{Columns: make([][]string, len(columns)), Order: make([]string, len(ordered))}
	for c, col := range columns {
		out.Columns[c] = make([]string, len(col))
		for r, item := range col {
			out.Columns[c][r] = item.ID
		}
	}
	for i, item := range ordered {
		out.Order[i] = item.ID
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func newMirrorCmd(opts *options) *cobra.Command {
	var (
		dir      string
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Download every catalog image into a directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closer, err := setup(false)
			if err != nil {
				return err
			}
			defer closer.Close()
			cat, _, err := loadCatalog(opts, cfg)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.DownloadDir
			}
			dir, err = config.NormalizePath(dir)
			if err != nil {
				return fmt.Errorf("--dir: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			results, err := media.Mirror(ctx, cat.Items, &media.Saver{Dir: dir}, parallel)
			out := cmd.OutOrStdout()
			for _, r := range results {
				switch {
				case r.Err != nil:
					fmt.Fprintf(out, "FAIL %s: %v\n", r.ID, r.Err)
				case r.Path == "":
					fmt.Fprintf(out, "skip %s (no image)\n", r.ID)
				default:
					fmt.Fprintf(out, "ok   %s -> %s\n", r.ID, r.Path)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "destination directory (default: config download_dir)")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", media.DefaultParallel, "concurrent downloads")
	return cmd
}

// newInitCmd writes a default config file, optionally pointing it at a
// catalog. An existing file is only replaced with --force.
func newInitCmd() *cobra.Command {
	var (
		catalogPath string
		force       bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default ~/.cli-gallery/config.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exists, err := config.Exists()
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("config already exists (use --force to overwrite)")
			}
			cfg := config.Default()
			if catalogPath != "" {
				if _, err := catalog.Load(catalogPath); err != nil {
					return err
				}
				cfg.Catalog = catalogPath
			}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "with-catalog", "", "catalog YAML file to record in the config")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "gallery", version)
		},
	}
}
