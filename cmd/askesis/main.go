// Package main provides the askesis CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rjgrunau/askesis/internal/api"
	"github.com/rjgrunau/askesis/internal/blog"
	"github.com/rjgrunau/askesis/internal/config"
	"github.com/rjgrunau/askesis/internal/display"
	"github.com/rjgrunau/askesis/internal/pages"
	"github.com/rjgrunau/askesis/internal/site"
	"github.com/rjgrunau/askesis/internal/substack"
	"github.com/rjgrunau/askesis/pkg/browser"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version, then the module version
// recorded by go install.
func resolveVersion(ldflagsVersion string, info *debug.BuildInfo) string {
	if ldflagsVersion != "" && ldflagsVersion != "dev" {
		return ldflagsVersion
	}
	if info != nil && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func buildInfo() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
}

// opener opens a URL outside the terminal.
type opener interface {
	Open(rawURL string) error
}

// app carries state shared by the subcommands once flags are parsed.
type app struct {
	opener opener

	configFile  string
	feedURL     string
	publication string
	jsonOutput  bool

	cfg    *config.Config
	logger *slog.Logger
	blog   *blog.Blog
}

// newRootCmd creates the root command for askesis CLI.
func newRootCmd() *cobra.Command {
	return newApp(browser.New()).rootCmd()
}

func newApp(o opener) *app {
	return &app{opener: o}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "askesis",
		Short:         "Content layer of the Askesis blog",
		Long:          "Askesis fetches the Substack feed behind the blog and serves posts, pages and site data.",
		Version:       resolveVersion(version, buildInfo()),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetVersionTemplate("askesis version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default is ./askesis.yaml)")
	flags.StringVar(&a.feedURL, "feed-url", "", "RSS feed URL (overrides ASKESIS_FEED_URL)")
	flags.StringVar(&a.publication, "publication", "", "Substack publication or profile URL to read the feed of")
	flags.BoolVar(&a.jsonOutput, "json", false, "Print JSON instead of text")

	rootCmd.AddCommand(a.newPostsCmd())
	rootCmd.AddCommand(a.newRecentCmd())
	rootCmd.AddCommand(a.newPostCmd())
	rootCmd.AddCommand(a.newSiteCmd())
	rootCmd.AddCommand(a.newPagesCmd())
	rootCmd.AddCommand(a.newServeCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{ConfigFile: a.configFile})
	if err != nil {
		return err
	}
	switch {
	case a.feedURL != "":
		cfg.FeedURL = a.feedURL
	case a.publication != "":
		cfg.FeedURL = substack.FeedURL(a.publication)
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	client := substack.NewClient(
		substack.WithFeedURL(cfg.FeedURL),
		substack.WithLogger(a.logger),
		substack.WithUniqueSlugs(cfg.UniqueSlugs),
	)
	a.blog = blog.NewWithFeed(client, client.FeedURL())
	return nil
}

func (a *app) siteData() (site.Data, error) {
	if a.cfg.SiteFile == "" {
		return site.Default(), nil
	}
	return site.Load(a.cfg.SiteFile)
}

// print writes v as indented JSON when --json is set, text otherwise.
func (a *app) print(cmd *cobra.Command, v any, text string) error {
	if !a.jsonOutput {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newPostsCmd creates the posts subcommand.
func (a *app) newPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List all posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts := a.blog.All(cmd.Context())
			return a.print(cmd, posts, display.NewTerminalFormatter().FormatPosts(posts))
		},
	}
}

// newRecentCmd creates the recent subcommand.
func (a *app) newRecentCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") {
				count = a.cfg.RecentCount
			}
			if count < 0 {
				return fmt.Errorf("invalid count %d: must be non-negative", count)
			}
			posts := a.blog.Recent(cmd.Context(), count)
			return a.print(cmd, posts, display.NewTerminalFormatter().FormatPosts(posts))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", blog.DefaultRecentCount, "Number of posts to show")

	return cmd
}

// newPostCmd creates the post subcommand.
func (a *app) newPostCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "post <slug>",
		Short: "Show a single post by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, ok := a.blog.BySlug(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("post not found: %s", args[0])
			}

			if open {
				if err := a.opener.Open(post.SubstackURL); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser. Please visit:\n%s\n", post.SubstackURL)
				}
			}

			text := display.NewTerminalFormatter().FormatPostDetail(post, substack.PlainText(post.Content))
			return a.print(cmd, post, text)
		},
	}

	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the post on Substack in the browser")

	return cmd
}

// newSiteCmd creates the site subcommand.
func (a *app) newSiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "site",
		Short: "Show navigation, social links and site copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.siteData()
			if err != nil {
				return err
			}
			return a.print(cmd, data, display.NewTerminalFormatter().FormatSite(data))
		},
	}
}

// newPagesCmd creates the pages subcommand.
func (a *app) newPagesCmd() *cobra.Command {
	var dir string
	var all bool

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List markdown pages and check their frontmatter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.PagesDir
			}
			ps, err := pages.Load(dir)
			if err != nil {
				return err
			}
			if !all {
				ps = pages.Published(ps)
			}
			return a.print(cmd, ps, display.NewTerminalFormatter().FormatPages(ps))
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Pages directory (default from config: content/pages)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include draft pages")

	return cmd
}

// newServeCmd creates the serve subcommand.
func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve posts and site data over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			data, err := a.siteData()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, addr, data)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config: :8080)")

	return cmd
}

func (a *app) serve(ctx context.Context, addr string, data site.Data) error {
	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(a.blog, data, a.logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("starting HTTP server", "addr", addr, "feed", a.cfg.FeedURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("HTTP server error: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	a.logger.Info("HTTP server stopped")
	return nil
}
