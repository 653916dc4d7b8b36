package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/issuetop/issuetop/internal/browse"
	"github.com/issuetop/issuetop/internal/config"
	"github.com/issuetop/issuetop/internal/githubapi"
	"github.com/issuetop/issuetop/internal/log"
	"github.com/issuetop/issuetop/internal/output"
	"github.com/issuetop/issuetop/internal/ui"
	"github.com/issuetop/issuetop/internal/viewstate"
)

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	runCfg := cfg
	if err := applyFlagOverrides(cmd, &runCfg); err != nil {
		return err
	}
	if err := runCfg.Validate(); err != nil {
		return err
	}

	statePath, err := viewstate.Path()
	if err != nil {
		return err
	}
	st := viewstate.Load(statePath)

	slug, err := resolveRepo(args, st)
	if errors.Is(err, ui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	owner, repo, err := splitSlug(slug)
	if err != nil {
		return err
	}

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = runCfg.Token()
	}
	if token == "" {
		log.FromContext(ctx).Println("No token found; using unauthenticated rate limits (set GITHUB_TOKEN)")
	}
	client := githubapi.NewClient(token)

	plain, _ := cmd.Flags().GetBool("plain")
	if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		return printStatic(cmd, client, owner, repo, runCfg, st.Columns(slug))
	}

	model := browse.New(ctx, browse.Params{
		Owner:   owner,
		Repo:    repo,
		Fetcher: client,
		Config:  runCfg,
		Columns: st.Columns(slug),
	})

	profile := colorprofile.Detect(os.Stdout, os.Environ())
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stdout),
		tea.WithColorProfile(profile),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	m := final.(*browse.Model)
	st.SetColumns(slug, m.VisibleColumns())
	st.Touch(slug, time.Now())
	if err := st.Save(statePath); err != nil {
		log.FromContext(ctx).Printf("Warning: could not save view state: %v", err)
	}
	return nil
}

// printStatic fetches one server page and prints it as an aligned table.
// runCfg is the flag-merged config, not the raw loaded one.
func printStatic(cmd *cobra.Command, client *githubapi.Client, owner, repo string, runCfg config.Config, cols map[string]bool) error {
	page, err := client.ListIssues(cmd.Context(), owner, repo, githubapi.ListOptions{
		Page:      1,
		PerPage:   githubapi.ServerPageSize,
		State:     runCfg.State,
		Sort:      runCfg.Sort,
		Direction: runCfg.Direction,
	})
	if err != nil {
		return err
	}

	out := output.FromContext(cmd.Context())
	if len(page.Issues) == 0 {
		out.Println("no issues")
		return nil
	}

	out.Print(browse.RenderStatic(page.Issues, cols, time.Now()))
	if !page.Exhausted && page.TotalEstimate > 0 {
		out.Printf("\nshowing %d of ~%d issues\n", len(page.Issues), page.TotalEstimate)
	}
	return nil
}

// applyFlagOverrides layers command-line flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) error {
	if cmd.Flags().Changed("state") {
		c.State, _ = cmd.Flags().GetString("state")
	}
	if cmd.Flags().Changed("page-size") {
		c.PageSize, _ = cmd.Flags().GetInt("page-size")
	}
	if cmd.Flags().Changed("sort") {
		c.Sort, _ = cmd.Flags().GetString("sort")
	}
	if cmd.Flags().Changed("direction") {
		c.Direction, _ = cmd.Flags().GetString("direction")
	}
	return nil
}

// resolveRepo picks the repository to browse: the positional argument if
// given, otherwise an interactive picker over recently viewed repos.
func resolveRepo(args []string, st *viewstate.State) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("repository argument required when not running interactively")
	}
	return ui.PickRepo(st.Recent(10))
}

// splitSlug parses an "owner/repo" argument.
func splitSlug(slug string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", slug)
	}
	return owner, repo, nil
}
