package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kisixing/srcdeps-core/internal/build"
	"github.com/kisixing/srcdeps-core/internal/buildcache"
	"github.com/kisixing/srcdeps-core/internal/ctxlog"
	"github.com/kisixing/srcdeps-core/internal/scm"
)

var flagJobs int

var checkoutCmd = &cobra.Command{
	Use:   "checkout <groupId:artifactId:version>...",
	Short: "Check out the sources of dependencies into the sources directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flagPath)
		if err != nil {
			return err
		}
		requests := make([]*build.Request, len(args))
		for i, arg := range args {
			if requests[i], err = newRequest(cfg, arg); err != nil {
				return err
			}
		}
		outcomes, err := checkout(cmd.Context(), buildcache.New(), scm.NewGit(), requests)
		if err != nil {
			return err
		}
		return printOutcomes(cmd.OutOrStdout(), args, requests, outcomes)
	},
}

func init() {
	checkoutCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 4, "number of repositories checked out in parallel")
	rootCmd.AddCommand(checkoutCmd)
}

// checkout runs the requests through the cache. Requests sharing a project
// root directory run one after another; distinct directories run in
// parallel, at most flagJobs at a time.
func checkout(ctx context.Context, cache *buildcache.Cache, source scm.SCM, requests []*build.Request) ([]buildcache.Outcome, error) {
	logger := ctxlog.FromContext(ctx)
	byDir := make(map[string][]int)
	var dirs []string
	for i, r := range requests {
		if _, ok := byDir[r.ProjectRootDirectory]; !ok {
			dirs = append(dirs, r.ProjectRootDirectory)
		}
		byDir[r.ProjectRootDirectory] = append(byDir[r.ProjectRootDirectory], i)
	}

	fn := func(ctx context.Context, r *build.Request) (buildcache.Outcome, error) {
		res, err := source.Checkout(ctx, r)
		if err != nil {
			return buildcache.Outcome{}, err
		}
		return buildcache.Outcome{Dir: res.Dir, Revision: res.Revision}, nil
	}

	outcomes := make([]buildcache.Outcome, len(requests))
	g, ctx := errgroup.WithContext(ctx)
	if flagJobs > 0 {
		g.SetLimit(flagJobs)
	}
	for _, dir := range dirs {
		dir := dir
		g.Go(func() error {
			for _, i := range byDir[dir] {
				o, cached, err := cache.Do(ctx, requests[i], fn)
				if err != nil {
					return err
				}
				if cached {
					logger.Debug("reusing checkout", "id", o.ID.String(), "dir", o.Dir)
				}
				outcomes[i] = o
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func printOutcomes(w io.Writer, args []string, requests []*build.Request, outcomes []buildcache.Outcome) error {
	for i, o := range outcomes {
		if _, err := fmt.Fprintf(w, "%s %s %s %s\n", args[i], requests[i].RepositoryID, o.Revision, o.Dir); err != nil {
			return err
		}
	}
	return nil
}
