package main

import (
	"github.com/spf13/cobra"

	"github.com/issuetop/issuetop/internal/output"
	"github.com/issuetop/issuetop/internal/viewstate"
)

func newRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently viewed repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := viewstate.Path()
			if err != nil {
				return err
			}
			st := viewstate.Load(path)

			out := output.FromContext(cmd.Context())
			repos := st.Recent(limit)
			if len(repos) == 0 {
				out.Println("no recently viewed repositories")
				return nil
			}
			for _, r := range repos {
				out.Println(r)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum entries to list")

	return cmd
}
