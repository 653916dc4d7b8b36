package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/issuetop/issuetop/internal/doctor"
	"github.com/issuetop/issuetop/internal/output"
	"github.com/issuetop/issuetop/internal/ui/styles"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config, token, state file and API reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			failed := false
			for _, res := range doctor.Run(cmd.Context()) {
				marker := styles.OpenState.Render("✓")
				switch res.Status {
				case doctor.Warn:
					marker = styles.WarningStyle.Render("!")
				case doctor.Fail:
					marker = styles.ErrorStyle.Render("✗")
					failed = true
				}
				out.Printf("%s %-11s %s\n", marker, res.Name, res.Detail)
			}

			if failed {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		},
	}
}
