package main

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/issuetop/issuetop/internal/log"
)

// Mutates the verbose/quiet package globals, so no t.Parallel here.
func TestApplyLoggingFlags(t *testing.T) {
	restoreV, restoreQ := verbose, quiet
	defer func() { verbose, quiet = restoreV, restoreQ }()

	tests := []struct {
		name        string
		verbose     bool
		quiet       bool
		wantVerbose bool
		wantErr     bool
	}{
		{name: "defaults", wantVerbose: false},
		{name: "verbose", verbose: true, wantVerbose: true},
		{name: "quiet", quiet: true, wantVerbose: false},
		{name: "both", verbose: true, quiet: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbose, quiet = tt.verbose, tt.quiet

			cmd := &cobra.Command{}
			cmd.SetContext(context.Background())

			err := applyLoggingFlags(cmd)
			if tt.wantErr {
				if err == nil {
					t.Fatal("applyLoggingFlags() = nil, want error for conflicting flags")
				}
				return
			}
			if err != nil {
				t.Fatalf("applyLoggingFlags() error = %v", err)
			}

			// The logger on the context must reflect the parsed flag
			// values, not the pre-parse zero values.
			if got := log.FromContext(cmd.Context()).IsVerbose(); got != tt.wantVerbose {
				t.Errorf("IsVerbose() = %v, want %v", got, tt.wantVerbose)
			}
		})
	}
}
