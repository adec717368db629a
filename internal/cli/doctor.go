package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/demonlist/internal/config"
	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/version"
	"github.com/example/demonlist/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for list validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration and list integrity",
		Long: `Health check for a demonlist installation.

Validates:
- Configuration and list sizes
- Database connectivity
- Positions are unique and contiguous from 1
- No two players share a name ignoring case

Examples:
  demonlist doctor              # Run full health check
  demonlist doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []CheckResult

			c, err := wire.Default()
			if err != nil {
				results = append(results, CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()})
			} else {
				results = runChecks(cmd.Context(), c.Config, c.Integrity)
			}

			out := cmd.OutOrStdout()
			if !quiet {
				printResults(out, results)
			}

			if hasErrors(results) {
				return fmt.Errorf("list validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// runChecks evaluates every check against an opened installation.
func runChecks(ctx context.Context, cfg *config.Config, integrity primary.IntegrityService) []CheckResult {
	results := []CheckResult{checkConfig(cfg), {Name: "Database", Status: "✓"}}

	report, err := integrity.CheckIntegrity(ctx)
	if err != nil {
		return append(results, CheckResult{Name: "Integrity", Status: "✗", Details: "  " + err.Error()})
	}
	return append(results, checkIntegrity(report, cfg))
}

// checkConfig reports the effective storage and list sizes
func checkConfig(cfg *config.Config) CheckResult {
	if err := cfg.Validate(); err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Config", Status: "✓"}
}

// checkIntegrity turns an integrity report into a check result
func checkIntegrity(report *primary.IntegrityReport, cfg *config.Config) CheckResult {
	if len(report.Problems) > 0 {
		return CheckResult{
			Name:    "Integrity",
			Status:  "✗",
			Details: "  " + strings.Join(report.Problems, "\n  "),
		}
	}
	if report.Demons > cfg.ExtendedListSize {
		return CheckResult{
			Name:    "Integrity",
			Status:  "⚠",
			Details: fmt.Sprintf("  %d demons, %d of them on the legacy list", report.Demons, report.Demons-cfg.ExtendedListSize),
		}
	}
	return CheckResult{Name: "Integrity", Status: "✓"}
}

func hasErrors(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == "✗" {
			return true
		}
	}
	return false
}

func printResults(out io.Writer, results []CheckResult) {
	// Print compact table
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
	}
	fmt.Fprintln(out)

	// Print details for non-passing checks
	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasErrors(results) {
		fmt.Fprintf(out, "\n⚠ Issues found (%s).\n", version.String())
	} else {
		fmt.Fprintln(out, "All checks passed.")
	}
}
