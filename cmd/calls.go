package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/beplus/beplus/internal/store"
	"github.com/spf13/cobra"
)

type callView struct {
	Sequence  int64  `json:"sequence"`
	Timestamp string `json:"timestamp"`
	Resource  string `json:"resource"`
	Method    string `json:"method"`
	Endpoint  string `json:"endpoint"`
	Status    int    `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Request   string `json:"request,omitempty"`
	Response  string `json:"response,omitempty"`
}

func newCallsCmd() *cobra.Command {
	var limit int
	var resource string
	var output string

	cmd := &cobra.Command{
		Use:   "calls",
		Short: "List recorded API calls, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := store.EnsureDir(cfg.Store.Path); err != nil {
				return fmt.Errorf("create store directory: %w", err)
			}
			s, err := store.Open(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			records, err := s.CallLog().QueryAPICalls(cmd.Context(), store.QueryOpts{Limit: limit, Resource: resource})
			if err != nil {
				return fmt.Errorf("query calls: %w", err)
			}

			views := make([]callView, 0, len(records))
			for _, r := range records {
				views = append(views, callView{
					Sequence:  r.Sequence,
					Timestamp: r.Timestamp.Local().Format("2006-01-02 15:04:05"),
					Resource:  r.Resource,
					Method:    r.Method,
					Endpoint:  r.Endpoint,
					Status:    r.Status,
					LatencyMs: r.LatencyMs,
					Success:   r.Success,
					Error:     r.ErrorMessage,
					Request:   r.RequestPayload,
					Response:  r.ResponsePayload,
				})
			}
			return writeOutput(cmd.OutOrStdout(), output, views, func(w io.Writer) error {
				return writeCallsTable(w, views)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of calls to show (0 = all)")
	cmd.Flags().StringVar(&resource, "resource", "", "Only show calls for this resource (activities|rockie)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table|json|yaml)")

	return cmd
}

func writeCallsTable(w io.Writer, views []callView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No API calls recorded.")
		return err
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-10s  %-6s  %-6s  %-7s  %s\n",
		"Seq", "Timestamp", "Resource", "Method", "Status", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 70))
	for _, v := range views {
		ok := "✓"
		if !v.Success {
			ok = "✗"
		}
		status := "-"
		if v.Status != 0 {
			status = fmt.Sprintf("%d", v.Status)
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-10s  %-6s  %-6s  %-7d  %s\n",
			v.Sequence, v.Timestamp, v.Resource, v.Method, status, v.LatencyMs, ok)
	}
	return nil
}
