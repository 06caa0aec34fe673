package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pm-tools/project-pulse/pkg/services/analytics"
	"github.com/pm-tools/project-pulse/pkg/services/config"
	"github.com/pm-tools/project-pulse/pkg/store/erp"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "pulse",
		Short: "Project analytics from the command line",
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "pulse.yaml",
		"Path to the connection profile")

	rootCmd.AddCommand(projectsCmd(), analyticsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newExplorer() (analytics.Explorer, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	client := erp.NewClient(erp.Settings{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		Company: cfg.Company,
	})
	return analytics.NewExplorer(client, analytics.Settings{
		LookbackDays: cfg.LookbackDays,
	}), nil
}

func projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects known to the ERP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			explorer, err := newExplorer()
			if err != nil {
				return err
			}

			logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
			ctx := logger.WithContext(cmd.Context())

			projects, err := explorer.ListProjects(ctx)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Code", "Description"})
			for _, p := range projects {
				tw.AppendRow(table.Row{p.Code, p.Description})
			}
			tw.Render()
			return nil
		},
	}
}

func analyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics <project>",
		Short: "Show hours, cost and billing analytics for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, err := newExplorer()
			if err != nil {
				return err
			}

			logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
			ctx := logger.WithContext(cmd.Context())

			result, err := explorer.GetProjectAnalytics(ctx, args[0])
			if err != nil {
				return err
			}

			summary := table.NewWriter()
			summary.SetOutputMirror(os.Stdout)
			summary.AppendHeader(table.Row{"Metric", "Value"})
			summary.AppendRows([]table.Row{
				{"Hours spent", fmt.Sprintf("%.2f", result.HoursSpent)},
				{"Hours planned", fmt.Sprintf("%.2f", result.HoursPlanned)},
				{"Hours posted", fmt.Sprintf("%.2f", result.HoursPosted)},
				{"Hours unposted", fmt.Sprintf("%.2f", result.HoursUnposted)},
				{"Hours this week", fmt.Sprintf("%.2f", result.HoursThisWeek)},
				{"Budget cost", fmt.Sprintf("%.2f", result.BudgetCost.Total)},
				{"Billable price", fmt.Sprintf("%.2f", result.BillablePrice.Total)},
				{"Total cost", fmt.Sprintf("%.2f", result.TotalCost)},
				{"Total price", fmt.Sprintf("%.2f", result.TotalPrice)},
				{"Billing mode", string(result.BillingMode)},
				{"Team members", result.ResourceCount},
			})
			summary.Render()

			if len(result.Weekly) > 0 {
				weekly := table.NewWriter()
				weekly.SetOutputMirror(os.Stdout)
				weekly.AppendHeader(table.Row{"Week", "Total", "Approved", "Pending", "Cumulative"})
				for _, w := range result.Weekly {
					weekly.AppendRow(table.Row{
						w.ISOWeek,
						fmt.Sprintf("%.2f", w.TotalHours),
						fmt.Sprintf("%.2f", w.ApprovedHours),
						fmt.Sprintf("%.2f", w.PendingHours),
						fmt.Sprintf("%.2f", w.CumulativeHours),
					})
				}
				weekly.Render()
			}

			if len(result.Tasks) > 0 {
				tasks := table.NewWriter()
				tasks.SetOutputMirror(os.Stdout)
				tasks.AppendHeader(table.Row{"Task", "Description", "Hours", "Approved", "Pending", "Rate"})
				for _, t := range result.Tasks {
					tasks.AppendRow(table.Row{
						t.TaskCode,
						t.Description,
						fmt.Sprintf("%.2f", t.Hours),
						fmt.Sprintf("%.2f", t.ApprovedHours),
						fmt.Sprintf("%.2f", t.PendingHours),
						fmt.Sprintf("%.2f", t.UnitPrice),
					})
				}
				tasks.Render()
			}

			return nil
		},
	}
}
