package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studio/pkg/application"
	"github.com/felixgeelhaar/studio/pkg/storage"
)

var projectsJSON bool

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the projects in the portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newPortfolioService()
		projects, err := svc.GetProjects(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}

		if projectsJSON {
			return json.NewEncoder(os.Stdout).Encode(projects)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCLIENT\tSTATUS\tMODULES")
		for _, p := range projects {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Client, p.Status, len(p.Modules))
		}
		return w.Flush()
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show one project with its modules and steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newPortfolioService()
		p, err := svc.GetProjectByID(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}

		if projectsJSON {
			return json.NewEncoder(os.Stdout).Encode(p)
		}

		fmt.Printf("%s (%s) - %s [%s]\n", p.Name, p.ID, p.Client, p.Status)
		for _, m := range p.Modules {
			fmt.Printf("  %s [%s]\n", m.Title, m.Status)
			for _, s := range m.Steps {
				fmt.Printf("    %-24s %s\n", s.ID, s.Status)
			}
		}
		return nil
	},
}

var loopsCmd = &cobra.Command{
	Use:   "loops",
	Short: "List open loops across the portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newPortfolioService()
		loops, err := svc.GetLoopsAcrossPortfolio(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load loops: %w", err)
		}

		if projectsJSON {
			return json.NewEncoder(os.Stdout).Encode(loops)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PROJECT\tKIND\tLABEL\tOWNER")
		for _, l := range loops {
			owner := l.Owner
			if owner == "" {
				owner = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.ProjectName, l.Kind, l.Label, owner)
		}
		return w.Flush()
	},
}

func newPortfolioService() *application.PortfolioService {
	cwd, _ := os.Getwd()
	return application.NewPortfolioService(storage.NewFilesystemRepository(cwd))
}

func init() {
	projectsCmd.PersistentFlags().BoolVar(&projectsJSON, "json", false, "output in JSON format")
	loopsCmd.Flags().BoolVar(&projectsJSON, "json", false, "output in JSON format")
	projectsCmd.AddCommand(projectShowCmd)
	RootCmd.AddCommand(projectsCmd)
	RootCmd.AddCommand(loopsCmd)
}
