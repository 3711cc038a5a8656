package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"archlens/config"
	"archlens/internal/adapter/graphalg"
	"archlens/internal/adapter/store"
	"archlens/internal/domain"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "Render a stored analysis run as markdown",
	Long: `Render an analysis run as a markdown report: components by complexity,
business entities and processes, infrastructure services, and the dependency
graph including any dependency cycles. Without a run id the latest run is
rendered.

Examples:
  archlens report                          # Latest run to stdout
  archlens report -o report.md             # Latest run to a file
  archlens report 20260829T101500.000000000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to this file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	st, err := store.NewRunStore(config.RunDBPath(GetRootDir()))
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer st.Close()

	var run store.Run
	if len(args) > 0 {
		run, err = st.GetRun(args[0])
	} else {
		run, err = st.LatestRun()
	}
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if reportOutput != "" {
		f, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", reportOutput, err)
		}
		defer f.Close()
		out = f
	}

	renderReport(out, run)
	return nil
}

// renderReport writes the markdown report for one run.
func renderReport(w io.Writer, run store.Run) {
	r := run.Result

	fmt.Fprintf(w, "# Architecture analysis: %s\n\n", r.Root)
	fmt.Fprintf(w, "Run `%s` (%s)\n\n", run.ID, time.Unix(run.CreatedAt, 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "- Files analyzed: %d (%d failed)\n", r.Stats.FilesAnalyzed, r.Stats.FilesFailed)
	fmt.Fprintf(w, "- Chunks analyzed: %d\n", r.Stats.ChunksAnalyzed)
	fmt.Fprintf(w, "- Model calls: %d\n\n", r.Stats.ExternalCalls)

	renderComponents(w, r.Components)
	renderEntities(w, r.Entities)
	renderProcesses(w, r.Processes)
	renderServices(w, r.Services)
	renderGraph(w, r.Graph)
}

func renderComponents(w io.Writer, components map[string]*domain.CodeComponent) {
	if len(components) == 0 {
		return
	}
	fmt.Fprintf(w, "## Components (%d)\n\n", len(components))

	paths := make([]string, 0, len(components))
	for path := range components {
		paths = append(paths, path)
	}
	// Highest complexity first; path breaks ties for stable output.
	sort.Slice(paths, func(i, j int) bool {
		ci, cj := components[paths[i]].Complexity, components[paths[j]].Complexity
		if ci != cj {
			return ci > cj
		}
		return paths[i] < paths[j]
	})

	fmt.Fprintln(w, "| Path | Type | Language | Complexity |")
	fmt.Fprintln(w, "|------|------|----------|-----------:|")
	for _, path := range paths {
		c := components[path]
		fmt.Fprintf(w, "| %s | %s | %s | %.2f |\n", path, c.Type, c.Language, c.Complexity)
	}
	fmt.Fprintln(w)
}

func renderEntities(w io.Writer, entities map[string]*domain.BusinessEntity) {
	if len(entities) == 0 {
		return
	}
	fmt.Fprintf(w, "## Business entities (%d)\n\n", len(entities))

	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		e := entities[name]
		fmt.Fprintf(w, "### %s\n\n", name)
		if len(e.Attributes) > 0 {
			fmt.Fprintf(w, "- Attributes: %s\n", strings.Join(e.Attributes.Sorted(), ", "))
		}
		if len(e.Methods) > 0 {
			fmt.Fprintf(w, "- Methods: %s\n", strings.Join(e.Methods.Sorted(), ", "))
		}
		if len(e.Dependencies) > 0 {
			fmt.Fprintf(w, "- Depends on: %s\n", strings.Join(e.Dependencies.Sorted(), ", "))
		}
		for _, rule := range e.Rules {
			fmt.Fprintf(w, "- Rule: %s\n", rule)
		}
		fmt.Fprintf(w, "- Defined in: %s\n\n", strings.Join(e.SourceFiles.Sorted(), ", "))
	}
}

func renderProcesses(w io.Writer, processes map[string]*domain.BusinessProcess) {
	if len(processes) == 0 {
		return
	}
	fmt.Fprintf(w, "## Business processes (%d)\n\n", len(processes))

	names := make([]string, 0, len(processes))
	for name := range processes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := processes[name]
		fmt.Fprintf(w, "### %s\n\n", name)
		if p.Description != "" {
			fmt.Fprintf(w, "%s\n\n", p.Description)
		}
		for i, step := range p.Steps {
			fmt.Fprintf(w, "%d. %s\n", i+1, step)
		}
		if len(p.Entities) > 0 {
			fmt.Fprintf(w, "\nInvolves: %s\n", strings.Join(p.Entities.Sorted(), ", "))
		}
		for _, cp := range p.CriticalPaths {
			fmt.Fprintf(w, "- Critical: %s\n", cp)
		}
		fmt.Fprintln(w)
	}
}

func renderServices(w io.Writer, services map[string]*domain.DockerService) {
	if len(services) == 0 {
		return
	}
	fmt.Fprintf(w, "## Infrastructure services (%d)\n\n", len(services))

	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := services[name]
		fmt.Fprintf(w, "- **%s** (%s)", name, s.Image)
		if len(s.DependsOn) > 0 {
			fmt.Fprintf(w, " depends on %s", strings.Join(s.DependsOn.Sorted(), ", "))
		}
		if len(s.Ports) > 0 {
			fmt.Fprintf(w, ", ports %s", strings.Join(s.Ports, ", "))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func renderGraph(w io.Writer, g *domain.Graph) {
	if g == nil || len(g.Nodes) == 0 {
		return
	}
	fmt.Fprintf(w, "## Dependency graph\n\n")
	fmt.Fprintf(w, "%d nodes, %d edges\n\n", len(g.Nodes), len(g.Edges))

	cycles := graphalg.Cycles(g)
	if len(cycles) == 0 {
		fmt.Fprintln(w, "No dependency cycles.")
		return
	}
	fmt.Fprintf(w, "Dependency cycles (%d):\n\n", len(cycles))
	for _, group := range cycles {
		fmt.Fprintf(w, "- %s\n", strings.Join(group, " -> "))
	}
}
