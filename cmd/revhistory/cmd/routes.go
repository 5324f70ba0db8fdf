package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"revhistory/cmd/revhistory/cmd/types"
	"revhistory/internal/app/server"
	"revhistory/internal/routing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var routesJSON bool

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the derived revision routes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := types.Config(cmd.Context())
		log := types.Logger(cmd.Context())

		registry, err := server.LoadRegistry(cfg)
		if err != nil {
			return err
		}
		routes := routing.NewDeriver(log).DeriveAll(registry)

		if routesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(routes)
		}
		return printRoutes(routes)
	},
}

func printRoutes(routes []routing.Route) error {
	if len(routes) == 0 {
		fmt.Println("No revision routes: no type declares a revision or version-history link template")
		return nil
	}

	name := color.New(color.FgCyan).SprintFunc()
	path := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH\tHANDLER\tACCESS\tPARAMETERS")
	for _, r := range routes {
		req, _ := r.AccessRequirement()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			name(r.Name), path(r.Path), r.Handler, req, dim(parameters(r)))
	}
	return w.Flush()
}

func parameters(r routing.Route) string {
	names := make([]string, 0, len(r.Options.Parameters))
	for n := range r.Options.Parameters {
		names = append(names, n)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+"="+r.Options.Parameters[n].Type)
	}
	return strings.Join(parts, " ")
}

func init() {
	routesCmd.Flags().BoolVar(&routesJSON, "json", false, "print routes as JSON")
}
