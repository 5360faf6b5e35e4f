// Command hashroute is a small toolbox around the route compiler: inspect
// compiled templates, try fragments against them, and run the websocket
// demo server from a JSON route table.
package main

import (
	"fmt"
	"os"

	"github.com/rohanthewiz/hashroute/core/ptn"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hashroute",
		Short: "Fragment routing toolbox",
		Long: `hashroute compiles declarative route templates (":name", "*splat",
"(optional)") into matchers and dispatches navigation fragments to them.

This tool exposes the compiler for inspection and runs a demo server that
bridges browser navigation over a websocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		compileCmd(),
		matchCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <template>",
		Short: "Show the derived expression and capture slots of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ptn.Compile(args[0])

			fmt.Println(p.Expr())
			for i, slot := range p.Slots() {
				fmt.Printf("  slot %d: %-10s %s\n", i, kindName(slot.Kind), slot.Name)
			}
			return nil
		},
	}
}

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <template> <fragment>",
		Short: "Match a fragment against a template and print the extracted params",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ptn.Compile(args[0])

			params, ok := p.Match(args[1])
			if !ok {
				fmt.Println("no match")
				return nil
			}

			slots := p.Slots()
			for i, param := range params {
				name := fmt.Sprintf("#%d", i)
				if i < len(slots) {
					name = slots[i].Name
				}

				if param.Valid {
					fmt.Printf("  %-10s %q\n", name, param.Value)
				} else {
					fmt.Printf("  %-10s null\n", name)
				}
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("hashroute", version)
		},
	}
}

func kindName(kind ptn.SlotKind) string {
	switch kind {
	case ptn.SlotNamed:
		return "named"
	case ptn.SlotSplat:
		return "splat"
	case ptn.SlotQuery:
		return "query"
	}
	return "unknown"
}
