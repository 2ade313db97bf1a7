// Command seqdex is a small demo binary: it builds an in-memory host,
// registers a couple of lookups, runs one query, and renders the
// resulting plan and results for a human.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/cshenton/seqdex"
	"github.com/cshenton/seqdex/pattern"
	"github.com/cshenton/seqdex/plan"
	"github.com/cshenton/seqdex/sequence"
)

func main() {
	var value int
	var filterAbove int
	var help bool

	flag.IntVar(&value, "eq", 6, "value to search for with item == <eq>")
	flag.IntVar(&filterAbove, "filter-above", 5, "build a filtered lookup over item > <filter-above>")
	flag.BoolVar(&help, "h", false, "show help")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Builds a small cyclic demo host, registers an unfiltered and a\n")
		fmt.Fprintf(os.Stderr, "filtered lookup, plans a query, and renders the plan and results.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                       # item == 6, filtered lookup over item > 5\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -eq 5 -filter-above 5 # 5 is not > 5: only the unfiltered lookup can serve it\n", os.Args[0])
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	host := sequence.NewList()
	for i := 0; i < 20; i++ {
		if err := host.Append((i % 7) + 1); err != nil {
			fatal(err)
		}
	}

	dex := seqdex.New(host)
	dex.OnEvent(func(e seqdex.Event) {
		fmt.Fprintln(os.Stderr, color.HiBlackString("[%s] %v", e.Name, e.Data))
	})

	if _, err := dex.CreateLookup("basic", nil); err != nil {
		fatal(err)
	}
	if _, err := dex.CreateLookup("filtered", pattern.NewBuilder().Gt(filterAbove)); err != nil {
		fatal(err)
	}

	query := pattern.NewBuilder().Eq(value)
	queryPlan := dex.Plan(query)
	printPlan(queryPlan.Describe())

	stream := dex.Search(query)
	printResults(stream)
}

func printPlan(desc map[string]any) {
	fmt.Println(color.New(color.Bold).Sprint("plan"))
	fmt.Printf("  query: %s\n", color.CyanString("%v", desc["query"]))

	ops, _ := desc["operations"].([]map[string]any)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"#", "operation", "source", "args"})
	for i, op := range ops {
		source := ""
		if s, ok := op["source"].(map[string]any); ok {
			source = fmt.Sprintf("%v", s)
		}
		args := ""
		if a, ok := op["args"].(map[string]any); ok {
			args = fmt.Sprintf("%v", a)
		}
		table.Append([]string{fmt.Sprintf("%d", i), fmt.Sprintf("%v", op["operation"]), source, args})
	}
	table.Render()
}

func printResults(stream plan.ItemStream) {
	fmt.Println(color.New(color.Bold).Sprint("results"))
	count := 0
	for {
		item, ok, err := stream.Next()
		if err != nil {
			fatal(err)
		}
		if !ok {
			break
		}
		fmt.Printf("  (%d, %v)\n", item.Position, item.Element)
		count++
	}
	fmt.Println(color.HiBlackString("%d result(s)", count))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
	os.Exit(1)
}
