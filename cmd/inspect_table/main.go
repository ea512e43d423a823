// Print the decoded contents of lookup tables in canonical key order.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/golang/glog"

	"github.com/timpalpant/lookerup"
	"github.com/timpalpant/lookerup/tables"
)

func main() {
	path := flag.String("tables", "", "Table file (.csv, .gob.gz or .db)")
	name := flag.String("name", "", "Only print tables with this name")
	flag.Parse()

	src, err := tables.Open(*path)
	if err != nil {
		glog.Fatal(err)
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	ids, err := src.List()
	if err != nil {
		glog.Fatal(err)
	}

	for _, id := range ids {
		if *name != "" && id.Name != *name {
			continue
		}

		pattern, err := src.Pattern(id)
		if err != nil {
			glog.Fatal(err)
		}

		table, err := lookerup.NewLookupTable(id.Window, pattern)
		if err != nil {
			glog.Fatal(err)
		}

		printTable(id, table)
	}
}

func printTable(id lookerup.TableID, table *lookerup.LookupTable) {
	c := lookerup.Classify(table)
	depth := fmt.Sprint(c.MemoryDepth)
	if c.MemoryDepth == lookerup.InfiniteMemory {
		depth = "inf"
	}
	fmt.Printf("%v: %d entries, memory depth %s, deterministic %v, stochastic %v\n",
		id, table.Len(), depth, table.IsDeterministic(), c.Stochastic)
	if err := table.Validate(); err != nil {
		fmt.Printf("  WARNING: %v\n", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  index\tself\topp\topp start\tvalue")
	for i, e := range table.Entries() {
		fmt.Fprintf(w, "  %d\t%v\t%v\t%v\t%v\n",
			i, e.Key.Self, e.Key.Opp, e.Key.OppStart, e.Value)
	}
	w.Flush()
	fmt.Println()
}
