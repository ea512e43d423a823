// Convert lookup table pattern data between csv, gob.gz and sqlite formats.
package main

import (
	"flag"
	"io"

	"github.com/golang/glog"

	"github.com/timpalpant/lookerup"
	"github.com/timpalpant/lookerup/tables"
)

func main() {
	input := flag.String("input", "", "Input table file")
	output := flag.String("output", "", "Output table file")
	check := flag.Bool("check", true, "Check that every table decodes before saving")
	flag.Parse()

	src, err := tables.Open(*input)
	if err != nil {
		glog.Fatal(err)
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	if *check {
		mustCheckAll(src)
	}

	if err := tables.Save(*output, src); err != nil {
		glog.Fatal(err)
	}
}

func mustCheckAll(src tables.Source) {
	ids, err := src.List()
	if err != nil {
		glog.Fatal(err)
	}

	for _, id := range ids {
		pattern, err := src.Pattern(id)
		if err != nil {
			glog.Fatal(err)
		}

		table, err := lookerup.NewLookupTable(id.Window, pattern)
		if err != nil {
			glog.Fatalf("%v: %v", id, err)
		}
		if err := table.Validate(); err != nil {
			glog.Fatalf("%v: %v", id, err)
		}
	}

	glog.Infof("Checked %d tables", len(ids))
}
