// Replay a fixed history through a table-driven strategy many times
// and report how often it cooperates.
package main

import (
	"flag"
	"io"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"strings"

	"github.com/golang/glog"

	"github.com/timpalpant/lookerup"
	"github.com/timpalpant/lookerup/tables"
)

func main() {
	path := flag.String("tables", "", "Table file (.csv, .gob.gz or .db)")
	name := flag.String("strategy", "PSO Gambler Mem1", "Name of the strategy to sample")
	history := flag.String("history", "", "Histories as OURS/THEIRS, e.g. CCD/CDD")
	numSamples := flag.Int("num_samples", 10000, "Number of decisions to sample")
	seed := flag.Int64("seed", 1234, "Random seed")
	debugAddr := flag.String("debug_addr", "", "Serve pprof and expvar on this address")
	flag.Parse()

	if *debugAddr != "" {
		go http.ListenAndServe(*debugAddr, nil)
	}

	self, opp := mustParseHistory(*history)
	src, err := tables.Open(*path)
	if err != nil {
		glog.Fatal(err)
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	registry, err := lookerup.NewRegistry(src, 16, mustListDefinitions(src)...)
	if err != nil {
		glog.Fatal(err)
	}

	g, err := registry.NewGambler(*name, rand.New(rand.NewSource(*seed)))
	if err != nil {
		glog.Fatal(err)
	}

	v, err := g.NextRawValue(self, opp)
	if err != nil {
		glog.Fatal(err)
	}

	key := lookerup.Extract(self, opp, g.Table().Window())
	glog.Infof("%s: history %s/%s uses key %v with value %v",
		g.Name(), lookerup.FormatActions(self), lookerup.FormatActions(opp), key, v)

	nCooperate := 0
	for i := 0; i < *numSamples; i++ {
		a, err := g.Play(self, opp)
		if err != nil {
			glog.Fatal(err)
		}
		if a == lookerup.Cooperate {
			nCooperate++
		}
	}

	rate := float64(nCooperate) / float64(*numSamples)
	glog.Infof("Cooperated in %d of %d samples (%.3f %%)", nCooperate, *numSamples, 100*rate)
}

func mustParseHistory(s string) ([]lookerup.Action, []lookerup.Action) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 || len(parts[0]) != len(parts[1]) {
		glog.Fatalf("history must be two equal-length move lists separated by '/': %q", s)
	}

	self, err := lookerup.ParseActions(parts[0])
	if err != nil {
		glog.Fatal(err)
	}
	opp, err := lookerup.ParseActions(parts[1])
	if err != nil {
		glog.Fatal(err)
	}
	return self, opp
}

// Every table in the file is playable under its own name,
// in addition to the published definitions.
func mustListDefinitions(src tables.Source) []lookerup.Definition {
	ids, err := src.List()
	if err != nil {
		glog.Fatal(err)
	}

	defs := make([]lookerup.Definition, 0, len(lookerup.Definitions)+len(ids))
	seen := make(map[string]bool)
	for _, d := range lookerup.Definitions {
		defs = append(defs, d)
		seen[d.Name] = true
	}
	for _, id := range ids {
		if !seen[id.Name] {
			defs = append(defs, lookerup.Definition{Name: id.Name, Window: id.Window})
			seen[id.Name] = true
		}
	}
	return defs
}
