/*
lrxdump is a console utility printing grammars of bundled languages as YAML or JSON.
Usage is

	lrxdump [-j] [-o <name>] <language>

-j flag instructs lrxdump to output JSON instead of YAML;

-o <name> defines output file name, default is standard output;

<language> is the name of bundled language, "calc" is the only one now.
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ava12/lrx/examples/calc/lib"
	"github.com/ava12/lrx/grammar"
	"github.com/ava12/lrx/lr"
)

type language struct {
	grammar func() *grammar.Grammar
	tables  func() *lr.Tables
}

var languages = map[string]language{
	"calc": {lib.Grammar, lib.Tables},
}

// Dump is the document written by lrxdump.
type Dump struct {
	Language string           `json:"language" yaml:"language"`
	Goal     string           `json:"goal" yaml:"goal"`
	States   int              `json:"states" yaml:"states"`
	Grammar  *grammar.Grammar `json:"grammar" yaml:"grammar"`
}

var (
	generateJson bool
	outFileName  string
)

func languageNames() string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  lrxdump [-j] [-o <name>] <language>")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  <language>")
		fmt.Fprintln(flag.CommandLine.Output(), "\tone of:", languageNames())
	}

	flag.BoolVar(&generateJson, "j", false, "output JSON instead of YAML")
	flag.StringVar(&outFileName, "o", "", "output file name, default is standard output")
	flag.Parse()

	lang, found := languages[flag.Arg(0)]
	if !found {
		flag.Usage()
		os.Exit(2)
	}

	content, e := makeDump(flag.Arg(0), lang)
	if e == nil {
		if outFileName == "" {
			_, e = os.Stdout.Write(content)
		} else {
			e = os.WriteFile(outFileName, content, 0o666)
		}
	}

	if e != nil {
		fmt.Println(e.Error())
		os.Exit(3)
	}
}

func newDump(name string, lang language) *Dump {
	g := lang.grammar()
	t := lang.tables()
	return &Dump{
		Language: name,
		Goal:     g.SymbolName(t.Goal()),
		States:   t.StateCount(),
		Grammar:  g,
	}
}

func makeDump(name string, lang language) ([]byte, error) {
	d := newDump(name, lang)
	if generateJson {
		content, e := json.MarshalIndent(d, "", "  ")
		return append(content, '\n'), e
	}
	return yaml.Marshal(d)
}
