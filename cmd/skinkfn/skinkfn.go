// Command skinkfn generates class method-table entries. It scans Go packages
// for exported functions assignable to skink.Fn and prints a Define line for
// each, so class authors can regenerate registration blocks.
package main

import (
	"flag"
	"fmt"
	"go/token"
	"go/types"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

func main() {
	var match, ignore string
	var skinkpath string
	flag.StringVar(&match, "match", ".", "include only functions matching this regular expression")
	flag.StringVar(&ignore, "ignore", "$^", "exclude functions matching this regular expression")
	flag.StringVar(&skinkpath, "skink", "github.com/emmelopod/skink", "import path for package skink source code")
	flag.Parse()
	mre, err := regexp.Compile(match)
	if err != nil {
		fail("error compiling match:", err)
	}
	ire, err := regexp.Compile(ignore)
	if err != nil {
		fail("error compiling ignore:", err)
	}

	fset := token.NewFileSet()
	config := packages.Config{Mode: packages.NeedTypes | packages.NeedSyntax | packages.NeedImports, Fset: fset}
	pkgs, err := packages.Load(&config, append([]string{skinkpath}, flag.Args()...)...)
	if err != nil {
		fail("error loading packages:", err)
	}
	fn, pkgs := getFn(pkgs)
	results := []string{}
	for _, pkg := range pkgs {
		results = append(results, find(pkg.Types.Scope(), fn, mre, ire)...)
	}
	sort.Strings(results)
	for _, name := range results {
		fmt.Printf("\tc.Define(%q, %s)\n", trimMatch(name, mre), name)
	}
}

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func getFn(pkgs []*packages.Package) (types.Type, []*packages.Package) {
	pkg := pkgs[0].Types
	r := pkg.Scope().Lookup("Fn")
	if r == nil {
		fail(pkg.Name(), "has no definition of Fn")
	}
	t, ok := r.(*types.TypeName)
	if !ok {
		fail(pkg.Name(), "has incorrect definition of Fn:", r)
	}
	fn := t.Type().Underlying()
	return fn, pkgs[1:]
}

func find(pkg *types.Scope, fn types.Type, mre, ire *regexp.Regexp) []string {
	var out []string
	for _, name := range pkg.Names() {
		if mre.MatchString(name) && !ire.MatchString(name) {
			t := pkg.Lookup(name).Type()
			if types.AssignableTo(t, fn) {
				out = append(out, name)
			}
		}
	}
	return out
}

func trimMatch(name string, mre *regexp.Regexp) string {
	if mre.String() != "." {
		k := mre.FindStringIndex(name)
		name = name[k[1]:]
	}
	return strings.ToLower(name[:1]) + name[1:]
}
