package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ajaybhargavb/Razor/internal/fixture"
	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/lower"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
	"github.com/ajaybhargavb/Razor/internal/source"
)

func main() {
	path := "internal/fixture/testdata/design_time.tree"
	file, err := source.Load(path)
	if err != nil {
		fmt.Printf("load error: %v\n", err)
		os.Exit(1)
	}
	res, err := pipeline.Process(context.Background(), file, &pipeline.ProcessRequest{
		Parser: fixture.Loader{},
		Passes: []pipeline.Pass{
			lower.DocumentClassifierPass{},
			lower.DirectiveClassifierPass{},
			lower.DesignTimeDirectivePass{},
		},
		Options: pipeline.ParseOptions{DesignTime: true},
	})
	if err != nil {
		fmt.Printf("process error: %v\n", err)
		os.Exit(1)
	}
	if res.Document.Bag.HasErrors() {
		fmt.Println("pipeline had errors")
		for _, d := range res.Document.Bag.Items() {
			fmt.Printf("%s %s\n", d.Ref(), d.Message)
		}
		os.Exit(1)
	}

	fmt.Print(ir.DumpString(res.Root))
	fmt.Println()
	dumpHolders(res.Root, 0)
}

func dumpHolders(n ir.Node, depth int) {
	if n.Kind() == ir.KindDirectiveHolder {
		fmt.Printf("holder depth=%d span=%s children=%d\n", depth, n.Span(), len(n.Children()))
		for _, c := range n.Children() {
			fmt.Printf("  hoisted %s %q\n", c.Span(), strings.TrimSpace(c.FullText()))
		}
	}
	for _, c := range n.Children() {
		dumpHolders(c, depth+1)
	}
}
