// Command viewtree inspects editing view trees built from markup.
//
// Usage:
//
//	viewtree [options] <markup>
//	viewtree diff [-unified] <old> <new>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/viewtree/diff"
	"github.com/chrisuehlinger/viewtree/markup"
	"github.com/chrisuehlinger/viewtree/script"
	"github.com/chrisuehlinger/viewtree/view"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) > 1 && os.Args[1] == "diff" {
		return runDiff(os.Args[2:])
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return 1
	}
	defer logger.Sync()
	return runTree(os.Args[1:], logger)
}

func runTree(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("viewtree", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML file mapping element names to kinds")
	rootName := fs.String("root", "div", "Name of the root element")
	scriptPath := fs.String("script", "", "JavaScript file registering editing behaviors")
	fire := fs.String("fire", "", "Bubbling event to fire from the selection")
	data := fs.String("data", "", "Data passed with -fire")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <markup>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s diff [-unified] <old> <new>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s '<p>fo{o<b>ba}r</b></p>'\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -script keys.js -fire enter '<p>[]</p>'\n", os.Args[0])
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	opts := []markup.Option{}
	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
		opts = append(opts, markup.WithConfig(cfg))
	}

	doc := view.NewDocument(view.WithLogger(logger))
	root, err := doc.CreateRoot(*rootName, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating root: %v\n", err)
		return 1
	}
	result, err := markup.ParseInto(root, fs.Arg(0), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing markup: %v\n", err)
		return 1
	}
	if err := doc.SelectionWriter().SetToSelection(result.Selection); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting selection: %v\n", err)
		return 1
	}

	if *scriptPath != "" {
		code, err := os.ReadFile(*scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
			return 1
		}
		binder := script.NewBinder(doc, script.WithLogger(logger))
		defer binder.Close()
		if _, err := binder.Execute(string(code)); err != nil {
			fmt.Fprintf(os.Stderr, "Error running script: %v\n", err)
			return 1
		}
	}

	if *fire != "" {
		info := doc.Bubbling().Fire(*fire, *data)
		fmt.Printf("Event %s: stopped=%t return=%v\n", *fire, info.Stopped(), info.Return)
	}

	printTree(root, doc.Selection().Ranges(), opts)
	return 0
}

func loadConfig(path string) (*markup.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return markup.LoadConfig(f)
}

func printTree(root *view.Element, ranges []view.Range, opts []markup.Option) {
	fmt.Println("View:")
	fmt.Printf("  %s\n", markup.Stringify(root.AsNode(), ranges, append(opts, markup.ShowType(), markup.ShowPriority())...))

	rendered, err := markup.RenderString(root, opts...)
	if err != nil {
		fmt.Printf("Render: error: %v\n", err)
	} else {
		fmt.Println("Render:")
		fmt.Printf("  %s\n", rendered)
	}

	fmt.Println("Fillers:")
	for _, node := range view.RangeIn(root.AsNode()).Items() {
		element := node.AsElement()
		if element == nil {
			continue
		}
		if offset, ok := element.FillerOffset(); ok {
			fmt.Printf("  %s %v at %d\n", element.Name(), node.Path(), offset)
		}
	}
	if offset, ok := root.FillerOffset(); ok {
		fmt.Printf("  %s (root) at %d\n", root.Name(), offset)
	}
}

func runDiff(args []string) int {
	fs := flag.NewFlagSet("viewtree diff", flag.ExitOnError)
	unified := fs.Bool("unified", false, "Also print a unified line diff")
	fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s diff [-unified] <old> <new>\n", os.Args[0])
		return 1
	}
	oldText, newText := fs.Arg(0), fs.Arg(1)

	changes := diff.Script([]rune(oldText), []rune(newText))
	for _, change := range changes {
		if change.Type == diff.ChangeInsert {
			fmt.Printf("insert at %d: %q\n", change.Index, string(change.Values))
		} else {
			fmt.Printf("delete at %d: %d\n", change.Index, change.HowMany)
		}
	}

	if *unified {
		ud := difflib.UnifiedDiff{
			A:        difflib.SplitLines(oldText),
			B:        difflib.SplitLines(newText),
			FromFile: "old",
			ToFile:   "new",
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(ud)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building unified diff: %v\n", err)
			return 1
		}
		fmt.Print(text)
	}
	return 0
}
