// Command sliceygen generates Spanned/Sliced type aliases for types marked
// with //slicey:spanned and //slicey:sliced directive comments. It is meant
// to be run from a go:generate directive in the package being scanned:
//
//	//go:generate go run github.com/swolfenden9/slicey/cmd/sliceygen
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/mod/module"
	"golang.org/x/sync/errgroup"

	"github.com/swolfenden9/slicey/internal/generate"
	"github.com/swolfenden9/slicey/internal/version"
	"github.com/swolfenden9/slicey/internal/watch"
)

const defaultSliceyImport = "github.com/swolfenden9/slicey"

var singleFlag = flag.String("single", "", "path to a single Go source file to scan")

func main() {
	out := flag.String("o", generate.DefaultOutFile, "name of the generated file, written into each package directory")
	sliceyImport := flag.String("slicey-import", defaultSliceyImport, "import path of the slicey package referenced by the generated aliases")
	watchFlag := flag.Bool("watch", false, "stay running and regenerate when Go source files change")
	versionFlag := flag.Bool("version", false, "print the version and exit")

	flag.Parse()

	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if err := module.CheckImportPath(*sliceyImport); err != nil {
		log.Fatalf("invalid -slicey-import: %v", err)
	}

	if err := checkFlags(*singleFlag, *watchFlag); err != nil {
		log.Fatalf("%v", err)
	}

	if *singleFlag != "" {
		dest, err := generate.RunFile(*singleFlag, *out, *sliceyImport)
		if err != nil {
			log.Fatalf("generating aliases for %s: %v", *singleFlag, err)
		}
		report(dest, *singleFlag)
		return
	}

	dirs := flag.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	gen := func(dir string) error {
		dest, err := generate.Run(dir, *out, *sliceyImport)
		if err != nil {
			return err
		}
		report(dest, dir)
		return nil
	}

	g := new(errgroup.Group)
	for _, dir := range dirs {
		dir := dir
		g.Go(func() error {
			if err := gen(dir); err != nil {
				return fmt.Errorf("generating aliases in %s: %w", dir, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("%v", err)
	}

	if *watchFlag {
		err := watch.Dirs(context.Background(), dirs, *out, func(dir string) {
			if err := gen(dir); err != nil {
				log.Printf("regenerating %s: %v", dir, err)
			}
		})
		if err != nil {
			log.Fatalf("watching for changes: %v", err)
		}
	}
}

// checkFlags rejects flag combinations that would otherwise be silently
// ignored.
func checkFlags(single string, watch bool) error {
	if single != "" && watch {
		return fmt.Errorf("-single cannot be combined with -watch; pass the file's directory instead")
	}
	return nil
}

func report(dest, target string) {
	if dest == "" {
		log.Printf("no slicey directives in %s", target)
		return
	}
	log.Printf("wrote %s", dest)
}
