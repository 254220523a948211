// Example program demonstrating the srcdeps library API.
//
// Run from a project directory holding srcdeps.yaml:
//
//	go run github.com/kisixing/srcdeps-core/example org.example:core:1.0-SRC-tag-v1.0
//
// With checkout (clones into the configured sources directory):
//
//	SRCDEPS_CHECKOUT=1 go run github.com/kisixing/srcdeps-core/example org.example:core:1.0-SRC-tag-v1.0
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kisixing/srcdeps-core/pkg/sdk"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <groupId:artifactId:version>...", os.Args[0])
	}

	cfg, err := sdk.Load(sdk.LoadOptions{Path: "."})
	if err != nil {
		log.Fatalf("loading configuration failed: %v", err)
	}

	for _, coordinate := range os.Args[1:] {
		r, err := sdk.NewRequest(cfg, coordinate, sdk.RequestOptions{})
		if err != nil {
			log.Fatalf("%s: %v", coordinate, err)
		}
		printRequest(coordinate, r)

		if os.Getenv("SRCDEPS_CHECKOUT") != "" {
			res, err := sdk.Checkout(context.Background(), r)
			if err != nil {
				log.Fatalf("checkout of %s failed: %v", coordinate, err)
			}
			fmt.Printf("  %-12s %s\n", "Checked out", res.Revision)
		}
	}
}

func printRequest(coordinate string, r *sdk.Request) {
	fmt.Printf("=== %s ===\n", coordinate)
	fmt.Printf("  %-12s %s\n", "Repository", r.RepositoryID)
	fmt.Printf("  %-12s %s\n", "Identity", r.ID())
	fmt.Printf("  %-12s %s %s\n", "Ref", r.SrcVersion.Kind(), r.SrcVersion.Ref())
	fmt.Printf("  %-12s %s\n", "Directory", r.ProjectRootDirectory)
	fmt.Printf("  %-12s %v\n", "URLs", r.ScmURLs)
}
