/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command indexmap prints the registered key schema of the showcase models:
// one line per index attribute, showing the template each record attribute is
// derived from. Useful when checking that a table's GSI layout matches what
// the code will write.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/suparena/showcase"
	"github.com/suparena/showcase/models"
	"github.com/suparena/showcase/registry"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := showcase.GetVersionInfo()
		fmt.Printf("Showcase indexmap version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	printIndexMap(models.TypeEvent, mustIndexMap[models.Event]())
	printIndexMap(models.TypeProject, mustIndexMap[models.Project]())
	printIndexMap(models.TypePrizeAward, mustIndexMap[models.PrizeAward]())
	printIndexMap(models.TypeUser, mustIndexMap[models.User]())
}

func mustIndexMap[T any]() map[string]string {
	m, ok := registry.GetIndexMap[T]()
	if !ok {
		fmt.Fprintf(os.Stderr, "no index map registered for %T\n", *new(T))
		os.Exit(1)
	}
	return m
}

func printIndexMap(entityType string, indexMap map[string]string) {
	fmt.Println(entityType)

	attrs := make([]string, 0, len(indexMap))
	for attr := range indexMap {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		fmt.Printf("  %-8s %s\n", attr, indexMap[attr])
	}
	fmt.Println()
}
