// Package tester checks that type packages are ready to publish.
//
// # Steps
//
// Each package goes through a fixed sequence of steps and stops at the first
// one that fails:
//
//  1. install: install the package's dependencies (skipped without any)
//  2. tsconfig: enforce the house compiler options
//  3. package.json: reject fields the publisher would silently drop
//  4. compile: run the compiler in the package directory
//  5. lint: run the linter when the package has a tslint.json
//
// A package therefore has at most one [Failure]. Steps run against the
// package directory in place; anything a tool writes stays there.
//
// # Batches
//
// [Tester.RunAll] tests many packages with a concurrency ceiling. All
// installs finish before any verification starts, because several packages
// may share an installed dependency tree. A failing package never stops the
// others; [Aggregate] turns the outcomes into a single error that lists
// every failure.
package tester
