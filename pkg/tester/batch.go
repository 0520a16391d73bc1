package tester

import (
	"context"
	"regexp"

	"github.com/matzehuels/typespub/pkg/packages"
	"github.com/matzehuels/typespub/pkg/parallel"
)

// Outcome is the result of testing one package. Failure is nil when the
// package passed.
type Outcome struct {
	Package string
	Failure *Failure
}

// OK reports whether the package passed every step.
func (o Outcome) OK() bool { return o.Failure == nil }

// RunAll tests pkgs with at most n packages in flight. Every package is
// installed before any package is verified; packages whose install failed are
// not verified. Outcomes are returned in the order of pkgs.
//
// The error is non-nil only for conditions that abort the run. Package
// failures are reported through the outcomes; pass them to [Aggregate].
func (t *Tester) RunAll(ctx context.Context, pkgs []*packages.TypingsData, n int) ([]Outcome, error) {
	t.logger.Info("installing dependencies", "packages", len(pkgs), "concurrency", n)
	installs, err := parallel.Map(ctx, n, pkgs, t.Install)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(pkgs))
	var installed []*packages.TypingsData
	var index []int
	for i, r := range installs {
		if r.Err != nil {
			return nil, r.Err
		}
		outcomes[i] = Outcome{Package: pkgs[i].Name, Failure: r.Value}
		if r.Value == nil {
			installed = append(installed, pkgs[i])
			index = append(index, i)
		}
	}

	t.logger.Info("verifying packages", "packages", len(installed), "concurrency", n)
	verified, err := parallel.Map(ctx, n, installed, t.Verify)
	if err != nil {
		return nil, err
	}
	for j, r := range verified {
		if r.Err != nil {
			return nil, r.Err
		}
		outcomes[index[j]].Failure = r.Value
	}
	return outcomes, nil
}

// Select returns the packages whose name matches filter, in their original
// order. A nil filter selects every package.
func Select(pkgs []*packages.TypingsData, filter *regexp.Regexp) []*packages.TypingsData {
	if filter == nil {
		return pkgs
	}
	var out []*packages.TypingsData
	for _, p := range pkgs {
		if filter.MatchString(p.Name) {
			out = append(out, p)
		}
	}
	return out
}
