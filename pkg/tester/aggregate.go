package tester

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/typespub/pkg/errors"
)

// AggregateError lists every package that failed a batch, sorted by name.
type AggregateError struct {
	Failures []Outcome
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	for i, o := range e.Failures {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", o.Package, o.Failure)
	}
	return b.String()
}

// Names returns the failing package names in order.
func (e *AggregateError) Names() []string {
	names := make([]string, len(e.Failures))
	for i, o := range e.Failures {
		names[i] = o.Package
	}
	return names
}

// Aggregate collects the failed outcomes into a TEST_FAILURE error whose
// cause is an [*AggregateError]. It returns nil when every package passed.
// Every failure is reported and nothing is retried.
func Aggregate(outcomes []Outcome) error {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	slices.SortStableFunc(failed, func(a, b Outcome) int { return cmp.Compare(a.Package, b.Package) })

	noun := "packages"
	if len(failed) == 1 {
		noun = "package"
	}
	return errors.Wrap(errors.ErrCodeTest, &AggregateError{Failures: failed}, "%d %s failed", len(failed), noun)
}
