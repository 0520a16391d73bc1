package tester

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/matzehuels/typespub/pkg/errors"
)

func TestAggregateNoFailures(t *testing.T) {
	outcomes := []Outcome{{Package: "a"}, {Package: "b"}}
	if err := Aggregate(outcomes); err != nil {
		t.Errorf("Aggregate = %v, want nil", err)
	}
	if err := Aggregate(nil); err != nil {
		t.Errorf("Aggregate(nil) = %v, want nil", err)
	}
}

func TestAggregateSortsFailures(t *testing.T) {
	outcomes := []Outcome{
		{Package: "zepto", Failure: toolFailure(StepCompile, "TS1005")},
		{Package: "jquery"},
		{Package: "Backbone", Failure: validationFailure(StepTsconfig, "bad")},
		{Package: "angular", Failure: toolFailure(StepLint, "no-var")},
	}

	err := Aggregate(outcomes)
	if !errors.Is(err, errors.ErrCodeTest) {
		t.Fatalf("Aggregate error = %v, want TEST_FAILURE", err)
	}

	var agg *AggregateError
	if !stderrors.As(err, &agg) {
		t.Fatalf("Aggregate error %T does not wrap *AggregateError", err)
	}
	// Byte-wise order puts upper case first.
	want := []string{"Backbone", "angular", "zepto"}
	if got := agg.Names(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	msg := agg.Error()
	for _, line := range []string{
		"Backbone: tsconfig: bad",
		"angular: lint: no-var",
		"zepto: compile: TS1005",
	} {
		if !strings.Contains(msg, line) {
			t.Errorf("Error() = %q, missing %q", msg, line)
		}
	}
	if strings.Contains(msg, "jquery") {
		t.Errorf("Error() mentions passing package: %q", msg)
	}
	if got := errors.UserMessage(err); !strings.HasPrefix(got, "3 packages failed") {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestAggregateSingular(t *testing.T) {
	err := Aggregate([]Outcome{{Package: "a", Failure: toolFailure(StepCompile, "x")}})
	if got := errors.UserMessage(err); !strings.HasPrefix(got, "1 package failed") {
		t.Errorf("UserMessage = %q", got)
	}
}
