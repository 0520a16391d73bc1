package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Tester hooks
	tr := NoopTesterHooks{}
	tr.OnStepStart(ctx, "jquery", "compile")
	tr.OnStepComplete(ctx, "jquery", "compile", time.Second, nil)

	// Resolver hooks
	r := NoopResolverHooks{}
	r.OnClassified(ctx, "jquery", Changed)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "registry.npmjs.org", "/@types%2fjquery")
	h.OnResponse(ctx, "GET", "registry.npmjs.org", "/@types%2fjquery", 200, time.Second)
	h.OnError(ctx, "GET", "registry.npmjs.org", "/@types%2fjquery", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Tester().(NoopTesterHooks); !ok {
		t.Error("Tester() should return NoopTesterHooks by default")
	}
	if _, ok := Resolver().(NoopResolverHooks); !ok {
		t.Error("Resolver() should return NoopResolverHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customTester := &testTesterHooks{}
	SetTesterHooks(customTester)
	if Tester() != customTester {
		t.Error("SetTesterHooks should set custom hooks")
	}

	customResolver := &testResolverHooks{}
	SetResolverHooks(customResolver)
	if Resolver() != customResolver {
		t.Error("SetResolverHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Tester().(NoopTesterHooks); !ok {
		t.Error("Reset() should restore NoopTesterHooks")
	}
	if _, ok := Resolver().(NoopResolverHooks); !ok {
		t.Error("Reset() should restore NoopResolverHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testTesterHooks{}
	SetTesterHooks(custom)
	SetTesterHooks(nil)

	if Tester() != custom {
		t.Error("SetTesterHooks(nil) should be ignored")
	}
}

type testTesterHooks struct{ NoopTesterHooks }
type testResolverHooks struct{ NoopResolverHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
