package tester

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/typespub/pkg/errors"
	"github.com/matzehuels/typespub/pkg/observability"
	"github.com/matzehuels/typespub/pkg/packages"
	"github.com/matzehuels/typespub/pkg/process"
)

// Step names a stage of the per-package check.
type Step string

const (
	StepInstall     Step = "install"
	StepTsconfig    Step = "tsconfig"
	StepPackageJSON Step = "package.json"
	StepCompile     Step = "compile"
	StepLint        Step = "lint"
)

// Failure is the reason a package did not pass. It carries
// VALIDATION_FAILED for rule violations and TOOL_FAILED for external tools
// that exited non-zero.
type Failure struct {
	Step    Step
	Code    errors.Code
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Step, f.Message)
}

func validationFailure(step Step, format string, args ...any) *Failure {
	return &Failure{Step: step, Code: errors.ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

func toolFailure(step Step, msg string) *Failure {
	return &Failure{Step: step, Code: errors.ErrCodeTool, Message: msg}
}

// Tools are the external commands the tester drives. Each is an executable
// followed by fixed arguments.
type Tools struct {
	Installer []string
	Compiler  []string
	Linter    []string
}

// DefaultTools returns the npm, tsc and tslint invocations.
func DefaultTools() Tools {
	return Tools{
		Installer: []string{"npm", "install", "--ignore-scripts", "--no-shrinkwrap", "--no-package-lock", "--no-save"},
		Compiler:  []string{"tsc"},
		Linter:    []string{"tslint"},
	}
}

// WithDefaults returns a copy of t with empty commands replaced by defaults.
func (t Tools) WithDefaults() Tools {
	d := DefaultTools()
	if len(t.Installer) == 0 {
		t.Installer = d.Installer
	}
	if len(t.Compiler) == 0 {
		t.Compiler = d.Compiler
	}
	if len(t.Linter) == 0 {
		t.Linter = d.Linter
	}
	return t
}

// Options configures a Tester.
type Options struct {
	// TypesRoot is the directory holding one subdirectory per package.
	TypesRoot string
	// FS reads package files. Defaults to os.DirFS(TypesRoot).
	FS fs.FS
	// Tools overrides the external commands.
	Tools Tools
	// Runner executes the tools. Defaults to process.ExecRunner.
	Runner process.Runner
	// Logger receives step progress. Defaults to discarding output.
	Logger *log.Logger
}

// Tester runs the per-package checks.
type Tester struct {
	root   string
	fsys   fs.FS
	tools  Tools
	runner process.Runner
	logger *log.Logger
}

// New returns a Tester for the packages below opts.TypesRoot.
func New(opts Options) *Tester {
	t := &Tester{
		root:   opts.TypesRoot,
		fsys:   opts.FS,
		tools:  opts.Tools.WithDefaults(),
		runner: opts.Runner,
		logger: opts.Logger,
	}
	if t.fsys == nil {
		t.fsys = os.DirFS(opts.TypesRoot)
	}
	if t.runner == nil {
		t.runner = process.ExecRunner{}
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	return t
}

// Check runs every step for pkg. The returned error is reserved for
// conditions that abort the whole run, such as a cancelled context or a tool
// that cannot be started; a package that fails a step yields a Failure.
func (t *Tester) Check(ctx context.Context, pkg *packages.TypingsData) (*Failure, error) {
	if f, err := t.Install(ctx, pkg); f != nil || err != nil {
		return f, err
	}
	return t.Verify(ctx, pkg)
}

// Install installs the dependencies of pkg. Packages without dependencies
// succeed without running the installer.
func (t *Tester) Install(ctx context.Context, pkg *packages.TypingsData) (*Failure, error) {
	if !pkg.NeedsInstall() {
		return nil, nil
	}
	return t.step(ctx, pkg, StepInstall, func() (*Failure, error) {
		res, err := t.run(ctx, pkg, t.tools.Installer)
		if err != nil {
			return nil, err
		}
		if !res.OK() {
			return toolFailure(StepInstall, filterInstallWarnings(res.Output())), nil
		}
		return nil, nil
	})
}

// Verify runs the steps after install: tsconfig, package.json, compile and
// lint.
func (t *Tester) Verify(ctx context.Context, pkg *packages.TypingsData) (*Failure, error) {
	steps := []struct {
		step Step
		run  func() (*Failure, error)
	}{
		{StepTsconfig, func() (*Failure, error) { return checkTsconfig(t.fsys, pkg.Dir()), nil }},
		{StepPackageJSON, func() (*Failure, error) {
			if !pkg.HasPackageJSON {
				return nil, nil
			}
			return checkPackageJSON(t.fsys, pkg.Dir()), nil
		}},
		{StepCompile, func() (*Failure, error) { return t.compile(ctx, pkg) }},
		{StepLint, func() (*Failure, error) { return t.lint(ctx, pkg) }},
	}

	for _, s := range steps {
		if f, err := t.step(ctx, pkg, s.step, s.run); f != nil || err != nil {
			return f, err
		}
	}
	return nil, nil
}

func (t *Tester) step(ctx context.Context, pkg *packages.TypingsData, step Step, run func() (*Failure, error)) (*Failure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Tester()
	hooks.OnStepStart(ctx, pkg.Name, string(step))
	start := time.Now()

	f, err := run()

	var stepErr error
	switch {
	case err != nil:
		stepErr = err
	case f != nil:
		stepErr = f
	}
	hooks.OnStepComplete(ctx, pkg.Name, string(step), time.Since(start), stepErr)

	switch {
	case err != nil:
		t.logger.Error("step aborted", "package", pkg.Name, "step", step, "err", err)
	case f != nil:
		t.logger.Warn("step failed", "package", pkg.Name, "step", step)
	default:
		t.logger.Debug("step ok", "package", pkg.Name, "step", step, "took", time.Since(start).Round(time.Millisecond))
	}
	return f, err
}

func (t *Tester) compile(ctx context.Context, pkg *packages.TypingsData) (*Failure, error) {
	res, err := t.run(ctx, pkg, t.tools.Compiler)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return toolFailure(StepCompile, res.Output()), nil
	}
	return nil, nil
}

func (t *Tester) lint(ctx context.Context, pkg *packages.TypingsData) (*Failure, error) {
	if _, err := fs.Stat(t.fsys, pkgPath(pkg.Dir(), "tslint.json")); err != nil {
		return nil, nil
	}
	args := append([]string{"--format", "stylish"}, pkg.Files...)
	res, err := t.run(ctx, pkg, t.tools.Linter, args...)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return toolFailure(StepLint, res.Output()), nil
	}
	return nil, nil
}

func (t *Tester) run(ctx context.Context, pkg *packages.TypingsData, tool []string, extra ...string) (process.Result, error) {
	cmd := process.Command{
		Name: tool[0],
		Args: append(append([]string{}, tool[1:]...), extra...),
		Dir:  filepath.Join(t.root, filepath.FromSlash(pkg.Dir())),
	}
	t.logger.Debug("running", "package", pkg.Name, "cmd", cmd.String())
	res, err := t.runner.Run(ctx, cmd)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, errors.Wrap(errors.ErrCodeInternal, err, "run %s", tool[0])
	}
	return res, nil
}
