package tester

import (
	"encoding/json"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// requiredOptions must be set to exactly these values.
var requiredOptions = []struct {
	key   string
	value any
}{
	{"module", "commonjs"},
	{"noEmit", true},
	{"forceConsistentCasingInFileNames", true},
}

// presentOptions must be set, to any value.
var presentOptions = []string{"noImplicitAny", "strictNullChecks"}

// allowedPackageJSONFields are the only package.json fields the publisher
// carries over into the published manifest.
var allowedPackageJSONFields = map[string]bool{
	"dependencies":     true,
	"peerDependencies": true,
	"description":      true,
}

// benignInstallWarnings are installer lines that appear for every package
// because the install directory is not a real project.
var benignInstallWarnings = []string{
	"No description",
	"No repository field",
	"No license field",
}

func pkgPath(dir, name string) string {
	return path.Join(dir, name)
}

func checkTsconfig(fsys fs.FS, dir string) *Failure {
	p := pkgPath(dir, "tsconfig.json")
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return validationFailure(StepTsconfig, "cannot read %s: %v", p, err)
	}

	var config struct {
		CompilerOptions map[string]json.RawMessage `json:"compilerOptions"`
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return validationFailure(StepTsconfig, "%s is not valid JSON: %v", p, err)
	}
	if config.CompilerOptions == nil {
		return validationFailure(StepTsconfig, "%s has no compilerOptions", p)
	}
	opts := config.CompilerOptions

	for _, req := range requiredOptions {
		var got any
		raw, ok := opts[req.key]
		if ok {
			_ = json.Unmarshal(raw, &got)
		}
		if !ok || got != req.value {
			return validationFailure(StepTsconfig, "Expected compilerOptions[%s] === %s", quote(req.key), quote(req.value))
		}
	}

	for _, key := range presentOptions {
		if _, ok := opts[key]; !ok {
			return validationFailure(StepTsconfig, "Expected compilerOptions[%s] to be present", quote(key))
		}
	}

	if raw, ok := opts["types"]; ok {
		var types []json.RawMessage
		if err := json.Unmarshal(raw, &types); err != nil || len(types) > 0 {
			return validationFailure(StepTsconfig,
				"Use `/// <reference types=\"...\" />` directives in source files and ensure "+
					"that the \"types\" field in your tsconfig is an empty array.")
		}
	}
	return nil
}

func checkPackageJSON(fsys fs.FS, dir string) *Failure {
	p := pkgPath(dir, "package.json")
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return validationFailure(StepPackageJSON, "cannot read %s: %v", p, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return validationFailure(StepPackageJSON, "%s is not valid JSON: %v", p, err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !allowedPackageJSONFields[k] {
			return validationFailure(StepPackageJSON, "Ignored field in %s: %s", p, k)
		}
	}
	return nil
}

// filterInstallWarnings drops benign warning lines from installer output.
func filterInstallWarnings(output string) string {
	lines := strings.Split(output, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !slices.ContainsFunc(benignInstallWarnings, func(w string) bool { return strings.Contains(line, w) }) {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func quote(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
