// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"

	"github.com/fibyos/bundlekit/pkg/bundleinfo"
	"github.com/fibyos/bundlekit/pkg/elfarch"
	"github.com/fibyos/bundlekit/pkg/platform"
)

// validMessage is the ValidationResult message for a bundle no rule rejected.
const validMessage = "bundle is valid"

type (
	// ValidationResult is the outcome of one Validate call. It is built fresh
	// on every call.
	ValidationResult struct {
		// IsValid is false once any rule has failed.
		IsValid bool
		// Message summarizes the outcome.
		Message string
		// Warnings lists non-fatal findings; never nil.
		Warnings []string
		// Errors lists the failures reported by rules.
		Errors []*ValidationError
	}

	// RuleContext is what a Rule may inspect.
	RuleContext struct {
		Root string
		Info *bundleinfo.Info
	}

	// Rule inspects a bundle and records findings on the result.
	Rule func(ctx RuleContext, r *ValidationResult)
)

// AddWarning records a non-fatal finding.
func (r *ValidationResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Fail records a failure and marks the result invalid.
func (r *ValidationResult) Fail(err *ValidationError) {
	r.Errors = append(r.Errors, err)
	r.IsValid = false
	if len(r.Errors) == 1 {
		r.Message = err.Error()
	} else {
		r.Message = fmt.Sprintf("bundle has %d validation errors", len(r.Errors))
	}
}

// Err returns the recorded failures joined into one error, or nil.
func (r *ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Validate checks the bundle of this Process. It requires a resolvable root
// and a descriptor already loaded with LoadInfo; otherwise it returns a
// *ValidationError of kind ErrConfigLoad wrapping the cause. Each rule runs in
// order against the loaded descriptor. Without rules the bundle is valid.
func (p *Process) Validate(rules ...Rule) (*ValidationResult, error) {
	root, err := p.Root()
	if err != nil {
		return nil, &ValidationError{Kind: ErrConfigLoad, Msg: "bundle root could not be determined", Err: err}
	}

	info, err := p.LoadedInfo()
	if err != nil {
		return nil, &ValidationError{Kind: ErrConfigLoad, Msg: "bundle descriptor is not loaded", Err: err}
	}

	result := &ValidationResult{
		IsValid:  true,
		Message:  validMessage,
		Warnings: []string{},
	}

	ctx := RuleContext{Root: root, Info: info}
	for _, rule := range rules {
		rule(ctx, result)
	}

	return result, nil
}

// RequiredFieldsRule fails for each identity field (name, identifier,
// entry_point) that is empty.
func RequiredFieldsRule() Rule {
	return func(ctx RuleContext, r *ValidationResult) {
		fields := []struct {
			name  string
			value string
		}{
			{"name", ctx.Info.Name},
			{"identifier", ctx.Info.Identifier},
			{"entry_point", ctx.Info.EntryPoint},
		}
		for _, f := range fields {
			if f.value == "" {
				r.Fail(&ValidationError{Kind: ErrMissingField, Field: f.name, Msg: "must not be empty"})
			}
		}
	}
}

// EntryPointArchitectureRule checks the declared entry point against host.
// An entry point that cannot be read fails with ErrInvalidField; one that is
// not ELF or targets another architecture produces a warning.
func EntryPointArchitectureRule(host elfarch.Architecture) Rule {
	return func(ctx RuleContext, r *ValidationResult) {
		if ctx.Info.EntryPoint == "" {
			return
		}

		path := ctx.Info.EntryPointPath(ctx.Root)
		arch, err := elfarch.Detect(path)
		var ioErr *elfarch.IOError
		switch {
		case errors.As(err, &ioErr):
			r.Fail(&ValidationError{Kind: ErrInvalidField, Field: "entry_point", Msg: "entry point is not readable", Err: err})
		case err != nil:
			r.AddWarning("entry point %s is not an ELF executable: %v", ctx.Info.EntryPoint, err)
		case arch != host:
			r.AddWarning("entry point %s is built for %s, host is %s", ctx.Info.EntryPoint, arch, host)
		}
	}
}

// PortableNameRule warns when the bundle directory name cannot be created on
// every supported OS.
func PortableNameRule() Rule {
	return func(ctx RuleContext, r *ValidationResult) {
		if problem := platform.PortableNameProblem(Name(ctx.Root)); problem != "" {
			r.AddWarning("bundle name %q is not portable: %s", Name(ctx.Root), problem)
		}
	}
}
