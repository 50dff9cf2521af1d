// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"
)

const (
	// KindApplication is an application bundle (".appd").
	KindApplication Kind = "application"
	// KindService is a background service bundle (".serviced").
	KindService Kind = "service"
	// KindToolset is a toolset bundle (".toolsetd").
	KindToolset Kind = "toolset"
	// KindFramework is a framework bundle (".frameworkd").
	KindFramework Kind = "framework"

	// SuffixApplication is the directory suffix of application bundles.
	SuffixApplication = ".appd"
	// SuffixService is the directory suffix of service bundles.
	SuffixService = ".serviced"
	// SuffixToolset is the directory suffix of toolset bundles.
	SuffixToolset = ".toolsetd"
	// SuffixFramework is the directory suffix of framework bundles.
	SuffixFramework = ".frameworkd"
)

// ErrInvalidKind is returned when a Kind value is not recognized.
var ErrInvalidKind = errors.New("invalid bundle kind")

type (
	// Kind is the category of a bundle, determined by its directory suffix.
	Kind string

	// InvalidKindError is returned when a Kind value is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}
)

// Kinds returns every bundle kind in classification order.
func Kinds() []Kind {
	return []Kind{KindApplication, KindService, KindToolset, KindFramework}
}

// ParseKind converts a kind name ("application", "service", ...) to a Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if ok, errs := k.IsValid(); !ok {
		return "", errs[0]
	}
	return k, nil
}

// KindFromSuffix maps a directory suffix, including the leading dot, to a Kind.
func KindFromSuffix(suffix string) (Kind, bool) {
	switch suffix {
	case SuffixApplication:
		return KindApplication, true
	case SuffixService:
		return KindService, true
	case SuffixToolset:
		return KindToolset, true
	case SuffixFramework:
		return KindFramework, true
	default:
		return "", false
	}
}

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Suffix returns the directory suffix for the kind, or "" if k is invalid.
func (k Kind) Suffix() string {
	switch k {
	case KindApplication:
		return SuffixApplication
	case KindService:
		return SuffixService
	case KindToolset:
		return SuffixToolset
	case KindFramework:
		return SuffixFramework
	default:
		return ""
	}
}

// IsValid returns whether the Kind is one of the defined bundle kinds,
// and a list of validation errors if it is not.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case KindApplication, KindService, KindToolset, KindFramework:
		return true, nil
	default:
		return false, []error{&InvalidKindError{Value: k}}
	}
}

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid bundle kind %q (valid: application, service, toolset, framework)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }
