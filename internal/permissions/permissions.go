// Package permissions implements the capability sandbox described in
// spec §4.8: every native function is tagged with a capability kind,
// and the Policy is consulted at the call site (not at registration
// time) so a single registry can be reused under different sandboxes
// across embeddings.
//
// Grounded on the teacher's internal/units.UnitRegistry search-path
// allow-list (a name matched against Allow/Deny patterns before a unit
// may be imported), generalized from "may this unit be imported" to
// "may this capability kind be exercised".
package permissions

import (
	"path/filepath"

	"github.com/atlas-lang/atlas/internal/span"
)

// Mode is how a single capability is gated.
type Mode int

const (
	Deny Mode = iota
	AllowAll
	AllowList
)

// Capability is one gated grant within a Policy.
type Capability struct {
	Mode     Mode
	Patterns []string // glob patterns consulted only when Mode == AllowList
}

func denied() Capability  { return Capability{Mode: Deny} }
func allowed() Capability { return Capability{Mode: AllowAll} }

// Policy is the full capability set checked at every native call site
// (spec §4.8): filesystem, network, process, ffi, environment,
// reflection.
type Policy struct {
	Filesystem  Capability
	Network     Capability
	Process     Capability
	FFI         Capability
	Environment Capability
	Reflection  Capability
}

// DenyAll is the default, most restrictive policy: every gated
// capability kind is denied, matching "secure by default" (spec §4.8).
func DenyAll() Policy {
	return Policy{
		Filesystem: denied(), Network: denied(), Process: denied(),
		FFI: denied(), Environment: denied(), Reflection: denied(),
	}
}

// TrustAll grants every capability, intended for trusted embeddings
// and tests that exercise permission-gated natives directly.
func TrustAll() Policy {
	return Policy{
		Filesystem: allowed(), Network: allowed(), Process: allowed(),
		FFI: allowed(), Environment: allowed(), Reflection: allowed(),
	}
}

func (p *Policy) capability(kind string) *Capability {
	switch kind {
	case "fs":
		return &p.Filesystem
	case "net":
		return &p.Network
	case "process":
		return &p.Process
	case "ffi":
		return &p.FFI
	case "env":
		return &p.Environment
	case "reflection":
		return &p.Reflection
	default:
		return nil // "pure" and unrecognized kinds are never gated
	}
}

// Check validates that kind is permitted to act on resource (a file
// path, host name, etc.; ignored for modes other than AllowList).
// "pure" natives and any kind the Policy doesn't recognize are always
// allowed. Denial produces an AT0150 diagnostic (spec §4.8, §9).
func (p *Policy) Check(kind, name, resource string) *span.Diagnostic {
	cap := p.capability(kind)
	if cap == nil {
		return nil
	}
	switch cap.Mode {
	case AllowAll:
		return nil
	case Deny:
		return permissionDenied(name, kind, resource)
	case AllowList:
		for _, pattern := range cap.Patterns {
			if ok, _ := filepath.Match(pattern, resource); ok {
				return nil
			}
		}
		return permissionDenied(name, kind, resource)
	default:
		return permissionDenied(name, kind, resource)
	}
}

func permissionDenied(name, kind, resource string) *span.Diagnostic {
	return span.New(span.ErrPermissionDenied).
		Message("permission denied: '" + name + "' requires " + kind + " access to '" + resource + "'").
		Build()
}
