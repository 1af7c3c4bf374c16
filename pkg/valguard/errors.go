// Error kinds for the valguard core. The three kinds are disjoint:
// configuration errors come from structurally invalid constraint parameters,
// validation errors from data failing a type or domain check, and the two
// accessor-misuse errors signal programmer error rather than bad data.
package valguard

import "errors"

// Sentinel errors. Match with errors.Is; detailed failures wrap these
// via fmt.Errorf("%w: ...").
var (
	// ErrValidation reports a concrete value failing a Value variant's
	// type check or a Constraint's domain check.
	ErrValidation = errors.New("invalid value")

	// ErrConfiguration reports structurally invalid constraint parameters
	// (inverted bounds, non-finite bounds, blank literal sets). Raised only
	// at construction time, never by data.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrImplicitConversion is returned, with this fixed message, by the
	// generic Bool/Int/Float conversions on every Value variant. Retrieve
	// the payload explicitly through Raw or the variant accessor.
	ErrImplicitConversion = errors.New("implicit type conversion not permitted, use Raw instead")

	// ErrTypeMismatch is returned, with this fixed message, when a
	// variant-specific accessor is invoked on a Value of a different variant.
	ErrTypeMismatch = errors.New("incompatible accessor")
)
