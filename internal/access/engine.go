package access

// Reason explains a decision. Deny reasons are terminal for the request:
// authorization failures are never retried.
type Reason string

const (
	ReasonAdmin              Reason = "admin"
	ReasonUserGrant          Reason = "user-grant"
	ReasonProfileGrant       Reason = "profile-grant"
	ReasonUnauthenticated    Reason = "unauthenticated"
	ReasonModuleUnresolved   Reason = "module-unresolved"
	ReasonKindUnresolved     Reason = "access-kind-unresolved"
	ReasonUserGrantDenied    Reason = "user-grant-denied"
	ReasonProfileGrantDenied Reason = "profile-grant-denied"
	ReasonNoGrant            Reason = "no-grant"
)

// Decision is the outcome of one authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow(reason Reason) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason Reason) Decision  { return Decision{Allowed: false, Reason: reason} }

// Authorize decides whether the identity may perform kind on module.
// Precedence, first match wins:
//
//  1. nil identity -> deny unauthenticated
//  2. admin -> allow, grants and module resolution are not consulted
//  3. unresolved module or kind -> deny (configuration gap, never guessed)
//  4. user-level grant for the module -> its boolean, even when a profile
//     grant for the same module disagrees
//  5. profile-level grant -> its boolean
//  6. no grant at either level -> deny
//
// Public routes are filtered upstream and never reach this function.
func Authorize(identity *Identity, module Module, kind Kind, userGrants, profileGrants []Grant) Decision {
	if identity == nil {
		return deny(ReasonUnauthenticated)
	}
	if identity.IsAdmin {
		return allow(ReasonAdmin)
	}
	if module == "" {
		return deny(ReasonModuleUnresolved)
	}
	if kind == "" {
		return deny(ReasonKindUnresolved)
	}

	if g, ok := findGrant(userGrants, module); ok {
		if g.Allows(kind) {
			return allow(ReasonUserGrant)
		}
		return deny(ReasonUserGrantDenied)
	}

	if g, ok := findGrant(profileGrants, module); ok {
		if g.Allows(kind) {
			return allow(ReasonProfileGrant)
		}
		return deny(ReasonProfileGrantDenied)
	}

	return deny(ReasonNoGrant)
}
