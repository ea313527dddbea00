package access

import (
	"testing"

	"github.com/google/uuid"
)

func identity(admin bool, profileID *uuid.UUID) *Identity {
	return &Identity{
		ID:        uuid.New(),
		Email:     "operator@example.com",
		Name:      "Operator",
		IsAdmin:   admin,
		ProfileID: profileID,
	}
}

func TestAuthorizeAdminBypass(t *testing.T) {
	admin := identity(true, nil)

	// Admins are allowed regardless of module, kind, or contradicting grants.
	cases := []struct {
		name   string
		module Module
		kind   Kind
		user   []Grant
		prof   []Grant
	}{
		{"no grants", ModuleExtension, KindDelete, nil, nil},
		{"denying user grant", ModuleQueue, KindCreate, []Grant{{Module: ModuleQueue}}, nil},
		{"denying profile grant", ModuleTrunk, KindUpdate, nil, []Grant{{Module: ModuleTrunk}}},
		{"unresolved module", "", KindRead, nil, nil},
		{"unresolved kind", ModuleSystem, "", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Authorize(admin, tc.module, tc.kind, tc.user, tc.prof)
			if !d.Allowed {
				t.Fatalf("admin denied: reason=%s", d.Reason)
			}
			if d.Reason != ReasonAdmin {
				t.Fatalf("reason = %s, want %s", d.Reason, ReasonAdmin)
			}
		})
	}
}

func TestAuthorizeNilIdentity(t *testing.T) {
	d := Authorize(nil, ModuleExtension, KindRead, nil, nil)
	if d.Allowed || d.Reason != ReasonUnauthenticated {
		t.Fatalf("got %+v, want deny unauthenticated", d)
	}
}

func TestAuthorizeUnresolved(t *testing.T) {
	id := identity(false, nil)

	d := Authorize(id, "", KindRead, nil, nil)
	if d.Allowed || d.Reason != ReasonModuleUnresolved {
		t.Fatalf("empty module: got %+v", d)
	}

	d = Authorize(id, ModuleExtension, "", nil, nil)
	if d.Allowed || d.Reason != ReasonKindUnresolved {
		t.Fatalf("empty kind: got %+v", d)
	}
}

func TestAuthorizeUserGrantWinsOverProfile(t *testing.T) {
	profileID := uuid.New()
	id := identity(false, &profileID)

	// User grant denies create; profile grant would allow it. The user-level
	// row must win even though it is more restrictive.
	userGrants := []Grant{{Module: ModuleQueue, Read: true}}
	profileGrants := []Grant{{Module: ModuleQueue, Create: true, Read: true}}

	d := Authorize(id, ModuleQueue, KindCreate, userGrants, profileGrants)
	if d.Allowed || d.Reason != ReasonUserGrantDenied {
		t.Fatalf("got %+v, want deny user-grant-denied", d)
	}

	// And the inverse: user grant allows what the profile denies.
	userGrants = []Grant{{Module: ModuleQueue, Create: true}}
	profileGrants = []Grant{{Module: ModuleQueue}}

	d = Authorize(id, ModuleQueue, KindCreate, userGrants, profileGrants)
	if !d.Allowed || d.Reason != ReasonUserGrant {
		t.Fatalf("got %+v, want allow user-grant", d)
	}
}

func TestAuthorizeProfileFallback(t *testing.T) {
	profileID := uuid.New()
	id := identity(false, &profileID)
	profileGrants := []Grant{{Module: ModuleExtension, Read: true}}

	cases := []struct {
		kind   Kind
		allow  bool
		reason Reason
	}{
		{KindRead, true, ReasonProfileGrant},
		{KindCreate, false, ReasonProfileGrantDenied},
		{KindUpdate, false, ReasonProfileGrantDenied},
		{KindDelete, false, ReasonProfileGrantDenied},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			d := Authorize(id, ModuleExtension, tc.kind, nil, profileGrants)
			if d.Allowed != tc.allow || d.Reason != tc.reason {
				t.Fatalf("got %+v, want allowed=%v reason=%s", d, tc.allow, tc.reason)
			}
		})
	}
}

func TestAuthorizeNoGrant(t *testing.T) {
	profileID := uuid.New()
	id := identity(false, &profileID)

	// Grants for other modules must not leak into the decision.
	userGrants := []Grant{{Module: ModuleTrunk, Create: true, Read: true, Update: true, Delete: true}}
	profileGrants := []Grant{{Module: ModuleQueue, Create: true, Read: true, Update: true, Delete: true}}

	d := Authorize(id, ModuleExtension, KindRead, userGrants, profileGrants)
	if d.Allowed || d.Reason != ReasonNoGrant {
		t.Fatalf("got %+v, want deny no-grant", d)
	}
}

func TestAuthorizeReadOnlyProfileDeniesDelete(t *testing.T) {
	// Non-admin with profile P1, no user grants, profile grants extension
	// read-only: DELETE on an extension is denied at the profile level.
	profileID := uuid.New()
	id := identity(false, &profileID)
	profileGrants := []Grant{{Module: ModuleExtension, Read: true}}

	d := Authorize(id, ModuleExtension, KindDelete, nil, profileGrants)
	if d.Allowed {
		t.Fatal("read-only profile allowed a delete")
	}
	if d.Reason != ReasonProfileGrantDenied {
		t.Fatalf("reason = %s, want %s", d.Reason, ReasonProfileGrantDenied)
	}
}

func TestAuthorizeUserGrantAllowsQueueCreate(t *testing.T) {
	id := identity(false, nil)
	userGrants := []Grant{{Module: ModuleQueue, Create: true, Read: true, Update: true, Delete: true}}

	d := Authorize(id, ModuleQueue, KindCreate, userGrants, nil)
	if !d.Allowed {
		t.Fatalf("got %+v, want allow", d)
	}
}

func TestGrantAllows(t *testing.T) {
	g := Grant{Module: ModuleQueue, Create: true, Update: true}

	cases := []struct {
		kind Kind
		want bool
	}{
		{KindCreate, true},
		{KindRead, false},
		{KindUpdate, true},
		{KindDelete, false},
		{"", false},
	}

	for _, tc := range cases {
		if got := g.Allows(tc.kind); got != tc.want {
			t.Errorf("Allows(%q) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}
