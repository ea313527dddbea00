package access

import "testing"

func TestResolveSubResourceBeforeParent(t *testing.T) {
	r := NewResolver(DefaultRoutes())

	cases := []struct {
		path string
		want Module
	}{
		{"/regra/entrada/5", ModuleRuleInbound},
		{"/regra/entrada", ModuleRuleInbound},
		{"/regra/saida/2", ModuleRuleOutbound},
		{"/regra", ModuleRuleGeneral},
		{"/regra/7", ModuleRuleGeneral},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, ok := r.Resolve("", tc.path)
			if !ok {
				t.Fatalf("Resolve(%q) found nothing", tc.path)
			}
			if got != tc.want {
				t.Fatalf("Resolve(%q) = %s, want %s", tc.path, got, tc.want)
			}
		})
	}
}

func TestResolvePrefixTable(t *testing.T) {
	r := NewResolver(DefaultRoutes())

	cases := []struct {
		path  string
		want  Module
		found bool
	}{
		{"/ramal", ModuleExtension, true},
		{"/ramal/1001", ModuleExtension, true},
		{"/ramal/", ModuleExtension, true},
		{"/ramal?page=2", ModuleExtension, true},
		{"/fila/create", ModuleQueue, true},
		{"/tronco/3", ModuleTrunk, true},
		{"/grupo-de-captura", ModulePickupGroup, true},
		{"/usuario/55", ModuleUser, true},
		{"/perfil", ModuleProfile, true},
		{"/relatorio/diario", ModuleReport, true},
		{"/sistema", ModuleSystem, true},
		{"/log", ModuleLog, true},
		{"/auth/login", ModuleAuth, true},
		// A prefix must match on a segment boundary, not mid-word.
		{"/ramalhete", "", false},
		{"/filas", "", false},
		{"/desconhecido", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, ok := r.Resolve("", tc.path)
			if ok != tc.found {
				t.Fatalf("Resolve(%q) found=%v, want %v", tc.path, ok, tc.found)
			}
			if got != tc.want {
				t.Fatalf("Resolve(%q) = %s, want %s", tc.path, got, tc.want)
			}
		})
	}
}

func TestResolveAnnotationOverridesPath(t *testing.T) {
	r := NewResolver(DefaultRoutes())

	// An explicit annotation is authoritative even when the path would map
	// somewhere else entirely.
	got, ok := r.Resolve(ModuleSystem, "/ramal/1001")
	if !ok || got != ModuleSystem {
		t.Fatalf("Resolve(annotated) = %s/%v, want %s", got, ok, ModuleSystem)
	}

	got, ok = r.Resolve(ModuleReport, "/no/such/prefix")
	if !ok || got != ModuleReport {
		t.Fatalf("Resolve(annotated, unmapped path) = %s/%v, want %s", got, ok, ModuleReport)
	}
}

func TestKindForMethod(t *testing.T) {
	cases := []struct {
		method string
		want   Kind
		found  bool
	}{
		{"GET", KindRead, true},
		{"POST", KindCreate, true},
		{"PUT", KindUpdate, true},
		{"PATCH", KindUpdate, true},
		{"DELETE", KindDelete, true},
		{"HEAD", "", false},
		{"OPTIONS", "", false},
		{"TRACE", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			got, ok := KindForMethod(tc.method)
			if ok != tc.found || got != tc.want {
				t.Fatalf("KindForMethod(%q) = %s/%v, want %s/%v", tc.method, got, ok, tc.want, tc.found)
			}
		})
	}
}
