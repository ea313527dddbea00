package access

// Module identifies a protected resource family. The set is closed: a route
// that maps to none of these is not a protected resource.
type Module string

const (
	ModuleExtension    Module = "extension"
	ModuleTrunk        Module = "trunk"
	ModuleQueue        Module = "queue"
	ModulePickupGroup  Module = "pickup-group"
	ModuleUser         Module = "user"
	ModuleProfile      Module = "profile"
	ModuleReport       Module = "report"
	ModuleSystem       Module = "system"
	ModuleRuleInbound  Module = "rule-inbound"
	ModuleRuleOutbound Module = "rule-outbound"
	ModuleRuleGeneral  Module = "rule-general"
	ModuleAuth         Module = "auth"
	ModuleLog          Module = "log"
)

// Kind is the access class derived from the HTTP verb.
type Kind string

const (
	KindCreate Kind = "create"
	KindRead   Kind = "read"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

var methodKinds = map[string]Kind{
	"GET":    KindRead,
	"POST":   KindCreate,
	"PUT":    KindUpdate,
	"PATCH":  KindUpdate,
	"DELETE": KindDelete,
}

// KindForMethod maps an HTTP verb to its access kind. Verbs outside the
// CRUD set (HEAD, OPTIONS, ...) have no kind and return false.
func KindForMethod(method string) (Kind, bool) {
	k, ok := methodKinds[method]
	return k, ok
}

// DefaultRoutes is the startup route-prefix table mapping API paths to
// modules. Sub-resource prefixes (/regra/entrada, /regra/saida) are listed
// alongside their parent; the resolver orders them most-specific first.
func DefaultRoutes() map[string]Module {
	return map[string]Module{
		"/ramal":            ModuleExtension,
		"/tronco":           ModuleTrunk,
		"/fila":             ModuleQueue,
		"/grupo-de-captura": ModulePickupGroup,
		"/usuario":          ModuleUser,
		"/perfil":           ModuleProfile,
		"/relatorio":        ModuleReport,
		"/sistema":          ModuleSystem,
		"/regra/entrada":    ModuleRuleInbound,
		"/regra/saida":      ModuleRuleOutbound,
		"/regra":            ModuleRuleGeneral,
		"/auth":             ModuleAuth,
		"/log":              ModuleLog,
	}
}
