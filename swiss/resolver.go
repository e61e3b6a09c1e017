package swiss

import (
	"errors"
	"sync"

	"github.com/probeops/swisskit/internal/cppname"
	"github.com/probeops/swisskit/pkg/types"
)

// Resolver turns canonical, version-free type names into types known to the
// oracle. It inserts the inline version namespace and retries lookups under
// the main program's global scope when the oracle's default search misses,
// because some oracles do not search every global block from their innermost
// scope.
//
// A Resolver is bound to one inspection session. The cached scope handle is
// initialized at most once; create a fresh Resolver when inspecting a
// different image.
type Resolver struct {
	oracle types.Oracle
	cfg    Config

	scopeOnce sync.Once
	scope     types.Scope
	scopeErr  error
}

// NewResolver builds a resolver over the oracle with the given ABI
// spellings. Zero-valued Config fields fall back to the Abseil defaults.
func NewResolver(oracle types.Oracle, cfg Config) *Resolver {
	return &Resolver{oracle: oracle, cfg: cfg.withDefaults()}
}

// Config returns the session's ABI spellings.
func (r *Resolver) Config() Config { return r.cfg }

// Oracle returns the underlying layout oracle.
func (r *Resolver) Oracle() types.Oracle { return r.oracle }

// Qualify fully re-qualifies a version-free type name: the outer name and
// every template argument carrying the root namespace token get the inline
// version namespace inserted.
func (r *Resolver) Qualify(name string) (string, error) {
	return cppname.InsertVersion(name, r.cfg.RootNamespace, r.cfg.InlineNamespace)
}

// QualifyOuter inserts the inline version namespace after the first root
// token only, leaving nested template arguments as given.
func (r *Resolver) QualifyOuter(name string) (string, error) {
	return cppname.InsertVersionOuter(name, r.cfg.RootNamespace, r.cfg.InlineNamespace)
}

// LookupType resolves an already-qualified name: first through the oracle's
// default scope, then through the cached main-global scope. When both
// attempts fail the returned error carries both causes, so a wrong
// configured version namespace is diagnosable from the message.
func (r *Resolver) LookupType(name string) (types.Type, error) {
	t, defaultErr := r.oracle.LookupType(name)
	if defaultErr == nil {
		return t, nil
	}

	scope, scopeErr := r.mainScope()
	if scopeErr != nil {
		return nil, types.NewError(types.ErrKindNameResolution,
			"failed to resolve type "+name, errors.Join(defaultErr, scopeErr))
	}

	t, scopedErr := r.oracle.LookupTypeIn(name, scope)
	if scopedErr != nil {
		return nil, types.NewError(types.ErrKindNameResolution,
			"failed to resolve type "+name, errors.Join(defaultErr, scopedErr))
	}
	return t, nil
}

// ResolveType qualifies a version-free name and looks it up. Names lacking
// the root namespace token fail immediately with ErrMalformedName; that is a
// caller bug, not an ABI mismatch, and no lookup is attempted.
func (r *Resolver) ResolveType(name string) (types.Type, error) {
	qualified, err := r.Qualify(name)
	if err != nil {
		return nil, err
	}
	return r.LookupType(qualified)
}

func (r *Resolver) mainScope() (types.Scope, error) {
	r.scopeOnce.Do(func() {
		r.scope, r.scopeErr = r.oracle.GlobalScope(r.cfg.EntrySymbol)
	})
	return r.scope, r.scopeErr
}
