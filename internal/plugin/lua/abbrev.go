package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/abbrev/internal/abbrev"
)

// ModuleName is the global the abbreviation API is installed under.
const ModuleName = "abbrev"

// Registry exposes an abbrev.Store to Lua. Calls made by a script mutate a
// staged copy and are recorded in an overlay; Commit replays the overlay
// on whatever the store holds at that time.
type Registry struct {
	store   *abbrev.Store
	staged  *abbrev.Table
	overlay *abbrev.Overlay
}

// NewRegistry stages a copy of store's current table.
func NewRegistry(store *abbrev.Store) *Registry {
	return &Registry{
		store:   store,
		staged:  store.Table().Clone(),
		overlay: abbrev.NewOverlay(),
	}
}

// Install registers the abbrev module in s.
func (r *Registry) Install(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"add":    r.luaAdd,
		"remove": r.luaRemove,
		"get":    r.luaGet,
		"list":   r.luaList,
		"count":  r.luaCount,
	})
}

// Staged returns the table as the script has left it so far.
func (r *Registry) Staged() *abbrev.Table {
	return r.staged
}

// Overlay returns the edits the script has made so far.
func (r *Registry) Overlay() *abbrev.Overlay {
	return r.overlay
}

// Commit applies the script's edits to the store's current table.
func (r *Registry) Commit() {
	r.store.Update(r.overlay.Apply)
}

// Discard drops staged changes and restages from the store.
func (r *Registry) Discard() {
	r.staged = r.store.Table().Clone()
	r.overlay = abbrev.NewOverlay()
}

func (r *Registry) luaAdd(L *lua.LState) int {
	abbr := L.CheckString(1)
	expansion := L.CheckString(2)
	if abbr == "" {
		L.ArgError(1, "abbreviation must not be empty")
		return 0
	}
	r.staged.Insert(abbr, expansion)
	r.overlay.Insert(abbr, expansion)
	return 0
}

func (r *Registry) luaRemove(L *lua.LState) int {
	abbr := L.CheckString(1)
	r.staged.Remove(abbr)
	r.overlay.Remove(abbr)
	return 0
}

func (r *Registry) luaGet(L *lua.LState) int {
	if exp, ok := r.staged.Lookup(L.CheckString(1)); ok {
		L.Push(lua.LString(exp))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

func (r *Registry) luaList(L *lua.LState) int {
	tbl := L.NewTable()
	for _, e := range r.staged.Entries() {
		tbl.RawSetString(e.Abbr, lua.LString(e.Expansion))
	}
	L.Push(tbl)
	return 1
}

func (r *Registry) luaCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.staged.Len()))
	return 1
}

// RunScript executes the file at path against store. Registrations are
// published only if the script succeeds. The returned overlay holds them
// so they can be replayed after the table is reloaded.
func RunScript(path string, store *abbrev.Store, opts ...StateOption) (*abbrev.Overlay, error) {
	s := NewState(opts...)
	defer s.Close()

	reg := NewRegistry(store)
	reg.Install(s)
	if err := s.DoFile(path); err != nil {
		return nil, fmt.Errorf("run %s: %w", path, err)
	}
	reg.Commit()
	return reg.Overlay(), nil
}
