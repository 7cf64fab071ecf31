package main

import "sync"

// Words and symbol literals share the global namespace, so that :name and
// name resolve to the same definition. String literals get their own.
const (
	globalNamespace = ""
	stringNamespace = "str"
)

// Symbol is a handle to an interned (namespace, name) pair. Handles are
// compared and hashed directly; the zero Symbol is never handed out.
type Symbol uint

type symbolKey struct{ ns, name string }

// symbols is an append-only interning registry. Each VM owns one unless one
// is shared with WithSymbols.
type symbols struct {
	mu      sync.Mutex
	keys    []symbolKey
	symbols map[symbolKey]Symbol
}

func newSymbols() *symbols {
	return &symbols{symbols: make(map[symbolKey]Symbol)}
}

func (sym *symbols) key(id Symbol) (key symbolKey, ok bool) {
	sym.mu.Lock()
	defer sym.mu.Unlock()
	if i := int(id) - 1; i >= 0 && i < len(sym.keys) {
		return sym.keys[i], true
	}
	return key, false
}

func (sym *symbols) string(id Symbol) string {
	key, _ := sym.key(id)
	return key.name
}

func (sym *symbols) namespace(id Symbol) string {
	key, _ := sym.key(id)
	return key.ns
}

// symbol returns the handle of an already interned pair, or 0.
func (sym *symbols) symbol(ns, name string) Symbol {
	sym.mu.Lock()
	defer sym.mu.Unlock()
	return sym.symbols[symbolKey{ns, name}]
}

func (sym *symbols) intern(ns, name string) (id Symbol) {
	sym.mu.Lock()
	defer sym.mu.Unlock()
	key := symbolKey{ns, name}
	id, defined := sym.symbols[key]
	if !defined {
		if sym.symbols == nil {
			sym.symbols = make(map[symbolKey]Symbol)
		}
		id = Symbol(len(sym.keys) + 1)
		sym.keys = append(sym.keys, key)
		sym.symbols[key] = id
	}
	return id
}

func (sym *symbols) len() int {
	sym.mu.Lock()
	defer sym.mu.Unlock()
	return len(sym.keys)
}
