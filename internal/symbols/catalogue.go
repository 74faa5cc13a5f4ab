// Package symbols holds the two name-keyed mappings the rest of the
// pipeline resolves everything else through: symbol name -> kernel
// virtual address, and (struct, field) -> byte offset.
package symbols

import "fmt"

// fieldKey identifies a struct field by its enclosing struct's name and
// the field's own name.
type fieldKey struct {
	structName string
	fieldName  string
}

// Catalogue is filled by the loaders and only read afterwards. Loaders
// only ever add entries, never remove them; a later Put* for a key that
// is already present replaces the earlier value without notice.
type Catalogue struct {
	addrs   map[string]uint64
	offsets map[fieldKey]uintptr
}

// New returns an empty Catalogue. An empty catalogue is valid; every
// lookup just misses, which is what a stripped or missing debug-info
// input looks like.
func New() *Catalogue {
	return &Catalogue{
		addrs:   make(map[string]uint64),
		offsets: make(map[fieldKey]uintptr),
	}
}

// PutAddr records the kernel virtual address of a symbol. A zero
// address is never recorded (both loaders treat 0 as "absent").
func (c *Catalogue) PutAddr(name string, addr uint64) {
	if addr == 0 {
		return
	}
	c.addrs[name] = addr
}

// Addr returns the kernel virtual address of name, if known.
func (c *Catalogue) Addr(name string) (uint64, bool) {
	v, ok := c.addrs[name]
	return v, ok
}

// PutOffset records the byte offset of structName.fieldName.
func (c *Catalogue) PutOffset(structName, fieldName string, offset uintptr) {
	c.offsets[fieldKey{structName, fieldName}] = offset
}

// Offset returns the byte offset of structName.fieldName, if known.
func (c *Catalogue) Offset(structName, fieldName string) (uintptr, bool) {
	v, ok := c.offsets[fieldKey{structName, fieldName}]
	return v, ok
}

// Len reports how many symbol addresses and how many field offsets are
// known, for diagnostics.
func (c *Catalogue) Len() (nAddrs, nOffsets int) {
	return len(c.addrs), len(c.offsets)
}

func (c *Catalogue) String() string {
	na, no := c.Len()
	return fmt.Sprintf("catalogue{%d symbols, %d field offsets}", na, no)
}
