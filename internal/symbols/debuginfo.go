package symbols

import (
	"encoding/json"
	"io"

	"github.com/linmemparser/linmemparser/internal/errs"
)

// debugInfoFile is the on-disk shape of a debug-info JSON file. symbols
// is left as raw JSON per-entry because a symbol value is either a bare
// unsigned integer (legacy form) or an object with at least an "address"
// field (modern form); we sniff the shape entry-by-entry rather than
// picking one schema up front.
type debugInfoFile struct {
	Symbols   map[string]json.RawMessage `json:"symbols"`
	UserTypes map[string]userType        `json:"user_types"`
}

type userType struct {
	Size   uint64                  `json:"size"`
	Fields map[string]userTypeField `json:"fields"`
}

// userTypeField only needs Offset. "type" (a string in the legacy form,
// an object with kind/name/subtype in the modern one) and any other
// fields are accepted and ignored by never naming them here —
// encoding/json drops unknown/unused fields silently.
type userTypeField struct {
	Offset uint64 `json:"offset"`
}

// modernSymbol is the modern per-symbol object shape. Any fields besides
// "address" are ignored the same way.
type modernSymbol struct {
	Address uint64 `json:"address"`
}

// LoadDebugInfo parses a debug-info JSON document (either the legacy or
// modern symbols encoding) and merges it into c.
func LoadDebugInfo(r io.Reader, c *Catalogue) error {
	var doc debugInfoFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return errs.Wrap(errs.ParseError, err, "decoding debug-info JSON")
	}

	for name, raw := range doc.Symbols {
		addr, err := decodeSymbolValue(raw)
		if err != nil {
			return errs.Wrapf(errs.ParseError, err, "decoding symbol %q", name)
		}
		c.PutAddr(name, addr)
	}

	for structName, ut := range doc.UserTypes {
		for fieldName, f := range ut.Fields {
			c.PutOffset(structName, fieldName, uintptr(f.Offset))
		}
	}

	return nil
}

// decodeSymbolValue accepts either a bare JSON number (legacy) or a JSON
// object with at least {"address": <number>} (modern).
func decodeSymbolValue(raw json.RawMessage) (uint64, error) {
	var asUint uint64
	if err := json.Unmarshal(raw, &asUint); err == nil {
		return asUint, nil
	}
	var asObj modernSymbol
	if err := json.Unmarshal(raw, &asObj); err != nil {
		return 0, err
	}
	return asObj.Address, nil
}
