package anim

import (
	"fmt"
	"strings"
)

// extensionLen is how many trailing bytes are dropped when a name looks
// like it carries a file extension. Validation policy, not a contract:
// the one firm rule is that a name which is solely an extension is
// rejected.
const extensionLen = 4

// StripExtension validates an output base name. A name containing a dot
// is assumed to end in a 3-character extension, which is dropped; a name
// too short for that is nothing but an extension and is rejected with
// ErrInvalidName. Names without a dot pass through unchanged.
func StripExtension(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if !strings.Contains(name, ".") {
		return name, nil
	}
	if len(name) > extensionLen {
		return name[:len(name)-extensionLen], nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
}
