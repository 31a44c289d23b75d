package params

import (
	"encoding/hex"
	"fmt"

	"github.com/aledsdavies/cliarg/pkgs/argspec"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// signature is the canonical, order-sensitive view of one argument.
// Help text and defaults are excluded so editing them keeps stored values.
type signature struct {
	Dest       string   `cbor:"1,keyasint"`
	Flags      []string `cbor:"2,keyasint"`
	Type       string   `cbor:"3,keyasint"`
	Nargs      string   `cbor:"4,keyasint"`
	Positional bool     `cbor:"5,keyasint"`
}

// Fingerprint hashes the argument signatures of a binding. Persisted values
// written under a different fingerprint came from an older declaration.
func Fingerprint(specs []argspec.ArgumentSpec) (string, error) {
	sigs := make([]signature, len(specs))
	for i, s := range specs {
		sigs[i] = signature{
			Dest:       s.Dest,
			Flags:      s.Flags,
			Type:       string(s.Type),
			Nargs:      s.Nargs.String(),
			Positional: s.Positional(),
		}
	}

	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return "", fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	data, err := encMode.Marshal(sigs)
	if err != nil {
		return "", fmt.Errorf("CBOR encoding failed: %w", err)
	}

	digest := blake2b.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}
