package manifest

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Result is everything a successfully parsed manifest declares: the
// module identity plus the logical ports and functions the connection
// layer will bind against.
type Result struct {
	Module    Module
	CPorts    []CPortDecl
	Functions []FunctionDecl
}

// Parse decodes and validates a complete manifest blob.
//
// The buffer is scanned once to index every descriptor, then the module
// descriptor (there must be exactly one) is assembled together with the
// strings it references, then declared cports and functions are
// collected. Descriptors still indexed after that — unreferenced
// strings, class descriptors, types a newer manifest revision might add
// payload to — are discarded with a log line, never an error.
//
// Any failure aborts the whole parse; no partial result is ever
// returned, and nothing from the scan index survives the call.
func Parse(data []byte, logger zerolog.Logger) (Result, error) {
	if len(data) <= EnvelopeLen {
		return Result{}, fmt.Errorf("%w: %d bytes", ErrManifestTooShort, len(data))
	}

	env := decodeEnvelope(data)
	if int(env.Size) != len(data) {
		return Result{}, fmt.Errorf("%w: declared %d, have %d",
			ErrSizeMismatch, env.Size, len(data))
	}
	if env.VersionMajor > VersionMajor {
		return Result{}, fmt.Errorf("%w: %d.%d > %d.%d", ErrVersionUnsupported,
			env.VersionMajor, env.VersionMinor, VersionMajor, VersionMinor)
	}

	ix := &index{}
	rest := data[EnvelopeLen:]
	for len(rest) > 0 {
		consumed, err := identifyDescriptor(ix, rest)
		if err != nil {
			return Result{}, err
		}
		rest = rest[consumed:]
	}

	if n := ix.countType(TypeModule); n != 1 {
		return Result{}, fmt.Errorf("%w: found %d", ErrModuleCount, n)
	}

	module, err := assembleModule(ix, ix.firstOfType(TypeModule))
	if err != nil {
		return Result{}, err
	}

	result := Result{Module: module}
	for r := ix.firstOfType(TypeCPort); r != nil; r = ix.firstOfType(TypeCPort) {
		result.CPorts = append(result.CPorts, decodeCPort(r.payload()))
		ix.remove(r)
	}
	for r := ix.firstOfType(TypeFunction); r != nil; r = ix.firstOfType(TypeFunction) {
		result.Functions = append(result.Functions, decodeFunction(r.payload()))
		ix.remove(r)
	}

	// Newer manifests may carry descriptors we don't consume yet.
	for _, r := range ix.records {
		logger.Debug().
			Str("type", r.typ.String()).
			Int("size", len(r.data)).
			Msg("discarding unconsumed manifest descriptor")
	}

	return result, nil
}
