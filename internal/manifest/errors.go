package manifest

import "errors"

var (
	ErrManifestTooShort   = errors.New("manifest: shorter than envelope header")
	ErrSizeMismatch       = errors.New("manifest: envelope size does not match buffer length")
	ErrVersionUnsupported = errors.New("manifest: major version not supported")

	ErrDescriptorTooShort = errors.New("manifest: descriptor header truncated")
	ErrSizeOverflow       = errors.New("manifest: descriptor size exceeds remaining bytes")
	ErrUnknownType        = errors.New("manifest: unknown descriptor type")
	ErrSizeTooSmall       = errors.New("manifest: descriptor size below type minimum")
	ErrZeroSizeDescriptor = errors.New("manifest: zero-sized descriptor")

	ErrStringNotFound = errors.New("manifest: string descriptor not found")
	ErrModuleCount    = errors.New("manifest: manifest must have exactly one module descriptor")
)
