package manifest

import "encoding/binary"

// Module is the identity block of a parsed manifest. Immutable once
// returned; string fields are empty when the manifest declared no
// string id for them (the Has* flags disambiguate).
type Module struct {
	Vendor       uint16
	Product      uint16
	Version      uint16
	SerialNumber uint64

	VendorString     string
	HasVendorString  bool
	ProductString    string
	HasProductString bool
}

// assembleModule materializes the module record from its descriptor,
// resolving both string references. Strings can fail, so they go first;
// on any failure nothing is returned and nothing stays consumed that
// matters — the whole index is torn down by the failing parse anyway.
// On success the module descriptor itself is consumed.
func assembleModule(ix *index, moduleDesc *record) (Module, error) {
	payload := moduleDesc.payload()

	vendorID := payload[6]
	productID := payload[7]

	vendorStr, hasVendor, err := resolveString(ix, vendorID)
	if err != nil {
		return Module{}, err
	}
	productStr, hasProduct, err := resolveString(ix, productID)
	if err != nil {
		return Module{}, err
	}

	m := Module{
		Vendor:           binary.LittleEndian.Uint16(payload[0:2]),
		Product:          binary.LittleEndian.Uint16(payload[2:4]),
		Version:          binary.LittleEndian.Uint16(payload[4:6]),
		SerialNumber:     binary.LittleEndian.Uint64(payload[8:16]),
		VendorString:     vendorStr,
		HasVendorString:  hasVendor,
		ProductString:    productStr,
		HasProductString: hasProduct,
	}

	ix.remove(moduleDesc)
	return m, nil
}
