package macho

import (
	"bytes"
	"encoding/binary"

	"github.com/quickmacho/machore/types"
)

const (
	entitlementLibraryValidationKey = "com.apple.security.cs.disable-library-validation"
	entitlementDylibEnvVarKey       = "com.apple.security.cs.allow-dyld-environment-variables"
	entitlementTrueMarker           = "<true/>"
)

// parseCodeSignature reads the code-signing super-blob an LC_CODE_SIGNATURE
// command points at. The command's own dataoff/datasize fields follow the
// slice's own byte order like any other load command, but the super-blob and
// everything inside it is always big-endian regardless (spec §4.9). Finding
// the super-blob at all is enough to set IsSigned; HasHardenedRuntime comes
// from the CodeDirectory's flags, and the two entitlement booleans come from
// a permissive substring scan of the raw entitlements XML rather than an XML
// parse, matching how loosely the original tool reads them.
func parseCodeSignature(s, body cursor, order binary.ByteOrder, acc *archBuilder) error {
	dataOff, err := body.readU32(8, order)
	if err != nil {
		return newError(MalformedCodeSignature, body.absolute(0), "code-signature command truncated before dataoff")
	}
	dataSize, err := body.readU32(12, order)
	if err != nil {
		return newError(MalformedCodeSignature, body.absolute(0), "code-signature command truncated before datasize")
	}

	sb, err := s.subrange(int(dataOff), int(dataSize))
	if err != nil {
		return newError(MalformedCodeSignature, s.absolute(int(dataOff)), "super-blob [%d,%d) lies outside the slice", dataOff, uint64(dataOff)+uint64(dataSize))
	}

	// The super-blob magic is documented as always CSMAGIC_EMBEDDED_SIGNATURE
	// (big-endian); the byte-swapped form isn't a form real tooling emits, so
	// it isn't accepted here alongside it.
	magic, err := sb.readU32(0, binary.BigEndian)
	if err != nil || types.CsMagic(magic) != types.CSMAGIC_EMBEDDED_SIGNATURE {
		return newError(MalformedCodeSignature, sb.absolute(0), "super-blob magic %#x unrecognized", magic)
	}
	count, err := sb.readU32(8, binary.BigEndian)
	if err != nil {
		return newError(MalformedCodeSignature, sb.absolute(8), "super-blob truncated before count")
	}

	rec := &SecurityRecord{IsSigned: true}

	for i := uint32(0); i < count; i++ {
		idxOff := int(types.SbHeaderSize) + int(i)*int(types.BlobIndexSize)
		slotType, err := sb.readU32(idxOff, binary.BigEndian)
		if err != nil {
			break
		}
		blobOff, err := sb.readU32(idxOff+4, binary.BigEndian)
		if err != nil {
			break
		}

		switch types.CsSlotType(slotType) {
		case types.CSSLOT_CODEDIRECTORY:
			cd, err := sb.subrange(int(blobOff), int(types.CdHeaderSize))
			if err != nil {
				acc.warn(sb.absolute(int(blobOff)), "code directory blob out of range")
				continue
			}
			flags, err := cd.readU32(12, binary.BigEndian)
			if err != nil {
				continue
			}
			rec.HasHardenedRuntime = types.CsCodeDirectoryFlag(flags)&types.CS_RUNTIME != 0

		case types.CSSLOT_ENTITLEMENTS:
			hdr, err := sb.subrange(int(blobOff), int(types.GenericBlobHeaderSize))
			if err != nil {
				acc.warn(sb.absolute(int(blobOff)), "entitlements blob header out of range")
				continue
			}
			entMagic, err := hdr.readU32(0, binary.BigEndian)
			if err != nil || types.CsMagic(entMagic) != types.CSMAGIC_EMBEDDED_ENTITLEMENTS {
				acc.warn(sb.absolute(int(blobOff)), "entitlements blob magic %#x unrecognized", entMagic)
				continue
			}
			length, err := hdr.readU32(4, binary.BigEndian)
			if err != nil || length < types.GenericBlobHeaderSize {
				acc.warn(sb.absolute(int(blobOff)), "entitlements blob has implausible length")
				continue
			}
			payload, err := sb.subrange(int(blobOff)+int(types.GenericBlobHeaderSize), int(length)-int(types.GenericBlobHeaderSize))
			if err != nil {
				acc.warn(sb.absolute(int(blobOff)), "entitlements payload out of range")
				continue
			}
			xml := append([]byte(nil), payload.buf...)
			rec.EntitlementsXML = xml
			rec.IsLibraryValidationDisabled = keyIsTrue(xml, entitlementLibraryValidationKey)
			rec.IsDylibEnvVarAllowed = keyIsTrue(xml, entitlementDylibEnvVarKey)
		}
	}

	acc.report.Security = rec
	return nil
}

// keyIsTrue reports whether key appears in xml followed, anywhere later in
// the document, by a <true/> marker.
func keyIsTrue(xml []byte, key string) bool {
	i := bytes.Index(xml, []byte(key))
	if i < 0 {
		return false
	}
	return bytes.Contains(xml[i:], []byte(entitlementTrueMarker))
}
