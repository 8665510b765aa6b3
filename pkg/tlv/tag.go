package tlv

import (
	"encoding/binary"
	"fmt"
)

// Tag identifies a TLV element within its container (Matter Core: Appendix A.2).
type Tag struct {
	control   TagControl
	vendorID  uint16
	profile   uint16
	tagNumber uint32
}

// Anonymous returns the anonymous tag used for top-level and array elements.
func Anonymous() Tag {
	return Tag{}
}

// ContextTag returns a context-specific tag.
func ContextTag(n uint8) Tag {
	return Tag{control: TagControlContext, tagNumber: uint32(n)}
}

// CommonProfileTag returns a tag in the Matter common profile.
func CommonProfileTag(n uint32) Tag {
	if n > 0xFFFF {
		return Tag{control: TagControlCommonProfile4, tagNumber: n}
	}
	return Tag{control: TagControlCommonProfile2, tagNumber: n}
}

// ImplicitProfileTag returns a profile tag whose profile is implied by context.
func ImplicitProfileTag(n uint32) Tag {
	if n > 0xFFFF {
		return Tag{control: TagControlImplicitProfile4, tagNumber: n}
	}
	return Tag{control: TagControlImplicitProfile2, tagNumber: n}
}

// FullyQualifiedTag returns a tag carrying its vendor and profile.
func FullyQualifiedTag(vendorID, profile uint16, n uint32) Tag {
	tc := TagControlFullyQualified6
	if n > 0xFFFF {
		tc = TagControlFullyQualified8
	}
	return Tag{control: tc, vendorID: vendorID, profile: profile, tagNumber: n}
}

func (t Tag) Control() TagControl { return t.control }
func (t Tag) IsAnonymous() bool { return t.control == TagControlAnonymous }
func (t Tag) IsContext() bool { return t.control == TagControlContext }
func (t Tag) VendorID() uint16 { return t.vendorID }
func (t Tag) ProfileNumber() uint16 { return t.profile }
func (t Tag) TagNumber() uint32 { return t.tagNumber }

func (t Tag) String() string {
	switch t.control {
	case TagControlAnonymous:
		return "anonymous"
	case TagControlContext:
		return fmt.Sprintf("%d", t.tagNumber)
	case TagControlFullyQualified6, TagControlFullyQualified8:
		return fmt.Sprintf("0x%04x:0x%04x:%d", t.vendorID, t.profile, t.tagNumber)
	}
	return fmt.Sprintf("profile:%d", t.tagNumber)
}

func appendTag(b []byte, t Tag) []byte {
	switch t.control {
	case TagControlContext:
		b = append(b, byte(t.tagNumber))
	case TagControlCommonProfile2, TagControlImplicitProfile2:
		b = binary.LittleEndian.AppendUint16(b, uint16(t.tagNumber))
	case TagControlCommonProfile4, TagControlImplicitProfile4:
		b = binary.LittleEndian.AppendUint32(b, t.tagNumber)
	case TagControlFullyQualified6:
		b = binary.LittleEndian.AppendUint16(b, t.vendorID)
		b = binary.LittleEndian.AppendUint16(b, t.profile)
		b = binary.LittleEndian.AppendUint16(b, uint16(t.tagNumber))
	case TagControlFullyQualified8:
		b = binary.LittleEndian.AppendUint16(b, t.vendorID)
		b = binary.LittleEndian.AppendUint16(b, t.profile)
		b = binary.LittleEndian.AppendUint32(b, t.tagNumber)
	}
	return b
}

// parseTag decodes the tag bytes that follow a control octet. b must hold at
// least tc.Size() bytes.
func parseTag(b []byte, tc TagControl) Tag {
	t := Tag{control: tc}
	switch tc {
	case TagControlContext:
		t.tagNumber = uint32(b[0])
	case TagControlCommonProfile2, TagControlImplicitProfile2:
		t.tagNumber = uint32(binary.LittleEndian.Uint16(b))
	case TagControlCommonProfile4, TagControlImplicitProfile4:
		t.tagNumber = binary.LittleEndian.Uint32(b)
	case TagControlFullyQualified6:
		t.vendorID = binary.LittleEndian.Uint16(b)
		t.profile = binary.LittleEndian.Uint16(b[2:])
		t.tagNumber = uint32(binary.LittleEndian.Uint16(b[4:]))
	case TagControlFullyQualified8:
		t.vendorID = binary.LittleEndian.Uint16(b)
		t.profile = binary.LittleEndian.Uint16(b[2:])
		t.tagNumber = binary.LittleEndian.Uint32(b[4:])
	}
	return t
}
