package message

import (
	"fmt"

	"github.com/backkem/matter-im/pkg/tlv"
)

// AttributeDataIB carries the value of one attribute, or one list element
// when the path has a list index.
// Matter Core: Section 10.6.4
// Container type: Structure
type AttributeDataIB struct {
	DataVersion *DataVersion    `yaml:"dataVersion,omitempty"` // Tag 0
	Path        AttributePathIB `yaml:"path"`                  // Tag 1
	Data        EncodeValue     `yaml:"data"`                  // Tag 2
}

func (a *AttributeDataIB) fields() fieldTable {
	return structTable(
		optUintField(0, "dataVersion", &a.DataVersion),
		blockField(1, "path", &a.Path),
		valueField(2, "data", &a.Data, true),
	)
}

func (a *AttributeDataIB) Encode(w *tlv.Writer) error {
	return a.EncodeWithTag(w, tlv.Anonymous())
}

func (a *AttributeDataIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return a.fields().encode(w, tag)
}

func (a *AttributeDataIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, a)
}

func (a *AttributeDataIB) DecodeFrom(r *tlv.Reader) error {
	*a = AttributeDataIB{}
	return a.fields().decode(r)
}

// AttributeStatusIB reports the outcome of an operation on one attribute.
// Matter Core: Section 10.6.16
// Container type: Structure
type AttributeStatusIB struct {
	Path   AttributePathIB `yaml:"path"`   // Tag 0
	Status StatusIB        `yaml:"status"` // Tag 1
}

func (a *AttributeStatusIB) fields() fieldTable {
	return structTable(
		blockField(0, "path", &a.Path),
		blockField(1, "status", &a.Status),
	)
}

func (a *AttributeStatusIB) Encode(w *tlv.Writer) error {
	return a.EncodeWithTag(w, tlv.Anonymous())
}

func (a *AttributeStatusIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return a.fields().encode(w, tag)
}

func (a *AttributeStatusIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, a)
}

func (a *AttributeStatusIB) DecodeFrom(r *tlv.Reader) error {
	*a = AttributeStatusIB{}
	return a.fields().decode(r)
}

// AttributeReportKind discriminates the variants of AttributeReportIB.
type AttributeReportKind uint8

const (
	AttributeReportData AttributeReportKind = iota + 1
	AttributeReportStatus
)

// AttributeReportIB is either attribute data or an attribute status.
// Construct it with NewAttributeReport or NewAttributeStatusReport and
// consume it with Switch.
// Matter Core: Section 10.6.5
// Container type: Structure
type AttributeReportIB struct {
	kind   AttributeReportKind
	data   AttributeDataIB   // Tag 1
	status AttributeStatusIB // Tag 0
}

// NewAttributeReport returns the data variant stamped with dataVersion.
func NewAttributeReport(dataVersion DataVersion, path AttributePathIB, data EncodeValue) AttributeReportIB {
	return AttributeReportIB{
		kind: AttributeReportData,
		data: AttributeDataIB{DataVersion: &dataVersion, Path: path, Data: data},
	}
}

// NewAttributeStatusReport returns the status variant.
func NewAttributeStatusReport(path AttributePathIB, status StatusIB) AttributeReportIB {
	return AttributeReportIB{
		kind:   AttributeReportStatus,
		status: AttributeStatusIB{Path: path, Status: status},
	}
}

// Kind returns the variant held by r.
func (r AttributeReportIB) Kind() AttributeReportKind {
	return r.kind
}

// UnwrapData returns the data variant. Calling it on a status report is a
// programming error and panics.
func (r AttributeReportIB) UnwrapData() AttributeDataIB {
	if r.kind != AttributeReportData {
		panic("im: attribute report holds no data")
	}
	return r.data
}

// Switch calls the handler matching the variant held by r.
func (r AttributeReportIB) Switch(onData func(AttributeDataIB) error, onStatus func(AttributeStatusIB) error) error {
	switch r.kind {
	case AttributeReportData:
		return onData(r.data)
	case AttributeReportStatus:
		return onStatus(r.status)
	}
	return fmt.Errorf("%w: empty attribute report", ErrNoValue)
}

// Path returns the path of either variant.
func (r AttributeReportIB) Path() AttributePathIB {
	if r.kind == AttributeReportStatus {
		return r.status.Path
	}
	return r.data.Path
}

func (r AttributeReportIB) MarshalYAML() (any, error) {
	switch r.kind {
	case AttributeReportData:
		return map[string]any{"attributeData": r.data}, nil
	case AttributeReportStatus:
		return map[string]any{"attributeStatus": r.status}, nil
	}
	return nil, nil
}

func (r *AttributeReportIB) Encode(w *tlv.Writer) error {
	return r.EncodeWithTag(w, tlv.Anonymous())
}

func (r *AttributeReportIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	switch r.kind {
	case AttributeReportData:
		return structTable(blockField(1, "attributeData", &r.data)).encode(w, tag)
	case AttributeReportStatus:
		return structTable(blockField(0, "attributeStatus", &r.status)).encode(w, tag)
	}
	return fmt.Errorf("%w: attributeStatus or attributeData", ErrMissingField)
}

func (r *AttributeReportIB) Decode(rd *tlv.Reader) error {
	return decodeNext(rd, r)
}

func (r *AttributeReportIB) DecodeFrom(rd *tlv.Reader) error {
	*r = AttributeReportIB{}
	var status *AttributeStatusIB
	var data *AttributeDataIB
	err := structTable(
		optBlockField(0, "attributeStatus", &status),
		optBlockField(1, "attributeData", &data),
	).decode(rd)
	if err != nil {
		return err
	}
	switch {
	case status != nil && data != nil:
		return fmt.Errorf("%w: attribute report holds both status and data", ErrInvalidData)
	case status != nil:
		r.kind, r.status = AttributeReportStatus, *status
	case data != nil:
		r.kind, r.data = AttributeReportData, *data
	default:
		return fmt.Errorf("%w: attributeStatus or attributeData", ErrMissingField)
	}
	return nil
}
