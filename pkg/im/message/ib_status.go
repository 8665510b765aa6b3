package message

import "github.com/backkem/matter-im/pkg/tlv"

// StatusIB carries an Interaction Model status and an optional cluster
// specific status.
// Matter Core: Section 10.6.17
// Container type: Structure
type StatusIB struct {
	Status        Status  `yaml:"status"`                  // Tag 0
	ClusterStatus *uint16 `yaml:"clusterStatus,omitempty"` // Tag 1
}

func (s *StatusIB) fields() fieldTable {
	return structTable(
		uintField(0, "status", &s.Status),
		optUintField(1, "clusterStatus", &s.ClusterStatus),
	)
}

// Err returns nil for success and a *StatusError otherwise.
func (s StatusIB) Err() error {
	if s.Status.IsSuccess() && s.ClusterStatus == nil {
		return nil
	}
	return &StatusError{Status: s.Status, ClusterStatus: clonePtr(s.ClusterStatus)}
}

func (s *StatusIB) Encode(w *tlv.Writer) error {
	return s.EncodeWithTag(w, tlv.Anonymous())
}

func (s *StatusIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return s.fields().encode(w, tag)
}

func (s *StatusIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, s)
}

func (s *StatusIB) DecodeFrom(r *tlv.Reader) error {
	*s = StatusIB{}
	return s.fields().decode(r)
}
