package message

import (
	"fmt"

	"github.com/backkem/matter-im/pkg/tlv"
)

// ListOperationKind enumerates the edits a write can make to a list.
type ListOperationKind uint8

const (
	ListAddItem ListOperationKind = iota + 1
	ListEditItem
	ListDeleteItem
	ListDeleteList
)

// ListOperation is one edit to a list attribute. Index is meaningful for
// ListEditItem and ListDeleteItem only.
type ListOperation struct {
	Kind  ListOperationKind
	Index ListIndex
}

func AddItem() ListOperation { return ListOperation{Kind: ListAddItem} }
func EditItem(i ListIndex) ListOperation { return ListOperation{Kind: ListEditItem, Index: i} }
func DeleteItem(i ListIndex) ListOperation { return ListOperation{Kind: ListDeleteItem, Index: i} }
func DeleteList() ListOperation { return ListOperation{Kind: ListDeleteList} }

func (op ListOperation) String() string {
	switch op.Kind {
	case ListAddItem:
		return "AddItem"
	case ListEditItem:
		return fmt.Sprintf("EditItem(%d)", op.Index)
	case ListDeleteItem:
		return fmt.Sprintf("DeleteItem(%d)", op.Index)
	case ListDeleteList:
		return "DeleteList"
	}
	return "Unknown"
}

// ListWriteFunc applies one list edit. item is the element to add or the
// replacement value; it is the zero Element for DeleteItem and DeleteList.
type ListWriteFunc func(op ListOperation, item tlv.Element) error

// AttrListWrite decides which edits a write to a list attribute intends and
// feeds them to fn in order:
//
//   - a non-null list index i with a null payload deletes item i, any other
//     payload replaces item i;
//   - otherwise an array payload replaces the whole list: DeleteList, then
//     AddItem for each element in array order;
//   - otherwise the payload is appended with a single AddItem.
//
// An error from fn stops the sequence and is returned unchanged. Edits
// already delivered are not undone. A malformed array fails with
// ErrInvalidData after the elements preceding the fault were delivered.
func AttrListWrite(listIndex *tlv.Nullable[ListIndex], data tlv.Element, fn ListWriteFunc) error {
	if listIndex != nil {
		if i, ok := listIndex.Value(); ok {
			if data.IsNull() {
				return fn(DeleteItem(i), tlv.Element{})
			}
			return fn(EditItem(i), data)
		}
	}

	if !data.IsArray() {
		return fn(AddItem(), data)
	}

	if err := fn(DeleteList(), tlv.Element{}); err != nil {
		return err
	}
	it := data.Members()
	for it.Next() {
		if err := fn(AddItem(), it.Element()); err != nil {
			return err
		}
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}
