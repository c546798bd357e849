package style

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/towerstyle/internal/variant"
)

// Container is implemented by every Folder instantiation. Structural edits
// go through it so the command layer does not depend on the content type.
type Container interface {
	Node
	Len() int
	IndexOf(id uuid.UUID) int
	Content() []Node
	Accepts(item StyleItem) bool
	InsertIndex(i int, item StyleItem) bool
	RemoveIndex(i int) StyleItem
}

// Folder is an ordered, named container of T leaves and nested folders.
type Folder[T Leaf[T]] struct {
	ID         uuid.UUID      `json:"id" validate:"uuid_set"`
	Name       string         `json:"name" validate:"required,max=100"`
	Renameable bool           `json:"renameable"`
	Items      []FolderOrT[T] `json:"content"`
}

// NewFolder returns an empty renameable folder with a fresh identity.
func NewFolder[T Leaf[T]]() *Folder[T] {
	return &Folder[T]{
		ID:         uuid.New(),
		Name:       "Group",
		Renameable: true,
	}
}

func (f *Folder[T]) node() {}

// NodeID implements Node.
func (f *Folder[T]) NodeID() uuid.UUID { return f.ID }

// Kind implements Node.
func (f *Folder[T]) Kind() NodeKind {
	var zero T
	return zero.folderKind()
}

// DisplayName implements Node.
func (f *Folder[T]) DisplayName() string { return f.Name }

// Field implements Node. Only renameable folders expose their name.
func (f *Folder[T]) Field(name string) any {
	if name == "name" && f.Renameable {
		return &f.Name
	}
	return nil
}

// Clone returns a deep copy with the same identities.
func (f *Folder[T]) Clone() *Folder[T] {
	out := *f
	if f.Items != nil {
		out.Items = make([]FolderOrT[T], len(f.Items))
		for i, child := range f.Items {
			out.Items[i] = child.clone()
		}
	}
	return &out
}

// Append adds a leaf at the end of the folder.
func (f *Folder[T]) Append(item T) {
	f.Items = append(f.Items, Item(item))
}

// AppendFolder adds a nested folder at the end of the folder.
func (f *Folder[T]) AppendFolder(sub *Folder[T]) {
	f.Items = append(f.Items, SubFolder(sub))
}

// AllT returns every leaf in the subtree, depth-first and left to right.
// The returned pointers alias the folder's content.
func (f *Folder[T]) AllT() []T {
	var out []T
	f.collect(&out)
	return out
}

func (f *Folder[T]) collect(out *[]T) {
	for _, child := range f.Items {
		if child.folder != nil {
			child.folder.collect(out)
			continue
		}
		*out = append(*out, child.item)
	}
}

// Content returns the direct children in stored order.
func (f *Folder[T]) Content() []Node {
	out := make([]Node, 0, len(f.Items))
	for _, child := range f.Items {
		out = append(out, child.Node())
	}
	return out
}

// Len returns the number of direct children.
func (f *Folder[T]) Len() int { return len(f.Items) }

// IndexOf returns the position of the direct child with the given id, or -1.
func (f *Folder[T]) IndexOf(id uuid.UUID) int {
	for i, child := range f.Items {
		if child.ID() == id {
			return i
		}
	}
	return -1
}

// Accepts reports whether item is a T or a Folder of T.
func (f *Folder[T]) Accepts(item StyleItem) bool {
	_, ok := narrow[T](item)
	return ok
}

// InsertIndex inserts item before position i. Items of the wrong kind are
// rejected and leave the folder unchanged. i must be in [0, Len()].
func (f *Folder[T]) InsertIndex(i int, item StyleItem) bool {
	if i < 0 || i > len(f.Items) {
		panic(fmt.Sprintf("style: insert index %d out of range [0,%d]", i, len(f.Items)))
	}
	child, ok := narrow[T](item)
	if !ok {
		return false
	}
	f.Items = append(f.Items, FolderOrT[T]{})
	copy(f.Items[i+1:], f.Items[i:])
	f.Items[i] = child
	return true
}

// RemoveIndex detaches and returns the child at position i.
func (f *Folder[T]) RemoveIndex(i int) StyleItem {
	if i < 0 || i >= len(f.Items) {
		panic(fmt.Sprintf("style: remove index %d out of range [0,%d)", i, len(f.Items)))
	}
	child := f.Items[i]
	f.Items = append(f.Items[:i], f.Items[i+1:]...)
	return child.StyleItem()
}

// FolderOrT is a folder child: either a T leaf or a nested folder.
type FolderOrT[T Leaf[T]] struct {
	item   T
	folder *Folder[T]
}

// Item wraps a leaf.
func Item[T Leaf[T]](item T) FolderOrT[T] {
	return FolderOrT[T]{item: item}
}

// SubFolder wraps a nested folder.
func SubFolder[T Leaf[T]](f *Folder[T]) FolderOrT[T] {
	return FolderOrT[T]{folder: f}
}

// IsFolder reports whether the child is a nested folder.
func (c FolderOrT[T]) IsFolder() bool { return c.folder != nil }

// AsT returns the leaf, if the child is one.
func (c FolderOrT[T]) AsT() (T, bool) {
	if c.folder != nil {
		var zero T
		return zero, false
	}
	return c.item, true
}

// AsFolder returns the nested folder, if the child is one.
func (c FolderOrT[T]) AsFolder() (*Folder[T], bool) {
	return c.folder, c.folder != nil
}

// ID returns the child's identity.
func (c FolderOrT[T]) ID() uuid.UUID {
	return c.Node().NodeID()
}

// Node returns the polymorphic view of the child.
func (c FolderOrT[T]) Node() Node {
	if c.folder != nil {
		return c.folder
	}
	return c.item
}

// StyleItem returns the child as a detachable item.
func (c FolderOrT[T]) StyleItem() StyleItem {
	return StyleItem{node: c.Node()}
}

func (c FolderOrT[T]) clone() FolderOrT[T] {
	if c.folder != nil {
		return SubFolder(c.folder.Clone())
	}
	return Item(c.item.Clone())
}

// MarshalJSON writes the child as a tagged StyleItem.
func (c FolderOrT[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.StyleItem())
}

// UnmarshalJSON reads a tagged StyleItem and requires it to be a T or a
// Folder of T.
func (c *FolderOrT[T]) UnmarshalJSON(data []byte) error {
	var item StyleItem
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	child, ok := narrow[T](item)
	if !ok {
		var zero T
		return fmt.Errorf("%w: %s cannot be stored in a %s", variant.ErrVariantMismatch, item.Kind(), zero.folderKind())
	}
	*c = child
	return nil
}

// narrow converts item into a child of a Folder of T.
func narrow[T Leaf[T]](item StyleItem) (FolderOrT[T], bool) {
	if leaf, ok := variant.New[StyleItem, T](item); ok {
		return Item(leaf.Get()), true
	}
	if sub, ok := variant.New[StyleItem, *Folder[T]](item); ok {
		return SubFolder(sub.Get()), true
	}
	return FolderOrT[T]{}, false
}
