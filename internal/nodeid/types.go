package nodeid

// Kind tells which part of the network a node comes from.
type Kind string

const (
	KindTask     Kind = "task"
	KindProducer Kind = "producer"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindTask || k == KindProducer
}

// Address is the structured representation of a node identifier.
type Address struct {
	Kind  Kind
	Name  string
	Index int // -1 indicates no index is present.
}

// Task returns the address of a declared task.
func Task(name string) Address {
	return Address{Kind: KindTask, Name: name, Index: -1}
}

// Producer returns the address of the index-th instance of a producer.
func Producer(name string, index int) Address {
	return Address{Kind: KindProducer, Name: name, Index: index}
}

// HasIndex returns true if the address has an explicit index.
func (a Address) HasIndex() bool {
	return a.Index != -1
}
