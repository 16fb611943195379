package json

// entry is a single (key, value) pair owned by an Object. It is threaded
// into two chains: bucketNext links entries hashing to the same bucket,
// and orderPrev/orderNext thread every entry in the object in insertion
// order (spec.md §3).
type entry struct {
	key   *String
	value Value

	bucketNext *entry

	orderPrev *entry
	orderNext *entry
}
