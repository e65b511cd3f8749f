package anthology

import "errors"

// ErrDuplicateRecord is returned by Add when the incoming poem
// duplicates one already in the collection.
var ErrDuplicateRecord = errors.New("anthology: duplicate record")

// ErrIndexOutOfRange is returned by At, Move and Remove for positions
// outside the collection.
var ErrIndexOutOfRange = errors.New("anthology: index out of range")
