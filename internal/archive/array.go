package archive

// Pair is one element of an array of two-field tuples.
type Pair[A any, B any] struct {
	First  A
	Second B
}

// ReadArray reads a uint32 element count and decodes that many elements.
func ReadArray[T any](ar *Archive, decode func(ar *Archive) (T, error)) ([]T, error) {
	count, err := ar.ReadUint32()
	if err != nil {
		return nil, err
	}
	// every element takes at least one byte
	if int64(count) > int64(ar.Remaining()) {
		return nil, NewInvalidLengthError("array", int64(count))
	}
	result := make([]T, 0, count)
	for i := uint32(0); i < count; i++ {
		element, err := decode(ar)
		if err != nil {
			return nil, err
		}
		result = append(result, element)
	}
	return result, nil
}

func ReadTupleArray[A any, B any](ar *Archive,
	decodeFirst func(ar *Archive) (A, error),
	decodeSecond func(ar *Archive) (B, error)) ([]Pair[A, B], error) {
	return ReadArray(ar, func(ar *Archive) (Pair[A, B], error) {
		first, err := decodeFirst(ar)
		if err != nil {
			return Pair[A, B]{}, err
		}
		second, err := decodeSecond(ar)
		if err != nil {
			return Pair[A, B]{}, err
		}
		return Pair[A, B]{First: first, Second: second}, nil
	})
}

// Method expressions usable as element decoders.
var (
	FStringDecoder = (*Archive).ReadFString
	Uint32Decoder  = (*Archive).ReadUint32
	Int32Decoder   = (*Archive).ReadInt32
)
