package archive

type Vector struct {
	X float32
	Y float32
	Z float32
}

type Rotator struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

func (ar *Archive) ReadVector() (Vector, error) {
	var vector Vector
	var err error
	if vector.X, err = ar.ReadFloat32(); err != nil {
		return Vector{}, err
	}
	if vector.Y, err = ar.ReadFloat32(); err != nil {
		return Vector{}, err
	}
	if vector.Z, err = ar.ReadFloat32(); err != nil {
		return Vector{}, err
	}
	return vector, nil
}

func (ar *Archive) ReadRotator() (Rotator, error) {
	vector, err := ar.ReadVector()
	return Rotator{Pitch: vector.X, Yaw: vector.Y, Roll: vector.Z}, err
}

// ReadQuantizedVector reads (exponent, dx, dy, dz) and removes the exponent derived bias from every axis.
func (ar *Archive) ReadQuantizedVector() (Vector, error) {
	var components [4]int32
	for i := range components {
		value, err := ar.ReadInt32()
		if err != nil {
			return Vector{}, err
		}
		components[i] = value
	}
	return DequantizeVector(components[0], components[1], components[2], components[3]), nil
}

// DequantizeVector uses 32-bit wrapping arithmetic and a scale factor of 1.
func DequantizeVector(exponent, dx, dy, dz int32) Vector {
	bias := int32(1) << (uint32(exponent+1) & 31)
	const scale = 1
	return Vector{
		X: float32(dx-bias) / scale,
		Y: float32(dy-bias) / scale,
		Z: float32(dz-bias) / scale,
	}
}
