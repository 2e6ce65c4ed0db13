package group

// The three protocol generators. G is the standard secp256k1 base point;
// H and F are nothing-up-my-sleeve points with discrete logs unknown
// relative to G and to each other. All three are fixed literals: they must
// never be regenerated, or every published proof breaks.

var generatorG = []byte{
	0x04,
	0x79, 0xbe, 0x66, 0x7e, 0xf9, 0xdc, 0xbb, 0xac,
	0x55, 0xa0, 0x62, 0x95, 0xce, 0x87, 0x0b, 0x07,
	0x02, 0x9b, 0xfc, 0xdb, 0x2d, 0xce, 0x28, 0xd9,
	0x59, 0xf2, 0x81, 0x5b, 0x16, 0xf8, 0x17, 0x98,
	0x48, 0x3a, 0xda, 0x77, 0x26, 0xa3, 0xc4, 0x65,
	0x5d, 0xa4, 0xfb, 0xfc, 0x0e, 0x11, 0x08, 0xa8,
	0xfd, 0x17, 0xb4, 0x48, 0xa6, 0x85, 0x54, 0x19,
	0x9c, 0x47, 0xd0, 0x8f, 0xfb, 0x10, 0xd4, 0xb8,
}

var generatorH = []byte{
	0x04,
	0x50, 0x92, 0x9b, 0x74, 0xc1, 0xa0, 0x49, 0x54,
	0xb7, 0x8b, 0x4b, 0x60, 0x35, 0xe9, 0x7a, 0x5e,
	0x07, 0x8a, 0x5a, 0x0f, 0x28, 0xec, 0x96, 0xd5,
	0x47, 0xbf, 0xee, 0x9a, 0xce, 0x80, 0x3a, 0xc0,
	0x31, 0xd3, 0xc6, 0x86, 0x39, 0x73, 0x92, 0x6e,
	0x04, 0x9e, 0x63, 0x7c, 0xb1, 0xb5, 0xf4, 0x0a,
	0x36, 0xda, 0xc2, 0x8a, 0xf1, 0x76, 0x69, 0x68,
	0xc3, 0x0c, 0x23, 0x13, 0xf3, 0xa3, 0x89, 0x04,
}

var generatorF = []byte{
	0x02,
	0xb8, 0x60, 0xf5, 0x67, 0x95, 0xfc, 0x03, 0xf3,
	0xc2, 0x16, 0x85, 0x38, 0x3d, 0x1b, 0x5a, 0x2f,
	0x29, 0x54, 0xf4, 0x9b, 0x7e, 0x39, 0x8b, 0x8d,
	0x2a, 0x01, 0x93, 0x93, 0x36, 0x21, 0x15, 0x5f,
}

// minusOneBytes is the curve order minus one, big-endian.
var minusOneBytes = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
	0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x40,
}

var (
	// G is the value generator: amounts enter commitments as v*G.
	G = mustParsePoint(generatorG)

	// H is the blinding generator for Pedersen commitments.
	H = mustParsePoint(generatorH)

	// F is the key-image generator.
	F = mustParsePoint(generatorF)

	// MinusOne is the scalar n-1, i.e. -1 mod n.
	MinusOne = mustScalar(minusOneBytes)
)

func mustScalar(b [32]byte) Scalar {
	s, err := ScalarFromBytes(b)
	if err != nil {
		panic(err)
	}
	return s
}
