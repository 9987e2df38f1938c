package curves

// Domain parameters for the twisted Edwards curves, taken from RFC 8032.

var ed25519 = &edwardsCurve{
	name: "Ed25519",
	// 2^255 - 19
	p: hexToBig("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed"),
	a: decToBig("-1"),
	d: decToBig("37095705934669439343138083508754565189542113879843219016388785533085940283555"),
	// 2^252 + 27742317777372353535851937790883648493
	n: hexToBig("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed"),
	g: Point{
		X: decToBig("15112221349535400772501151409588531511454012693041857206046113283949847762202"),
		Y: decToBig("46316835694926478169428394003475163141307993866256225615783033603165251855960"),
	},
	cofactor:      8,
	encodedLen:    32,
	canonicalHash: "sha512",
	clamp: func(scalarBytes []byte) {
		scalarBytes[0] &= 248
		scalarBytes[31] &= 127
		scalarBytes[31] |= 64
	},
}

var ed448 = &edwardsCurve{
	name: "Ed448",
	// 2^448 - 2^224 - 1
	p: hexToBig("fffffffffffffffffffffffffffffffffffffffffffffffffffffffe" +
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffff"),
	a: decToBig("1"),
	d: decToBig("-39081"),
	// 2^446 - 13818066809895115352007386748515426880336692474882178609894547503885
	n: hexToBig("3fffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"7cca23e9c44edb49aed63690216cc2728dc58f552378c292ab5844f3"),
	g: Point{
		X: decToBig("224580040295924300187604334099896036246789641632564134246125461" +
			"686950415467406032909029192869357953282578032075146446173674602635247710"),
		Y: decToBig("298819210078481492676017930443930673437544040154080242095928241" +
			"372331506189835876003536878655418784733982303233503462500531545062832660"),
	},
	cofactor:      4,
	encodedLen:    57,
	canonicalHash: "shake256-114",
	clamp: func(scalarBytes []byte) {
		scalarBytes[0] &= 252
		scalarBytes[55] |= 128
		scalarBytes[56] = 0
	},
}

func init() {
	// d is given as a signed decimal in the RFC; normalize into the field.
	ed25519.d.Mod(ed25519.d, ed25519.p)
	ed25519.a.Mod(ed25519.a, ed25519.p)
	ed448.d.Mod(ed448.d, ed448.p)
}
