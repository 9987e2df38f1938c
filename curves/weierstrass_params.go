package curves

// Domain parameters for the supported short Weierstrass curves, taken from
// SEC 2 and FIPS 186-4.

var secp256k1 = &weierstrassCurve{
	name: "secp256k1",
	p:    hexToBig("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
	a:    hexToBig("0"),
	b:    hexToBig("7"),
	n:    hexToBig("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
	g: Point{
		X: hexToBig("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
		Y: hexToBig("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
	},
}

var nistP256 = &weierstrassCurve{
	name: "P-256",
	p:    hexToBig("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"),
	a:    hexToBig("ffffffff00000001000000000000000000000000fffffffffffffffffffffffc"),
	b:    hexToBig("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"),
	n:    hexToBig("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
	g: Point{
		X: hexToBig("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"),
		Y: hexToBig("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"),
	},
}

var nistP384 = &weierstrassCurve{
	name: "P-384",
	p: hexToBig("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"effffffff0000000000000000ffffffff"),
	a: hexToBig("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"effffffff0000000000000000fffffffc"),
	b: hexToBig("b3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875a" +
		"c656398d8a2ed19d2a85c8edd3ec2aef"),
	n: hexToBig("ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf" +
		"581a0db248b0a77aecec196accc52973"),
	g: Point{
		X: hexToBig("aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a38" +
			"5502f25dbf55296c3a545e3872760ab7"),
		Y: hexToBig("3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c0" +
			"0a60b1ce1d7e819d7a431d7c90ea0e5f"),
	},
}

var nistP521 = &weierstrassCurve{
	name: "P-521",
	p: hexToBig("1ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"),
	a: hexToBig("1ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffc"),
	b: hexToBig("51953eb9618e1c9a1f929a21a0b68540eea2da725b99b315f3b8b489918ef10" +
		"9e156193951ec7e937b1652c0bd3bb1bf073573df883d2c34f1ef451fd46b503f00"),
	n: hexToBig("1ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"fffa51868783bf2f966b7fcc0148f709a5d03bb5c9b8899c47aebb6fb71e91386409"),
	g: Point{
		X: hexToBig("c6858e06b70404e9cd9e3ecb662395b4429c648139053fb521f828af606b4d3" +
			"dbaa14b5e77efe75928fe1dc127a2ffa8de3348b3c1856a429bf97e7e31c2e5bd66"),
		Y: hexToBig("11839296a789a3bc0045c8a5fb42c7d1bd998f54449579b446817afbd17273e" +
			"662c97ee72995ef42640c550b9013fad0761353c7086a272c24088be94769fd16650"),
	},
}
