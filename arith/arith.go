// Package arith implements the cell VM's binary and unary opcode semantics.
// Every function operates on plain uint32 operands and returns a uint32
// result; Go's unsigned wraparound gives the "reduced modulo 2^32" behaviour
// spec.md §4.4 requires for free.
package arith

// DivModByZero is the sentinel result of DIV or MOD when the divisor is
// zero: 2^32 - 2, "the closest we have to infinity."
const DivModByZero = 1<<32 - 2

// Add returns src + dest, wrapped modulo 2^32.
func Add(src, dest uint32) uint32 { return src + dest }

// Sub returns dest - src, wrapped modulo 2^32.
func Sub(src, dest uint32) uint32 { return dest - src }

// Mul returns src * dest, wrapped modulo 2^32.
func Mul(src, dest uint32) uint32 { return src * dest }

// Div returns floor(dest / src), or DivModByZero if src is zero.
func Div(src, dest uint32) uint32 {
	if src == 0 {
		return DivModByZero
	}
	return dest / src
}

// Mod returns dest mod src, or DivModByZero if src is zero.
func Mod(src, dest uint32) uint32 {
	if src == 0 {
		return DivModByZero
	}
	return dest % src
}

// Band returns the bitwise AND of src and dest.
func Band(src, dest uint32) uint32 { return src & dest }

// Bor returns the bitwise OR of src and dest.
func Bor(src, dest uint32) uint32 { return src | dest }

// Bxor returns the bitwise XOR of src and dest.
func Bxor(src, dest uint32) uint32 { return src ^ dest }

// Lshift shifts dest left by dest, not by src. This is a deliberate quirk
// inherited from the original interpreter and preserved per spec.md §4.4.
// Go's shift semantics already give zero for a shift count >= 32, matching
// the "reduced modulo 2^32" truncation the quirk requires.
func Lshift(src, dest uint32) uint32 { return dest << dest }

// Rshift shifts src right by dest.
func Rshift(src, dest uint32) uint32 { return src >> dest }

// Binvert returns the bitwise NOT of src.
func Binvert(src uint32) uint32 { return ^src }
