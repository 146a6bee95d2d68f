//go:build cgo

package main

/*
#include <stdint.h>
*/
import "C"

import "reilabs/relib/pow"

//export exponentiate
func exponentiate(base, exponent C.uint32_t) C.uint32_t {
	return C.uint32_t(pow.Exponentiate(uint32(base), uint32(exponent)))
}
