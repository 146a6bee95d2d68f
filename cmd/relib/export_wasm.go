//go:build wasip1

package main

import "reilabs/relib/pow"

//go:wasmexport exponentiate
func exponentiate(base, exponent uint32) uint32 {
	return pow.Exponentiate(base, exponent)
}
