// Command relib builds the rerun standard library as a foreign-callable
// module. It exports a single symbol, exponentiate.
//
// Build a C shared library with
//
//	go build -buildmode=c-shared -o librelib.so ./cmd/relib
//
// or a WebAssembly module for rerun programs with
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o relib.wasm ./cmd/relib
package main

// main is required for both build modes, even though it is never called.
func main() {}
