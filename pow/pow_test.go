package pow

import (
	"math/big"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var modulus32 = new(big.Int).Lsh(big.NewInt(1), 32)

// reference computes base^exponent mod 2^32 with math/big.
func reference(base, exponent uint32) uint32 {
	b := new(big.Int).SetUint64(uint64(base))
	e := new(big.Int).SetUint64(uint64(exponent))
	return uint32(new(big.Int).Exp(b, e, modulus32).Uint64())
}

func TestExponentiateKnownValues(t *testing.T) {
	cases := []struct {
		base, exponent, want uint32
	}{
		{0, 0, 1},
		{7, 0, 1},
		{0xffffffff, 0, 1},
		{0, 1, 0},
		{0, 0xffffffff, 0},
		{1, 0xffffffff, 1},
		{2, 10, 1024},
		{2, 31, 1 << 31},
		{2, 32, 0},
		{2, 33, 0},
		{3, 20, 3486784401},
		{3, 21, 1870418611},
		{0xffffffff, 2, 1},
		{0xffffffff, 3, 0xffffffff},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Exponentiate(c.base, c.exponent), "%d^%d", c.base, c.exponent)
	}
}

func TestExponentiateZeroExponent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		require.Equal(t, uint32(1), Exponentiate(r.Uint32(), 0))
	}
}

func TestExponentiateBaseZeroAndOne(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		e := r.Uint32()
		if e == 0 {
			continue
		}
		require.Equal(t, uint32(0), Exponentiate(0, e))
		require.Equal(t, uint32(1), Exponentiate(1, e))
	}
}

func TestExponentiateMatchesBigInt(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 5000; i++ {
		base, exponent := r.Uint32(), r.Uint32()
		require.Equal(t, reference(base, exponent), Exponentiate(base, exponent), "%d^%d", base, exponent)
	}
}

func TestExponentiateSumOfExponents(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 2000; i++ {
		base := r.Uint32()
		e1 := r.Uint32() >> 1
		e2 := r.Uint32() >> 1
		require.Equal(t, Exponentiate(base, e1)*Exponentiate(base, e2), Exponentiate(base, e1+e2))
	}
}

func TestExpOtherWidths(t *testing.T) {
	require.Equal(t, uint8(0), Exp[uint8](2, 8))
	require.Equal(t, uint8(243), Exp[uint8](3, 5))
	require.Equal(t, uint16(1<<15), Exp[uint16](2, 15))
	require.Equal(t, uint64(1)<<63, Exp[uint64](2, 63))
	require.Equal(t, uint64(12157665459056928801), Exp[uint64](3, 40))
}

func TestExponentiateConcurrent(t *testing.T) {
	const workers = 16
	const perWorker = 500

	inputs := make([][2]uint32, workers*perWorker)
	want := make([]uint32, len(inputs))
	r := rand.New(rand.NewSource(5))
	for i := range inputs {
		inputs[i] = [2]uint32{r.Uint32(), r.Uint32()}
		want[i] = Exponentiate(inputs[i][0], inputs[i][1])
	}

	got := make([]uint32, len(inputs))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w * perWorker; i < (w+1)*perWorker; i++ {
				got[i] = Exponentiate(inputs[i][0], inputs[i][1])
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, want, got)
}

func BenchmarkExponentiate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Exponentiate(3, uint32(i))
	}
}
