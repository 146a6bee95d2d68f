package exponentiation

import (
	"errors"
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"reilabs/relib/logging"
	"reilabs/relib/pow"
)

var ErrInvalidProof = errors.New("invalid exponentiation proof")

// System holds a compiled Circuit together with its groth16 keys.
type System struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

// Proof attests that the prover knows an exponent taking Base to Result.
type Proof struct {
	Base   uint32
	Result uint32
	Proof  groth16.Proof
}

// Setup compiles Circuit over BN254 and runs the groth16 setup.
func Setup() (*System, error) {
	start := time.Now()
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &Circuit{})
	if err != nil {
		return nil, fmt.Errorf("compiling exponentiation circuit: %w", err)
	}
	logging.Logger().Info().
		Int("constraints", ccs.GetNbConstraints()).
		Dur("took", time.Since(start)).
		Msg("compiled exponentiation circuit")

	start = time.Now()
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("groth16 setup: %w", err)
	}
	logging.Logger().Info().Dur("took", time.Since(start)).Msg("groth16 setup done")

	return &System{ccs: ccs, pk: pk, vk: vk}, nil
}

func (s *System) Prove(base, exponent uint32) (*Proof, error) {
	result := pow.Exponentiate(base, exponent)
	assignment := &Circuit{
		Base:     uint64(base),
		Result:   uint64(result),
		Exponent: uint64(exponent),
	}

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("building witness: %w", err)
	}

	start := time.Now()
	proof, err := groth16.Prove(s.ccs, s.pk, witness)
	if err != nil {
		return nil, fmt.Errorf("proving: %w", err)
	}
	logging.Logger().Debug().
		Uint32("base", base).
		Uint32("result", result).
		Dur("took", time.Since(start)).
		Msg("proved exponentiation")

	return &Proof{Base: base, Result: result, Proof: proof}, nil
}

func (s *System) Verify(p *Proof) error {
	assignment := &Circuit{
		Base:   uint64(p.Base),
		Result: uint64(p.Result),
	}
	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("building public witness: %w", err)
	}

	start := time.Now()
	if err := groth16.Verify(p.Proof, s.vk, publicWitness); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	logging.Logger().Debug().Dur("took", time.Since(start)).Msg("verified exponentiation proof")
	return nil
}
