package rerun

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/iden3/go-iden3-crypto/keccak256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"reilabs/relib/logging"
	"reilabs/relib/pow"
)

const (
	stdlibModule     = "stdlib"
	powExport        = "pow"
	computeExport    = "compute"
	defaultCacheSize = 64
)

type config struct {
	cacheSize int
	registry  prometheus.Registerer
}

type Option func(*config)

// WithCacheSize bounds the number of compiled modules kept by the runtime.
// Values below one are ignored.
func WithCacheSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.cacheSize = n
		}
	}
}

// WithMetrics registers the runtime's counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// Runtime compiles rerun programs to WebAssembly and runs them against the
// relib standard library. It is safe for concurrent use.
type Runtime struct {
	runtime   wazero.Runtime
	metrics   *metrics
	cacheSize int

	mu    sync.Mutex
	cache map[string]wazero.CompiledModule
	order []string
}

func NewRuntime(ctx context.Context, opts ...Option) (*Runtime, error) {
	cfg := config{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := newMetrics()
	if cfg.registry != nil {
		if err := m.register(cfg.registry); err != nil {
			return nil, fmt.Errorf("registering rerun metrics: %w", err)
		}
	}

	r := wazero.NewRuntime(ctx)
	_, err := r.NewHostModuleBuilder(stdlibModule).
		NewFunctionBuilder().
		WithFunc(pow.Exponentiate).
		Export(powExport).
		Instantiate(ctx)
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("instantiating %s module: %w", stdlibModule, err)
	}

	return &Runtime{
		runtime:   r,
		metrics:   m,
		cacheSize: cfg.cacheSize,
		cache:     make(map[string]wazero.CompiledModule),
	}, nil
}

// Fingerprint identifies a program by the keccak256 hash of its binary.
func Fingerprint(p *Program) string {
	return fingerprint(p.Wasm())
}

func fingerprint(bin []byte) string {
	return hex.EncodeToString(keccak256.Hash(bin))
}

// Compile compiles the program, or fetches it from the cache, and returns
// its fingerprint.
func (r *Runtime) Compile(ctx context.Context, p *Program) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, _, err := r.compileLocked(ctx, p)
	return key, err
}

// compileLocked must be called with r.mu held.
func (r *Runtime) compileLocked(ctx context.Context, p *Program) (string, wazero.CompiledModule, error) {
	bin := p.Wasm()
	key := fingerprint(bin)

	if compiled, ok := r.cache[key]; ok {
		r.metrics.cacheHits.Inc()
		return key, compiled, nil
	}

	compiled, err := r.runtime.CompileModule(ctx, bin)
	if err != nil {
		return "", nil, fmt.Errorf("compiling rerun program: %w", err)
	}
	r.metrics.compiled.Inc()
	logging.Logger().Debug().
		Str("fingerprint", key).
		Int("instructions", len(p.instructions)).
		Msg("compiled rerun program")

	if len(r.order) >= r.cacheSize {
		evicted := r.order[0]
		r.order = r.order[1:]
		if err := r.cache[evicted].Close(ctx); err != nil {
			logging.Logger().Warn().Err(err).Str("fingerprint", evicted).Msg("closing evicted module")
		}
		delete(r.cache, evicted)
	}
	r.cache[key] = compiled
	r.order = append(r.order, key)

	return key, compiled, nil
}

// Run calls compute(p1, p2) on a fresh instance of the compiled program.
func (r *Runtime) Run(ctx context.Context, p *Program, p1, p2 uint32) (uint32, error) {
	r.metrics.runs.Inc()
	result, err := r.run(ctx, p, p1, p2)
	if err != nil {
		r.metrics.runErrors.Inc()
	}
	return result, err
}

func (r *Runtime) run(ctx context.Context, p *Program, p1, p2 uint32) (uint32, error) {
	mod, err := r.instantiate(ctx, p)
	if err != nil {
		return 0, err
	}
	defer mod.Close(ctx)

	compute := mod.ExportedFunction(computeExport)
	if compute == nil {
		return 0, fmt.Errorf("rerun program does not export %q", computeExport)
	}

	results, err := compute.Call(ctx, api.EncodeU32(p1), api.EncodeU32(p2))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTrap, err)
	}
	return api.DecodeU32(results[0]), nil
}

// instantiate holds the cache lock until the instance exists, so a
// concurrent eviction cannot close the compiled module underneath it.
func (r *Runtime) instantiate(ctx context.Context, p *Program) (api.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, compiled, err := r.compileLocked(ctx, p)
	if err != nil {
		return nil, err
	}

	// Anonymous instances are not registered by name, so concurrent runs of
	// the same program do not collide.
	mod, err := r.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, fmt.Errorf("instantiating rerun program: %w", err)
	}
	return mod, nil
}

// CacheLen reports the number of compiled modules held by the runtime.
func (r *Runtime) CacheLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Close releases every compiled module and the underlying wazero runtime.
func (r *Runtime) Close(ctx context.Context) error {
	r.mu.Lock()
	r.cache = make(map[string]wazero.CompiledModule)
	r.order = nil
	r.mu.Unlock()
	return r.runtime.Close(ctx)
}
