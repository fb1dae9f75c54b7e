package units

import (
	"math"
	"sync"

	"github.com/cockroachdb/errors"
)

// Registry holds base dimensions and named units. Declarations happen once,
// normally from package-level vars, and the registry is read-only afterwards.
type Registry struct {
	mu    sync.RWMutex
	bases map[string]*baseDim
	units map[string]*named
	kinds map[string]*Kind
}

func NewRegistry() *Registry {
	return &Registry{
		bases: make(map[string]*baseDim),
		units: make(map[string]*named),
		kinds: make(map[string]*Kind),
	}
}

// Default is the process-wide registry holding the ISQ bases and SI units.
var Default = NewRegistry()

// DeclareBase registers an independent base dimension. Declaring an
// existing symbol with the same name returns the existing dimension.
func (r *Registry) DeclareBase(symbol, name string) (Dimension, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, err := r.declareBaseLocked(symbol, name)
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{terms: []dimTerm{{base: b, exp: Int(1)}}}, nil
}

func (r *Registry) declareBaseLocked(symbol, name string) (*baseDim, error) {
	if symbol == "" {
		return nil, errors.New("units: empty base dimension symbol")
	}
	if b, ok := r.bases[symbol]; ok {
		if b.name != name {
			return nil, errors.Wrapf(ErrDuplicateSymbol, "base dimension %q already declared as %q", symbol, b.name)
		}
		return b, nil
	}
	b := &baseDim{symbol: symbol, name: name, order: len(r.bases)}
	r.bases[symbol] = b
	return b, nil
}

// DeclareUnit creates a named unit of dimension dim that is ratio times the
// coherent unit of that dimension.
func (r *Registry) DeclareUnit(symbol string, dim Dimension, ratio float64) (Unit, error) {
	return r.declare(&named{symbol: symbol, dim: dim, ratio: ratio})
}

// DefineUnit creates a named unit equal to ratio × expr, e.g. bar = 1e5 Pa.
func (r *Registry) DefineUnit(symbol string, expr Unit, ratio float64) (Unit, error) {
	return r.declare(&named{
		symbol:  symbol,
		dim:     expr.Dimension(),
		ratio:   ratio * expr.Ratio(),
		anchors: expr.anchors(),
	})
}

// DeclareAffineUnit creates a point unit: reference = value·ratio + offset.
// Inside compound expressions it behaves as a difference unit.
func (r *Registry) DeclareAffineUnit(symbol string, dim Dimension, ratio, offset float64) (Unit, error) {
	return r.declare(&named{symbol: symbol, dim: dim, ratio: ratio, offset: offset})
}

func (r *Registry) declare(n *named) (Unit, error) {
	if n.symbol == "" {
		return One, errors.New("units: empty unit symbol")
	}
	if n.ratio <= 0 || math.IsInf(n.ratio, 0) || math.IsNaN(n.ratio) {
		return One, errors.Newf("units: invalid ratio %v for %q", n.ratio, n.symbol)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.units[n.symbol]; ok {
		return One, errors.Wrapf(ErrDuplicateSymbol, "unit %q", n.symbol)
	}
	r.units[n.symbol] = n
	return unitOf(n), nil
}

// Lookup returns the named unit with the given symbol.
func (r *Registry) Lookup(symbol string) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.units[symbol]
	if !ok {
		return One, false
	}
	return unitOf(n), true
}

// Kind is an application-defined base dimension whose units are not
// mutually convertible unless a fixed rate is declared.
type Kind struct {
	reg  *Registry
	name string
	dim  Dimension
}

// DeclareKind introduces a new base dimension for units "of a kind".
func (r *Registry) DeclareKind(symbol, name string) (*Kind, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if k, ok := r.kinds[symbol]; ok && k.name == name {
		return k, nil
	}
	b, err := r.declareBaseLocked(symbol, name)
	if err != nil {
		return nil, err
	}
	k := &Kind{reg: r, name: name, dim: Dimension{terms: []dimTerm{{base: b, exp: Int(1)}}}}
	r.kinds[symbol] = k
	return k, nil
}

func (k *Kind) Name() string { return k.name }
func (k *Kind) Dimension() Dimension { return k.dim }
func (k *Kind) Contains(u Unit) bool { return u.Dimension().Equal(k.dim) }
func (k *Kind) Registry() *Registry { return k.reg }

// NewUnit mints a unit of the kind. It is its own conversion anchor, so it
// converts to no sibling unit of the same kind.
func (k *Kind) NewUnit(symbol string) (Unit, error) {
	n := &named{symbol: symbol, dim: k.dim, ratio: 1}
	n.anchors = []anchorTerm{{anchor: n, exp: Int(1)}}
	return k.reg.declare(n)
}

// ScaledUnit declares a unit of the kind at a fixed rate to an existing one,
// e.g. a cent as 0.01 of a euro.
func (k *Kind) ScaledUnit(symbol string, of Unit, ratio float64) (Unit, error) {
	if !k.Contains(of) {
		return One, errors.Wrapf(ErrDimensionMismatch, "%s is not a unit of %s", symbolOrOne(of), k.name)
	}
	return k.reg.DefineUnit(symbol, of, ratio)
}
