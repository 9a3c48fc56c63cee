// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package observe

import (
	"errors"
	"fmt"
	"iter"
	"math/big"

	"github.com/dalzilio/rudd"
)

const (
	defaultNodeSize  = 10000
	defaultCacheSize = 3000
)

// BDDOptions configures the node table of a BDDOracle.
type BDDOptions struct {
	// NodeSize is the initial number of nodes in the unicity table.
	NodeSize int
	// CacheSize is the initial size of the operation caches.
	CacheSize int
}

// BDDOption is a functional option for NewBDDOracle.
type BDDOption func(*BDDOptions)

// WithNodeSize sets the initial node table size. The table still grows on demand.
func WithNodeSize(size int) BDDOption {
	return func(opts *BDDOptions) {
		if size > 0 {
			opts.NodeSize = size
		}
	}
}

// WithCacheSize sets the initial operation cache size.
func WithCacheSize(size int) BDDOption {
	return func(opts *BDDOptions) {
		if size > 0 {
			opts.CacheSize = size
		}
	}
}

// BDDOracle implements Oracle with a binary decision diagram. Feature i of
// Features is BDD variable i, so declaration order is the variable order.
//
// A BDDOracle is not safe for concurrent use.
type BDDOracle struct {
	bdd      *rudd.BDD
	features []Name
	index    map[Name]int
	err      error
}

// NewBDDOracle declares the features and allocates the diagram.
//
// Example:
//
//	oracle, err := NewBDDOracle(MakeNames("a", "b", "c"))
//	if err != nil {
//	    return err
//	}
//	universe := oracle.Or(oracle.Not(oracle.Literal(NewLiteral(MakeName("a")))), oracle.Literal(NewLiteral(MakeName("b"))))
func NewBDDOracle(features []Name, opts ...BDDOption) (*BDDOracle, error) {
	if len(features) == 0 {
		return nil, errors.New("no features declared")
	}

	options := BDDOptions{NodeSize: defaultNodeSize, CacheSize: defaultCacheSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	index := make(map[Name]int, len(features))
	for i, f := range features {
		if f == EmptyName() {
			return nil, fmt.Errorf("feature %d has an empty name", i)
		}
		if _, dup := index[f]; dup {
			return nil, fmt.Errorf("feature %s declared twice", f.Value())
		}
		index[f] = i
	}

	bdd, err := rudd.New(len(features), rudd.Nodesize(options.NodeSize), rudd.Cachesize(options.CacheSize))
	if err != nil {
		return nil, &OracleError{Op: "declare", Err: err}
	}

	return &BDDOracle{
		bdd:      bdd,
		features: append([]Name(nil), features...),
		index:    index,
	}, nil
}

// Features returns the declared features in declaration order.
func (o *BDDOracle) Features() []Name {
	return append([]Name(nil), o.features...)
}

// Index returns the BDD variable of a declared feature.
func (o *BDDOracle) Index(feature Name) (int, bool) {
	i, ok := o.index[feature]
	return i, ok
}

// True returns the constant true function.
func (o *BDDOracle) True() Formula { return o.bdd.True() }

// False returns the constant false function.
func (o *BDDOracle) False() Formula { return o.bdd.False() }

// Literal returns the function of lit. An undeclared feature records an
// UnknownFeatureError in Err and yields False.
func (o *BDDOracle) Literal(lit Literal) Formula {
	i, ok := o.index[lit.Feature]
	if !ok {
		o.setErr(&UnknownFeatureError{Feature: lit.Feature})
		return o.bdd.False()
	}
	if lit.Positive {
		return o.check("literal", o.bdd.Ithvar(i))
	}
	return o.check("literal", o.bdd.NIthvar(i))
}

// Not returns the negation of f.
func (o *BDDOracle) Not(f Formula) Formula {
	return o.check("not", o.bdd.Not(o.node(f)))
}

// And returns the conjunction of fs; the empty conjunction is True.
func (o *BDDOracle) And(fs ...Formula) Formula {
	if len(fs) == 0 {
		return o.bdd.True()
	}
	return o.check("and", o.bdd.And(o.nodes(fs)...))
}

// Or returns the disjunction of fs; the empty disjunction is False.
func (o *BDDOracle) Or(fs ...Formula) Formula {
	if len(fs) == 0 {
		return o.bdd.False()
	}
	return o.check("or", o.bdd.Or(o.nodes(fs)...))
}

// Xor returns the exclusive or of a and b.
func (o *BDDOracle) Xor(a, b Formula) Formula {
	return o.check("xor", o.bdd.Apply(o.node(a), o.node(b), rudd.OPxor))
}

// IsFalse reports whether f is the constant false function.
func (o *BDDOracle) IsFalse(f Formula) bool {
	return o.bdd.Equal(o.node(f), o.bdd.False())
}

// Implies reports whether a ∧ ¬b is unsatisfiable.
func (o *BDDOracle) Implies(a, b Formula) bool {
	diff := o.bdd.And(o.node(a), o.bdd.Not(o.node(b)))
	o.check("implies", diff)
	return o.bdd.Equal(diff, o.bdd.False())
}

// Cubes enumerates the paths of the diagram that lead to true.
func (o *BDDOracle) Cubes(f Formula) iter.Seq[Cube] {
	n := o.node(f)
	return func(yield func(Cube) bool) {
		// Allsat keeps walking sibling branches after a callback error, so
		// every callback after the consumer stopped must be a no-op.
		stopped := false
		o.bdd.Allsat(func(varset []int) error {
			if stopped {
				return errStopEnumeration
			}
			c := make(Cube, len(varset))
			for i, v := range varset {
				c[i] = int8(v)
			}
			if !yield(c) {
				stopped = true
				return errStopEnumeration
			}
			return nil
		}, n)
	}
}

// Models enumerates the total assignments satisfying f.
func (o *BDDOracle) Models(f Formula) iter.Seq[Model] {
	return func(yield func(Model) bool) {
		for c := range o.Cubes(f) {
			for m := range c.Expand() {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// Count returns the number of satisfying assignments of f over varCount
// variables. Variables beyond the declared ones double the count; fewer
// variables assume the missing ones are don't-cares of f.
func (o *BDDOracle) Count(f Formula, varCount int) *big.Int {
	count := new(big.Int).Set(o.bdd.Satcount(o.node(f)))
	varnum := len(o.features)
	switch {
	case varCount > varnum:
		count.Lsh(count, uint(varCount-varnum))
	case varCount < varnum && varCount >= 0:
		count.Rsh(count, uint(varnum-varCount))
	}
	return count
}

// Err returns the first engine failure recorded by the oracle.
func (o *BDDOracle) Err() error {
	return o.err
}

// Stats returns the node table statistics of the underlying diagram.
func (o *BDDOracle) Stats() string {
	return o.bdd.Stats()
}

var errStopEnumeration = errors.New("enumeration stopped")

func (o *BDDOracle) node(f Formula) rudd.Node {
	n, ok := f.(rudd.Node)
	if !ok || n == nil {
		o.setErr(&OracleError{Op: "unwrap", Err: fmt.Errorf("formula %T was not produced by this oracle", f)})
		return o.bdd.False()
	}
	return n
}

func (o *BDDOracle) nodes(fs []Formula) []rudd.Node {
	ns := make([]rudd.Node, len(fs))
	for i, f := range fs {
		ns[i] = o.node(f)
	}
	return ns
}

func (o *BDDOracle) check(op string, n rudd.Node) Formula {
	if o.bdd.Errored() {
		o.setErr(&OracleError{Op: op, Err: errors.New(o.bdd.Error())})
		return o.bdd.False()
	}
	return n
}

func (o *BDDOracle) setErr(err error) {
	if o.err == nil {
		o.err = err
	}
}

var (
	_ Oracle         = (*BDDOracle)(nil)
	_ CubeEnumerator = (*BDDOracle)(nil)
)
