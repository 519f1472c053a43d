package ahp

import (
	"fmt"
	"io"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/varuna/constraint"
	"github.com/consensys/varuna/debug"
	"github.com/consensys/varuna/internal/utils"
	"github.com/consensys/varuna/logger"
	"golang.org/x/sync/errgroup"
)

// InitProver builds the prover state for a batch of circuits, each proved
// against a list of instances. Instances of one circuit and circuits of the
// batch are processed in parallel; blinding randomness is drawn sequentially
// beforehand, so two runs with the same seeded entropy source produce
// bit-identical states.
//
// Any per-instance failure aborts the whole initialization; no partial state
// is returned.
func InitProver(batch map[*Circuit][]constraint.Synthesizer, opts ...ProverOption) (*State, error) {
	log := logger.Logger().With().Str("protocol", "ahp").Logger()
	start := time.Now()

	cfg, err := NewProverConfig(opts...)
	if err != nil {
		return nil, err
	}

	circuits := make([]*Circuit, 0, len(batch))
	nbInstances := 0
	for c, instances := range batch {
		circuits = append(circuits, c)
		nbInstances += len(instances)
	}
	sortCircuits(circuits)

	// distinct *Circuit values sharing an id would collide in the id-keyed
	// maps below and silently drop assignments
	for i := 1; i < len(circuits); i++ {
		if circuits[i].id == circuits[i-1].id {
			return nil, fmt.Errorf("duplicate circuit %s in batch", circuits[i].id)
		}
	}

	// entropy draws happen before the parallel region, in canonical circuit
	// order then instance order, (a, b) per instance
	var randomizers map[CircuitID][][3]fr.Element
	if cfg.ZeroKnowledge {
		randomizers = make(map[CircuitID][][3]fr.Element, len(circuits))
		for _, c := range circuits {
			triples := make([][3]fr.Element, len(batch[c]))
			for i := range triples {
				a, err := randomElement(cfg.Rand)
				if err != nil {
					return nil, err
				}
				b, err := randomElement(cfg.Rand)
				if err != nil {
					return nil, err
				}
				triples[i][0] = a
				triples[i][1] = b
				triples[i][2].Mul(&a, &b)
			}
			randomizers[c.ID()] = triples
		}
	}

	assignments := make(map[CircuitID][]Assignment, len(circuits))
	for _, c := range circuits {
		assignments[c.ID()] = make([]Assignment, len(batch[c]))
	}

	// each task owns one (circuit, instance) pair and writes to a disjoint
	// slot; circuit indexes are only read
	var g errgroup.Group
	g.SetLimit(cfg.NbTasks)
	for _, c := range circuits {
		instances := batch[c]
		out := assignments[c.ID()]
		triples := randomizers[c.ID()]
		for i := range instances {
			g.Go(func() error {
				var triple *[3]fr.Element
				if triples != nil {
					triple = &triples[i]
				}
				a, err := buildAssignment(c, instances[i], triple, cfg.NbTasks)
				if err != nil {
					return err
				}
				out[i] = a
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		if debug.Debug {
			log.Error().Err(err).Str("stack", debug.Stack()).Msg("prover state initialization failed")
		}
		return nil, err
	}

	log.Debug().
		Dur("took", time.Since(start)).
		Int("nbCircuits", len(circuits)).
		Int("nbInstances", nbInstances).
		Bool("zk", cfg.ZeroKnowledge).
		Msg("prover state initialized")

	return newState(circuits, assignments), nil
}

// buildAssignment turns one instance into its Assignment, or fails without
// producing partial output.
func buildAssignment(circuit *Circuit, instance constraint.Synthesizer, randomizer *[3]fr.Element, nbTasks int) (Assignment, error) {
	pcs := constraint.NewSystem()
	if err := instance.Synthesize(pcs); err != nil {
		// synthesis failures surface verbatim
		return Assignment{}, err
	}

	if randomizer != nil {
		pcs.InjectRandomization(*randomizer)
	}
	pcs.PadToIndexerLayout()

	public := pcs.PublicVariables
	private := pcs.PrivateVariables

	if pcs.NbConstraints != circuit.Info.NbConstraints ||
		len(public) != circuit.Info.NbPublicVariables ||
		len(private) != circuit.Info.NbPrivateVariables {
		return Assignment{}, ErrInstanceDoesNotMatchIndex
	}
	if !FormattedPublicInputIsAdmissible(public) {
		return Assignment{}, ErrInadmissiblePublicInput
	}

	return Assignment{
		PublicVariables:  public,
		PrivateVariables: private,
		ZA:               matrixVectorProduct(circuit.A, public, private, nbTasks),
		ZB:               matrixVectorProduct(circuit.B, public, private, nbTasks),
		ZC:               matrixVectorProduct(circuit.C, public, private, nbTasks),
	}, nil
}

// matrixVectorProduct computes m*z with z the concatenation of public and
// private variables. Rows are
// independent, so they are processed in parallel chunks.
func matrixVectorProduct(m *constraint.SparseMatrix, public, private []fr.Element, nbTasks int) []fr.Element {
	res := make([]fr.Element, m.NbRows())
	utils.Parallelize(m.NbRows(), func(start, end int) {
		for k := start; k < end; k++ {
			coeffs, columns := m.Row(k)
			res[k] = innerProduct(coeffs, columns, public, private)
		}
	}, nbTasks)
	return res
}

// innerProduct evaluates one sparse row against the concatenated variable
// vector. A coefficient equal to one skips the multiplication.
func innerProduct(coeffs []fr.Element, columns []uint32, public, private []fr.Element) fr.Element {
	var res, t fr.Element
	nbPublic := uint32(len(public))

	for i := range coeffs {
		var v *fr.Element
		if columns[i] < nbPublic {
			v = &public[columns[i]]
		} else {
			v = &private[columns[i]-nbPublic]
		}
		if coeffs[i].IsOne() {
			res.Add(&res, v)
		} else {
			t.Mul(&coeffs[i], v)
			res.Add(&res, &t)
		}
	}

	return res
}

func randomElement(r io.Reader) (fr.Element, error) {
	var buf [fr.Bytes]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fr.Element{}, err
	}
	var e fr.Element
	e.SetBytes(buf[:])
	return e, nil
}
