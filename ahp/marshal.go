package ahp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/varuna/constraint"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

// SerializationVersion is the version tag embedded in serialized circuit
// indexes; readers accept payloads sharing the same major version.
const SerializationVersion = "1.0.0"

const headerLen = 4 * 8

type header struct {
	aLen    uint64
	bLen    uint64
	cLen    uint64
	bodyLen uint64
}

func (h *header) toBytes() []byte {
	buf := make([]byte, 0, headerLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.aLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.bLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.cLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.bodyLen)
	return buf
}

func (h *header) fromBytes(buf []byte) {
	h.aLen = binary.LittleEndian.Uint64(buf[0:8])
	h.bLen = binary.LittleEndian.Uint64(buf[8:16])
	h.cLen = binary.LittleEndian.Uint64(buf[16:24])
	h.bodyLen = binary.LittleEndian.Uint64(buf[24:32])
}

type body struct {
	Version string
	Info    IndexInfo
}

// ToBytes serializes the circuit index to its canonical byte representation;
// the circuit id is the BLAKE2b-256 digest of these bytes.
func (c *Circuit) ToBytes() ([]byte, error) {
	// the three matrices are serialized as independent blocks so they can be
	// processed in parallel on both ends
	var a, b, cc []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		a, err = matrixToBytes(c.A)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = matrixToBytes(c.B)
		return err
	})
	g.Go(func() error {
		var err error
		cc, err = matrixToBytes(c.C)
		return err
	})

	bodyBytes, err := cbor.Marshal(body{Version: SerializationVersion, Info: c.Info})
	if err != nil {
		return nil, err
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	h := header{
		aLen:    uint64(len(a)),
		bLen:    uint64(len(b)),
		cLen:    uint64(len(cc)),
		bodyLen: uint64(len(bodyBytes)),
	}

	buf := h.toBytes()
	buf = append(buf, a...)
	buf = append(buf, b...)
	buf = append(buf, cc...)
	buf = append(buf, bodyBytes...)

	return buf, nil
}

// CircuitFromBytes deserializes a circuit index produced by ToBytes and
// returns it together with the number of bytes read.
func CircuitFromBytes(data []byte) (*Circuit, int, error) {
	if len(data) < headerLen {
		return nil, 0, errors.New("invalid data length")
	}

	h := new(header)
	h.fromBytes(data)

	// the header is untrusted; check each section length against the input
	// size and keep the running sum in uint64 so crafted lengths cannot wrap
	sum := uint64(headerLen)
	for _, l := range []uint64{h.aLen, h.bLen, h.cLen, h.bodyLen} {
		if l > uint64(len(data)) || sum+l < sum {
			return nil, 0, errors.New("invalid data length")
		}
		sum += l
	}
	if sum > uint64(len(data)) {
		return nil, 0, errors.New("invalid data length")
	}
	total := int(sum)

	circuit := new(Circuit)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		circuit.A, err = matrixFromBytes(data[headerLen : headerLen+h.aLen])
		return err
	})
	g.Go(func() error {
		var err error
		circuit.B, err = matrixFromBytes(data[headerLen+h.aLen : headerLen+h.aLen+h.bLen])
		return err
	})
	g.Go(func() error {
		var err error
		circuit.C, err = matrixFromBytes(data[headerLen+h.aLen+h.bLen : headerLen+h.aLen+h.bLen+h.cLen])
		return err
	})

	var bd body
	if err := cbor.Unmarshal(data[total-int(h.bodyLen):total], &bd); err != nil {
		return nil, 0, err
	}
	if err := checkSerializationVersion(bd.Version); err != nil {
		return nil, 0, err
	}
	circuit.Info = bd.Info

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	if err := validateIndex(&circuit.Info, circuit.A, circuit.B, circuit.C); err != nil {
		return nil, 0, err
	}

	circuit.id = blake2b.Sum256(data[:total])

	return circuit, total, nil
}

func checkSerializationVersion(v string) error {
	read, err := semver.Parse(v)
	if err != nil {
		return fmt.Errorf("parsing serialization version: %w", err)
	}
	current := semver.MustParse(SerializationVersion)
	if read.Major != current.Major {
		return fmt.Errorf("unsupported serialization version %s (current %s)", read, current)
	}
	return nil
}

func matrixToBytes(m *constraint.SparseMatrix) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(16 + 4*len(m.RowPtr) + (4+fr.Bytes)*len(m.Columns))

	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(m.NbRows()))
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint64(scratch[:], uint64(m.NbNonZero()))
	buf.Write(scratch[:])

	for _, v := range m.RowPtr {
		binary.LittleEndian.PutUint32(scratch[:4], v)
		buf.Write(scratch[:4])
	}
	for _, v := range m.Columns {
		binary.LittleEndian.PutUint32(scratch[:4], v)
		buf.Write(scratch[:4])
	}
	for i := range m.Coeffs {
		b := m.Coeffs[i].Bytes()
		buf.Write(b[:])
	}

	return buf.Bytes(), nil
}

func matrixFromBytes(data []byte) (*constraint.SparseMatrix, error) {
	if len(data) < 16 {
		return nil, errors.New("invalid matrix data length")
	}
	nbRows := binary.LittleEndian.Uint64(data[0:8])
	nbNonZero := binary.LittleEndian.Uint64(data[8:16])

	expected := 16 + 4*(nbRows+1) + (4+fr.Bytes)*nbNonZero
	if uint64(len(data)) != expected {
		return nil, errors.New("invalid matrix data length")
	}

	m := &constraint.SparseMatrix{
		RowPtr:  make([]uint32, nbRows+1),
		Columns: make([]uint32, nbNonZero),
		Coeffs:  make([]fr.Element, nbNonZero),
	}

	offset := uint64(16)
	for i := range m.RowPtr {
		m.RowPtr[i] = binary.LittleEndian.Uint32(data[offset : offset+4])
		offset += 4
	}
	for i := range m.Columns {
		m.Columns[i] = binary.LittleEndian.Uint32(data[offset : offset+4])
		offset += 4
	}
	for i := range m.Coeffs {
		m.Coeffs[i].SetBytes(data[offset : offset+fr.Bytes])
		offset += fr.Bytes
	}

	return m, nil
}
