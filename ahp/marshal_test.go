package ahp

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCircuitSerializationRoundTrip(t *testing.T) {
	circuit := mulCircuitIndex(t, true)

	data, err := circuit.ToBytes()
	require.NoError(t, err)

	back, n, err := CircuitFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	require.Equal(t, circuit.Info, back.Info)
	require.Equal(t, circuit.ID(), back.ID())
	require.Empty(t, cmp.Diff(circuit.A, back.A))
	require.Empty(t, cmp.Diff(circuit.B, back.B))
	require.Empty(t, cmp.Diff(circuit.C, back.C))
}

func TestCircuitFromBytesRejectsTruncatedData(t *testing.T) {
	circuit := mulCircuitIndex(t, false)
	data, err := circuit.ToBytes()
	require.NoError(t, err)

	_, _, err = CircuitFromBytes(data[:len(data)-1])
	require.Error(t, err)

	_, _, err = CircuitFromBytes(data[:headerLen-1])
	require.Error(t, err)
}

func TestCircuitFromBytesRejectsOverflowingHeader(t *testing.T) {
	// section lengths whose uint64 sum wraps around must not bypass the
	// length guard and panic on slicing
	data := make([]byte, 100)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(data[i*8:], 1<<62)
	}
	_, _, err := CircuitFromBytes(data)
	require.Error(t, err)

	// a single huge section length with the others zero
	for i := range data {
		data[i] = 0
	}
	binary.LittleEndian.PutUint64(data[0:], 1<<40)
	_, _, err = CircuitFromBytes(data)
	require.Error(t, err)
}

func TestSerializationVersionCheck(t *testing.T) {
	require.NoError(t, checkSerializationVersion(SerializationVersion))
	require.NoError(t, checkSerializationVersion("1.7.3"))
	require.Error(t, checkSerializationVersion("2.0.0"))
	require.Error(t, checkSerializationVersion("not-a-version"))
}
