package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOutput(channel, offset, ledCount int) *Output {
	return NewOutput(OutputConfig{
		Port:        "test",
		Protocol:    ProtocolAdalight,
		BaudRate:    115200,
		OPCChannel:  channel,
		OPCOffset:   offset,
		LEDCount:    ledCount,
		PixelFormat: FormatRGB,
	})
}

func Test_Dispatcher_matchingChannelReceivesSlice(t *testing.T) {
	var out = newTestOutput(0, 0, 2)
	var d = NewDispatcher([]*Output{out})

	var payload = []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	d.Dispatch(0, payload)

	var got, ok = out.mailbox.Receive()
	require.True(t, ok)
	assert.Equal(t, payload[0:6], got)
}

func Test_Dispatcher_nonMatchingChannelReceivesNothing(t *testing.T) {
	var out = newTestOutput(5, 0, 2)
	var d = NewDispatcher([]*Output{out})

	d.Dispatch(0, []byte{1, 2, 3, 4, 5, 6})

	var _, ok = out.mailbox.Receive()
	assert.False(t, ok)
}

func Test_Dispatcher_broadcastOnlyToChannelZeroOutputs(t *testing.T) {
	var zeroOut = newTestOutput(0, 0, 1)
	var otherOut = newTestOutput(7, 0, 1)
	var d = NewDispatcher([]*Output{zeroOut, otherOut})

	d.Dispatch(0, []byte{10, 20, 30})

	var gotZero, okZero = zeroOut.mailbox.Receive()
	require.True(t, okZero)
	assert.Equal(t, []byte{10, 20, 30}, gotZero)

	var _, okOther = otherOut.mailbox.Receive()
	assert.False(t, okOther)
}

func Test_Dispatcher_literalScenario4_twoOutputsOffsets(t *testing.T) {
	var outA = newTestOutput(0, 0, 10)
	var outB = newTestOutput(0, 10, 10)
	var d = NewDispatcher([]*Output{outA, outB})

	var payload = make([]byte, 90) // 30 triplets
	for i := range payload {
		payload[i] = byte(i)
	}

	d.Dispatch(0, payload)

	var gotA, okA = outA.mailbox.Receive()
	require.True(t, okA)
	assert.Equal(t, payload[0:30], gotA)

	var gotB, okB = outB.mailbox.Receive()
	require.True(t, okB)
	assert.Equal(t, payload[30:60], gotB)
}

func Test_Dispatcher_literalScenario5_shortPayloadNoPadding(t *testing.T) {
	var out = newTestOutput(0, 0, 10)
	var d = NewDispatcher([]*Output{out})

	var payload = make([]byte, 15)
	for i := range payload {
		payload[i] = byte(i + 1)
	}

	d.Dispatch(0, payload)

	var got, ok = out.mailbox.Receive()
	require.True(t, ok)
	assert.Equal(t, payload, got) // all 15 bytes, not padded to 30
}

func Test_Dispatcher_offsetBeyondPayloadYieldsEmptySlice(t *testing.T) {
	var out = newTestOutput(0, 20, 5)
	var d = NewDispatcher([]*Output{out})

	d.Dispatch(0, []byte{1, 2, 3})

	var got, ok = out.mailbox.Receive()
	require.True(t, ok)
	assert.Empty(t, got)
}
