package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Ingress_parseRecords_completeRecordDispatches(t *testing.T) {
	var dispatched []struct {
		channel byte
		payload []byte
	}

	var in = NewIngress("", 0, func(channel byte, payload []byte) {
		dispatched = append(dispatched, struct {
			channel byte
			payload []byte
		}{channel, append([]byte(nil), payload...)})
	})

	// spec scenario 1's raw record: channel 0, command 0, length 3, payload FF 00 00.
	var record = []byte{0x00, 0x00, 0x00, 0x03, 0xFF, 0x00, 0x00}

	var remaining = in.parseRecords(record)

	assert.Empty(t, remaining)
	require.Len(t, dispatched, 1)
	assert.Equal(t, byte(0), dispatched[0].channel)
	assert.Equal(t, []byte{0xFF, 0x00, 0x00}, dispatched[0].payload)
	assert.EqualValues(t, 1, in.FramesReceived())
}

func Test_Ingress_parseRecords_incompleteRecordIsLeftInBuffer(t *testing.T) {
	var called = false
	var in = NewIngress("", 0, func(byte, []byte) { called = true })

	// header claims 10 bytes of payload but only 2 are present.
	var partial = []byte{0x00, 0x00, 0x00, 0x0A, 0x01, 0x02}

	var remaining = in.parseRecords(partial)

	assert.Equal(t, partial, remaining)
	assert.False(t, called)
	assert.EqualValues(t, 0, in.FramesReceived())
}

func Test_Ingress_parseRecords_unknownCommandConsumedNotDispatched(t *testing.T) {
	var called = false
	var in = NewIngress("", 0, func(byte, []byte) { called = true })

	var record = []byte{0x00, 0x01, 0x00, 0x02, 0xAA, 0xBB} // command 1, not 0

	var remaining = in.parseRecords(record)

	assert.Empty(t, remaining)
	assert.False(t, called)
	assert.EqualValues(t, 0, in.FramesReceived())
}

func Test_Ingress_parseRecords_multipleRecordsInOneBuffer(t *testing.T) {
	var channels []byte
	var in = NewIngress("", 0, func(channel byte, _ []byte) {
		channels = append(channels, channel)
	})

	var buf = append([]byte{}, []byte{0x01, 0x00, 0x00, 0x01, 0xAA}...)
	buf = append(buf, []byte{0x02, 0x00, 0x00, 0x01, 0xBB}...)

	var remaining = in.parseRecords(buf)

	assert.Empty(t, remaining)
	assert.Equal(t, []byte{0x01, 0x02}, channels)
}
