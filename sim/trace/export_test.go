package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/opsim/sim"
)

func TestWriteCSV_StableHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t,
		"id,interarrival_time,arrival_time,service_start_time,queue_wait,service_time,service_end_time,system_time\n",
		buf.String())
}

func TestWriteCSV_HandWorkedRows(t *testing.T) {
	tr, err := sim.Simulate([]float64{0, 2}, []float64{5, 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tr))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1,0,0,0,0,5,5,5", lines[1])
	assert.Equal(t, "2,2,2,5,3,3,8,6", lines[2])
}

func TestReadCSV_ReproducesTraceExactly(t *testing.T) {
	res, err := sim.Run(sim.NewConfig(42, 50, 10, 15))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res.Trace))
	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, res.Trace, got)
}

func TestReadCSV_WrongHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,arrival\n1,0\n"))
	assert.Error(t, err)
}

func TestWriteEventsCSV_HandWorkedOrder(t *testing.T) {
	// GIVEN customer 2 arriving while customer 1 is in service
	tr, err := sim.Simulate([]float64{0, 2}, []float64{5, 3})
	require.NoError(t, err)

	// WHEN the event log is written
	var buf bytes.Buffer
	require.NoError(t, WriteEventsCSV(&buf, tr))

	// THEN rows follow the timeline, departure before the next service start
	assert.Equal(t, strings.Join([]string{
		"time,customer_id,from,to",
		"0,1,idle,arrived",
		"0,1,arrived,in_service",
		"2,2,idle,arrived",
		"5,1,in_service,departed",
		"5,2,arrived,in_service",
		"8,2,in_service,departed",
	}, "\n")+"\n", buf.String())
}
