package gpio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jibbex/rgpio/gpio"
)

func TestSimulatorFullPinLifecycle(t *testing.T) {
	sim := gpio.NewSimulator()

	require.NoError(t, sim.Export(4))
	require.NoError(t, sim.SetDirection(4, gpio.Out))

	require.NoError(t, sim.Write(4, true))
	high, err := sim.Read(4)
	require.NoError(t, err)
	assert.True(t, high)

	require.NoError(t, sim.Write(4, false))
	low, err := sim.Read(4)
	require.NoError(t, err)
	assert.False(t, low)

	require.NoError(t, sim.Unexport(4))
}

func TestSimulatorFreshPinReadsLow(t *testing.T) {
	sim := gpio.NewSimulator()
	require.NoError(t, sim.Export(7))

	level, err := sim.Read(7)

	require.NoError(t, err)
	assert.False(t, level)
}

func TestSimulatorDuplicateExport(t *testing.T) {
	sim := gpio.NewSimulator()
	require.NoError(t, sim.Export(4))

	err := sim.Export(4)

	require.Error(t, err)
	assert.True(t, gpio.IsIO(err))
	assert.False(t, gpio.IsParse(err))
}

func TestSimulatorUnexportThenRead(t *testing.T) {
	sim := gpio.NewSimulator()
	require.NoError(t, sim.Export(4))
	require.NoError(t, sim.Unexport(4))

	_, err := sim.Read(4)

	require.Error(t, err)
	assert.True(t, gpio.IsIO(err))
}

func TestSimulatorUnexportUnknownPin(t *testing.T) {
	sim := gpio.NewSimulator()

	err := sim.Unexport(12)

	require.Error(t, err)
	assert.True(t, gpio.IsIO(err))
}

func TestSimulatorPinsAreIndependent(t *testing.T) {
	sim := gpio.NewSimulator()
	require.NoError(t, sim.Export(4))
	require.NoError(t, sim.Export(17))
	require.NoError(t, sim.SetDirection(4, gpio.Out))
	require.NoError(t, sim.SetDirection(17, gpio.Out))

	require.NoError(t, sim.Write(4, true))

	four, err := sim.Read(4)
	require.NoError(t, err)
	seventeen, err := sim.Read(17)
	require.NoError(t, err)

	assert.True(t, four)
	assert.False(t, seventeen)
}
