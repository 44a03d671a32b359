package xaj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testForcing() []Forcing {
	return []Forcing{{Prcp: 10, PET: 3}, {Prcp: 0, PET: 3}, {Prcp: 30, PET: 3}}
}

func TestNewSimulator_RejectsInvalidParameters(t *testing.T) {
	// GIVEN a basin whose KI+KG would make the sub-daily root complex
	p := testParams()
	p.KI, p.KG = 0.6, 0.5

	// WHEN the simulator is constructed
	_, err := NewSimulator([]Basin{{Name: "bad", Params: p}}, Config{})

	// THEN construction fails before any simulation can run
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KI+KG")
}

func TestNewSimulator_RejectsNoBasins(t *testing.T) {
	_, err := NewSimulator(nil, Config{})
	assert.Error(t, err)
}

func TestNewSimulator_RejectsUnknownSourceMethod(t *testing.T) {
	// GIVEN a config carrying an out-of-range source method value
	cfg := Config{Source: SourceMethod(99)}

	// WHEN the simulator is constructed
	_, err := NewSimulator([]Basin{{Name: "b", Params: testParams()}}, cfg)

	// THEN the unknown variant is a fatal configuration error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source method")
}

func TestNewSimulator_RejectsBadOrdinates(t *testing.T) {
	// GIVEN a unit hydrograph that loses mass
	cfg := Config{UH: []float64{0.5, 0.3}}

	_, err := NewSimulator([]Basin{{Name: "b", Params: testParams()}}, cfg)
	assert.Error(t, err)
}

func TestRun_EndToEnd_PulseRaisesDischarge(t *testing.T) {
	// GIVEN the reference basin, default state and a 3-step forcing with a
	// 30mm pulse at the last step
	sim, err := NewSimulator([]Basin{{Name: "ref", Params: testParams()}}, Config{})
	require.NoError(t, err)

	// WHEN the simulation runs
	q, err := sim.Run([][]Forcing{testForcing()})
	require.NoError(t, err)

	// THEN one length-3 non-negative series comes back and the pulse step
	// discharges strictly more than the preceding near-zero-rain step
	require.Len(t, q, 1)
	require.Len(t, q[0], 3)
	for i, v := range q[0] {
		if v < 0 {
			t.Errorf("step %d: negative discharge %g", i, v)
		}
	}
	if q[0][2] <= q[0][1] {
		t.Errorf("30mm pulse did not raise discharge: q[2]=%g <= q[1]=%g", q[0][2], q[0][1])
	}
}

func TestRun_Deterministic(t *testing.T) {
	// GIVEN identical simulators over identical inputs, one per source
	// method and book
	configs := []Config{
		{Source: SourceSingle},
		{Source: SourceSliced, Book: BookShuiWenYuBao},
		{Source: SourceSliced, Book: BookGongChengShuiWenXue},
	}
	forcing := [][]Forcing{testForcing()}

	for _, cfg := range configs {
		// WHEN the same run executes twice
		sim1, err := NewSimulator([]Basin{{Name: "a", Params: testParams()}}, cfg)
		require.NoError(t, err)
		q1, err := sim1.Run(forcing)
		require.NoError(t, err)

		sim2, err := NewSimulator([]Basin{{Name: "a", Params: testParams()}}, cfg)
		require.NoError(t, err)
		q2, err := sim2.Run(forcing)
		require.NoError(t, err)

		// THEN the outputs are bit-identical
		assert.Equal(t, q1, q2, "config %+v", cfg)
	}
}

func TestRun_BatchBasinsMatchIndividualRuns(t *testing.T) {
	// GIVEN two basins with different parameters in one batch
	pA := testParams()
	pB := testParams()
	pB.SM, pB.CS = 20, 0.4
	batch := []Basin{{Name: "A", Params: pA}, {Name: "B", Params: pB}}
	forcing := [][]Forcing{testForcing(), testForcing()}

	simBatch, err := NewSimulator(batch, Config{})
	require.NoError(t, err)
	qBatch, err := simBatch.Run(forcing)
	require.NoError(t, err)

	// WHEN each basin also runs alone
	for i, b := range batch {
		solo, err := NewSimulator([]Basin{b}, Config{})
		require.NoError(t, err)
		qSolo, err := solo.Run([][]Forcing{testForcing()})
		require.NoError(t, err)

		// THEN the batch rows are bit-identical to the solo runs: basins
		// share no state
		assert.Equal(t, qSolo[0], qBatch[i], "basin %s", b.Name)
	}
}

func TestRun_WarmStartStateIsUsed(t *testing.T) {
	// GIVEN one basin warm-started fully saturated and one at defaults
	p := testParams()
	wet := State{WU: p.UM, WL: p.LM, WD: p.DM, S: p.SM, FR: 0.9, QS: 2, QI: 2, QG: 2}
	simWet, err := NewSimulator([]Basin{{Name: "wet", Params: p, Initial: &wet}}, Config{})
	require.NoError(t, err)
	simDry, err := NewSimulator([]Basin{{Name: "dry", Params: p}}, Config{})
	require.NoError(t, err)

	// WHEN both simulate the same forcing
	qWet, err := simWet.Run([][]Forcing{testForcing()})
	require.NoError(t, err)
	qDry, err := simDry.Run([][]Forcing{testForcing()})
	require.NoError(t, err)

	// THEN the saturated basin discharges more from the first step on
	if qWet[0][0] <= qDry[0][0] {
		t.Errorf("warm start ignored: wet q[0]=%g <= dry q[0]=%g", qWet[0][0], qDry[0][0])
	}
}

func TestRun_UnitHydrographMode_DegenerateKernel(t *testing.T) {
	// GIVEN linear-reservoir routing with CS=0 and unit-hydrograph routing
	// with the kernel [1.0]; both are zero-delay pass-through of the
	// surface component, and CI/CG reservoirs are shared
	p := testParams()
	p.CS = 0
	simLR, err := NewSimulator([]Basin{{Name: "b", Params: p}}, Config{})
	require.NoError(t, err)
	simUH, err := NewSimulator([]Basin{{Name: "b", Params: p}}, Config{UH: []float64{1.0}})
	require.NoError(t, err)

	// WHEN both simulate the same forcing
	qLR, err := simLR.Run([][]Forcing{testForcing()})
	require.NoError(t, err)
	qUH, err := simUH.Run([][]Forcing{testForcing()})
	require.NoError(t, err)

	// THEN the two runs agree: with CS=0 the reservoir forgets its
	// initial outflow immediately, so both routes are the identity
	for tt := range qLR[0] {
		diff := qLR[0][tt] - qUH[0][tt]
		if diff < 0 {
			diff = -diff
		}
		if diff > 1e-12 {
			t.Errorf("step %d: LR=%g UH=%g", tt, qLR[0][tt], qUH[0][tt])
		}
	}
}

func TestRun_ForcingBasinMismatch(t *testing.T) {
	sim, err := NewSimulator([]Basin{{Name: "only", Params: testParams()}}, Config{})
	require.NoError(t, err)

	_, err = sim.Run([][]Forcing{testForcing(), testForcing()})
	assert.Error(t, err)
}

func TestRun_SlicedSourceRequiresPositiveKI(t *testing.T) {
	// GIVEN KI=0, which the per-slice coefficient split divides by
	p := testParams()
	p.KI, p.KG = 0, 0.2

	_, err := NewSimulator([]Basin{{Name: "b", Params: p}}, Config{Source: SourceSliced})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KI")
}
