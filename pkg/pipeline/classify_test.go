package pipeline

import (
	"sync"
	"testing"

	"github.com/Abraxas-365/stagetrack/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeStageConfig(t *testing.T) *Config {
	t.Helper()

	cfg, err := NewConfig(&Definition{
		StageOrder: []string{"SCREENING", "L1_INTERVIEW", "OFFER"},
		StageNames: map[string]string{
			"SCREENING":    "Screening",
			"L1_INTERVIEW": "L1 Interview",
			"OFFER":        "Offer",
		},
		StageGroups: map[string][]string{
			"SCREENING":    {"ATS Shortlisted"},
			"L1_INTERVIEW": {"L1 interview scheduled", "L1 Rejected"},
			"OFFER":        {"Offer Letter Issued"},
		},
	})
	require.NoError(t, err)
	return cfg
}

func TestClassify_RejectedAtMiddleStage(t *testing.T) {
	cfg := threeStageConfig(t)

	res, err := Classify("L1 Rejected", cfg)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []StageResult{
		{Key: "SCREENING", Name: "Screening", State: StateCompleted, Connector: true},
		{Key: "L1_INTERVIEW", Name: "L1 Interview", State: StateRejected},
		{Key: "OFFER", Name: "Offer", State: StateSkipped},
	}, res.Stages)
	assert.True(t, res.Matched())
	assert.True(t, res.Rejected())
}

func TestClassify_InProgressAtFirstStage(t *testing.T) {
	cfg := threeStageConfig(t)

	res, err := Classify("ATS Shortlisted", cfg)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []StageState{StateInProgress, StatePending, StatePending}, res.States())
	assert.False(t, res.Rejected())
}

func TestClassify_LastStageCompletesEarlierOnes(t *testing.T) {
	cfg := threeStageConfig(t)

	res, err := Classify("Offer Letter Issued", cfg)
	require.NoError(t, err)

	assert.Equal(t, []StageState{StateCompleted, StateCompleted, StateInProgress}, res.States())
}

func TestClassify_UnknownStatusFallsBackToPending(t *testing.T) {
	cfg := threeStageConfig(t)

	res, err := Classify("totally-unknown-status", cfg)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []StageState{StatePending, StatePending, StatePending}, res.States())
	assert.False(t, res.Matched())
	_, ok := res.Active()
	assert.False(t, ok)
}

func TestClassify_UnknownRejectedStatusStaysPending(t *testing.T) {
	cfg := threeStageConfig(t)

	res, err := Classify("Background Rejected", cfg)
	require.NoError(t, err)

	assert.Equal(t, []StageState{StatePending, StatePending, StatePending}, res.States())
	assert.True(t, res.Rejected())
}

func TestClassify_MembershipIsCaseSensitive(t *testing.T) {
	cfg := threeStageConfig(t)

	res, err := Classify("l1 rejected", cfg)
	require.NoError(t, err)

	assert.Equal(t, []StageState{StatePending, StatePending, StatePending}, res.States())
}

func TestClassify_RejectionMarkerIsCaseInsensitive(t *testing.T) {
	cfg, err := NewConfig(&Definition{
		StageOrder:  []string{"A", "B", "C"},
		StageNames:  map[string]string{"A": "A", "B": "B", "C": "C"},
		StageGroups: map[string][]string{"A": {}, "B": {"Resume DECLINED"}, "C": {}},
	})
	require.NoError(t, err)

	res, err := Classify("Resume DECLINED", cfg)
	require.NoError(t, err)

	assert.Equal(t, []StageState{StateCompleted, StateRejected, StateSkipped}, res.States())
}

func TestClassify_EmptyStatusReturnsNoResult(t *testing.T) {
	cfg := threeStageConfig(t)

	res, err := Classify("", cfg)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestClassify_WhitespaceStatusIsClassified(t *testing.T) {
	cfg := threeStageConfig(t)

	res, err := Classify("   ", cfg)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []StageState{StatePending, StatePending, StatePending}, res.States())
}

func TestClassify_NilConfigIsContractViolation(t *testing.T) {
	res, err := Classify("ATS Shortlisted", nil)

	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeConfigRequired))
}

func TestClassify_Idempotent(t *testing.T) {
	cfg := DefaultConfig()

	first, err := Classify(StatusHRRoundRejected, cfg)
	require.NoError(t, err)
	second, err := Classify(StatusHRRoundRejected, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassify_DoesNotMutateConfig(t *testing.T) {
	cfg := DefaultConfig()
	before := cfg.Definition()

	_, err := Classify(StatusL2Rejected, cfg)
	require.NoError(t, err)

	assert.Equal(t, before, cfg.Definition())
}

// Every status of every group, on the default funnel, must satisfy the
// ordering properties.
func TestClassify_FunnelProperties(t *testing.T) {
	cfg := DefaultConfig()

	for owner, stage := range cfg.Stages() {
		for _, status := range stage.Statuses {
			res, err := Classify(status, cfg)
			require.NoError(t, err, status)
			require.Len(t, res.Stages, cfg.Len(), status)

			active := 0
			for i, s := range res.Stages {
				assert.Equal(t, cfg.Stages()[i].Key, s.Key, "order must be preserved")
				switch {
				case i < owner:
					assert.Equal(t, StateCompleted, s.State, status)
				case i == owner:
					active++
					if IsRejectedStatus(status) {
						assert.Equal(t, StateRejected, s.State, status)
					} else {
						assert.Equal(t, StateInProgress, s.State, status)
					}
				default:
					if IsRejectedStatus(status) {
						assert.Equal(t, StateSkipped, s.State, status)
					} else {
						assert.Equal(t, StatePending, s.State, status)
					}
				}
			}
			assert.Equal(t, 1, active, status)

			got, ok := res.Active()
			require.True(t, ok, status)
			assert.Equal(t, stage.Key, got.Key, status)
		}
	}
}

func TestClassify_SelectedIsInProgress(t *testing.T) {
	cfg := DefaultConfig()

	res, err := Classify(StatusL1Selected, cfg)
	require.NoError(t, err)

	active, ok := res.Active()
	require.True(t, ok)
	assert.Equal(t, StageL1Interview, active.Key)
	assert.Equal(t, StateInProgress, active.State)
}

func TestClassify_AmbiguousStatusUsesFirstStage(t *testing.T) {
	cfg, err := NewConfig(&Definition{
		StageOrder:  []string{"A", "B"},
		StageNames:  map[string]string{"A": "A", "B": "B"},
		StageGroups: map[string][]string{"A": {"shared"}, "B": {"shared"}},
	})
	require.NoError(t, err)

	res, err := Classify("shared", cfg)
	require.NoError(t, err)
	assert.Equal(t, []StageState{StateInProgress, StatePending}, res.States())
}

func TestClassify_ConcurrentCallsAgree(t *testing.T) {
	cfg := DefaultConfig()
	want, err := Classify(StatusOfferRejected, cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Classify(StatusOfferRejected, cfg)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestClassifyAll_PreservesOrder(t *testing.T) {
	cfg := threeStageConfig(t)

	results, err := ClassifyAll([]string{"Offer Letter Issued", "", "ATS Shortlisted"}, cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Offer Letter Issued", results[0].Status)
	assert.Nil(t, results[1])
	assert.Equal(t, "ATS Shortlisted", results[2].Status)
}

func TestClassifyAll_NilConfig(t *testing.T) {
	_, err := ClassifyAll([]string{"x"}, nil)
	assert.True(t, errx.IsCode(err, CodeConfigRequired))
}

func TestResult_ConnectorActive(t *testing.T) {
	cfg := threeStageConfig(t)

	res, err := Classify("L1 interview scheduled", cfg)
	require.NoError(t, err)

	assert.True(t, res.ConnectorActive(0), "completed stage lights its connector")
	assert.True(t, res.ConnectorActive(1), "in-progress stage lights its connector")
	assert.False(t, res.ConnectorActive(2), "last stage has no connector")
	assert.False(t, res.ConnectorActive(-1))

	rejected, err := Classify("L1 Rejected", cfg)
	require.NoError(t, err)
	assert.False(t, rejected.ConnectorActive(1), "rejected stage does not light its connector")

	connectors := make([]bool, len(res.Stages))
	for i, st := range res.Stages {
		connectors[i] = st.Connector
	}
	assert.Equal(t, []bool{true, true, false}, connectors)
}

func TestIsRejectedStatus(t *testing.T) {
	assert.True(t, IsRejectedStatus("L1 Rejected"))
	assert.True(t, IsRejectedStatus("Resume declined"))
	assert.True(t, IsRejectedStatus("OFFER REJECTED"))
	assert.False(t, IsRejectedStatus("BG Failed"))
	assert.False(t, IsRejectedStatus("Candidate Not Joined"))
	assert.False(t, IsRejectedStatus(""))
}
