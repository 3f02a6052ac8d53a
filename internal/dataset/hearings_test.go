package dataset

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHearingsDeduplicates(t *testing.T) {
	raw := mustCSV(t, `CNR_Number,BusinessOnDate,Purpose Of Hearing
C1,2021-02-01,Arguments
C1,2021-03-01,Evidence
C2,not-a-date,Orders
`)

	hearings := CleanHearings(raw)

	require.Equal(t, 2, hearings.Len())
	assert.Equal(t, []string{"C1", "C2"}, column(hearings, ColCNR))
	assert.Equal(t, "Arguments", hearings.Get(0, ColPurposeOfHearing).String())
	assert.Equal(t, DateValue(time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC)), hearings.Get(0, ColBusinessOnDate))
	assert.True(t, hearings.Get(1, ColBusinessOnDate).IsNull())
}

func TestCleanHearingsIdempotent(t *testing.T) {
	raw := mustCSV(t, "cnr_number,business_on_date,next_hearing_date\nC1,2021-02-01,2021-02-15\nC1,2021-03-01,\nC3,,\n")

	once := CleanHearings(raw)
	twice := CleanHearings(once)

	if diff := cmp.Diff(once.Values(), twice.Values()); diff != "" {
		t.Errorf("second clean changed the table (-once +twice):\n%s", diff)
	}
}

func TestCleanHearingsNullKeys(t *testing.T) {
	raw := mustCSV(t, "cnr_number,judge\n,A\n,B\nC1,C\n")

	hearings := CleanHearings(raw)

	// Blank keys collapse to one row like any other repeated key
	assert.Equal(t, []string{"A", "C"}, column(hearings, ColJudge))
}
