package dataset

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeHearingGranular(t *testing.T) {
	cases := CleanCases(mustCSV(t, "cnr_number,date_filed,decision_date\nC1,2021-01-10,2021-03-11\nC2,2021-02-01,\n"))
	hearings := CleanHearings(mustCSV(t, "cnr_number,business_on_date,judge\nC1,2021-02-01,J. Rao\nC9,2021-02-02,J. Iyer\n"))

	merged, err := Merge(cases, hearings, DefaultChunkSize)
	require.NoError(t, err)

	// C2 has no hearing so it never appears; C9 has no case so case columns are null
	require.Equal(t, 2, merged.Len())
	assert.Equal(t, []string{"C1", "C9"}, column(merged, ColCNR))
	assert.Equal(t, []string{
		"cnr_number", "business_on_date", "judge",
		"date_filed", "decision_date", "disposal_days", "filing_year", "total_hearings",
	}, merged.Columns())
	assert.Equal(t, IntValue(61), merged.Get(0, ColDisposalDays))
	assert.Equal(t, IntValue(2021), merged.Get(0, ColFilingYear))
	assert.True(t, merged.Get(1, ColDisposalDays).IsNull())
	assert.True(t, merged.Get(1, ColTotalHearings).IsNull())
}

func TestMergeOverlappingColumns(t *testing.T) {
	cases := mustCSV(t, "cnr_number,judge\nC1,case-side\n")
	hearings := mustCSV(t, "cnr_number,judge\nC1,hearing-side\n")

	merged, err := Merge(cases, hearings, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"cnr_number", "judge_hear", "judge_case"}, merged.Columns())
	assert.Equal(t, "judge_hear", merged.Lookup(ColJudge))
	assert.Equal(t, "", merged.Lookup("missing"))
}

func TestMergeChunkSizeInvariant(t *testing.T) {
	var cb, hb strings.Builder
	cb.WriteString("cnr_number,date_filed,decision_date\n")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&cb, "C%d,2020-01-%02d,2020-06-%02d\n", i, i%28+1, i%28+1)
	}
	hb.WriteString("cnr_number,business_on_date,judge\n")
	for i := 0; i < 137; i++ {
		fmt.Fprintf(&hb, "C%d,2021-02-%02d,Judge %d\n", (i*7)%80, i%28+1, i%5)
	}
	cases := CleanCases(mustCSV(t, cb.String()))
	hearings := mustCSV(t, hb.String())

	unbounded, err := Merge(cases, hearings, 0)
	require.NoError(t, err)
	require.Equal(t, hearings.Len(), unbounded.Len())

	for _, size := range []int{1, 7, 1000, -1} {
		got, err := Merge(cases, hearings, size)
		require.NoError(t, err)
		assert.Equal(t, unbounded.Columns(), got.Columns())
		if diff := cmp.Diff(unbounded.Values(), got.Values()); diff != "" {
			t.Errorf("chunk size %d changed the result (-unbounded +chunked):\n%s", size, diff)
		}
	}
}

func TestMergeEmptyKeysNeverMatch(t *testing.T) {
	cases := mustCSV(t, "cnr_number,stage\n,orphan\n")
	hearings := mustCSV(t, "cnr_number,judge\n,A\n")

	merged, err := Merge(cases, hearings, 0)
	require.NoError(t, err)

	require.Equal(t, 1, merged.Len())
	assert.True(t, merged.Get(0, "stage").IsNull())
}

func TestMergeMissingKey(t *testing.T) {
	cases := mustCSV(t, "cnr_number\nC1\n")
	hearings := mustCSV(t, "case\nC1\n")

	_, err := Merge(cases, hearings, 0)

	assert.True(t, errors.Is(err, ErrMissingColumns))
	var mce *MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{ColCNR}, mce.Columns)
}

func TestMergeEmptyHearings(t *testing.T) {
	cases := mustCSV(t, "cnr_number,a\nC1,x\n")
	hearings := mustCSV(t, "cnr_number,b\n")

	merged, err := Merge(cases, hearings, 10)
	require.NoError(t, err)

	assert.Equal(t, 0, merged.Len())
	assert.Equal(t, []string{"cnr_number", "b", "a"}, merged.Columns())
}
