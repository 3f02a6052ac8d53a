package dataset

// CleanHearings returns a cleaned copy of a raw hearings table. The hearing
// date columns are parsed (bad values become null) and rows are
// deduplicated on cnr_number, keeping the first occurrence.
func CleanHearings(raw *Table) *Table {
	t := NormalizeColumns(raw)

	for _, col := range []string{ColBusinessOnDate, ColNextHearingDate, ColPreviousHearing} {
		t.mapColumn(col, toDate)
	}

	if t.Has(ColCNR) {
		t = dedupe(t, ColCNR)
		t.mapColumn(ColCNR, toKey)
	}
	return t
}
