package dataset

import (
	"strings"
	"unicode"
)

// Canonical column names shared by the cases and hearings files
const (
	ColCNR                = "cnr_number"
	ColDateFiled          = "date_filed"
	ColDecisionDate       = "decision_date"
	ColRegistrationDate   = "registration_date"
	ColDisposalDays       = "disposal_days"
	ColFilingYear         = "filing_year"
	ColTotalHearings      = "total_hearings"
	ColBusinessOnDate     = "business_on_date"
	ColNextHearingDate    = "next_hearing_date"
	ColPreviousHearing    = "previous_hearing"
	ColJudge              = "judge"
	ColPurposeOfHearing   = "purpose_of_hearing"
	ColPetitionerAdvocate = "petitioner_advocate"
	ColRespondentAdvocate = "respondent_advocate"
	ColCurrentStatus      = "current_status"
	ColCaseNumber         = "case_number"
	ColStage              = "remappedstages"
)

// synonyms maps a canonical column to the header spellings seen in the
// source exports, already in normalized form
var synonyms = map[string][]string{
	ColCNR:                {"cnr", "cnrnumber", "cnr_no"},
	ColDateFiled:          {"filing_date", "filed_date", "datefiled"},
	ColDecisionDate:       {"disposed_date", "decisiondate"},
	ColRegistrationDate:   {"registrationdate", "reg_date"},
	ColBusinessOnDate:     {"businessondate"},
	ColJudge:              {"beforehonourablejudges", "before_honourable_judges", "before_hon_judge", "njdg_judge_name"},
	ColNextHearingDate:    {"nexthearingdate"},
	ColPreviousHearing:    {"previoushearing"},
	ColPurposeOfHearing:   {"purposeofhearing"},
	ColPetitionerAdvocate: {"petitioneradvocate"},
	ColRespondentAdvocate: {"respondentadvocate"},
	ColCurrentStatus:      {"currentstatus"},
}

// NormalizeName lower-cases a header, trims it and replaces inner whitespace
// with underscores
func NormalizeName(name string) string {
	name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	name = strings.ToLower(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}

// NormalizeColumns returns a copy of t with normalized headers and known
// synonyms renamed to their canonical name. A synonym is left alone when the
// canonical column is already present.
func NormalizeColumns(t *Table) *Table {
	out := NewTable(nil)
	for _, name := range t.columns {
		out.addColumnName(NormalizeName(name))
	}
	out.rows = t.Values()

	for canonical, alts := range synonyms {
		if out.Has(canonical) {
			continue
		}
		for _, alt := range alts {
			if out.Has(alt) {
				out.renameColumn(alt, canonical)
				break
			}
		}
	}
	return out
}
