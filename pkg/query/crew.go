package query

import (
	"fmt"
	"strings"

	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/util"
)

type CrewSuggestion struct {
	DutyID      string `groups:"basic"`
	Name        string `groups:"basic"`
	Payroll     string `groups:"basic"`
	Observation string `groups:"basic" json:",omitempty"`
}

// SuggestCrew matches text against crew names and payroll numbers. A person working several
// duties is suggested once, with the first duty found.
func (e *Engine) SuggestCrew(text string) []CrewSuggestion {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var suggestions []CrewSuggestion
	seen := map[string]bool{}

	for _, dutyID := range e.db.CrewDuties() {
		for _, member := range e.db.Crew(dutyID) {
			if !util.ContainsFold(member.Name, text) && !strings.Contains(member.Payroll, text) {
				continue
			}

			key := member.Payroll + "\x00" + strings.ToLower(member.Name)
			if seen[key] {
				continue
			}
			seen[key] = true

			suggestions = append(suggestions, CrewSuggestion{
				DutyID:      dutyID,
				Name:        member.Name,
				Payroll:     member.Payroll,
				Observation: member.Observation,
			})

			if len(suggestions) == MaxCrewSuggestions {
				return suggestions
			}
		}
	}

	return suggestions
}

// ByCrewMember shows the duty of the crew member with the payroll number, or the exact name
func (e *Engine) ByCrewMember(member string, service string) DutyResult {
	member = strings.TrimSpace(member)
	if member == "" {
		return DutyResult{Status: StatusInvalid, Message: "no crew member given"}
	}

	for _, dutyID := range e.db.CrewDuties() {
		for _, crew := range e.db.Crew(dutyID) {
			if crew.Payroll == member || strings.EqualFold(crew.Name, member) {
				result := e.ByDuty(dutyID, service)
				result.Query = member
				return result
			}
		}
	}

	return DutyResult{
		Status:  StatusNotFound,
		Message: fmt.Sprintf("crew member %s not found", member),
		Query:   member,
	}
}

// FilterPhonebook matches text against first name, surnames and payroll number
func (e *Engine) FilterPhonebook(text string) []*ctdf.PhonebookEntry {
	text = strings.TrimSpace(text)

	entries := e.db.Phonebook()
	util.InPlaceFilter(&entries, func(entry *ctdf.PhonebookEntry) bool {
		return util.ContainsFold(entry.FirstName, text) ||
			util.ContainsFold(entry.Surname1, text) ||
			util.ContainsFold(entry.Surname2, text) ||
			strings.Contains(entry.Payroll, text)
	})

	for index, entry := range entries {
		entries[index] = clone(entry)
	}

	return entries
}
