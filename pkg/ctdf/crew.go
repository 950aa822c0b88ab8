package ctdf

import "strings"

type CrewMember struct {
	Name        string `groups:"basic"`
	Payroll     string `groups:"basic"`
	Observation string `groups:"basic" json:",omitempty"`
}

type PhonebookEntry struct {
	Payroll   string   `groups:"basic"`
	FirstName string   `groups:"basic"`
	Surname1  string   `groups:"basic"`
	Surname2  string   `groups:"basic" json:",omitempty"`
	Phones    []string `groups:"basic"`
}

func (p *PhonebookEntry) FullName() string {
	return strings.Join(strings.Fields(strings.Join([]string{p.FirstName, p.Surname1, p.Surname2}, " ")), " ")
}
