package ctdf

import (
	"github.com/travigo/dutyboard/pkg/dutyid"
	"golang.org/x/exp/slices"
)

// Database is the merged schedule. It is built once per load by a DatabaseBuilder
// and is read only afterwards: records handed out must not be modified.
type Database struct {
	duties    map[string]*Duty
	dutyOrder []string

	circulations     map[string]*Circulation
	circulationOrder []string

	crew      map[string][]CrewMember
	crewOrder []string

	phonebook      map[string]*PhonebookEntry
	phonebookOrder []string

	cycles   map[string]struct{}
	stations map[string]struct{}
}

type DatabaseStats struct {
	Duties       int `groups:"basic"`
	Circulations int `groups:"basic"`
	CrewMembers  int `groups:"basic"`
	Phonebook    int `groups:"basic"`
	Cycles       int `groups:"basic"`
	Stations     int `groups:"basic"`
}

func newDatabase() *Database {
	return &Database{
		duties:       map[string]*Duty{},
		circulations: map[string]*Circulation{},
		crew:         map[string][]CrewMember{},
		phonebook:    map[string]*PhonebookEntry{},
		cycles:       map[string]struct{}{},
		stations:     map[string]struct{}{},
	}
}

func (db *Database) HasDuty(id string) bool {
	_, exists := db.duties[id]
	return exists
}

func (db *Database) Duty(id string) (*Duty, bool) {
	duty, exists := db.duties[id]
	return duty, exists
}

// ResolveDutyID normalises id and maps short form identifiers onto the long form present in the database
func (db *Database) ResolveDutyID(id string) string {
	return dutyid.Resolve(dutyid.Normalise(id), db.HasDuty)
}

// Duties returns the duties in the order they were first seen
func (db *Database) Duties() []*Duty {
	duties := make([]*Duty, 0, len(db.dutyOrder))
	for _, id := range db.dutyOrder {
		duties = append(duties, db.duties[id])
	}
	return duties
}

// DutiesInService returns the duties matching the service filter, all of them for an empty filter
func (db *Database) DutiesInService(service string) []*Duty {
	var duties []*Duty
	for _, id := range db.dutyOrder {
		if db.duties[id].InService(service) {
			duties = append(duties, db.duties[id])
		}
	}
	return duties
}

func (db *Database) Circulation(code string) (*Circulation, bool) {
	circulation, exists := db.circulations[code]
	return circulation, exists
}

func (db *Database) Circulations() []*Circulation {
	circulations := make([]*Circulation, 0, len(db.circulationOrder))
	for _, code := range db.circulationOrder {
		circulations = append(circulations, db.circulations[code])
	}
	return circulations
}

// Crew returns a copy of the crew list of a duty
func (db *Database) Crew(dutyID string) []CrewMember {
	return slices.Clone(db.crew[dutyID])
}

// CrewDuties lists the duty keys of the crew table in the order they were first seen
func (db *Database) CrewDuties() []string {
	return slices.Clone(db.crewOrder)
}

func (db *Database) PhonebookEntry(payroll string) (*PhonebookEntry, bool) {
	entry, exists := db.phonebook[payroll]
	return entry, exists
}

func (db *Database) Phonebook() []*PhonebookEntry {
	entries := make([]*PhonebookEntry, 0, len(db.phonebookOrder))
	for _, payroll := range db.phonebookOrder {
		entries = append(entries, db.phonebook[payroll])
	}
	return entries
}

func (db *Database) HasCycle(cycle string) bool {
	_, exists := db.cycles[cycle]
	return exists
}

func (db *Database) Cycles() []string {
	return sortedKeys(db.cycles)
}

func (db *Database) HasStation(station string) bool {
	_, exists := db.stations[station]
	return exists
}

func (db *Database) Stations() []string {
	return sortedKeys(db.stations)
}

// Services lists the distinct service codes of the loaded duties
func (db *Database) Services() []string {
	var services []string
	for _, id := range db.dutyOrder {
		if service := db.duties[id].Service; service != "" && !slices.Contains(services, service) {
			services = append(services, service)
		}
	}
	slices.Sort(services)
	return services
}

func (db *Database) Stats() DatabaseStats {
	crewMembers := 0
	for _, members := range db.crew {
		crewMembers += len(members)
	}

	return DatabaseStats{
		Duties:       len(db.duties),
		Circulations: len(db.circulations),
		CrewMembers:  crewMembers,
		Phonebook:    len(db.phonebook),
		Cycles:       len(db.cycles),
		Stations:     len(db.stations),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
