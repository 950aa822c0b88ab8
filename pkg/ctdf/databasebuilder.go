package ctdf

import "strings"

// DatabaseBuilder accumulates the records of a load. Nothing else mutates a Database.
type DatabaseBuilder struct {
	db *Database
}

func NewDatabaseBuilder() *DatabaseBuilder {
	return &DatabaseBuilder{db: newDatabase()}
}

// HasDuty is used by importers that resolve identifiers against the duties loaded so far
func (b *DatabaseBuilder) HasDuty(id string) bool {
	return b.db.HasDuty(id)
}

// AddDuty creates the duty on first sight of its identifier and returns the stored record.
// Later calls with the same identifier leave the stored attributes untouched.
func (b *DatabaseBuilder) AddDuty(duty Duty) *Duty {
	if existing, exists := b.db.duties[duty.ID]; exists {
		return existing
	}

	stored := duty
	stored.Runs = nil
	b.db.duties[duty.ID] = &stored
	b.db.dutyOrder = append(b.db.dutyOrder, duty.ID)

	b.AddStation(duty.HomeStation)
	b.AddStation(duty.EndStation)

	return &stored
}

func (b *DatabaseBuilder) AppendRun(dutyID string, run TrainRunRef) bool {
	duty, exists := b.db.duties[dutyID]
	if !exists {
		return false
	}

	duty.Runs = append(duty.Runs, run)
	b.AddCycle(run.Cycle)

	return true
}

// AddCirculation keeps the first definition of a run code, returning false for later ones
func (b *DatabaseBuilder) AddCirculation(circulation Circulation) bool {
	if _, exists := b.db.circulations[circulation.Code]; exists {
		return false
	}

	stored := circulation
	b.db.circulations[circulation.Code] = &stored
	b.db.circulationOrder = append(b.db.circulationOrder, circulation.Code)

	b.AddStation(circulation.Origin)
	b.AddStation(circulation.Destination)
	for _, pass := range circulation.Intermediate {
		b.AddStation(pass.Station)
	}

	return true
}

func (b *DatabaseBuilder) AddCrewMember(dutyID string, member CrewMember) {
	if _, exists := b.db.crew[dutyID]; !exists {
		b.db.crewOrder = append(b.db.crewOrder, dutyID)
	}

	b.db.crew[dutyID] = append(b.db.crew[dutyID], member)
}

// AddPhonebookEntry keeps the first entry per payroll number
func (b *DatabaseBuilder) AddPhonebookEntry(entry PhonebookEntry) bool {
	if _, exists := b.db.phonebook[entry.Payroll]; exists {
		return false
	}

	stored := entry
	b.db.phonebook[entry.Payroll] = &stored
	b.db.phonebookOrder = append(b.db.phonebookOrder, entry.Payroll)

	return true
}

func (b *DatabaseBuilder) AddCycle(cycle string) {
	if cycle = strings.TrimSpace(cycle); cycle != "" {
		b.db.cycles[cycle] = struct{}{}
	}
}

func (b *DatabaseBuilder) AddStation(station string) {
	if station = strings.TrimSpace(station); station != "" {
		b.db.stations[station] = struct{}{}
	}
}

// Build hands over the database. The builder must not be used afterwards.
func (b *DatabaseBuilder) Build() *Database {
	db := b.db
	b.db = nil
	return db
}
