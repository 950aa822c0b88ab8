package ctdf

// Circulation is a timetabled train run
type Circulation struct {
	Code string `groups:"basic"`
	Line string `groups:"basic" json:",omitempty"`

	Origin        string `groups:"basic"`
	DepartureTime string `groups:"basic"`
	Destination   string `groups:"basic"`
	ArrivalTime   string `groups:"basic"`

	Intermediate []StationPass `groups:"detailed"`

	DataSource *DataSource `groups:"detailed" json:",omitempty"`
}

type StationPass struct {
	Station string `groups:"basic"`
	Time    string `groups:"basic"`
}

type CallType string

const (
	CallTypeDeparture CallType = "Departure"
	CallTypePass      CallType = "Pass"
	CallTypeArrival   CallType = "Arrival"
)

// Call is one of the moments a circulation is at a station
type Call struct {
	Station string   `groups:"basic"`
	Time    string   `groups:"basic"`
	Type    CallType `groups:"basic"`
}

// Stops lists the whole route in order. Intermediate stations that repeat are only
// listed at their first occurrence.
func (c *Circulation) Stops() []StationPass {
	stops := []StationPass{{Station: c.Origin, Time: c.DepartureTime}}

	seen := map[string]bool{c.Origin: true}
	for _, pass := range c.Intermediate {
		if seen[pass.Station] {
			continue
		}
		seen[pass.Station] = true

		stops = append(stops, pass)
	}

	return append(stops, StationPass{Station: c.Destination, Time: c.ArrivalTime})
}

// CallsAt gives every call of the circulation at the station
func (c *Circulation) CallsAt(station string) []Call {
	var calls []Call

	if c.Origin == station {
		calls = append(calls, Call{Station: station, Time: c.DepartureTime, Type: CallTypeDeparture})
	}
	for _, pass := range c.Intermediate {
		if pass.Station == station {
			calls = append(calls, Call{Station: pass.Station, Time: pass.Time, Type: CallTypePass})
		}
	}
	if c.Destination == station {
		calls = append(calls, Call{Station: station, Time: c.ArrivalTime, Type: CallTypeArrival})
	}

	return calls
}
