package domain

// SearchQuery is a sender's search intent. Empty fields do not filter.
type SearchQuery struct {
	Origin      string
	Destination string
	Category    Category
}

// Match is a trip annotated with its urgency at query time.
type Match struct {
	Trip    Trip
	Urgency Urgency
}
