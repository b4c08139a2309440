package models

// Event is a single class occurrence from the university plan feed.
//
// Start and End are RFC 3339 strings carrying the Europe/Warsaw offset.
// Subject, Type, Teacher and Room come from parsing the free-text SUMMARY
// and are either all set or all nil; SummaryRaw is always kept so clients
// can fall back to the unparsed text.
type Event struct {
	UID        string  `json:"uid"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Subject    *string `json:"subject"`
	Type       *string `json:"type"`
	Teacher    *string `json:"teacher"`
	Room       *string `json:"room"`
	SummaryRaw string  `json:"summary_raw"`
}
