package team

// Team is one canonical participant. Key is the opaque identifier every
// downstream component consumes; names and abbreviations exist only so
// ingestion can resolve feed records onto it.
type Team struct {
	Key          string
	Name         string
	Abbreviation string
	AltNames     []string
}
