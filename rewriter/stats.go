package rewriter

// Kind labels a statement kind counted during conversion.
type Kind string

const (
	DropViews       Kind = "drop_views"
	DropTables      Kind = "drop_tables"
	DropSequences   Kind = "drop_sequences"
	DropTypes       Kind = "drop_types"
	DropPackages    Kind = "drop_packages"
	DropFunctions   Kind = "drop_functions"
	DropProcedures  Kind = "drop_procedures"
	DropTriggers    Kind = "drop_triggers"
	DropIndexes     Kind = "drop_indexes"
	CreateViews     Kind = "create_views"
	CreateTables    Kind = "create_tables"
	CreateSequences Kind = "create_sequences"
	CreateIndexes   Kind = "create_indexes"
	Grants          Kind = "grants"
)

// Kinds lists every statement kind in summary order.
var Kinds = []Kind{
	DropViews,
	DropTables,
	DropSequences,
	DropTypes,
	DropPackages,
	DropFunctions,
	DropProcedures,
	DropTriggers,
	DropIndexes,
	CreateViews,
	CreateTables,
	CreateSequences,
	CreateIndexes,
	Grants,
}

// Stats accumulates results across a conversion run. The caller owns it.
type Stats struct {
	Lines    int
	Counts   map[Kind]int
	Outcomes map[Outcome]int
	// Findings counts review findings per rule name.
	Findings map[string]int
}

// NewStats returns Stats with every counter at zero.
func NewStats() *Stats {
	s := &Stats{
		Counts:   make(map[Kind]int, len(Kinds)),
		Outcomes: make(map[Outcome]int, len(Outcomes)),
		Findings: make(map[string]int),
	}
	for _, k := range Kinds {
		s.Counts[k] = 0
	}
	for _, o := range Outcomes {
		s.Outcomes[o] = 0
	}
	return s
}

// Add records one line's result.
func (s *Stats) Add(res Result) {
	s.Lines++
	for _, k := range res.Events {
		s.Counts[k]++
	}
	s.Outcomes[res.Outcome]++
	for _, f := range res.Findings {
		s.Findings[f.Rule]++
	}
}

// Count returns the counter for k.
func (s *Stats) Count(k Kind) int {
	return s.Counts[k]
}

// FindingTotal returns the number of findings across all rules.
func (s *Stats) FindingTotal() int {
	total := 0
	for _, n := range s.Findings {
		total += n
	}
	return total
}
