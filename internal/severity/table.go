package severity

// Entry holds the reference data for one equivalence class: the
// highest-severity score achievable within the class and the decrement per
// metric step away from the class's worst case.
type Entry struct {
	Ceiling float64
	Step    float64
}

// Table is an immutable, versioned reference table. A future metric revision
// ships as a new Table; the classifier algorithm does not change.
type Table struct {
	Version string
	entries map[Class]Entry
}

// NewTable builds a Table from explicit entries. Intended for tests and
// future table revisions; production code uses DefaultTable.
func NewTable(version string, entries map[Class]Entry) *Table {
	copied := make(map[Class]Entry, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Table{Version: version, entries: copied}
}

// DefaultTable returns the builtin expert-curated reference table.
func DefaultTable() *Table {
	return defaultTable
}

// Curated ceilings and steps for all 54 classes. Digit order: exploitability,
// complexity, vulnerable impact, subsequent impact (0 = most severe).
var defaultTable = &Table{
	Version: "2026-02",
	entries: map[Class]Entry{
		"0000": {10.0, 0.10},
		"0001": {9.2, 0.10},
		"0002": {7.8, 0.15},
		"0010": {8.1, 0.15},
		"0011": {7.0, 0.15},
		"0012": {5.9, 0.20},
		"0020": {6.2, 0.20},
		"0021": {5.1, 0.20},
		"0022": {4.0, 0.25},

		"0100": {9.3, 0.10},
		"0101": {8.0, 0.15},
		"0102": {6.9, 0.15},
		"0110": {7.2, 0.15},
		"0111": {6.1, 0.20},
		"0112": {5.0, 0.20},
		"0120": {5.3, 0.20},
		"0121": {4.2, 0.25},
		"0122": {3.1, 0.25},

		"1000": {8.6, 0.10},
		"1001": {7.6, 0.15},
		"1002": {6.5, 0.15},
		"1010": {6.8, 0.15},
		"1011": {5.7, 0.20},
		"1012": {4.6, 0.20},
		"1020": {4.9, 0.20},
		"1021": {3.8, 0.25},
		"1022": {2.7, 0.25},

		"1100": {7.8, 0.15},
		"1101": {6.7, 0.15},
		"1102": {5.6, 0.20},
		"1110": {5.9, 0.20},
		"1111": {4.8, 0.20},
		"1112": {3.7, 0.25},
		"1120": {4.0, 0.25},
		"1121": {2.9, 0.25},
		"1122": {1.8, 0.30},

		"2000": {7.4, 0.15},
		"2001": {6.3, 0.15},
		"2002": {5.2, 0.20},
		"2010": {5.5, 0.20},
		"2011": {4.4, 0.25},
		"2012": {3.3, 0.25},
		"2020": {3.6, 0.25},
		"2021": {2.5, 0.25},
		"2022": {1.4, 0.30},

		"2100": {6.5, 0.15},
		"2101": {5.4, 0.20},
		"2102": {4.3, 0.25},
		"2110": {4.6, 0.20},
		"2111": {3.5, 0.25},
		"2112": {2.4, 0.25},
		"2120": {2.7, 0.25},
		"2121": {1.6, 0.30},
		"2122": {0.5, 0.30},
	},
}
