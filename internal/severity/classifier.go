// Package severity maps parsed vectors to a base severity score via
// equivalence-class lookup and interpolation. Classification depends only on
// the eleven mandatory metrics; optional groups never change the class.
package severity

import (
	"fmt"
	"math"

	"github.com/aegentdev/aivss/internal/vector"
)

// Class is the opaque equivalence-class key: four macro digits covering
// exploitability (AV/PR/UI), complexity (AC/AT), vulnerable-system impact
// (VC/VI/VA), and subsequent-system impact (SC/SI/SA).
type Class string

// Classifier scores vectors against a reference table. The zero value is not
// usable; construct with New.
type Classifier struct {
	table *Table
}

// New returns a Classifier backed by the given table. A nil table selects
// the builtin default.
func New(table *Table) *Classifier {
	if table == nil {
		table = DefaultTable()
	}
	return &Classifier{table: table}
}

// TableVersion reports the version string of the reference table in use.
func (c *Classifier) TableVersion() string {
	return c.table.Version
}

// Classify derives the equivalence class from the mandatory metrics only.
// Two vectors with identical mandatory metrics always share a class.
func Classify(v vector.Vector) (Class, error) {
	for _, m := range vector.Mandatory() {
		if _, ok := v[m]; !ok {
			return "", fmt.Errorf("%w: missing %s", vector.ErrIncompleteVector, m)
		}
	}

	eq1 := exploitabilityDigit(v)
	eq2 := complexityDigit(v)
	eq3 := impactDigit(v[vector.VulnConfident], v[vector.VulnIntegrity], v[vector.VulnAvailability])
	eq4 := subsequentDigit(v)

	return Class(fmt.Sprintf("%d%d%d%d", eq1, eq2, eq3, eq4)), nil
}

// Score interpolates a base severity score in [0,10], rounded to one
// decimal: the class ceiling minus one step per mandatory metric strictly
// less severe than the class's worst-case representative. Pure function of
// the vector and the table.
func (c *Classifier) Score(v vector.Vector) (float64, error) {
	class, err := Classify(v)
	if err != nil {
		return 0, err
	}
	entry, ok := c.table.entries[class]
	if !ok {
		return 0, fmt.Errorf("table %s has no entry for class %s", c.table.Version, class)
	}

	worst := worstCase(class)
	distance := 0
	for _, m := range vector.Mandatory() {
		if vector.Rank(m, v[m]) > vector.Rank(m, worst[m]) {
			distance++
		}
	}

	score := entry.Ceiling - entry.Step*float64(distance)
	score = math.Min(10, math.Max(0, score))
	return math.Round(score*10) / 10, nil
}

// exploitabilityDigit: 0 when the attack needs nothing (network, no
// privileges, no interaction); 2 when physical access is required or none of
// the three is at its easiest; 1 otherwise.
func exploitabilityDigit(v vector.Vector) int {
	av, pr, ui := v[vector.AttackVector], v[vector.PrivilegesRequired], v[vector.UserInteraction]
	if av == "N" && pr == "N" && ui == "N" {
		return 0
	}
	if av == "P" || (av != "N" && pr != "N" && ui != "N") {
		return 2
	}
	return 1
}

func complexityDigit(v vector.Vector) int {
	if v[vector.AttackComplexity] == "L" && v[vector.AttackRequirements] == "N" {
		return 0
	}
	return 1
}

// impactDigit: 0 when confidentiality and integrity are both fully
// compromised; 2 when no impact metric is high; 1 otherwise.
func impactDigit(vc, vi, va string) int {
	if vc == "H" && vi == "H" {
		return 0
	}
	if vc != "H" && vi != "H" && va != "H" {
		return 2
	}
	return 1
}

// subsequentDigit: integrity or availability loss on downstream systems is
// the worst case, confidentiality-only spill the middle one.
func subsequentDigit(v vector.Vector) int {
	si, sa := v[vector.SubIntegrity], v[vector.SubAvailability]
	if si == "H" || sa == "H" {
		return 0
	}
	if v[vector.SubConfident] == "H" {
		return 1
	}
	return 2
}

// worstCase returns the canonical highest-severity representative of a
// class. Interpolation distance is measured against this vector.
func worstCase(class Class) vector.Vector {
	w := make(vector.Vector, 11)

	switch class[0] {
	case '0':
		w[vector.AttackVector], w[vector.PrivilegesRequired], w[vector.UserInteraction] = "N", "N", "N"
	case '1':
		w[vector.AttackVector], w[vector.PrivilegesRequired], w[vector.UserInteraction] = "A", "L", "N"
	default:
		w[vector.AttackVector], w[vector.PrivilegesRequired], w[vector.UserInteraction] = "L", "L", "P"
	}

	switch class[1] {
	case '0':
		w[vector.AttackComplexity], w[vector.AttackRequirements] = "L", "N"
	default:
		w[vector.AttackComplexity], w[vector.AttackRequirements] = "L", "P"
	}

	switch class[2] {
	case '0':
		w[vector.VulnConfident], w[vector.VulnIntegrity], w[vector.VulnAvailability] = "H", "H", "H"
	case '1':
		w[vector.VulnConfident], w[vector.VulnIntegrity], w[vector.VulnAvailability] = "H", "L", "H"
	default:
		w[vector.VulnConfident], w[vector.VulnIntegrity], w[vector.VulnAvailability] = "L", "L", "L"
	}

	switch class[3] {
	case '0':
		w[vector.SubConfident], w[vector.SubIntegrity], w[vector.SubAvailability] = "H", "H", "H"
	case '1':
		w[vector.SubConfident], w[vector.SubIntegrity], w[vector.SubAvailability] = "H", "L", "L"
	default:
		w[vector.SubConfident], w[vector.SubIntegrity], w[vector.SubAvailability] = "L", "L", "L"
	}

	return w
}
