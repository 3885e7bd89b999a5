package domain

// PreferenceLoop is an ordered list of >=2 distinct participants
// p0,...,pk-1 such that each p_i lists p_(i+1 mod k) as preferred
// partner. Derived once per run by the preference graph analyzer and
// read-only thereafter.
type PreferenceLoop struct {
	Members []*Student
}

// Len is the cycle length.
func (l PreferenceLoop) Len() int { return len(l.Members) }

// IsMutualPair reports whether this loop is a length-2 cycle (a mutual
// preferred-partner pair), which spec.md §4.3 treats as a hard constraint
// rather than a soft co-location hint.
func (l PreferenceLoop) IsMutualPair() bool { return len(l.Members) == 2 }

// Names returns the member names in loop order, for report rendering
// ("A -> B -> C -> A").
func (l PreferenceLoop) Names() []string {
	names := make([]string, len(l.Members))
	for i, m := range l.Members {
		names[i] = m.Name
	}
	return names
}
