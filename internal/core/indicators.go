package core

// Indicator names a life metric tracked alongside the probability score.
type Indicator string

// Indicators present in every fresh session, in display order.
const (
	IndicatorWealth   Indicator = "wealth"
	IndicatorStress   Indicator = "stress"
	IndicatorSecurity Indicator = "security"
	IndicatorCareer   Indicator = "career"
)

// IndicatorValue is a single named indicator reading.
type IndicatorValue struct {
	Name  Indicator `json:"name"`
	Value int       `json:"value"`
}

// Indicators is an ordered set of indicator readings.
// Iteration order is insertion order; names are unique.
type Indicators []IndicatorValue

// Get returns the value stored under name.
func (in Indicators) Get(name Indicator) (int, bool) {
	for _, iv := range in {
		if iv.Name == name {
			return iv.Value, true
		}
	}
	return 0, false
}

// Value returns the value stored under name, or 0 when absent.
func (in Indicators) Value(name Indicator) int {
	v, _ := in.Get(name)
	return v
}

// Set returns a copy with name set to value. An existing entry keeps its
// position; a new one is appended.
func (in Indicators) Set(name Indicator, value int) Indicators {
	out := in.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, IndicatorValue{Name: name, Value: value})
}

// Merge returns a copy of in with every entry of overrides applied in order.
// Values are overwritten, not added. Entries of in that overrides does not
// mention are kept.
func (in Indicators) Merge(overrides Indicators) Indicators {
	out := in.Clone()
	for _, o := range overrides {
		out = setInPlace(out, o.Name, o.Value)
	}
	return out
}

// setInPlace updates or appends without copying; callers own the slice.
func setInPlace(in Indicators, name Indicator, value int) Indicators {
	for i := range in {
		if in[i].Name == name {
			in[i].Value = value
			return in
		}
	}
	return append(in, IndicatorValue{Name: name, Value: value})
}

// Names returns indicator names in order.
func (in Indicators) Names() []Indicator {
	names := make([]Indicator, len(in))
	for i, iv := range in {
		names[i] = iv.Name
	}
	return names
}

// Clone creates an independent copy.
func (in Indicators) Clone() Indicators {
	if in == nil {
		return nil
	}
	out := make(Indicators, len(in))
	copy(out, in)
	return out
}
