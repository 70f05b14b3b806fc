package calculator

// Optional is a measurement that may be absent. Zero is a legitimate value
// for several fields (visceral fat index, for one), so absence is tracked
// explicitly instead of being encoded as 0.
type Optional struct {
	value float64
	valid bool
}

// Some returns a present Optional holding v.
func Some(v float64) Optional {
	return Optional{value: v, valid: true}
}

// None returns an absent Optional.
func None() Optional {
	return Optional{}
}

// FromPtr converts a nullable pointer (as used by models and API messages).
func FromPtr(v *float64) Optional {
	if v == nil {
		return None()
	}
	return Some(*v)
}

// Get returns the value and whether it is present.
func (o Optional) Get() (float64, bool) {
	return o.value, o.valid
}

// Valid reports whether the value is present.
func (o Optional) Valid() bool {
	return o.valid
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Optional) Ptr() *float64 {
	if !o.valid {
		return nil
	}
	v := o.value
	return &v
}
