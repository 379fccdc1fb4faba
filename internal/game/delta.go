package game

// Delta is a partial, field-level description of character changes. Nil
// fields are untouched; a set field carries the new (already clamped) value.
// Deltas are merged shallowly: a later write to the same field wins, and the
// stat map merges key by key.
type Delta struct {
	Health          *int
	MaxHealth       *int
	ActionPoints    *int
	MaxActionPoints *int
	Stats           map[StatKey]int
}

// IsZero reports whether the delta describes no changes.
func (d Delta) IsZero() bool {
	return d.Health == nil &&
		d.MaxHealth == nil &&
		d.ActionPoints == nil &&
		d.MaxActionPoints == nil &&
		len(d.Stats) == 0
}

// Merge folds other into d, with other's fields winning on conflict.
func (d *Delta) Merge(other Delta) {
	if other.Health != nil {
		d.Health = other.Health
	}
	if other.MaxHealth != nil {
		d.MaxHealth = other.MaxHealth
	}
	if other.ActionPoints != nil {
		d.ActionPoints = other.ActionPoints
	}
	if other.MaxActionPoints != nil {
		d.MaxActionPoints = other.MaxActionPoints
	}
	if len(other.Stats) > 0 {
		if d.Stats == nil {
			d.Stats = make(map[StatKey]int, len(other.Stats))
		}
		for key, value := range other.Stats {
			d.Stats[key] = value
		}
	}
}

// Apply writes the delta's fields onto the sheet. The store uses this to
// commit merged deltas; values are expected to be pre-clamped by the
// executor.
func (d Delta) Apply(sheet *CharacterSheet) {
	if sheet == nil {
		return
	}
	if d.Health != nil {
		sheet.Health = *d.Health
	}
	if d.MaxHealth != nil {
		sheet.MaxHealth = *d.MaxHealth
	}
	if d.ActionPoints != nil {
		sheet.ActionPoints = *d.ActionPoints
	}
	if d.MaxActionPoints != nil {
		sheet.MaxActionPoints = *d.MaxActionPoints
	}
	if len(d.Stats) > 0 {
		if sheet.Stats == nil {
			sheet.Stats = make(map[StatKey]int, len(d.Stats))
		}
		for key, value := range d.Stats {
			sheet.Stats[key] = value
		}
	}
}

// IntPtr returns a pointer to value, for populating delta fields.
func IntPtr(value int) *int {
	return &value
}
