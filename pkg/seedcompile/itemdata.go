package seedcompile

import "fmt"

// ItemData is the pointwise, partially-settable metadata record
// !item_data(item, name?, price?, description?, icon?, map_icon?) builds up
// across possibly many directive invocations for the same item.
type ItemData struct {
	Item        string
	Name        *string
	Price       *int32
	Description *string
	Icon        *string
	MapIcon     *string

	set map[string]bool
}

func newItemData(item string) *ItemData {
	return &ItemData{Item: item, set: make(map[string]bool)}
}

// setField records a named field write, erroring if that field was already
// set for this item: spec.md §4.7 says "duplicate sets for the same field
// are an error", while distinct fields may be set across separate
// !item_data calls.
func (d *ItemData) setField(field string, apply func()) error {
	if d.set[field] {
		return fmt.Errorf("seedcompile: !item_data(%s): field %q already set", d.Item, field)
	}
	d.set[field] = true
	apply()
	return nil
}

// Preplacement is one !preplace(item, zone) placement hint queued for the
// external placer.
type Preplacement struct {
	Item string
	Zone string
}
