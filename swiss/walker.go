package swiss

import (
	"io"

	"github.com/probeops/swisskit/pkg/types"
)

// SlotIterator yields the elements stored in a table's occupied slots, in
// ascending slot order. It is lazy, finite and non-restartable: Next returns
// io.EOF once every control byte has been inspected, and a read failure ends
// the iteration permanently.
//
// The iterator holds no synchronization; consume it from a single caller.
type SlotIterator struct {
	ctrl     types.Value // control byte array (pointer-shaped)
	slots    types.Value // slot array cast to pointer-to-slot-type
	capacity uint64
	idx      uint64
	done     bool
}

// Slots resolves the table's settings and returns an iterator over its
// occupied slots. An empty table short-circuits: the control and slot arrays
// are never touched, since with capacity 0 there is nothing valid to read.
func (t *Table) Slots() (*SlotIterator, error) {
	settings, err := t.Settings()
	if err != nil {
		return nil, err
	}

	size, err := t.Size(settings)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return &SlotIterator{done: true}, nil
	}

	capacity, err := t.Capacity(settings)
	if err != nil {
		return nil, err
	}

	ctrl, err := settings.Field(controlField)
	if err != nil {
		return nil, err
	}

	slotType, err := t.slotType()
	if err != nil {
		return nil, err
	}
	rawSlots, err := settings.Field(slotsField)
	if err != nil {
		return nil, err
	}
	slots, err := rawSlots.Cast(slotType.Pointer())
	if err != nil {
		return nil, err
	}

	return &SlotIterator{ctrl: ctrl, slots: slots, capacity: capacity}, nil
}

// Next returns the next occupied slot's element, or io.EOF when the scan is
// complete. A slot is occupied exactly when its control byte is non-negative
// as a signed 8-bit value; negative bytes encode empty, deleted and sentinel
// states. Occupied slots are not contiguous from the start, so all capacity
// control bytes are inspected with no early exit.
func (it *SlotIterator) Next() (types.Value, error) {
	if it.done {
		return nil, io.EOF
	}

	for it.idx < it.capacity {
		i := it.idx
		it.idx++

		cb, err := it.ctrl.Index(int64(i))
		if err != nil {
			it.done = true
			return nil, err
		}
		c, err := cb.Int()
		if err != nil {
			it.done = true
			return nil, err
		}
		if c >= 0 {
			elem, err := it.slots.Index(int64(i))
			if err != nil {
				it.done = true
				return nil, err
			}
			return elem, nil
		}
	}

	it.done = true
	return nil, io.EOF
}
