// Package reconcile implements the merge of incoming item descriptors into an
// existing list. Merging accumulates quantities for name+unit matches, surfaces
// unit conflicts for name-only matches, and appends everything else. A batch
// either applies fully or reports every conflict found; it never partially
// applies.
package reconcile

import (
	"encoding/json"
	"strings"

	"basket/internal/domain/entity"
	"basket/internal/errors"

	"github.com/google/uuid"
)

// ErrEmptyName is returned when a descriptor's name is empty after trimming.
var ErrEmptyName = errors.New("item name must not be empty")

// Descriptor is one incoming item in a merge batch. On the wire it is either a
// bare JSON string (the item name, all defaults) or an object with name,
// quantity and unit. Both forms decode into this one canonical record.
type Descriptor struct {
	Name     string
	Quantity *float64 // nil when the client did not supply one.
	Unit     string
}

// descriptorJSON mirrors the structured wire form of a Descriptor.
type descriptorJSON struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
}

// UnmarshalJSON accepts both the bare-name and the structured form.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return errors.Wrap(err, "failed to decode item name")
		}
		*d = Descriptor{Name: name}

		return nil
	}

	var obj descriptorJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Wrap(err, "failed to decode item descriptor")
	}
	*d = Descriptor{Name: obj.Name, Quantity: obj.Quantity, Unit: obj.Unit}

	return nil
}

// Conflict reports a descriptor whose name matched an existing item but whose
// unit did not.
type Conflict struct {
	Name         string `json:"name"`
	ExistingUnit string `json:"existingUnit"`
	IncomingUnit string `json:"incomingUnit"`
}

// Key returns the comparison form of an item name: trimmed and lowercased.
// Stored names keep their original casing.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// normalize converts a descriptor into a canonical item. A non-positive
// supplied quantity signals "already have it": the item starts completed and
// the quantity falls back to 1.
func normalize(d Descriptor) (entity.Item, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return entity.Item{}, ErrEmptyName
	}

	item := entity.Item{
		ID:       uuid.New(),
		Name:     name,
		Quantity: 1,
		Unit:     entity.DefaultUnit,
	}

	if d.Quantity != nil {
		if *d.Quantity > 0 {
			item.Quantity = *d.Quantity
		} else {
			item.Completed = true
		}
	}
	if unit := strings.TrimSpace(d.Unit); unit != "" {
		item.Unit = unit
	}

	return item, nil
}

// NormalizeAll converts a full batch of descriptors, failing on the first
// invalid one. Used when creating a list, where no existing items can
// conflict but duplicates within the batch must still collapse.
func NormalizeAll(descriptors []Descriptor) ([]entity.Item, []Conflict, error) {
	return Merge(nil, descriptors)
}

// Merge computes the reconciliation of incoming descriptors against the
// current items of a list. It returns either the fully merged item set or the
// complete conflict report, never both. The input slice is not mutated.
func Merge(existing []entity.Item, incoming []Descriptor) ([]entity.Item, []Conflict, error) {
	merged := make([]entity.Item, len(existing))
	copy(merged, existing)

	var conflicts []Conflict

	for _, d := range incoming {
		item, err := normalize(d)
		if err != nil {
			return nil, nil, err
		}

		key := Key(item.Name)
		matched := false
		for i := range merged {
			if Key(merged[i].Name) != key {
				continue
			}
			matched = true
			if merged[i].Unit == item.Unit {
				// Accumulate; the existing completion flag is left untouched.
				merged[i].Quantity += item.Quantity
			} else {
				conflicts = append(conflicts, Conflict{
					Name:         merged[i].Name,
					ExistingUnit: merged[i].Unit,
					IncomingUnit: item.Unit,
				})
			}

			break
		}

		if !matched {
			merged = append(merged, item)
		}
	}

	// All-or-nothing: any conflict discards the accumulated mutations.
	if len(conflicts) > 0 {
		return nil, conflicts, nil
	}

	return merged, nil, nil
}

// FindDuplicateName scans an item set for two entries sharing a normalized
// name, regardless of unit. It backs the independent save-time guard.
func FindDuplicateName(items []entity.Item) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := Key(item.Name)
		if _, ok := seen[key]; ok {
			return item.Name, true
		}
		seen[key] = struct{}{}
	}

	return "", false
}

// NameTakenByOther reports whether any item other than selfID already uses the
// given name, compared case-insensitively. Used by single-item renames.
func NameTakenByOther(items []entity.Item, selfID uuid.UUID, name string) bool {
	key := Key(name)
	for _, item := range items {
		if item.ID != selfID && Key(item.Name) == key {
			return true
		}
	}

	return false
}
