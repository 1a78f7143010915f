package ecs

import (
	"reflect"
	"slices"
	"strings"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype represents a unique combination of component types.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentColumn
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](16),
	}
	for idx, typ := range types {
		a.columns[idx] = registry.newColumn(typ)
	}
	return a
}

// spawn appends one component per column. components must match a.types
// one to one, in any order.
func (a *Archetype) spawn(components []any) uint32 {
	index := -1
	for idx, typ := range a.types {
		var comp any
		for _, c := range components {
			if componentType(c) == typ {
				comp = c
				break
			}
		}
		if comp == nil {
			panic("missing component " + typ.String() + " for archetype")
		}
		pos := a.columns[idx].Append(comp)
		if index != -1 && pos != index {
			panic("archetype columns out of step")
		}
		index = pos
	}
	return uint32(index)
}

func (a *Archetype) column(compType reflect.Type) componentColumn {
	for i, typ := range a.types {
		if typ == compType {
			return a.columns[i]
		}
	}
	return nil
}

// GetComponent returns a pointer to the component of the given type for the
// entity at entityIndex, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	col := a.column(compType)
	if col == nil {
		return nil
	}
	return col.Get(int(entityIndex))
}

// delete removes an entity's components and invalidates its EntityRef.
func (a *Archetype) delete(entityIndex uint32) bool {
	if len(a.columns) == 0 || !a.columns[0].Has(int(entityIndex)) {
		return false
	}

	entityId := NewEntityId(a.id, entityIndex)
	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, col := range a.columns {
		col.Delete(int(entityIndex))
	}
	return true
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Iter returns an iterator over all live EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// signature builds the lookup key for a sorted type set.
func signature(types []reflect.Type) string {
	var sb strings.Builder
	for i, t := range types {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(t.PkgPath())
		sb.WriteByte('.')
		sb.WriteString(t.String())
	}
	return sb.String()
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}
