package configtree

import (
	"fmt"
	"reflect"
)

// slot locates a node's value inside its parent's value.
type slot interface {
	get(parent reflect.Value) reflect.Value
	set(parent, v reflect.Value) error
}

type fieldSlot struct {
	index []int
}

func (s fieldSlot) get(parent reflect.Value) reflect.Value {
	parent = indirect(parent)
	if !parent.IsValid() || parent.Kind() != reflect.Struct {
		return reflect.Value{}
	}

	return parent.FieldByIndex(s.index)
}

func (s fieldSlot) set(parent, v reflect.Value) error {
	dst := s.get(parent)
	if !dst.IsValid() {
		return fmt.Errorf("%w: no struct to hold field", ErrDetached)
	}

	if !dst.CanSet() {
		return fmt.Errorf("field of %s is not settable", parent.Type())
	}

	return assign(dst, v)
}

type indexSlot struct {
	index int
}

func (s indexSlot) get(parent reflect.Value) reflect.Value {
	parent = indirect(parent)
	if !parent.IsValid() || s.index >= parent.Len() {
		return reflect.Value{}
	}

	return parent.Index(s.index)
}

func (s indexSlot) set(parent, v reflect.Value) error {
	dst := s.get(parent)
	if !dst.IsValid() {
		return fmt.Errorf("index %d out of range", s.index)
	}

	if !dst.CanSet() {
		return fmt.Errorf("element %d of %s is not settable", s.index, parent.Type())
	}

	return assign(dst, v)
}

type mapSlot struct {
	key reflect.Value
}

func (s mapSlot) get(parent reflect.Value) reflect.Value {
	parent = indirect(parent)
	if !parent.IsValid() || parent.IsNil() {
		return reflect.Value{}
	}

	return parent.MapIndex(s.key)
}

func (s mapSlot) set(parent, v reflect.Value) error {
	parent = indirect(parent)
	if !parent.IsValid() || parent.IsNil() {
		return fmt.Errorf("%w: nil map", ErrDetached)
	}

	elem := reflect.New(parent.Type().Elem()).Elem()
	if err := assign(elem, v); err != nil {
		return err
	}

	parent.SetMapIndex(s.key, elem)

	return nil
}

// assign stores v into dst, converting between named and underlying types
// where reflect allows it.
func assign(dst, v reflect.Value) error {
	if !v.IsValid() {
		dst.SetZero()

		return nil
	}

	switch {
	case v.Type().AssignableTo(dst.Type()):
		dst.Set(v)
	case v.Type().ConvertibleTo(dst.Type()) && convertible(v.Kind(), dst.Kind()):
		dst.Set(v.Convert(dst.Type()))
	default:
		return &ShapeError{Want: dst.Type().String(), Got: v.Type().String()}
	}

	return nil
}

// convertible rejects reflect conversions that change meaning, such as int
// to string.
func convertible(from, to reflect.Kind) bool {
	if from == to {
		return true
	}

	if from == reflect.String || to == reflect.String {
		return false
	}

	isFloat := from == reflect.Float32 || from == reflect.Float64

	return !isFloat || to == reflect.Float32 || to == reflect.Float64
}

// indirect dereferences pointers and interfaces until it reaches a concrete
// value. It returns the zero Value for nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}
