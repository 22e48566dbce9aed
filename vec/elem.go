package vec

import (
	"reflect"
	"unsafe"
)

// Dropper is implemented by elements that own resources beyond their memory. Containers call
// Drop once for every element they destroy; elements moved out to the caller are not dropped.
// T itself must carry the method: a value type whose Drop has a pointer receiver is not seen.
type Dropper interface {
	Drop()
}

// Cloner is implemented by elements that need more than a value copy to duplicate.
type Cloner[T any] interface {
	Clone() T
}

// DropElem calls Drop on x if T implements Dropper. Containers built outside this package use it
// to destroy the elements they own.
func DropElem[T any](x T) {
	if d, ok := any(x).(Dropper); ok {
		d.Drop()
	}
}

// CloneElem duplicates x through Cloner when T implements it, otherwise by value.
func CloneElem[T any](x T) T {
	if c, ok := any(x).(Cloner[T]); ok {
		return c.Clone()
	}
	return x
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

func elemAlign[T any]() uintptr {
	var zero T
	return unsafe.Alignof(zero)
}

// hasPointers reports whether values of t can hold pointers the collector must trace.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
