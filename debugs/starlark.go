package debugs

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/reusee/smachine/insns"
	"github.com/reusee/smachine/machines"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case bool:
		return starlark.Bool(v)
	case string:
		return starlark.String(v)
	case int:
		return starlark.MakeInt(v)
	case uint64:
		return starlark.MakeUint64(v)

	case insns.Name:
		return starlark.String(v.String())
	case insns.Instruction:
		return starlark.String(v.String())

	case map[insns.Name]uint64:
		// sorted for stable printing
		names := make([]insns.Name, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		slices.SortFunc(names, func(a, b insns.Name) int {
			return cmp.Or(
				cmp.Compare(a.Invocation, b.Invocation),
				strings.Compare(a.Base, b.Base),
			)
		})
		d := starlark.NewDict(len(v))
		for _, name := range names {
			d.SetKey(starlark.String(name.String()), starlark.MakeUint64(v[name]))
		}
		return d

	case machines.Snapshot:
		d := starlark.NewDict(3)
		d.SetKey(starlark.String("pc"), starlark.MakeInt(v.PC))
		d.SetKey(starlark.String("steps"), starlark.MakeInt(v.Steps))
		d.SetKey(starlark.String("vars"), toStarlarkValue(v.Variables))
		return d

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}
