package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

// Command is a named action taking positional arguments, optionally opening sub commands.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Func wraps fn, which must return nothing or an error.
// Its parameters are parsed from the arguments following the command name.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)

	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	numRets := fnValue.Type().NumOut()
	if numRets >= 2 {
		panic(fmt.Errorf("must return 0 or 1 value"))
	}
	if numRets == 1 && fnValue.Type().Out(0) != errorType {
		panic(fmt.Errorf("must return error"))
	}

	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}

// argHints names the parameters of the command by type.
func (c *Command) argHints() []string {
	if !c.Func.IsValid() {
		return nil
	}
	t := c.Func.Type()
	ret := make([]string, 0, t.NumIn())
	for i := range t.NumIn() {
		name := strings.ToLower(t.In(i).Name())
		if name == "" {
			name = t.In(i).Kind().String()
		}
		ret = append(ret, "<"+name+">")
	}
	return ret
}
