package modules

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// runLuaScript executes a module script in a fresh Lua state. The script
// reaches its descriptor through the global "module" table.
func runLuaScript(d *Descriptor, path string) error {
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("module", d.luaModule(L))

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("failed to execute %s: %w", path, err)
	}

	return nil
}

// luaModule builds the module.* API exposed to scripts
func (d *Descriptor) luaModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()

	L.SetField(mod, "name", lua.LString(d.name))
	L.SetField(mod, "baseDir", lua.LString(d.baseDir))

	// module.providePermission(name [, description])
	L.SetField(mod, "providePermission", L.NewFunction(func(L *lua.LState) int {
		if err := d.ProvidePermission(L.CheckString(1), L.OptString(2, "")); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}))

	// module.provideRestriction(name [, description])
	L.SetField(mod, "provideRestriction", L.NewFunction(func(L *lua.LState) int {
		if err := d.ProvideRestriction(L.CheckString(1), L.OptString(2, "")); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}))

	L.SetField(mod, "providesPermission", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(d.ProvidesPermission(L.CheckString(1))))
		return 1
	}))

	L.SetField(mod, "providesRestriction", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(d.ProvidesRestriction(L.CheckString(1))))
		return 1
	}))

	// module.addRoute(name, path, {controller = ..., action = ..., key = value})
	L.SetField(mod, "addRoute", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		route := Route{
			Path:   L.CheckString(2),
			Module: d.name,
		}

		if opts := L.OptTable(3, nil); opts != nil {
			opts.ForEach(func(k, v lua.LValue) {
				key, ok := k.(lua.LString)
				if !ok {
					return
				}
				switch string(key) {
				case "controller":
					route.Controller = v.String()
				case "action":
					route.Action = v.String()
				default:
					if route.Defaults == nil {
						route.Defaults = make(map[string]string)
					}
					route.Defaults[string(key)] = v.String()
				}
			})
		}

		d.AddRoute(name, route)
		return 0
	}))

	// module.provideHook(hook, key, implementation)
	L.SetField(mod, "provideHook", L.NewFunction(func(L *lua.LState) int {
		d.ProvideHook(L.CheckString(1), L.CheckString(2), L.CheckString(3))
		return 0
	}))

	L.SetField(mod, "log", L.NewFunction(func(L *lua.LState) int {
		d.log.Infof("[lua] %s", L.CheckString(1))
		return 0
	}))

	return mod
}
