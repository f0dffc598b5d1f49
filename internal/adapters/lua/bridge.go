package lua

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"enhancements/internal/domain"
)

// ToGoValue converts lv to plain Go values: bool, int64, float64, string,
// []any for sequences and map[string]any for other tables. Functions and
// cyclic references become nil.
func ToGoValue(lv lua.LValue) any {
	return toGo(lv, map[*lua.LTable]bool{})
}

func toGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGo(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = strconv.FormatFloat(float64(kv), 'f', -1, 64)
		default:
			key = k.String()
		}
		m[key] = toGo(v, visited)
	})
	return m
}

// ToLuaValue converts JSON-shaped Go values into Lua values.
func ToLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case json.Number:
		f, _ := val.Float64()
		return lua.LNumber(f)
	case string:
		return lua.LString(val)
	case []string:
		t := L.CreateTable(len(val), 0)
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	case []any:
		t := L.CreateTable(len(val), 0)
		for _, item := range val {
			t.Append(ToLuaValue(L, item))
		}
		return t
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := L.CreateTable(0, len(val))
		for _, k := range keys {
			t.RawSetString(k, ToLuaValue(L, val[k]))
		}
		return t
	case domain.ActionConfig:
		return ToLuaValue(L, map[string]any(val))
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

// CodeTable converts a descriptor to {text=, file_path=, offset=}, or nil.
func CodeTable(L *lua.LState, code *domain.CodeBlockDescriptor) lua.LValue {
	if code == nil {
		return lua.LNil
	}
	t := L.CreateTable(0, 3)
	t.RawSetString("text", lua.LString(code.Text))
	t.RawSetString("file_path", lua.LString(code.FilePath))
	t.RawSetString("offset", lua.LNumber(code.Offset))
	return t
}

// codeFromTable is the inverse of CodeTable; nil and non-tables yield nil.
func codeFromTable(lv lua.LValue) *domain.CodeBlockDescriptor {
	t, ok := lv.(*lua.LTable)
	if !ok {
		return nil
	}
	code := &domain.CodeBlockDescriptor{}
	if s, ok := t.RawGetString("text").(lua.LString); ok {
		code.Text = string(s)
	}
	if s, ok := t.RawGetString("file_path").(lua.LString); ok {
		code.FilePath = string(s)
	}
	if n, ok := t.RawGetString("offset").(lua.LNumber); ok {
		code.Offset = int(n)
	}
	return code
}
