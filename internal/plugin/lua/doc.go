// Package lua runs user-supplied input filters written in Lua.
//
// A filter script defines a global function:
//
//	function filter(text, current, max_length)
//	    return (text:gsub("%D", ""))   -- digits only
//	end
//
// The function receives the text about to be inserted, the current content
// and the maximum length (-1 when unbounded). It returns the text to insert
// instead; returning nil or false rejects the insertion.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table, string
// and math libraries are opened, and dofile, loadfile, load and loadstring
// are removed. Each call is bounded by a timeout.
//
// A Filter wraps a single LState and is not goroutine-safe beyond the
// mutex that serializes Apply calls.
package lua
