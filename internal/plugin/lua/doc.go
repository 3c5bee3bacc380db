// Package lua runs user scripts that register abbreviations.
//
// A script sees a global `abbrev` module:
//
//	abbrev.add("btw", "by the way")
//	abbrev.remove("teh")
//	local exp = abbrev.get("btw")   -- nil when absent
//	for k, v in pairs(abbrev.list()) do print(k, v) end
//	print(abbrev.count())
//
// Changes are staged on a copy of the current table and published to the
// Store only when the script finishes without error, so a failing script
// leaves the live table untouched.
//
// Scripts run sandboxed: only the base, table, string and math libraries
// are opened, file-loading functions are removed, and print goes to the
// logger. Execution is bounded by a timeout.
package lua
