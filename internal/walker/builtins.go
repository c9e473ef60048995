package walker

// Builtins is the fixed set of Tcl built-in command names excluded
// from reference extraction — a command invocation
// naming one of these is language syntax, not a user-defined symbol.
var Builtins = map[string]bool{
	"set": true, "puts": true, "expr": true, "if": true, "else": true,
	"for": true, "foreach": true, "while": true, "switch": true,
	"proc": true, "return": true, "break": true, "continue": true,
	"catch": true, "try": true, "throw": true, "error": true,
	"list": true, "lindex": true, "llength": true, "lappend": true,
	"lsort": true, "lsearch": true, "lrange": true, "lreplace": true,
	"string": true, "regexp": true, "regsub": true, "split": true,
	"join": true, "array": true, "dict": true, "incr": true,
	"append": true, "open": true, "close": true, "read": true,
	"gets": true, "eof": true, "file": true, "glob": true, "cd": true,
	"pwd": true, "package": true, "namespace": true, "variable": true,
	"global": true, "upvar": true, "info": true, "rename": true,
	"interp": true, "source": true, "after": true, "update": true,
	"vwait": true,
}
