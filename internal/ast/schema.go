package ast

// FieldType is the declared type of a schema field. The two "tcl_*"
// variants exist only to accommodate the external parser's quirks
// and are not otherwise distinct from their plain
// counterparts.
type FieldType int

const (
	TString FieldType = iota
	TNumber
	TBoolean
	TArray
	TObject
	TAny
	TTclBoolean
	TTclArray
)

// FieldSpec describes one field a node kind may or must carry.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
}

// NodeSchema is the expected shape of a single node kind.
type NodeSchema struct {
	Kind   NodeKind
	Fields []FieldSpec
}

// Schema is the full set of known node kinds, keyed by kind name: the
// required-node-kinds table and the parser's output-field contract,
// merged into one source of truth.
var Schema = map[NodeKind]NodeSchema{
	KindRoot: {KindRoot, []FieldSpec{
		{"children", TArray, true},
		{"had_error", TTclBoolean, false},
		{"errors", TArray, false},
	}},
	KindProc: {KindProc, []FieldSpec{
		{"name", TString, true},
		{"params", TArray, true},
		{"body", TObject, true},
	}},
	KindSet: {KindSet, []FieldSpec{
		{"var_name", TString, true},
		{"value", TAny, true},
	}},
	KindVariable: {KindVariable, []FieldSpec{
		{"name", TString, true},
	}},
	KindGlobal: {KindGlobal, []FieldSpec{
		{"vars", TTclArray, true},
	}},
	KindUpvar: {KindUpvar, []FieldSpec{
		{"level", TString, true},
		{"other_var", TString, true},
		{"local_var", TString, false},
	}},
	KindArray: {KindArray, []FieldSpec{
		{"name", TString, false},
	}},
	KindIf: {KindIf, []FieldSpec{
		{"condition", TString, true},
		{"then_body", TObject, true},
		{"else_body", TObject, false},
		{"elseif_branches", TArray, false},
	}},
	KindWhile: {KindWhile, []FieldSpec{
		{"condition", TString, true},
		{"body", TObject, true},
	}},
	KindFor: {KindFor, []FieldSpec{
		{"body", TObject, true},
	}},
	KindForeach: {KindForeach, []FieldSpec{
		{"body", TObject, true},
	}},
	KindSwitch: {KindSwitch, []FieldSpec{
		{"expression", TString, true},
		{"cases", TArray, true},
	}},
	KindNamespaceEval: {KindNamespaceEval, []FieldSpec{
		{"name", TString, true},
		{"body", TObject, true},
	}},
	KindNamespaceImport: {KindNamespaceImport, []FieldSpec{
		{"imports", TTclArray, false},
	}},
	KindNamespaceExport: {KindNamespaceExport, []FieldSpec{
		{"exports", TTclArray, true},
	}},
	KindPackageRequire: {KindPackageRequire, []FieldSpec{
		{"package_name", TString, true},
		{"version", TString, false},
	}},
	KindPackageProvide: {KindPackageProvide, []FieldSpec{
		{"package_name", TString, true},
		{"version", TString, false},
	}},
	KindSource: {KindSource, []FieldSpec{
		{"path", TString, false},
	}},
	KindExpr: {KindExpr, []FieldSpec{
		{"text", TString, false},
	}},
	KindList: {KindList, []FieldSpec{
		{"children", TArray, false},
	}},
	KindLappend: {KindLappend, []FieldSpec{
		{"var_name", TString, false},
	}},
	KindPuts: {KindPuts, []FieldSpec{}},
	KindError: {KindError, []FieldSpec{
		{"message", TString, false},
	}},
	KindCommand: {KindCommand, []FieldSpec{
		{"name", TAny, true},
		{"args", TArray, false},
	}},
	KindCommandSubst: {KindCommandSubst, []FieldSpec{
		{"command", TAny, true},
	}},
	KindInterpAlias: {KindInterpAlias, []FieldSpec{
		{"alias", TString, true},
		{"target", TString, true},
	}},
}
