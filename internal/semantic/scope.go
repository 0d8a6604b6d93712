package semantic

import (
	"reflect"

	"modernc.org/cc/v4"
)

// injectedFunc is the name of the identifier the parser declares at the top
// of every function body.
const injectedFunc = "__func__"

var tokenType = reflect.TypeOf(cc.Token{})

type symbol struct {
	name   string
	line   int
	uses   int
	param  bool
	extern bool
}

type use struct {
	name string
	line int
}

// scopeWalker visits a parsed translation unit in source order. It records
// the variables declared in one source per block scope and resolves every
// identifier use against them.
type scopeWalker struct {
	filename string

	scopes     []map[string]*symbol
	symbols    []*symbol
	unresolved []use

	// prototype counts the enclosing parameter lists that belong to a
	// declaration rather than to a function definition.
	prototype int
	extern    bool
	param     bool
}

func newScopeWalker(filename string) *scopeWalker {
	return &scopeWalker{
		filename: filename,
		scopes:   []map[string]*symbol{{}},
	}
}

func (w *scopeWalker) push() {
	w.scopes = append(w.scopes, map[string]*symbol{})
}

func (w *scopeWalker) pop() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

func (w *scopeWalker) walk(n cc.Node) {
	if isNil(n) {
		return
	}

	switch x := n.(type) {
	case *cc.FunctionDefinition:
		w.function(x.Declarator, x.DeclarationList, x.CompoundStatement)
		return
	case *cc.BlockItem:
		if x.Case == cc.BlockItemFuncDef {
			w.function(x.Declarator, nil, x.CompoundStatement)
			return
		}
	case *cc.CompoundStatement:
		w.push()
		defer w.pop()
	case *cc.IterationStatement:
		if x.Case == cc.IterationStatementForDecl {
			w.push()
			defer w.pop()
		}
	case *cc.StructDeclaration:
		// members are not variables
		return
	case *cc.Declaration:
		defer func(extern bool) { w.extern = extern }(w.extern)
		w.extern = hasExtern(x.DeclarationSpecifiers)
	case *cc.ParameterTypeList:
		w.prototype++
		defer func() { w.prototype-- }()
	case *cc.Declarator:
		if w.prototype == 0 && !x.IsTypename() && !isFunction(x) {
			w.declare(x, w.param)
		}
	case *cc.PrimaryExpression:
		if x.Case == cc.PrimaryExpressionIdent {
			w.use(x.Token.SrcStr(), x.Token.Position().Line)
		}
	}
	w.children(n)
}

// children walks the exported node fields of n in declaration order, which
// for every node kind is the order of the source.
func (w *scopeWalker) children(n cc.Node) {
	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Type == tokenType {
			continue
		}
		if child, ok := v.Field(i).Interface().(cc.Node); ok {
			w.walk(child)
		}
	}
}

// function walks a function definition. Parameters and the body share one
// scope. The function name itself is not a variable.
func (w *scopeWalker) function(d *cc.Declarator, oldStyle *cc.DeclarationList, body *cc.CompoundStatement) {
	w.push()
	defer w.pop()

	if dd := d.DirectDeclarator; dd != nil && dd.Case == cc.DirectDeclaratorFuncParam && dd.ParameterTypeList != nil {
		for l := dd.ParameterTypeList.ParameterList; l != nil; l = l.ParameterList {
			if pd := l.ParameterDeclaration; pd != nil && pd.Declarator != nil {
				w.declare(pd.Declarator, true)
			}
		}
	}
	if oldStyle != nil {
		w.param = true
		w.walk(oldStyle)
		w.param = false
	}
	if body != nil {
		w.children(body)
	}
}

func (w *scopeWalker) declare(d *cc.Declarator, param bool) {
	name := d.Name()
	pos := d.NameTok().Position()
	if name == "" || name == injectedFunc || pos.Filename != w.filename {
		return
	}
	scope := w.scopes[len(w.scopes)-1]
	if _, exists := scope[name]; exists {
		return
	}
	sym := &symbol{name: name, line: pos.Line, param: param, extern: w.extern && !param}
	scope[name] = sym
	w.symbols = append(w.symbols, sym)
}

func (w *scopeWalker) use(name string, line int) {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if sym, ok := w.scopes[i][name]; ok {
			sym.uses++
			return
		}
	}
	w.unresolved = append(w.unresolved, use{name: name, line: line})
}

// laterDeclaration returns the first declaration of u's name below the use.
func (w *scopeWalker) laterDeclaration(u use) *symbol {
	for _, sym := range w.symbols {
		if sym.name == u.name && sym.line > u.line {
			return sym
		}
	}
	return nil
}

// isFunction reports whether d declares a function, as opposed to a
// pointer to one.
func isFunction(d *cc.Declarator) bool {
	dd := d.DirectDeclarator
	if dd == nil {
		return false
	}
	switch dd.Case {
	case cc.DirectDeclaratorFuncParam, cc.DirectDeclaratorFuncIdent:
		return dd.DirectDeclarator != nil && dd.DirectDeclarator.Case == cc.DirectDeclaratorIdent
	}
	return false
}

func hasExtern(ds *cc.DeclarationSpecifiers) bool {
	for ; ds != nil; ds = ds.DeclarationSpecifiers {
		if ds.Case == cc.DeclarationSpecifiersStorage && ds.StorageClassSpecifier != nil &&
			ds.StorageClassSpecifier.Case == cc.StorageClassSpecifierExtern {
			return true
		}
	}
	return false
}

func isNil(n cc.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
