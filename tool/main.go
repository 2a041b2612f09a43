package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Package      string         `"package" @Ident ";"`
	Imports      []string       `("import" @String ";")*`
	Declarations []*Declaration `@@*`
}

type Field struct {
	Name  string   `@Ident`
	Slice string   `@("[" "]")?`
	Path  []string `@Ident ("." @Ident)*`
}

// Kind is the field type as written, such as "[]Expr" or "types.Position".
func (f *Field) Kind() string {
	return f.Slice + strings.Join(f.Path, ".")
}

type TCase struct {
	Name   string   `@Ident "of"`
	Kind   string   `(  (@Ident | @String | @RawString)`
	Fields []*Field ` | ("{" @@* "}") )`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Many  *[]TCase ` | ("|" (@@))*)`
	I     struct{} `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

// kindCode renders a field type, qualifying package-prefixed names with
// the matching import.
func kindCode(field *Field, imports map[string]string) *Statement {
	var elem *Statement
	if len(field.Path) == 2 && imports[field.Path[0]] != "" {
		elem = Qual(imports[field.Path[0]], field.Path[1])
	} else {
		elem = Id(strings.Join(field.Path, "."))
	}

	if field.Slice != "" {
		return Index().Add(elem)
	}
	return elem
}

func GenerateDecls(t *TypeDecls) string {
	f := NewFile(t.Package)
	f.HeaderComment("Code generated by adtgen. DO NOT EDIT.")

	imports := map[string]string{}
	for _, imp := range t.Imports {
		imports[path.Base(imp)] = imp
		f.ImportName(imp, path.Base(imp))
	}

	for _, decl := range t.Declarations {

		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(*decl.Plain)
		} else if decl.Many != nil {
			f.Type().Id(decl.Name).Interface(
				Id("is_" + decl.Name).Params(),
			)

			for _, it := range *decl.Many {
				switch {
				case it.Fields != nil:
					f.Type().Id(it.Name).StructFunc(func(g *Group) {
						for _, field := range it.Fields {
							g.Id(field.Name).Add(kindCode(field, imports))
						}
					})
				case t.IsSumType(it.Kind):
					f.Type().Id(it.Name).Struct(Id(it.Kind))
				default:
					f.Type().Id(it.Name).Id(it.Kind)
				}

				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
			}
		}
	}

	return fmt.Sprintf("%#v", f)
}

var parser = participle.MustBuild(&TypeDecls{})

func Parse(data []byte) (*TypeDecls, error) {
	ast := &TypeDecls{}
	err := parser.ParseBytes(data, ast)
	if err != nil {
		return nil, err
	}
	return ast, nil
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: adtgen <input.adt> <output.go>")
		os.Exit(2)
	}

	in := os.Args[1]
	out := os.Args[2]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast, err := Parse(inData)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(ast)), 0644)
	if err != nil {
		panic(err)
	}
}
