package ir

// Kind identifies the construct a tree node represents. The set is closed:
// producers and passes agree on these tags, and dumps render them verbatim.
type Kind uint8

const (
	// KindDocument is the root of a parsed document.
	KindDocument Kind = iota
	// KindNamespace is a namespace declaration wrapping the generated types.
	KindNamespace
	// KindClass is a class declaration subtree.
	KindClass
	// KindMethod is a render-method declaration.
	KindMethod
	// KindField is a field declaration. The design-time lowering pass
	// synthesizes one such node per class.
	KindField
	// KindMarkup is a literal markup region.
	KindMarkup
	// KindExpression is an inline expression region.
	KindExpression
	// KindStatement is a code statement region.
	KindStatement
	// KindDirective is a whole directive construct.
	KindDirective
	// KindDirectiveToken is a single directive operand.
	KindDirectiveToken
	// KindDirectiveHolder collects hoisted directive tokens during
	// design-time lowering.
	KindDirectiveHolder
	// KindToken tags terminal nodes.
	KindToken
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindNamespace:
		return "Namespace"
	case KindClass:
		return "Class"
	case KindMethod:
		return "Method"
	case KindField:
		return "Field"
	case KindMarkup:
		return "Markup"
	case KindExpression:
		return "Expression"
	case KindStatement:
		return "Statement"
	case KindDirective:
		return "Directive"
	case KindDirectiveToken:
		return "DirectiveToken"
	case KindDirectiveHolder:
		return "DirectiveHolder"
	case KindToken:
		return "Token"
	}
	return "Unknown"
}

var kindByName = map[string]Kind{
	"Document":        KindDocument,
	"Namespace":       KindNamespace,
	"Class":           KindClass,
	"Method":          KindMethod,
	"Field":           KindField,
	"Markup":          KindMarkup,
	"Expression":      KindExpression,
	"Statement":       KindStatement,
	"Directive":       KindDirective,
	"DirectiveToken":  KindDirectiveToken,
	"DirectiveHolder": KindDirectiveHolder,
	"Token":           KindToken,
}

// ParseKind maps a dump-form kind name back to its tag.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindByName[name]
	return k, ok
}
