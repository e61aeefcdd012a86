package ir

// AnnotationKind keys the auxiliary metadata attachable to a node.
// A node carries at most one annotation per kind.
type AnnotationKind uint8

const (
	// AnnSpanContext pairs a node with the code-generation strategy and
	// edit behavior of the span it was produced from. See SpanContext.
	AnnSpanContext AnnotationKind = iota
	// AnnPrimaryNamespace marks the namespace declaration code generation
	// writes into.
	AnnPrimaryNamespace
	// AnnPrimaryClass marks the class declaration code generation
	// writes into.
	AnnPrimaryClass
	// AnnPrimaryMethod marks the render method code generation writes into.
	AnnPrimaryMethod
)

func (k AnnotationKind) String() string {
	switch k {
	case AnnSpanContext:
		return "SpanContext"
	case AnnPrimaryNamespace:
		return "PrimaryNamespace"
	case AnnPrimaryClass:
		return "PrimaryClass"
	case AnnPrimaryMethod:
		return "PrimaryMethod"
	}
	return "Unknown"
}

// Annotation is a (kind, payload) pair attached to a node. Marker
// annotations (the Primary* kinds) carry a nil payload; presence is the
// signal.
type Annotation struct {
	Kind AnnotationKind
	Data any
}

// FindAnnotation returns the first annotation of the given kind on n.
// Kinds are unique per node, so first match is the only match.
func FindAnnotation(n Node, kind AnnotationKind) (Annotation, bool) {
	for _, a := range n.Annotations() {
		if a.Kind == kind {
			return a, true
		}
	}
	return Annotation{}, false
}

// HasAnnotation reports whether n carries an annotation of the given kind.
func HasAnnotation(n Node, kind AnnotationKind) bool {
	_, ok := FindAnnotation(n, kind)
	return ok
}
