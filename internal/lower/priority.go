package lower

// Pass priorities. Lower runs first; gaps leave room for passes in
// between without renumbering.
const (
	// PriorityDocumentClassifier marks primary blocks before anything
	// else rearranges the tree.
	PriorityDocumentClassifier = 20
	// PriorityDesignTimeDirective restructures class declarations. Must
	// stay strictly below every pass that classifies or emits directive
	// tokens.
	PriorityDesignTimeDirective = 40
	// PriorityDirectiveClassifier attaches span contexts to directive
	// tokens and code regions.
	PriorityDirectiveClassifier = 60
)
