package listing

// Context identifies which surface is rendering a row.
type Context string

const (
	ContextPublic Context = "public"
	ContextEditor Context = "editor"
)

// Row-action visibility is a fixed lookup on (context, target). It is not a
// permission check; permissions are enforced at the dispatcher boundary
// before any operation runs.
var rowActions = map[Context]map[string][]string{
	ContextPublic: {
		"article": {"read"},
		"slug":    {"read"},
	},
	ContextEditor: {
		"article": {"update", "validate", "ship", "delete"},
		"slug":    {"read", "update"},
	},
}

// Actions returns the action buttons shown for a target in a context. Unknown
// pairs get no buttons.
func Actions(ctx Context, target string) []string {
	actions, ok := rowActions[ctx][target]
	if !ok {
		return nil
	}
	out := make([]string, len(actions))
	copy(out, actions)
	return out
}
