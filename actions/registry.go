package actions

// Executor is the interface for action execution
type Executor interface {
	Execute(args map[string]interface{}) (string, error)
}

// ExecutorFunc adapts a plain function to the Executor interface
type ExecutorFunc func(args map[string]interface{}) (string, error)

// Execute implements Executor
func (f ExecutorFunc) Execute(args map[string]interface{}) (string, error) {
	return f(args)
}

// Registry maps action names to their specs and executors
type Registry struct {
	specs     map[string]Spec
	executors map[string]Executor
}

// NewRegistry creates an empty action registry
func NewRegistry() *Registry {
	return &Registry{
		specs:     make(map[string]Spec),
		executors: make(map[string]Executor),
	}
}

// Register adds an action to the registry
func (r *Registry) Register(name string, spec Spec, executor Executor) {
	r.specs[name] = spec
	r.executors[name] = executor
}

// Schema returns the argument contracts of all registered actions
func (r *Registry) Schema() map[string]Spec {
	schema := make(map[string]Spec, len(r.specs))
	for name, spec := range r.specs {
		schema[name] = spec
	}
	return schema
}

// Has reports whether an action is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.executors[name]
	return ok
}

// Execute runs a registered action and returns its user-facing result string
func (r *Registry) Execute(name string, args map[string]interface{}) (string, error) {
	executor, exists := r.executors[name]
	if !exists {
		return "", &ActionError{Message: "Unknown action: " + name}
	}
	return executor.Execute(args)
}

// ActionError represents an action execution error
type ActionError struct {
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

// Helper to get a string argument, tolerating absent keys
func GetString(args map[string]interface{}, key string) (string, bool) {
	val, exists := args[key]
	if !exists {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// Helper to get an int argument. JSON numbers arrive as float64.
func GetInt(args map[string]interface{}, key string) (int, bool) {
	val, exists := args[key]
	if !exists {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
