package testutil

// MockRunner records external tool invocations instead of executing them.
// It satisfies executor.Runner.
type MockRunner struct {
	// Calls holds one argument vector per invocation, tool name first
	Calls [][]string

	// Err is returned from every Run call
	Err error

	// OnRun, when set, decides the result per invocation
	OnRun func(name string, args []string) error
}

func (r *MockRunner) Run(name string, args ...string) error {
	call := append([]string{name}, args...)
	r.Calls = append(r.Calls, call)

	if r.OnRun != nil {
		return r.OnRun(name, args)
	}
	return r.Err
}
