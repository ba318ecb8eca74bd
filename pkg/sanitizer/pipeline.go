package sanitizer

// Step is a single string transformation.
type Step func(string) string

// Chain returns a Step that runs steps from left to right.
// Nil steps are skipped.
func Chain(steps ...Step) Step {
	return func(s string) string {
		for _, step := range steps {
			if step != nil {
				s = step(s)
			}
		}
		return s
	}
}
