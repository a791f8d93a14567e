package render

// Renderer prints a use case result to the console
type Renderer[T any] interface {
	Render(result T) error
}
