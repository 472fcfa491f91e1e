package scrape

// Result is the normalizer's return convention: either Data is set or Err
// holds a message. The normalizer never panics on malformed markup; callers
// pattern-match on OK instead of recovering.
type Result[T any] struct {
	Data T
	Err  string
}

func ok[T any](v T) Result[T] {
	return Result[T]{Data: v}
}

func fail[T any](msg string) Result[T] {
	return Result[T]{Err: msg}
}

// OK reports whether the extraction succeeded.
func (r Result[T]) OK() bool {
	return r.Err == ""
}
