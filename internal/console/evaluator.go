package console

// Result is what an evaluator reports for one pushed line.
type Result struct {
	// Incomplete means more lines are needed before the statement can run.
	Incomplete bool
	Output     string
	HasOutput  bool
}

// Output builds a complete result carrying text.
func Output(text string) Result {
	return Result{Output: text, HasOutput: true}
}

// Evaluator runs console input. Push receives one line at a time and
// buffers it until the statement is complete.
type Evaluator interface {
	Push(line string) Result
}

// Resetter is implemented by evaluators that can drop buffered lines.
type Resetter interface {
	Reset()
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(line string) Result

func (f EvaluatorFunc) Push(line string) Result {
	return f(line)
}
