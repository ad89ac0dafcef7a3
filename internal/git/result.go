package git

// Mode controls how a non-zero exit is reported by Execute.
type Mode int

const (
	// MustSucceed returns a *command.ProcessError for a non-zero exit.
	MustSucceed Mode = iota
	// BestEffort swallows a non-zero exit and reports Result.OK == false.
	BestEffort
)

func (m Mode) String() string {
	if m == BestEffort {
		return "best-effort"
	}
	return "must-succeed"
}

// Output is the value of a successful command: either empty or some text.
type Output struct {
	text    string
	hasText bool
}

// EmptyOutput is a success that printed nothing.
func EmptyOutput() Output {
	return Output{}
}

// TextOutput is a success that printed s. An empty s yields EmptyOutput.
func TextOutput(s string) Output {
	if s == "" {
		return EmptyOutput()
	}
	return Output{text: s, hasText: true}
}

// IsEmpty reports whether the command succeeded without printing anything.
func (o Output) IsEmpty() bool {
	return !o.hasText
}

// Text returns the trimmed standard output, "" for an empty output.
func (o Output) Text() string {
	return o.text
}

func (o Output) String() string {
	if o.IsEmpty() {
		return "<empty>"
	}
	return o.text
}

// Result is what Execute returns when no error is raised.
type Result struct {
	Output Output
	// OK is false only in BestEffort mode when the command exited non-zero.
	OK bool
	// ExitCode of the swallowed failure when OK is false.
	ExitCode int
}
