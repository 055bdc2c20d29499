package docstring

// Signature is the parameter shape of a callable.
type Signature struct {
	// Args are the positional parameters, positional-only included.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
	// Varargs is the name of the *args parameter, if any.
	Varargs string `json:"varargs,omitempty" yaml:"varargs,omitempty"`
	// KwOnly are the keyword-only parameters.
	KwOnly []string `json:"kwonly,omitempty" yaml:"kwonly,omitempty"`
	// Varkw is the name of the **kwargs parameter, if any.
	Varkw string `json:"varkw,omitempty" yaml:"varkw,omitempty"`
	// DropSelf drops the first positional parameter, the instance reference.
	DropSelf bool `json:"drop_self,omitempty" yaml:"drop_self,omitempty"`
}

// ArgumentNames returns the names an arguments section must document, in
// order: positional parameters, "*varargs", keyword-only parameters,
// "**varkw".
func (s Signature) ArgumentNames() []string {
	args := s.Args
	if s.DropSelf && len(args) > 0 {
		args = args[1:]
	}

	names := make([]string, 0, len(args)+len(s.KwOnly)+2)
	names = append(names, args...)
	if s.Varargs != "" {
		names = append(names, "*"+s.Varargs)
	}
	names = append(names, s.KwOnly...)
	if s.Varkw != "" {
		names = append(names, "**"+s.Varkw)
	}
	return names
}

// IsEmpty reports whether the callable takes no documented argument.
func (s Signature) IsEmpty() bool {
	return len(s.ArgumentNames()) == 0
}
