package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestInheritor_Inherit(t *testing.T) {
	parentDoc := `
            Args:
                w
                x: int
                *args: int
                y: float
                **kwargs: int
            `
	childDoc := `
            Args:
                xx: int
            `

	var warnings []Warning
	in := NewInheritor(Google, 0, func(w Warning) { warnings = append(warnings, w) })

	got, ok := in.Inherit(strptr(parentDoc), Unit{
		Name: "Child.method",
		File: "pkg/child.py",
		Doc:  strptr(childDoc),
		Signature: Signature{
			Args:     []string{"self", "xx", "x"},
			Varargs:  "args",
			KwOnly:   []string{"yy", "y"},
			Varkw:    "kwargs",
			DropSelf: true,
		},
	})
	require.True(t, ok)
	assert.Equal(t, "\nArgs:\n    xx: int\n    x: int\n    *args: int\n    yy: The description is missing.\n    y: float\n    **kwargs: int", got)

	require.Len(t, warnings, 1)
	assert.Equal(t, Warning{
		File:    "pkg/child.py",
		Unit:    "Child.method",
		Section: "Args",
		Message: "The docstring for the argument 'yy' is missing.",
	}, warnings[0])
	assert.Equal(t, "File pkg/child.py: Function Child.method: Section Args: The docstring for the argument 'yy' is missing.", warnings[0].String())
}

func TestInheritor_Numpy(t *testing.T) {
	parentDoc := `Parent summary.

    Parameters
    ----------
    x : int
        The x.

    Returns
    -------
    int
        The result.
    `
	in := NewInheritor(Numpy, 0, nil)

	got, ok := in.Inherit(strptr(parentDoc), Unit{Signature: Signature{Args: []string{"self", "x"}, DropSelf: true}})
	require.True(t, ok)
	assert.Equal(t, "Parent summary.\n\nParameters\n----------\nx : int\n    The x.\n\nReturns\n-------\nint\n    The result.", got)
}

func TestInheritor_NoParent(t *testing.T) {
	in := NewInheritor(Google, 0, nil)

	got, ok := in.Inherit(nil, Unit{Doc: strptr("  Own docstring.\n")})
	assert.False(t, ok)
	assert.Equal(t, "  Own docstring.\n", got)

	got, ok = in.Inherit(nil, Unit{})
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestInheritor_EmptyParent(t *testing.T) {
	in := NewInheritor(Google, 0, nil)

	got, ok := in.Inherit(strptr(""), Unit{Doc: strptr("Summary.")})
	require.True(t, ok)
	assert.Equal(t, "Summary.", got)
}

func TestInheritor_BlankChild(t *testing.T) {
	in := NewInheritor(Google, 0, nil)

	got, ok := in.Inherit(strptr("Parent summary.\n\nReturns:\n    int.\n"), Unit{Doc: strptr("   \n    ")})
	require.True(t, ok)
	assert.Equal(t, "Parent summary.\n\nReturns:\n    int.", got)
}

func TestInheritor_SimilarityWarning(t *testing.T) {
	var warnings []Warning
	in := NewInheritor(Google, 0.5, func(w Warning) { warnings = append(warnings, w) })

	_, ok := in.Inherit(strptr("Summary."), Unit{Name: "f", File: "f.py", Doc: strptr("Summary.")})
	require.True(t, ok)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Summary", warnings[0].Section)
	assert.Contains(t, warnings[0].Message, "similarity ratio of 1")
}
