package docstring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	path []string
	msg  string
}

func collect(out *[]emitted) EmitFunc {
	return func(path []string, msg string) {
		*out = append(*out, emitted{path: path, msg: msg})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("abc", "abc"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 0.9, Similarity("Some text.", "Some text!"), 1e-9)
}

func TestAuditor_Audit(t *testing.T) {
	parent := sectionsOf(
		SummaryKey, "Some text.",
		"Args", ItemsOf("x", ": The x value.", "y", ": The y value."),
		"Notes", "Completely different.",
	)
	child := sectionsOf(
		SummaryKey, "Some text!",
		"Args", ItemsOf("x", ": The x value.", "z", ": The z value."),
		"Notes", "Nothing alike here.",
	)

	t.Run("disabled", func(t *testing.T) {
		var got []emitted
		Auditor{}.Audit(Google, parent, child, collect(&got))
		assert.Empty(t, got)
	})

	t.Run("above threshold", func(t *testing.T) {
		var got []emitted
		Auditor{Threshold: 0.8}.Audit(Google, parent, child, collect(&got))
		require.Len(t, got, 2)

		assert.Equal(t, []string{"Summary"}, got[0].path)
		assert.Equal(t,
			"the docstrings have a similarity ratio of 0.9, the parent doc is\n    Some text.\nthe child doc is\n    Some text!",
			got[0].msg)

		assert.Equal(t, []string{"Args", "x"}, got[1].path)
		assert.True(t, strings.HasPrefix(got[1].msg, "the docstrings have a similarity ratio of 1,"))
	})

	t.Run("ratio equal to threshold is silent", func(t *testing.T) {
		var got []emitted
		Auditor{Threshold: 1}.Audit(Google, parent, child, collect(&got))
		assert.Empty(t, got)
	})

	t.Run("empty side", func(t *testing.T) {
		var got []emitted
		Auditor{Threshold: 0.1}.Audit(Google, NewSections(), child, collect(&got))
		Auditor{Threshold: 0.1}.Audit(Google, parent, nil, collect(&got))
		assert.Empty(t, got)
	})
}
