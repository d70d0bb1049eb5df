package smiles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntaxErrorMessage(t *testing.T) {
	err := newSyntaxError(4, "unexpected %q", 'x')
	require.Contains(t, err.Error(), "syntax error at 4")
	require.Contains(t, err.Error(), "unexpected")
}

func TestSemanticErrorIsDistinguishableFromSyntaxError(t *testing.T) {
	var se *SemanticError
	err := error(newSemanticError(1, "bad primitive"))
	require.True(t, errors.As(err, &se))

	var sy *SyntaxError
	require.False(t, errors.As(err, &sy))
}

func TestStereoErrorIsDistinguishable(t *testing.T) {
	var st *StereoError
	err := error(newStereoError(2, "ring closure direction mismatch"))
	require.True(t, errors.As(err, &st))
}
