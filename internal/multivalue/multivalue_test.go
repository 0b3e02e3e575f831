package multivalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_SeparatorPrecedence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"no separator", "Daft Punk", []string{"Daft Punk"}},
		{"semicolon", "A;B;C", []string{"A", "B", "C"}},
		{"slash", "A/B/C", []string{"A", "B", "C"}},
		{"double slash wins over single", "AC/DC//Queen", []string{"AC/DC", "Queen"}},
		{"slash wins over semicolon", "A/B;C", []string{"A", "B;C"}},
		{"backslash", `A\B`, []string{"A", "B"}},
		{"double backslash", `A\\B\C`, []string{"A", `B\C`}},
		{"semicolon wins over comma", "Crosby, Stills; Nash", []string{"Crosby, Stills", "Nash"}},
		{"comma", "A, B ,C", []string{"A", "B", "C"}},
		{"runs collapse", "A;;;B", []string{"A", "B"}},
		{"triple slash", "A///B", []string{"A", "B"}},
		{"trims whitespace", "  A ;  B  ", []string{"A", "B"}},
		{"only separators", ";;", nil},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestReconcile(t *testing.T) {
	// Separate entries are never split further.
	assert.Equal(t, []string{"A;B", "C"}, Reconcile([]string{"A;B", "C"}))

	// Three entries and one joined entry agree.
	separate := Reconcile([]string{"Alpha", "Beta", "Gamma"})
	assert.Equal(t, separate, Reconcile([]string{"Alpha;Beta;Gamma"}))
	assert.Equal(t, separate, Reconcile([]string{"Alpha/Beta/Gamma"}))

	assert.Equal(t, []string{"Solo"}, Reconcile([]string{"Solo"}))
	assert.Nil(t, Reconcile(nil))
	assert.Nil(t, Reconcile([]string{" ", ""}))
	assert.Equal(t, []string{"A", "B"}, Reconcile([]string{"A", " ", "B"}))
}

func TestFirst(t *testing.T) {
	assert.Equal(t, "one", First([]string{"one", "two"}))
	assert.Equal(t, "", First(nil))
	assert.Equal(t, "", First([]string{"  ", "two"}))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "A; B", Join([]string{"A", "B"}))
	assert.Equal(t, Split(Join([]string{"A", "B", "C"})), []string{"A", "B", "C"})
}
