package handler

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"sure\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			assert.Equal(t, tt.want, p.Confirm("Delete?"))
			assert.Equal(t, "Delete? [y/N] ", out.String())
		})
	}
}

func TestAskEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("  last  "), io.Discard)

	got, err := p.Ask("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = p.Ask("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestCloseUnblocksPendingAsk(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	p := NewPrompter(pr, io.Discard)

	errc := make(chan error, 1)
	go func() {
		_, err := p.Ask("> ")
		errc <- err
	}()

	p.Close()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrInterrupted)
	case <-time.After(2 * time.Second):
		t.Fatal("Ask still blocked after Close")
	}
	assert.False(t, p.Confirm("Delete?"))
}
