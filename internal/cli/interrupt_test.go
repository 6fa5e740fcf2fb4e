package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	handler := NewInterruptHandler(nil, "Seed import", "")
	assert.NotNil(t, handler.writer)
	assert.False(t, handler.WasInterrupted())
}

func TestInterrupt_CancelsContextOnce(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Seed import", "Records created so far were kept.")

	ctx, stop := handler.HandleInterrupts(context.Background())
	defer stop()
	select {
	case <-ctx.Done():
		t.Fatal("Context should not be canceled initially")
	default:
	}

	handler.interrupt()
	handler.interrupt()

	<-ctx.Done()
	assert.True(t, handler.WasInterrupted())

	out := output.String()
	assert.Equal(t, 1, strings.Count(out, "Seed import interrupted!"))
	assert.Contains(t, out, "Records created so far were kept.")
}

func TestInterrupt_ParentCancelIsNotAnInterrupt(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Seed import", "")

	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := handler.HandleInterrupts(parent)
	defer stop()
	cancel()

	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestInterrupt_StopIsNotAnInterrupt(t *testing.T) {
	handler := NewInterruptHandler(&syncBuffer{}, "Seed import", "")

	ctx, stop := handler.HandleInterrupts(context.Background())
	stop()

	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
}

func TestShowInterruptMessage_WithoutHint(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output, "Import", "")

	handler.showInterruptMessage()

	assert.Contains(t, output.String(), "Import interrupted!")
	assert.NotContains(t, output.String(), InfoIcon)
}
