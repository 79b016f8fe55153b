package mailer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	calls      [][]Recipient
	failChunks map[int]error   // call index -> outright failure
	results    map[int]*BatchResult
}

func (f *fakeSender) SendBatch(ctx context.Context, recipients []Recipient, subject, htmlContent string) (*BatchResult, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, recipients)
	if err, ok := f.failChunks[idx]; ok {
		return nil, err
	}
	if r, ok := f.results[idx]; ok {
		return r, nil
	}
	return &BatchResult{Sent: len(recipients)}, nil
}

func newTestDispatcher(sender BatchSender) *Dispatcher {
	d := NewDispatcher(sender, nil)
	d.delay = time.Millisecond
	return d
}

func makeRecipients(n int) []Recipient {
	out := make([]Recipient, n)
	for i := range out {
		out[i] = Recipient{Email: fmt.Sprintf("r%d@example.com", i)}
	}
	return out
}

func TestDispatchChunkCount(t *testing.T) {
	tests := []struct {
		total  int
		chunks int
	}{
		{1, 1},
		{50, 1},
		{51, 2},
		{120, 3},
	}
	for _, tt := range tests {
		sender := &fakeSender{}
		d := newTestDispatcher(sender)

		result, err := d.Dispatch(context.Background(), makeRecipients(tt.total), "s", "<p>b</p>", nil)
		require.NoError(t, err)
		assert.Len(t, sender.calls, tt.chunks, "total=%d", tt.total)
		assert.Equal(t, tt.total, result.Success)
	}
}

func TestDispatchProgressIsIncreasingAndCapped(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)

	var progress []int
	_, err := d.Dispatch(context.Background(), makeRecipients(120), "s", "b", func(sent, total int) {
		assert.Equal(t, 120, total)
		progress = append(progress, sent)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{50, 100, 120}, progress)
}

func TestDispatchChunkFailureIsolation(t *testing.T) {
	sender := &fakeSender{failChunks: map[int]error{1: errors.New("provider down")}}
	d := newTestDispatcher(sender)

	result, err := d.Dispatch(context.Background(), makeRecipients(120), "s", "b", nil)
	require.NoError(t, err)

	// Chunk 2 (50 recipients) fails wholesale; chunks 1 and 3 go through.
	assert.Equal(t, 70, result.Success)
	assert.Equal(t, 50, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "provider down")
	assert.Len(t, sender.calls, 3)
}

func TestDispatchErrorCaps(t *testing.T) {
	// Every chunk reports 10 per-recipient errors; only 5 per chunk are kept
	// and the aggregate list stops at 50.
	manyErrors := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("bounce %d", i)
		}
		return out
	}
	sender := &fakeSender{results: map[int]*BatchResult{}}
	for i := 0; i < 20; i++ {
		sender.results[i] = &BatchResult{Failed: 10, Errors: manyErrors(10)}
	}
	d := newTestDispatcher(sender)

	result, err := d.Dispatch(context.Background(), makeRecipients(20*50), "s", "b", nil)
	require.NoError(t, err)

	assert.Equal(t, 200, result.Failed)
	assert.Len(t, result.Errors, 50)
}

func TestDispatchEmptyRecipientList(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)

	result, err := d.Dispatch(context.Background(), nil, "s", "b", nil)
	require.NoError(t, err)
	assert.Zero(t, result.Success)
	assert.Zero(t, result.Failed)
	assert.Empty(t, sender.calls)
}

func TestDispatchStopsOnCancelledContext(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender)
	d.delay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := d.Dispatch(ctx, makeRecipients(500), "s", "b", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, len(sender.calls), 10)
}
