package helpers

import (
	"errors"
	"net/http"
	"testing"

	"backendlink/interfaces/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://localhost:8080/health", nil)
	require.NoError(t, err)
	return req
}

func TestNewRequestProcessorChain_NilElementPanics(t *testing.T) {
	ok := &mock.RequestProcessorMock{}
	assert.PanicsWithValue(t, "helpers.request_chain.go: processor at index 1 is required", func() {
		NewRequestProcessorChain(ok, nil)
	})
}

func TestRequestProcessorChain_Process(t *testing.T) {
	t.Run("empty_chain_is_noop", func(t *testing.T) {
		chain := NewRequestProcessorChain()
		require.NoError(t, chain.Process(newTestRequest(t)))
	})

	t.Run("runs_in_order", func(t *testing.T) {
		var order []string
		first := &mock.RequestProcessorMock{ProcessFunc: func(req *http.Request) error {
			order = append(order, "first")
			req.Header.Set("X-First", "1")
			return nil
		}}
		second := &mock.RequestProcessorMock{ProcessFunc: func(req *http.Request) error {
			order = append(order, "second")
			// Sees the header set by the previous processor.
			assert.Equal(t, "1", req.Header.Get("X-First"))
			return nil
		}}
		chain := NewRequestProcessorChain(first, second)
		require.NoError(t, chain.Process(newTestRequest(t)))
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("first_error_aborts_chain", func(t *testing.T) {
		boom := errors.New("boom")
		failing := &mock.RequestProcessorMock{ProcessFunc: func(req *http.Request) error { return boom }}
		after := &mock.RequestProcessorMock{}
		chain := NewRequestProcessorChain(failing, after)
		err := chain.Process(newTestRequest(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, after.ProcessCalls())
	})
}
