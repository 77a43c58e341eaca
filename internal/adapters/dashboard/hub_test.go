package dashboard

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_HandleStatusReturnsLastBroadcast(t *testing.T) {
	h := NewHub()
	h.Broadcast(ProgressMessage{JobID: "job-1", Tried: 42, Workers: 4})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/status", nil)
	h.HandleStatus(rr, req)

	var got ProgressMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "job-1", got.JobID)
	assert.Equal(t, uint64(42), got.Tried)
}

func TestHub_HandleStatusDefaultsToZeroValue(t *testing.T) {
	h := NewHub()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/status", nil)
	h.HandleStatus(rr, req)

	var got ProgressMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, ProgressMessage{}, got)
}

func TestServer_RunWithEmptyAddrIsNoOp(t *testing.T) {
	s := NewServer("", NewHub())
	assert.NoError(t, s.Run(nil))
}
