package anchor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BaSui01/anchorflow/types"
)

// Normalization is a pure function: the same raw response always yields the
// same result, regardless of how often it runs.
func TestProperty_Normalize_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		status := rapid.SampledFrom([]int{200, 201, 400, 404, 422, 429, 500, 502, 503}).Draw(rt, "status")
		body := rapid.SliceOfN(rapid.Byte(), 0, 256).Draw(rt, "body")

		r1, e1 := Normalize(status, body)
		r2, e2 := Normalize(status, body)

		if !reflect.DeepEqual(r1, r2) {
			rt.Fatalf("results differ: %#v vs %#v", r1, r2)
		}
		if (e1 == nil) != (e2 == nil) {
			rt.Fatalf("error presence differs: %v vs %v", e1, e2)
		}
		if e1 != nil {
			c1, c2 := e1.(*types.Error), e2.(*types.Error)
			if c1.Code != c2.Code || c1.Message != c2.Message ||
				c1.StatusCode != c2.StatusCode || c1.Retryable != c2.Retryable {
				rt.Fatalf("errors differ: %+v vs %+v", c1, c2)
			}
		}
	})
}

// Any 2xx mapping with status "success" comes back whole, whatever else
// it carries.
func TestProperty_Normalize_StatusSuccessPassthrough(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		payload := map[string]any{"status": "success"}
		numKeys := rapid.IntRange(0, 8).Draw(rt, "numKeys")
		for i := 0; i < numKeys; i++ {
			key := rapid.StringMatching(`[a-z_]{1,20}`).Draw(rt, fmt.Sprintf("key_%d", i))
			if key == "status" {
				continue
			}
			payload[key] = rapid.StringMatching(`[a-zA-Z0-9 /.-]{0,40}`).Draw(rt, fmt.Sprintf("val_%d", i))
		}

		body, err := json.Marshal(payload)
		require.NoError(rt, err)

		result, nerr := Normalize(http.StatusOK, body)
		require.NoError(rt, nerr)

		m, ok := result.(map[string]any)
		require.True(rt, ok)
		assert.Equal(rt, len(payload), len(m))
		for k, v := range payload {
			assert.Equal(rt, v, m[k], "key %q", k)
		}
	})
}

// Every 4xx/5xx response fails with the HTTP status attached, and only
// throttling and server-side codes are retryable.
func TestProperty_Normalize_ErrorStatusAlwaysFails(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		status := rapid.IntRange(400, 599).Draw(rt, "status")
		body := rapid.SliceOfN(rapid.Byte(), 0, 128).Draw(rt, "body")

		result, err := Normalize(status, body)
		require.Nil(rt, result)
		require.Error(rt, err)

		cerr, ok := err.(*types.Error)
		require.True(rt, ok)
		assert.Equal(rt, status, cerr.StatusCode)

		wantRetryable := status == http.StatusTooManyRequests || status >= 500
		assert.Equal(rt, wantRetryable, cerr.Retryable)
	})
}

// Non-mapping JSON bodies on 2xx are successful data verbatim.
func TestProperty_Normalize_NonMappingPassthrough(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		items := rapid.SliceOfN(rapid.IntRange(-1000, 1000), 0, 16).Draw(rt, "items")

		body, err := json.Marshal(items)
		require.NoError(rt, err)

		result, nerr := Normalize(http.StatusOK, body)
		require.NoError(rt, nerr)

		list, ok := result.([]any)
		require.True(rt, ok)
		require.Len(rt, list, len(items))
		for i, v := range items {
			assert.Equal(rt, float64(v), list[i])
		}
	})
}

// The application-level error message survives normalization untouched, on
// both the 2xx status convention and plain HTTP error bodies.
func TestProperty_Normalize_ErrorMessagePropagates(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		msg := rapid.StringMatching(`[a-zA-Z0-9 .,_:-]{1,80}`).Draw(rt, "msg")
		body, err := json.Marshal(map[string]any{"error_message": msg})
		require.NoError(rt, err)

		_, e1 := Normalize(http.StatusBadRequest, body)
		cerr := e1.(*types.Error)
		assert.Equal(rt, msg, cerr.Message)
		assert.Equal(rt, http.StatusBadRequest, cerr.StatusCode)

		statusBody, err := json.Marshal(map[string]any{"status": "error", "error_message": msg})
		require.NoError(rt, err)

		_, e2 := Normalize(http.StatusOK, statusBody)
		cerr = e2.(*types.Error)
		assert.Equal(rt, msg, cerr.Message)
		assert.Equal(rt, http.StatusOK, cerr.StatusCode)
	})
}
