package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI against handler and returns stdout.
func execute(t *testing.T, h http.HandlerFunc, args ...string) (string, error) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--url", srv.URL, "--token", "tok"))

	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
	assert.Equal(t, "lo", truncate("longerstring", 2))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1})

	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestHashPasswordCmd(t *testing.T) {
	orig := bcryptGenerate
	bcryptGenerate = func(p []byte, cost int) ([]byte, error) {
		return []byte("hashed-value"), nil
	}
	defer func() { bcryptGenerate = orig }()

	var out bytes.Buffer
	cmd := hashPasswordCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"secret"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "hashed-value", strings.TrimSpace(out.String()))
}

func TestConsistencyCmd(t *testing.T) {
	t.Run("passes", func(t *testing.T) {
		out, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/ledger/consistency", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"consistent":true,"mismatches":[]}`))
		}, "ledger", "consistency")

		require.NoError(t, err)
		assert.Contains(t, out, "PASSED")
	})

	t.Run("reports drift", func(t *testing.T) {
		out, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"consistent":false,"mismatches":[{"account_id":"acc-1","recorded_balance":"10","calculated_balance":"7","difference":"3"}]}`))
		}, "ledger", "consistency")

		require.ErrorIs(t, err, errInconsistent)
		assert.Contains(t, out, "1 account(s) drifted")
		assert.Contains(t, out, "acc-1 recorded=10 calculated=7 difference=3")
	})

	t.Run("forbidden", func(t *testing.T) {
		_, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"unauthorized","message":"admin role required"}`))
		}, "ledger", "consistency")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 403")
		assert.Contains(t, err.Error(), "admin role required")
	})
}

func TestReconcileCmd(t *testing.T) {
	out, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ledger/accounts/acc-1/reconcile", r.URL.Path)
		_, _ = w.Write([]byte(`{"account_id":"acc-1","recorded_balance":"5","calculated_balance":"5","difference":"0","is_reconciled":true}`))
	}, "ledger", "reconcile", "acc-1")

	require.NoError(t, err)
	assert.Contains(t, out, `"is_reconciled": true`)
}

func TestBalanceCmd(t *testing.T) {
	out, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/wallet/balance", r.URL.Path)
		_, _ = w.Write([]byte(`{"account_id":"acc-1","balance":"42.5"}`))
	}, "wallet", "balance")

	require.NoError(t, err)
	assert.Equal(t, "acc-1 42.5\n", out)
}
