package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloudcost/internal/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/catalog", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Gateway-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entries":[
			{"name":"vm.small","category":"compute","flags":"","unit_price":0.5},
			{"name":"disk.ssd","category":"storage","flags":"PER_MONTH","unit_price":10,"iops_unit_price":0.001}
		]}`))
	}))
	defer server.Close()

	client := NewClient(config.GatewayConfig{BaseURL: server.URL, SecretKey: "secret"})

	entries, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "vm.small", entries[0].Name)
	assert.Equal(t, "compute", entries[0].Category)
	assert.Equal(t, 0.5, entries[0].UnitPrice)

	assert.Equal(t, "PER_MONTH", entries[1].Flags)
	assert.Equal(t, 0.001, entries[1].IOPSUnitPrice)
}

func TestFetchConsumption(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/consumption", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("date_from"))
		assert.Equal(t, "2024-02-01", r.URL.Query().Get("date_to"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records":[
			{"date":"2024-01-05","service_name":"vm.small","category":"compute","quantity":2,"unit_price":0.5,"cost":24}
		]}`))
	}))
	defer server.Close()

	client := NewClient(config.GatewayConfig{BaseURL: server.URL, SecretKey: "secret"})

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	records, err := client.FetchConsumption(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "vm.small", records[0].ServiceName)
	assert.Equal(t, 24.0, records[0].Cost)
}

func TestGatewayErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(config.GatewayConfig{BaseURL: server.URL, SecretKey: "wrong"})

	_, err := client.FetchCatalog(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
