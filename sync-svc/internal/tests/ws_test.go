package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"overcooked-menusync/sync-svc/internal/api/ws"
	"overcooked-menusync/sync-svc/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastsToScope(t *testing.T) {
	hub := ws.NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?tenantId=t1&locationId=l1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.Clients(testScope) == 1 }, time.Second, 10*time.Millisecond)

	other := domain.CostsUpdatedEvent{ID: "e0", TenantID: "t2", LocationID: "l1"}
	event := domain.CostsUpdatedEvent{ID: "e1", Type: "costs_updated", TenantID: "t1", LocationID: "l1", UpdatedCount: 1}
	require.NoError(t, hub.CostsUpdated(context.Background(), other))
	require.NoError(t, hub.CostsUpdated(context.Background(), event))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got domain.CostsUpdatedEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "e1", got.ID)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients(testScope) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RequiresScope(t *testing.T) {
	hub := ws.NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?tenantId=t1"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
