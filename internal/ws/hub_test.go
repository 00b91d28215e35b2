package ws

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(hub *Hub, userID uuid.UUID, buffer int) *Client {
	return &Client{hub: hub, userID: userID, send: make(chan []byte, buffer)}
}

func runHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestPushToUser_ReachesEveryConnectionOfThatUser(t *testing.T) {
	hub := runHub(t)
	asha, ravi := uuid.New(), uuid.New()

	phone := testClient(hub, asha, 4)
	laptop := testClient(hub, asha, 4)
	other := testClient(hub, ravi, 4)
	hub.Register(phone)
	hub.Register(laptop)
	hub.Register(other)
	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	n := hub.PushToUser(asha, []byte(`{"kind":"INTERVIEW"}`))
	assert.Equal(t, 2, n)
	assert.Equal(t, `{"kind":"INTERVIEW"}`, string(<-phone.send))
	assert.Equal(t, `{"kind":"INTERVIEW"}`, string(<-laptop.send))
	assert.Empty(t, other.send)

	assert.Zero(t, hub.PushToUser(uuid.New(), []byte("x")))
}

func TestPushToUser_DropsSlowClient(t *testing.T) {
	hub := runHub(t)
	userID := uuid.New()
	slow := testClient(hub, userID, 1)
	hub.Register(slow)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, hub.PushToUser(userID, []byte("first")))
	assert.Equal(t, 0, hub.PushToUser(userID, []byte("second")))
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, "first", string(<-slow.send))
	_, open := <-slow.send
	assert.False(t, open, "send channel closed after drop")
}

func TestUnregister_IsIdempotent(t *testing.T) {
	hub := runHub(t)
	c := testClient(hub, uuid.New(), 1)
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(c)
	hub.Unregister(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_StoppedDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	connected := testClient(hub, uuid.New(), 1)
	hub.Register(connected)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped
	_, open := <-connected.send
	assert.False(t, open, "connected client closed on shutdown")

	returned := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Unregister(connected)
		}
		late := testClient(hub, uuid.New(), 1)
		hub.Register(late)
		_, open := <-late.send
		assert.False(t, open, "late client closed immediately")
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("hub calls blocked after Run returned")
	}
	assert.Zero(t, hub.ClientCount())
}

func TestHandleNotifications_RequiresAccessToken(t *testing.T) {
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	h := NewHandler(NewHub(nil), svc, nil)
	app := fiber.New()
	app.Get("/ws", h.HandleNotifications)

	refresh, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	for _, target := range []string{"/ws", "/ws?token=garbage", "/ws?token=" + refresh} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, target)
	}
}
