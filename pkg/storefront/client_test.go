package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, NewMemoryStorage())
	require.NoError(t, err)
	return client
}

func checkoutReady(t *testing.T, client *Client) {
	t.Helper()
	require.NoError(t, client.Session.Establish(Profile{
		FIO:   "Иванов Иван",
		Email: "ivan@example.com",
		Phone: "+79990000001",
	}))
	require.NoError(t, client.Cart.Add(Item{ID: 1, Name: "Мангал", Price: 100}))
}

func TestCheckoutClearsCartOnSuccessOnly(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 7, "total": 100})
	}))
	checkoutReady(t, client)

	order, err := client.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, order.ID)
	assert.Empty(t, client.Cart.Items())
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
	}))
	checkoutReady(t, client)

	_, err := client.Checkout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal server error")
	assert.Len(t, client.Cart.Items(), 1)
}

func TestCheckoutBlockedWithoutProfile(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	require.NoError(t, client.Cart.Add(Item{ID: 1, Name: "Мангал", Price: 100}))

	_, err := client.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrNoProfile)
	assert.False(t, called)
}

func TestCheckoutBlockedWithEmptyCart(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	require.NoError(t, client.Session.Establish(Profile{
		FIO: "Иванов Иван", Email: "ivan@example.com", Phone: "+79990000001",
	}))

	_, err := client.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.False(t, called)
}

func TestLoginEstablishesSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Profile{
			FIO: "Иванов Иван", Email: "ivan@example.com", Phone: "+79990000001",
		})
	}))

	profile, err := client.Login(context.Background(), "ivan@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Иванов Иван", profile.FIO)

	current, ok := client.Session.Current()
	require.True(t, ok)
	assert.Equal(t, profile, current)
	assert.True(t, current.Complete())

	require.NoError(t, client.Logout())
	_, ok = client.Session.Current()
	assert.False(t, ok)
}
