package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrEmptyCart and ErrNoProfile block checkout before any network call.
var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNoProfile = errors.New("a complete profile is required for checkout")
)

// Review mirrors the review objects the API returns.
type Review struct {
	ID      int       `json:"id"`
	Author  string    `json:"author"`
	Rating  int       `json:"rating"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// Order mirrors the order object the API returns on checkout.
type Order struct {
	ID        int       `json:"id"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	UserPhone string    `json:"userPhone"`
	Total     float64   `json:"total"`
	Date      time.Time `json:"date"`
	Items     []Item    `json:"items"`
}

// Client is the storefront's view of the backend API, owning the local cart
// and session state alongside the HTTP calls.
type Client struct {
	baseURL string
	http    *http.Client
	Cart    *Cart
	Session *Session
}

// NewClient builds a client whose cart and session persist through storage.
func NewClient(baseURL string, storage Storage) (*Client, error) {
	cart, err := NewCart(storage)
	if err != nil {
		return nil, err
	}
	session, err := NewSession(storage)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		Cart:    cart,
		Session: session,
	}, nil
}

// Register creates an account and establishes the session.
func (c *Client) Register(ctx context.Context, fio, phone, email, password string) (Profile, error) {
	var profile Profile
	err := c.post(ctx, "/api/register", map[string]string{
		"fio":      fio,
		"phone":    phone,
		"email":    email,
		"password": password,
	}, http.StatusCreated, &profile)
	if err != nil {
		return Profile{}, err
	}
	return profile, c.Session.Establish(profile)
}

// Login verifies credentials and establishes the session.
func (c *Client) Login(ctx context.Context, email, password string) (Profile, error) {
	var profile Profile
	err := c.post(ctx, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, http.StatusOK, &profile)
	if err != nil {
		return Profile{}, err
	}
	return profile, c.Session.Establish(profile)
}

// Logout clears the local session.
func (c *Client) Logout() error {
	return c.Session.Clear()
}

// UpdateProfile rewrites the account matching the current session identity
// and re-establishes the session with the result.
func (c *Client) UpdateProfile(ctx context.Context, fio, phone, email string) (Profile, error) {
	current, ok := c.Session.Current()
	if !ok {
		return Profile{}, ErrNoProfile
	}

	var profile Profile
	err := c.post(ctx, "/api/profile", map[string]string{
		"fio":          fio,
		"phone":        phone,
		"email":        email,
		"currentEmail": current.Email,
	}, http.StatusOK, &profile)
	if err != nil {
		return Profile{}, err
	}
	return profile, c.Session.Establish(profile)
}

// Reviews fetches all reviews, newest first.
func (c *Client) Reviews(ctx context.Context) ([]Review, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/reviews", nil)
	if err != nil {
		return nil, err
	}
	var reviews []Review
	if err := c.do(req, http.StatusOK, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SubmitReview posts a review under the session's name, or "Гость" when
// nobody is signed in.
func (c *Client) SubmitReview(ctx context.Context, rating int, content string) (Review, error) {
	author := "Гость"
	if profile, ok := c.Session.Current(); ok {
		author = profile.FIO
	}

	var review Review
	err := c.post(ctx, "/api/reviews", map[string]any{
		"author":  author,
		"rating":  rating,
		"content": content,
		"date":    time.Now().Format(time.RFC3339),
	}, http.StatusCreated, &review)
	if err != nil {
		return Review{}, err
	}
	return review, nil
}

// Checkout places an order from the current cart and session. The cart is
// cleared only after the server confirms the order; any failure leaves it
// untouched so the user can retry.
func (c *Client) Checkout(ctx context.Context) (Order, error) {
	items := c.Cart.Items()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	profile, ok := c.Session.Current()
	if !ok || !profile.Complete() {
		return Order{}, ErrNoProfile
	}

	var order Order
	err := c.post(ctx, "/api/orders", map[string]any{
		"userEmail": profile.Email,
		"userName":  profile.FIO,
		"userPhone": profile.Phone,
		"items":     items,
		"total":     c.Cart.Total(),
		"date":      time.Now().Format(time.RFC3339),
	}, http.StatusCreated, &order)
	if err != nil {
		return Order{}, err
	}

	if err := c.Cart.Clear(); err != nil {
		return order, err
	}
	return order, nil
}

func (c *Client) post(ctx context.Context, path string, body any, wantStatus int, dest any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, wantStatus, dest)
}

func (c *Client) do(req *http.Request, wantStatus int, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
