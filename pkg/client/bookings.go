package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// User mirrors the API's user representation.
type User struct {
	ID          int32  `json:"id"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Metro       string `json:"metro,omitempty"`
}

// Booking mirrors the API's booking representation.
type Booking struct {
	ID              int32      `json:"id"`
	CustomerID      int32      `json:"customer_id"`
	StylistID       int32      `json:"stylist_id"`
	ChairID         *int32     `json:"chair_id,omitempty"`
	ServiceName     string     `json:"service_name"`
	LocationMode    string     `json:"location_mode"`
	Address         string     `json:"address,omitempty"`
	ScheduledStart  time.Time  `json:"scheduled_start"`
	DurationMinutes int32      `json:"duration_minutes"`
	AmountCents     int32      `json:"amount_cents"`
	TipCents        int32      `json:"tip_cents"`
	RefundCents     int32      `json:"refund_cents"`
	Status          string     `json:"status"`
	EscrowStatus    string     `json:"escrow_status"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	StartedOn       *time.Time `json:"started_on,omitempty"`
	CompletedOn     *time.Time `json:"completed_on,omitempty"`
}

// Session is returned by Signup and Login. The session cookies themselves
// live in the client's cookie jar.
type Session struct {
	User      *User  `json:"user"`
	CSRFToken string `json:"csrf_token"`
}

type SignupInput struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

func (c *Client) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	var out Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/signup", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	in := map[string]string{"email": email, "password": password}
	var out Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CreateBookingInput struct {
	StylistID       int32     `json:"stylist_id"`
	ChairID         *int32    `json:"chair_id,omitempty"`
	ServiceName     string    `json:"service_name"`
	LocationMode    string    `json:"location_mode"`
	Address         string    `json:"address,omitempty"`
	ScheduledStart  time.Time `json:"scheduled_start"`
	DurationMinutes int32     `json:"duration_minutes"`
	AmountCents     int32     `json:"amount_cents"`
	Notes           string    `json:"notes,omitempty"`
}

func (c *Client) CreateBooking(ctx context.Context, in CreateBookingInput) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBooking(ctx context.Context, id int32) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookingList is one page of the caller's bookings.
type BookingList struct {
	Items []Booking `json:"items"`
	Total int32     `json:"total"`
	Page  int32     `json:"page"`
}

func (c *Client) ListBookings(ctx context.Context, status string, page int32) (*BookingList, error) {
	path := fmt.Sprintf("/api/v1/bookings?page=%d", page)
	if status != "" {
		path += "&status=" + status
	}
	var out BookingList
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmPayment(ctx context.Context, id int32) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/confirm-payment", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelBooking(ctx context.Context, id int32, reason string) (*Booking, error) {
	in := map[string]string{"reason": reason}
	var out Booking
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/cancel", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RescheduleBooking(ctx context.Context, id int32, start time.Time) (*Booking, error) {
	in := map[string]time.Time{"scheduled_start": start}
	var out Booking
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/reschedule", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TipBooking(ctx context.Context, id, tipCents int32) (*Booking, error) {
	in := map[string]int32{"tip_cents": tipCents}
	var out Booking
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/tip", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
