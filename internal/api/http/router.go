package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/security"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Booking      *BookingHandler
	Live         *LiveHandler
	Property     *PropertyHandler
	Favorite     *FavoriteHandler
	HairHealth   *HairHealthHandler
	StylistCtx   *StylistContextHandler
	Notification *NotificationHandler
	Ledger       *LedgerHandler
}

// NewRouter assembles the versioned API. Signup, login, refresh and
// logout ride outside the auth middleware; everything else requires a
// valid session, and state-changing verbs also pass the CSRF check.
func NewRouter(h Handlers, tokens security.TokenManager, csrf *security.CSRFIssuer, allowedOrigins []string, healthFn http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(CORS(allowedOrigins))
	r.Use(RequestLogger)

	r.HandleFunc("/healthz", healthFn).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)

	sec := api.NewRoute().Subrouter()
	sec.Use(Auth(tokens))
	sec.Use(CSRF(csrf))

	sec.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	stylist := RequireRole(string(domain.UserRoleStylist))
	owner := RequireRole(string(domain.UserRoleOwner))

	sec.HandleFunc("/bookings", h.Booking.Create).Methods(http.MethodPost)
	sec.HandleFunc("/bookings", h.Booking.List).Methods(http.MethodGet)
	sec.HandleFunc("/bookings/{id:[0-9]+}", h.Booking.Get).Methods(http.MethodGet)
	sec.HandleFunc("/bookings/{id:[0-9]+}/confirm-payment", h.Booking.ConfirmPayment).Methods(http.MethodPost)
	sec.HandleFunc("/bookings/{id:[0-9]+}/cancel", h.Booking.Cancel).Methods(http.MethodPost)
	sec.HandleFunc("/bookings/{id:[0-9]+}/reschedule", h.Booking.Reschedule).Methods(http.MethodPost)
	sec.HandleFunc("/bookings/{id:[0-9]+}/tip", h.Booking.Tip).Methods(http.MethodPost)
	sec.HandleFunc("/bookings/{id:[0-9]+}/arrived", stylist(h.Booking.MarkArrived)).Methods(http.MethodPost)
	sec.HandleFunc("/bookings/{id:[0-9]+}/start", stylist(h.Booking.StartSession)).Methods(http.MethodPost)
	sec.HandleFunc("/bookings/{id:[0-9]+}/complete", stylist(h.Booking.CompleteSession)).Methods(http.MethodPost)
	sec.HandleFunc("/bookings/{id:[0-9]+}/live", h.Live.Stream).Methods(http.MethodGet)
	sec.HandleFunc("/bookings/{id:[0-9]+}/ledger", h.Ledger.ForBooking).Methods(http.MethodGet)

	sec.HandleFunc("/properties", owner(h.Property.Create)).Methods(http.MethodPost)
	sec.HandleFunc("/properties", h.Property.List).Methods(http.MethodGet)
	// The rentals subtree is matched before the {id} routes.
	sec.HandleFunc("/properties/rentals/requests", stylist(h.Property.CreateRentalRequest)).Methods(http.MethodPost)
	sec.HandleFunc("/properties/rentals/requests", h.Property.ListRentalRequests).Methods(http.MethodGet)
	sec.HandleFunc("/properties/rentals/requests/{id:[0-9]+}/approve", owner(h.Property.ApproveRentalRequest)).Methods(http.MethodPost)
	sec.HandleFunc("/properties/rentals/requests/{id:[0-9]+}/reject", owner(h.Property.RejectRentalRequest)).Methods(http.MethodPost)
	sec.HandleFunc("/properties/rentals/requests/{id:[0-9]+}/cancel", stylist(h.Property.CancelRentalRequest)).Methods(http.MethodPost)
	sec.HandleFunc("/properties/{id:[0-9]+}", h.Property.Get).Methods(http.MethodGet)
	sec.HandleFunc("/properties/{id:[0-9]+}", owner(h.Property.Update)).Methods(http.MethodPut)
	sec.HandleFunc("/properties/{id:[0-9]+}", owner(h.Property.Delete)).Methods(http.MethodDelete)
	sec.HandleFunc("/properties/{id:[0-9]+}/chairs", h.Property.ListChairs).Methods(http.MethodGet)
	sec.HandleFunc("/properties/{id:[0-9]+}/chairs", owner(h.Property.AddChair)).Methods(http.MethodPost)
	sec.HandleFunc("/properties/{id:[0-9]+}/chairs/{chairID:[0-9]+}", owner(h.Property.UpdateChair)).Methods(http.MethodPut)

	sec.HandleFunc("/favorites", h.Favorite.List).Methods(http.MethodGet)
	sec.HandleFunc("/favorites", h.Favorite.Add).Methods(http.MethodPost)
	sec.HandleFunc("/favorites", h.Favorite.Remove).Methods(http.MethodDelete)

	sec.HandleFunc("/hair-health/profile", h.HairHealth.GetProfile).Methods(http.MethodGet)
	sec.HandleFunc("/hair-health/profile", h.HairHealth.SaveProfile).Methods(http.MethodPut)
	sec.HandleFunc("/learning", h.HairHealth.ListResources).Methods(http.MethodGet)
	sec.HandleFunc("/learning/{id:[0-9]+}", h.HairHealth.GetResource).Methods(http.MethodGet)

	sec.HandleFunc("/calendar/availability", stylist(h.StylistCtx.GetAvailability)).Methods(http.MethodGet)
	sec.HandleFunc("/calendar/availability", stylist(h.StylistCtx.SetAvailability)).Methods(http.MethodPut)
	sec.HandleFunc("/calendar/blocks", stylist(h.StylistCtx.ListBlockedDates)).Methods(http.MethodGet)
	sec.HandleFunc("/calendar/blocks", stylist(h.StylistCtx.AddBlockedDate)).Methods(http.MethodPost)
	sec.HandleFunc("/calendar/blocks/{id:[0-9]+}", stylist(h.StylistCtx.RemoveBlockedDate)).Methods(http.MethodDelete)

	sec.HandleFunc("/stylist-context", stylist(h.StylistCtx.Get)).Methods(http.MethodGet)
	sec.HandleFunc("/stylist-context", stylist(h.StylistCtx.Update)).Methods(http.MethodPut)
	sec.HandleFunc("/stylist-context/accepting", stylist(h.StylistCtx.SetAccepting)).Methods(http.MethodPost)

	sec.HandleFunc("/ledger", h.Ledger.List).Methods(http.MethodGet)
	sec.HandleFunc("/ledger/summary", h.Ledger.Summary).Methods(http.MethodGet)

	sec.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	sec.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	return r
}
