package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/service"
)

// API exposes the lifecycle and chat operations over REST. The realtime
// half of the system lives on the websocket endpoint; these routes are the
// synchronous origin of every state transition.
type API struct {
	auth      service.AuthService
	lifecycle service.LifecycleService
	chat      service.ChatService
}

func NewAPI(auth service.AuthService, lifecycle service.LifecycleService, chat service.ChatService) *API {
	return &API{auth: auth, lifecycle: lifecycle, chat: chat}
}

// Register wires all routes onto the router.
func (a *API) Register(r *mux.Router, authMW *AuthMiddleware) {
	r.HandleFunc("/api/health", a.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/login", a.handleLogin).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(authMW.Middleware)
	protected.HandleFunc("/requests", a.handleCreateRequest).Methods(http.MethodPost)
	protected.HandleFunc("/requests/{id}/status", a.handleChangeStatus).Methods(http.MethodPut)
	protected.HandleFunc("/requests/{id}/appointment", a.handleSetAppointment).Methods(http.MethodPut)
	protected.HandleFunc("/requests/{id}/offers", a.handleSubmitOffer).Methods(http.MethodPost)
	protected.HandleFunc("/requests/{id}/ratings", a.handleSubmitRating).Methods(http.MethodPost)
	protected.HandleFunc("/offers/{id}", a.handleDecideOffer).Methods(http.MethodPut)
	protected.HandleFunc("/chats/{id}", a.handleChatHistory).Methods(http.MethodGet)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}
	user, token, err := a.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (a *API) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r)
	var body struct {
		Description string `json:"description"`
		Category    string `json:"category"`
		Address     string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}
	req, err := a.lifecycle.CreateRequest(r.Context(), claims.UserID, claims.Role, body.Description, body.Category, body.Address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (a *API) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r)
	requestID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Status domain.RequestStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}
	if err := a.lifecycle.ChangeStatus(r.Context(), claims.UserID, requestID, body.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": body.Status})
}

func (a *API) handleSetAppointment(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r)
	requestID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Time  time.Time `json:"time"`
		Place string    `json:"place"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Time.IsZero() {
		writeError(w, service.ErrInvalidInput)
		return
	}
	if err := a.lifecycle.SetAppointment(r.Context(), claims.UserID, requestID, body.Time, body.Place); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "time": body.Time, "place": body.Place})
}

func (a *API) handleSubmitOffer(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r)
	requestID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}
	offer, err := a.lifecycle.SubmitOffer(r.Context(), claims.UserID, claims.Role, requestID, body.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

func (a *API) handleDecideOffer(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r)
	offerID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Decision service.Decision `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}
	offer, err := a.lifecycle.DecideOffer(r.Context(), claims.UserID, offerID, body.Decision)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (a *API) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r)
	requestID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Score   int32  `json:"score"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}
	rating, err := a.lifecycle.SubmitRating(r.Context(), claims.UserID, claims.Role, requestID, body.Score, body.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

func (a *API) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r)
	requestID, ok := pathID(w, r)
	if !ok {
		return
	}
	msgs, err := a.chat.History(r.Context(), claims.UserID, requestID)
	if err != nil {
		writeError(w, err)
		return
	}
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

func pathID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, service.ErrInvalidInput)
		return 0, false
	}
	return int32(id), true
}
