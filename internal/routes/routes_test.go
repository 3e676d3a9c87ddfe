package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"bms/internal/middleware"
	"bms/internal/services"
	"bms/internal/store/storetest"
)

func newSeededRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetSigningKey("routes-test", time.Hour)

	svc := services.New(storetest.Open(t))
	svc.Auth.WithCost(bcrypt.MinCost)
	if _, err := svc.SeedSampleData(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return SetupRouter(svc, Options{})
}

func call(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := call(r, http.MethodPost, "/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, w.Code, w.Body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login %s: bad body %s", username, w.Body)
	}
	return resp.Token
}

func TestCustomerFlow(t *testing.T) {
	r := newSeededRouter(t)
	token := login(t, r, "customer2", "1234")

	w := call(r, http.MethodGet, "/customer/me", token, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "INV-002") {
		t.Fatalf("me = %d %s", w.Code, w.Body)
	}

	w = call(r, http.MethodPost, "/customer/accounts/INV-002/withdraw", token, `{"amount":300}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"balance":500`) {
		t.Errorf("withdraw = %d %s", w.Code, w.Body)
	}
	w = call(r, http.MethodPost, "/customer/accounts/SAV-002/withdraw", token, `{"amount":1}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("savings withdraw = %d", w.Code)
	}
	// CHK-001 belongs to customer1.
	w = call(r, http.MethodPost, "/customer/accounts/CHK-001/deposit", token, `{"amount":1}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign account = %d", w.Code)
	}

	// Alice has no employer on file, so a bare cheque request is refused
	// and one with employer details records them.
	w = call(r, http.MethodPost, "/customer/accounts", token, `{"type":"cheque","initial_deposit":10}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("cheque without employer = %d %s", w.Code, w.Body)
	}
	w = call(r, http.MethodPost, "/customer/accounts", token,
		`{"type":"cheque","initial_deposit":10,"employer_name":"Acme Corp","employer_address":"Gaborone"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("cheque with employer = %d %s", w.Code, w.Body)
	}
	w = call(r, http.MethodGet, "/customer/me", token, "")
	if !strings.Contains(w.Body.String(), `"employer_name":"Acme Corp"`) {
		t.Errorf("employment not recorded: %s", w.Body)
	}

	if w := call(r, http.MethodGet, "/employee/customers", token, ""); w.Code != http.StatusForbidden {
		t.Errorf("customer on staff route = %d", w.Code)
	}
}

func TestEmployeeFlow(t *testing.T) {
	r := newSeededRouter(t)
	token := login(t, r, "admin", "admin123")

	w := call(r, http.MethodGet, "/employee/customers", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	var list struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list.Data) != 4 {
		t.Fatalf("list body = %s", w.Body)
	}

	w = call(r, http.MethodPost, "/employee/customers", token,
		`{"first_name":"Neo","last_name":"Kgosi","address":"Maun","username":"neo","password":"pw"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register = %d %s", w.Code, w.Body)
	}
	w = call(r, http.MethodPost, "/employee/customers", token,
		`{"first_name":"Dup","last_name":"User","username":"customer1","password":"pw"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate = %d", w.Code)
	}

	w = call(r, http.MethodPost, "/employee/customers/3/accounts", token, `{"type":"cheque","initial_deposit":50,"branch":"West"}`)
	if w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), "Botswana Ltd") {
		t.Errorf("cheque from stored employment = %d %s", w.Code, w.Body)
	}
	w = call(r, http.MethodPost, "/employee/customers/1/accounts", token, `{"type":"investment","initial_deposit":100}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("investment below minimum = %d", w.Code)
	}

	w = call(r, http.MethodPost, "/employee/accounts/INV-003/interest", token, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"balance":735`) {
		t.Errorf("interest = %d %s", w.Code, w.Body)
	}

	if w := call(r, http.MethodDelete, "/employee/customers/4", token, ""); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	if w := call(r, http.MethodGet, "/employee/customers/4", token, ""); w.Code != http.StatusNotFound {
		t.Errorf("deleted customer = %d", w.Code)
	}
	if w := call(r, http.MethodPost, "/auth/login", "", `{"username":"customer4","password":"1234"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("login of deleted customer = %d", w.Code)
	}
}

func TestCustomerCannotUseStaffRoutes(t *testing.T) {
	r := newSeededRouter(t)
	customer := login(t, r, "customer2", "1234")
	staff := login(t, r, "admin", "admin123")

	w := call(r, http.MethodDelete, "/employee/customers/1", customer, "")
	if w.Code != http.StatusForbidden || strings.Contains(w.Body.String(), "deleted") {
		t.Fatalf("customer delete on staff route = %d %s", w.Code, w.Body)
	}
	if w := call(r, http.MethodPost, "/employee/accounts/INV-001/interest", customer, ""); w.Code != http.StatusForbidden {
		t.Errorf("customer interest on staff route = %d", w.Code)
	}
	if w := call(r, http.MethodGet, "/employee/customers/1", staff, ""); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"balance":1500`) {
		t.Errorf("customer 1 after rejected requests = %d %s", w.Code, w.Body)
	}

	// Employee ids overlap customer ids; the token must not act as a customer.
	if w := call(r, http.MethodPost, "/customer/accounts/CHK-001/deposit", staff, `{"amount":5}`); w.Code != http.StatusForbidden {
		t.Errorf("employee on customer route = %d", w.Code)
	}
}

func TestHealthAndCORS(t *testing.T) {
	r := newSeededRouter(t)

	if w := call(r, http.MethodGet, "/health", "", ""); w.Code != http.StatusOK {
		t.Errorf("health = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q", got)
	}
}
