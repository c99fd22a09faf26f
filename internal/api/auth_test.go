package api

import (
	"net/http"
	"testing"

	"flashcard_app/internal/domain"
	"flashcard_app/internal/utils"

	"github.com/gin-gonic/gin"
)

type authBody struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func TestRegister(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register",
		gin.H{"username": "alice", "email": "alice@example.com", "password": "hunter22"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusCreated, w.Body.String())
	}
	var resp authBody
	decodeBody(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("expected a session token in the response")
	}
	if resp.User.Username != "alice" || resp.User.Email != "alice@example.com" {
		t.Errorf("user = %+v, want alice/alice@example.com", resp.User)
	}

	// The token must decode back to the registered user
	claims, err := utils.ParseJWT(resp.Token, testSecret)
	if err != nil {
		t.Fatalf("failed to parse issued token: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token user id = %d, want %d", claims.UserID, resp.User.ID)
	}
	if claims.Subject != "alice" {
		t.Errorf("token subject = %q, want %q", claims.Subject, "alice")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	r, _ := newTestRouter(t)

	for name, body := range map[string]gin.H{
		"no username": {"email": "a@example.com", "password": "pw"},
		"no email":    {"username": "a", "password": "pw"},
		"no password": {"username": "a", "email": "a@example.com"},
	} {
		w := doJSON(t, r, http.MethodPost, "/auth/register", body, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", name, w.Code, http.StatusBadRequest)
		}
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r, _ := newTestRouter(t)

	first := doJSON(t, r, http.MethodPost, "/auth/register",
		gin.H{"username": "alice", "email": "alice@example.com", "password": "hunter22"}, "")
	if first.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", first.Code)
	}

	// Same username, different email
	w := doJSON(t, r, http.MethodPost, "/auth/register",
		gin.H{"username": "alice", "email": "other@example.com", "password": "hunter22"}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate username: status = %d, want %d", w.Code, http.StatusConflict)
	}

	// Same email, different username
	w = doJSON(t, r, http.MethodPost, "/auth/register",
		gin.H{"username": "bob", "email": "alice@example.com", "password": "hunter22"}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate email: status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestLoginAfterRegister(t *testing.T) {
	r, _ := newTestRouter(t)

	regW := doJSON(t, r, http.MethodPost, "/auth/register",
		gin.H{"username": "alice", "email": "alice@example.com", "password": "hunter22"}, "")
	var reg authBody
	decodeBody(t, regW, &reg)

	w := doJSON(t, r, http.MethodPost, "/auth/login",
		gin.H{"email": "alice@example.com", "password": "hunter22"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp authBody
	decodeBody(t, w, &resp)
	claims, err := utils.ParseJWT(resp.Token, testSecret)
	if err != nil {
		t.Fatalf("failed to parse issued token: %v", err)
	}
	if claims.UserID != reg.User.ID {
		t.Errorf("login token user id = %d, want %d", claims.UserID, reg.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/auth/register",
		gin.H{"username": "alice", "email": "alice@example.com", "password": "hunter22"}, "")

	// A wrong password for an existing email is unauthorized, never not-found
	w := doJSON(t, r, http.MethodPost, "/auth/login",
		gin.H{"email": "alice@example.com", "password": "wrong"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/login",
		gin.H{"email": "nobody@example.com", "password": "whatever"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestOAuthCallbackCreatesUserOnce(t *testing.T) {
	r, db := newTestRouter(t)

	body := gin.H{"email": "carol@example.com", "name": "carol", "provider": "google"}
	w := doJSON(t, r, http.MethodPost, "/auth/oauth/callback", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	var first authBody
	decodeBody(t, w, &first)

	// Repeating the callback must reuse the user, not create a duplicate
	w = doJSON(t, r, http.MethodPost, "/auth/oauth/callback", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("second callback status = %d", w.Code)
	}
	var second authBody
	decodeBody(t, w, &second)
	if first.User.ID != second.User.ID {
		t.Errorf("second callback user id = %d, want %d", second.User.ID, first.User.ID)
	}

	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", "carol@example.com").Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}

func TestOAuthCallbackMissingFields(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/oauth/callback",
		gin.H{"email": "carol@example.com", "name": "carol"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestFederatedAccountCannotLoginLocally(t *testing.T) {
	r, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/auth/oauth/callback",
		gin.H{"email": "carol@example.com", "name": "carol", "provider": "google"}, "")

	// The account has no password hash, so local login must fail closed
	w := doJSON(t, r, http.MethodPost, "/auth/login",
		gin.H{"email": "carol@example.com", "password": ""}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
