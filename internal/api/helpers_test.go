package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flashcard_app/internal/testutil"
	"flashcard_app/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "api-test-secret"

// newTestRouter builds the full router against a fresh in-memory database.
// No Redis client is wired, so handlers go straight to the database.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	r := gin.New()
	RegisterRoutes(r, db, nil, testSecret)
	return r, db
}

// doJSON issues a request with an optional JSON body and bearer token and
// returns the recorded response.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response body into dest
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("failed to decode response %s: %v", w.Body.String(), err)
	}
}

// testToken issues a valid session token for the protected routes
func testToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWT("tester", 1, "tester@example.com", testSecret)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// mustCreateDeck creates a deck through the API and returns its id
func mustCreateDeck(t *testing.T, r *gin.Engine, title string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/decks", gin.H{"title": title}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("deck create status = %d, body %s", w.Code, w.Body.String())
	}
	var resp DeckResponse
	decodeBody(t, w, &resp)
	return resp.ID
}
