package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeys() ([]byte, []byte) {
	hash := make([]byte, 32)
	block := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(i)
		block[i] = byte(31 - i)
	}
	return hash, block
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}

func TestSessionRoundTrip(t *testing.T) {
	hashKey, blockKey := testKeys()
	store := NewStore(nil, hashKey, blockKey)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, store.SetSession(w, r, 42))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookies[0])
	sess, ok := store.GetSession(r2)
	require.True(t, ok)
	assert.Equal(t, int64(42), sess.UserID)
}

func TestGetSessionRejectsGarbage(t *testing.T) {
	hashKey, blockKey := testKeys()
	store := NewStore(nil, hashKey, blockKey)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := store.GetSession(r)
	assert.False(t, ok)

	r.AddCookie(&http.Cookie{Name: cookieName, Value: "tampered"})
	_, ok = store.GetSession(r)
	assert.False(t, ok)
}

func TestRequireAuth(t *testing.T) {
	hashKey, blockKey := testKeys()
	store := NewStore(nil, hashKey, blockKey)

	var sawID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		sawID = id
		w.WriteHeader(http.StatusOK)
	})

	// No session: redirected to login.
	w := httptest.NewRecorder()
	store.RequireAuth(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// With a valid session the staff id reaches the handler.
	loginW := httptest.NewRecorder()
	require.NoError(t, store.SetSession(loginW, httptest.NewRequest(http.MethodPost, "/login", nil), 7))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(loginW.Result().Cookies()[0])

	w = httptest.NewRecorder()
	store.RequireAuth(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), sawID)
}
