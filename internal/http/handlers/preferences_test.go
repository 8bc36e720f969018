package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/preston-bernstein/sports-page-service/internal/kvstore"
	"github.com/preston-bernstein/sports-page-service/internal/preferences"
	"github.com/preston-bernstein/sports-page-service/internal/testutil"
)

type downStore struct{}

func (downStore) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (downStore) Set(context.Context, string, string) error   { return errors.New("down") }

func newPrefs(t *testing.T, store kvstore.Store, ov preferences.Overrides) *preferences.Preferences {
	t.Helper()
	return preferences.Load(context.Background(), store, ov, nil)
}

func decodePrefs(t *testing.T, rr *httptest.ResponseRecorder) preferencesResponse {
	t.Helper()
	var body preferencesResponse
	testutil.DecodeJSON(t, rr, &body)
	return body
}

func TestPreferencesGet(t *testing.T) {
	prefs := newPrefs(t, kvstore.NewMemoryStore(), preferences.Overrides{Leagues: []string{"nhl", "nba"}, Favorites: []string{"nba:13"}})
	h := NewPreferencesHandler(prefs, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Get), http.MethodGet, "/preferences", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	body := decodePrefs(t, rr)
	if !reflect.DeepEqual(body.Leagues, []string{"nhl", "nba"}) || !reflect.DeepEqual(body.Favorites, []string{"nba:13"}) {
		t.Fatalf("unexpected preferences %+v", body)
	}
	if body.Sources["leagues"] != string(preferences.SourceOverride) || body.Persisted != nil {
		t.Fatalf("unexpected sources/persisted %+v", body)
	}
}

func TestPreferencesFavoriteAddAndRemove(t *testing.T) {
	store := kvstore.NewMemoryStore()
	prefs := newPrefs(t, store, preferences.Overrides{})
	changes := 0
	h := NewPreferencesHandler(prefs, func() { changes++ }, nil)

	put := withParams(httptest.NewRequest(http.MethodPut, "/favorites/NBA/13", nil), "league", "NBA", "team", "13")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Favorite), put)
	testutil.AssertStatus(t, rr, http.StatusOK)
	body := decodePrefs(t, rr)
	if !reflect.DeepEqual(body.Favorites, []string{"nba:13"}) || body.Persisted == nil || !*body.Persisted {
		t.Fatalf("unexpected body after add %+v", body)
	}
	persisted, _, _ := kvstore.GetStrings(context.Background(), store, preferences.KeyFavorites)
	if !reflect.DeepEqual(persisted, []string{"nba:13"}) {
		t.Fatalf("expected favorite persisted, got %v", persisted)
	}

	// Repeating the add is a no-op and does not trigger a rebuild.
	rr = testutil.ServeRequest(http.HandlerFunc(h.Favorite), withParams(httptest.NewRequest(http.MethodPut, "/favorites/nba/13", nil), "league", "nba", "team", "13"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	del := withParams(httptest.NewRequest(http.MethodDelete, "/favorites/nba/13", nil), "league", "nba", "team", "13")
	rr = testutil.ServeRequest(http.HandlerFunc(h.Favorite), del)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if body := decodePrefs(t, rr); len(body.Favorites) != 0 {
		t.Fatalf("expected favorite removed, got %v", body.Favorites)
	}
	if changes != 2 {
		t.Fatalf("expected two change notifications, got %d", changes)
	}
}

func TestPreferencesFavoriteValidation(t *testing.T) {
	h := NewPreferencesHandler(newPrefs(t, kvstore.NewMemoryStore(), preferences.Overrides{}), nil, nil)
	cases := []struct {
		league, team string
		want         int
	}{
		{"cricket", "1", http.StatusNotFound},
		{"nba", "", http.StatusBadRequest},
		{"nba", "a:b", http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := withParams(httptest.NewRequest(http.MethodPut, "/favorites/x/y", nil), "league", tc.league, "team", tc.team)
		rr := testutil.ServeRequest(http.HandlerFunc(h.Favorite), req)
		if rr.Code != tc.want {
			t.Fatalf("%s/%s: expected %d, got %d", tc.league, tc.team, tc.want, rr.Code)
		}
	}
}

func TestPreferencesFavoritePersistFailure(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	prefs := newPrefs(t, downStore{}, preferences.Overrides{})
	h := NewPreferencesHandler(prefs, nil, logger)

	req := withParams(httptest.NewRequest(http.MethodPut, "/favorites/nhl/1", nil), "league", "nhl", "team", "1")
	rr := testutil.ServeRequest(http.HandlerFunc(h.Favorite), req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	body := decodePrefs(t, rr)
	if body.Persisted == nil || *body.Persisted {
		t.Fatalf("expected persisted=false, got %+v", body)
	}
	if !reflect.DeepEqual(body.Favorites, []string{"nhl:1"}) {
		t.Fatalf("expected change applied in memory, got %v", body.Favorites)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected persistence warning logged")
	}
}

func TestPreferencesLeagueToggle(t *testing.T) {
	store := kvstore.NewMemoryStore()
	prefs := newPrefs(t, store, preferences.Overrides{Leagues: []string{"nba"}})
	changes := 0
	h := NewPreferencesHandler(prefs, func() { changes++ }, nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.League), withParams(httptest.NewRequest(http.MethodPut, "/leagues/epl", nil), "league", "EPL"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	if body := decodePrefs(t, rr); !reflect.DeepEqual(body.Leagues, []string{"nba", "epl"}) {
		t.Fatalf("expected epl appended, got %v", body.Leagues)
	}

	rr = testutil.ServeRequest(http.HandlerFunc(h.League), withParams(httptest.NewRequest(http.MethodDelete, "/leagues/nba", nil), "league", "nba"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	if body := decodePrefs(t, rr); !reflect.DeepEqual(body.Leagues, []string{"epl"}) {
		t.Fatalf("expected nba removed, got %v", body.Leagues)
	}
	persisted, _, _ := kvstore.GetStrings(context.Background(), store, preferences.KeyActiveLeagues)
	if !reflect.DeepEqual(persisted, []string{"epl"}) {
		t.Fatalf("expected active leagues persisted, got %v", persisted)
	}
	if changes != 2 {
		t.Fatalf("expected two change notifications, got %d", changes)
	}
}

func TestPreferencesLeagueUnknown(t *testing.T) {
	h := NewPreferencesHandler(newPrefs(t, kvstore.NewMemoryStore(), preferences.Overrides{}), nil, nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.League), withParams(httptest.NewRequest(http.MethodPut, "/leagues/cricket", nil), "league", "cricket"))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}
