package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/dexsearch/internal/catalog"
	"github.com/lehigh-university-libraries/dexsearch/internal/models"
	"github.com/lehigh-university-libraries/dexsearch/internal/ui"
)

type fakeAPI struct {
	mu        sync.Mutex
	names     []string
	listErr   error
	fail      map[string]error
	listCalls int
	fetches   int

	// entered receives a value whenever a fetch starts; gate holds fetches until closed
	entered chan struct{}
	gate    chan struct{}
	// listGate holds listing requests until closed
	listGate chan struct{}
}

func (f *fakeAPI) ListNames(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.listGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.names, f.listErr
}

func (f *fakeAPI) FetchPokemon(ctx context.Context, name string) (models.Pokemon, error) {
	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if err := f.fail[name]; err != nil {
		return models.Pokemon{}, err
	}
	id := map[string]int{"pikachu": 25, "pichu": 172, "raichu": 26}[name]
	return models.Pokemon{
		ID:    id,
		Name:  name,
		Types: []models.TypeSlot{{Slot: 1, Type: models.NamedResource{Name: "electric"}}},
	}, nil
}

func (f *fakeAPI) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type testServer struct {
	*httptest.Server
	api    *fakeAPI
	loader *catalog.Loader
	client *http.Client
}

func newTestServer(t *testing.T, api *fakeAPI) *testServer {
	t.Helper()

	loader := catalog.NewLoader(api)
	loader.Start(context.Background())
	waitLoaded(t, loader)

	h := New(Options{
		Loader:      loader,
		Fetcher:     api,
		Localizer:   ui.NewLocalizer("en"),
		BaseContext: t.Context(),
	})
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	s := &testServer{Server: server, api: api, loader: loader}
	s.client = s.newClient(t)
	return s
}

// newClient returns a client with its own cookie jar, i.e. a separate browser
func (s *testServer) newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func waitLoaded(t *testing.T, loader *catalog.Loader) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := loader.Wait(ctx); err != nil {
		t.Fatalf("Catalog did not load: %v", err)
	}
}

func (s *testServer) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := s.client.Get(s.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return readBody(t, resp)
}

func (s *testServer) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := s.client.PostForm(s.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestSearchRoundTrip(t *testing.T) {
	s := newTestServer(t, &fakeAPI{names: []string{"pikachu", "pichu", "raichu", "bulbasaur"}})

	code, body := s.post(t, "/search", url.Values{"q": {"  CHU  "}})
	if code != http.StatusOK {
		t.Fatalf("Expected 200 after redirect, got %d", code)
	}

	if !strings.Contains(body, "Found 3 Pokémon!") {
		t.Error("Expected count message")
	}
	pik := strings.Index(body, ">pikachu<")
	pic := strings.Index(body, ">pichu<")
	rai := strings.Index(body, ">raichu<")
	if pik < 0 || pic < 0 || rai < 0 || pik > pic || pic > rai {
		t.Errorf("Expected cards in index order, got positions %d %d %d", pik, pic, rai)
	}

	code, body = s.post(t, "/results/0", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if !strings.Contains(body, `id="pokemon-dialog" class="dialog" data-show="1"`) {
		t.Error("Expected detail dialog to be shown")
	}
	if !strings.Contains(body, "Slot 1: electric") {
		t.Error("Expected type line in the detail dialog")
	}

	_, body = s.post(t, "/dialog/detail/close", nil)
	if !strings.Contains(body, `id="pokemon-dialog" class="dialog" data-show="0"`) {
		t.Error("Expected detail dialog to be hidden")
	}
}

func TestSearchEmptyQueryFetchesNothing(t *testing.T) {
	s := newTestServer(t, &fakeAPI{names: []string{"pikachu"}})

	_, body := s.post(t, "/search", url.Values{"q": {"   "}})
	if !strings.Contains(body, "No query given.") {
		t.Error("Expected missing query message")
	}
	if !strings.Contains(body, `data-error="1"`) {
		t.Error("Expected error flag")
	}
	if s.api.fetchCount() != 0 {
		t.Errorf("Expected no fetches, got %d", s.api.fetchCount())
	}
}

func TestSearchNoMatches(t *testing.T) {
	s := newTestServer(t, &fakeAPI{names: []string{"pikachu"}})

	_, body := s.post(t, "/search", url.Values{"q": {"zzz"}})
	if !strings.Contains(body, "No Pokémon found!") {
		t.Error("Expected no matches message")
	}
	if s.api.fetchCount() != 0 {
		t.Errorf("Expected no fetches, got %d", s.api.fetchCount())
	}
}

func TestSearchFetchFailureOpensErrorDialog(t *testing.T) {
	api := &fakeAPI{
		names: []string{"pikachu", "bulbasaur"},
		fail:  map[string]error{"pikachu": errors.New("failed to fetch pikachu: API returned status 500")},
	}
	s := newTestServer(t, api)

	_, body := s.post(t, "/search", url.Values{"q": {"pik"}})

	if !strings.Contains(body, "Search failed!") {
		t.Error("Expected failure message")
	}
	if !strings.Contains(body, `id="error-dialog" class="dialog" data-show="1"`) {
		t.Error("Expected error dialog to be shown")
	}
	if !strings.Contains(body, "failed to fetch pikachu: API returned status 500") {
		t.Error("Expected raw failure text")
	}
	if strings.Contains(body, `action="/results/0"`) {
		t.Error("Expected result grid to stay empty")
	}

	_, body = s.post(t, "/dialog/error/close", nil)
	if !strings.Contains(body, `id="error-dialog" class="dialog" data-show="0"`) {
		t.Error("Expected error dialog to be dismissed")
	}
}

func TestShowDetailUnknownIndex(t *testing.T) {
	s := newTestServer(t, &fakeAPI{names: []string{"pikachu"}})

	if code, _ := s.post(t, "/results/3", nil); code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}
	if code, _ := s.post(t, "/results/abc", nil); code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", code)
	}
}

func TestShowDetailRequiresPost(t *testing.T) {
	s := newTestServer(t, &fakeAPI{names: []string{"pikachu"}})

	_, body := s.post(t, "/search", url.Values{"q": {"pika"}})
	if !strings.Contains(body, `<form method="post" action="/results/0">`) {
		t.Fatal("Expected the card to submit a form")
	}

	if code, _ := s.get(t, "/results/0"); code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET, got %d", code)
	}
	_, body = s.get(t, "/")
	if !strings.Contains(body, `id="pokemon-dialog" class="dialog" data-show="0"`) {
		t.Error("Expected a GET not to open the detail dialog")
	}
}

func TestSearchWhileBusyIsRejected(t *testing.T) {
	api := &fakeAPI{
		names:   []string{"pikachu"},
		entered: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	s := newTestServer(t, api)

	// Obtain the session cookie before the first search blocks.
	s.get(t, "/")

	first := make(chan int, 1)
	go func() {
		resp, err := s.client.PostForm(s.URL+"/search", url.Values{"q": {"pika"}})
		if err != nil {
			first <- 0
			return
		}
		resp.Body.Close()
		first <- resp.StatusCode
	}()

	select {
	case <-api.entered:
	case <-time.After(time.Second):
		t.Fatal("Expected the first search to start fetching")
	}

	code, body := s.post(t, "/search", url.Values{"q": {"pichu"}})
	if code != http.StatusConflict {
		t.Errorf("Expected 409 while busy, got %d", code)
	}
	if !strings.Contains(body, "A search is already running.") {
		t.Errorf("Expected busy message, got %q", body)
	}

	close(api.gate)
	select {
	case got := <-first:
		if got != http.StatusOK {
			t.Errorf("Expected the first search to finish with 200, got %d", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected the first search to finish")
	}

	_, body = s.get(t, "/")
	if !strings.Contains(body, "Found 1 Pokémon!") {
		t.Error("Expected the first search's results")
	}
}

func TestReloadKeepsOtherSessionsSearching(t *testing.T) {
	api := &fakeAPI{names: []string{"pikachu"}}
	s := newTestServer(t, api)

	gate := make(chan struct{})
	api.mu.Lock()
	api.listGate = gate
	api.names = []string{"pikachu", "pichu"}
	api.mu.Unlock()

	other := s.newClient(t)
	resp, err := other.PostForm(s.URL+"/reload", nil)
	if err != nil {
		t.Fatalf("POST /reload failed: %v", err)
	}
	if _, body := readBody(t, resp); strings.Contains(body, `id="loading-screen"`) {
		t.Error("Expected the current index to keep serving during a reload")
	}

	_, body := s.post(t, "/search", url.Values{"q": {"pi"}})
	if !strings.Contains(body, "Found 1 Pokémon!") {
		t.Error("Expected searches against the current index while reloading")
	}

	close(gate)
	waitLoaded(t, s.loader)

	_, body = s.post(t, "/search", url.Values{"q": {"pi"}})
	if !strings.Contains(body, "Found 2 Pokémon!") {
		t.Error("Expected the reloaded index to be searched")
	}
}


func TestStartupFailureAndReload(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("dial tcp: connection refused")}
	s := newTestServer(t, api)

	_, body := s.get(t, "/")
	if strings.Contains(body, `id="loading-screen"`) {
		t.Error("Expected loading screen to be replaced by the error view")
	}
	if !strings.Contains(body, "dial tcp: connection refused") {
		t.Error("Expected startup failure text")
	}

	if code, _ := s.post(t, "/search", url.Values{"q": {"pik"}}); code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before the catalog loads, got %d", code)
	}

	api.mu.Lock()
	api.listErr = nil
	api.names = []string{"pikachu"}
	api.mu.Unlock()

	s.post(t, "/reload", nil)
	waitLoaded(t, s.loader)

	_, body = s.get(t, "/")
	if !strings.Contains(body, `id="search-box"`) {
		t.Error("Expected search box after a successful reload")
	}
	if api.listCalls != 2 {
		t.Errorf("Expected catalog to be fetched twice, got %d", api.listCalls)
	}
}

func TestReloadClearsSession(t *testing.T) {
	s := newTestServer(t, &fakeAPI{names: []string{"pikachu"}})

	_, body := s.post(t, "/search", url.Values{"q": {"pika"}})
	if !strings.Contains(body, `action="/results/0"`) {
		t.Fatal("Expected one card")
	}

	s.post(t, "/reload", nil)
	waitLoaded(t, s.loader)

	_, body = s.get(t, "/")
	if strings.Contains(body, `action="/results/0"`) {
		t.Error("Expected reload to discard results")
	}
}

func TestAPISearch(t *testing.T) {
	s := newTestServer(t, &fakeAPI{names: []string{"pikachu", "pichu", "raichu"}})

	code, body := s.get(t, "/api/search?q=chu")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}

	var resp struct {
		Status  string           `json:"status"`
		Message string           `json:"message"`
		IsError bool             `json:"is_error"`
		Matched []string         `json:"matched"`
		Results []models.Pokemon `json:"results"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if resp.Status != "success" || resp.Message != "Found 3 Pokémon!" || resp.IsError {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if len(resp.Results) != 3 || resp.Results[1].Name != "pichu" {
		t.Errorf("Unexpected results: %+v", resp.Results)
	}

	_, body = s.get(t, "/api/search?q=")
	if !strings.Contains(body, `"status":"no-query"`) {
		t.Errorf("Expected no-query status, got %s", body)
	}
}

func TestAPICatalogAndPokemon(t *testing.T) {
	api := &fakeAPI{
		names: []string{"pikachu", "pichu"},
		fail:  map[string]error{"missingno": errors.New("failed to fetch missingno: API returned status 404")},
	}
	s := newTestServer(t, api)

	_, body := s.get(t, "/api/catalog")
	if !strings.Contains(body, `"ready":true`) || !strings.Contains(body, `"count":2`) {
		t.Errorf("Unexpected catalog status: %s", body)
	}

	code, body := s.get(t, "/api/pokemon/Pikachu")
	if code != http.StatusOK || !strings.Contains(body, `"id":25`) {
		t.Errorf("Unexpected detail response %d: %s", code, body)
	}

	if code, _ := s.get(t, "/api/pokemon/missingno"); code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", code)
	}
}

func TestHealthcheck(t *testing.T) {
	s := newTestServer(t, &fakeAPI{})
	code, body := s.get(t, "/healthcheck")
	if code != http.StatusOK || body != "OK" {
		t.Errorf("Expected 200 OK, got %d %q", code, body)
	}
}
