package broadcast

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/scrolldeck/scene"
	"github.com/lixenwraith/scrolldeck/session"
)

// fakeController records jumps and reports a fixed state
type fakeController struct {
	mu     sync.Mutex
	deck   *scene.Deck
	state  session.State
	jumps  []int
	accept bool
}

func (f *fakeController) State() session.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeController) Deck() *scene.Deck { return f.deck }

func (f *fakeController) Stats() map[string]int64 {
	return map[string]int64{"wheel.accepted": 2, "wheel.debounce": 5}
}

func (f *fakeController) JumpTo(index int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jumps = append(f.jumps, index)
	if f.accept {
		f.state.Active = index
	}
	return f.accept
}

func (f *fakeController) jumped() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.jumps...)
}

func (f *fakeController) JumpToAnchor(fragment string) (int, bool) {
	index, ok := f.deck.Links.Lookup(fragment)
	if !ok {
		return -1, false
	}
	return index, f.JumpTo(index)
}

func newFake(t *testing.T) *fakeController {
	t.Helper()
	deck, err := scene.Parse([]byte(`
scenes:
  - id: hero
    title: Hero
  - id: features
    embed: true
  - id: outro
links:
  end: outro
`))
	if err != nil {
		t.Fatalf("parse deck: %v", err)
	}
	return &fakeController{deck: deck, accept: true, state: session.State{Count: 3, Ready: true}}
}

func newTestServer(t *testing.T) (*fakeController, *Hub, *httptest.Server) {
	t.Helper()
	ctl := newFake(t)
	hub := NewHub(4)
	srv := NewServer(ctl, hub, Config{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})
	return ctl, hub, ts
}

func TestGetState(t *testing.T) {
	ctl, _, ts := newTestServer(t)
	ctl.state.SceneID = "hero"

	resp, err := http.Get(ts.URL + "/state")
	if err != nil {
		t.Fatalf("GET /state: %v", err)
	}
	defer resp.Body.Close()

	var st session.State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.SceneID != "hero" || st.Count != 3 {
		t.Errorf("state = %+v", st)
	}
}

func TestGetScenes(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/scenes")
	if err != nil {
		t.Fatalf("GET /scenes: %v", err)
	}
	defer resp.Body.Close()

	var got scenesResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Scenes) != 3 {
		t.Fatalf("scenes = %+v", got.Scenes)
	}
	if !got.Scenes[1].Embedded || got.Scenes[1].Ordinal != 1 {
		t.Errorf("features = %+v", got.Scenes[1])
	}
	if got.Links["end"] != "outro" {
		t.Errorf("links = %v", got.Links)
	}
}

func TestGetStats(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/stats")
	if err != nil {
		t.Fatalf("GET /stats: %v", err)
	}
	defer resp.Body.Close()

	var got map[string]int64
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["wheel.debounce"] != 5 {
		t.Errorf("stats = %v", got)
	}
}

func TestPostJump(t *testing.T) {
	ctl, _, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/jump/2", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /jump/2: %v", err)
	}
	defer resp.Body.Close()

	var got jumpResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || !got.Accepted || got.State.Active != 2 {
		t.Errorf("status=%d resp=%+v", resp.StatusCode, got)
	}
	if jumps := ctl.jumped(); len(jumps) != 1 || jumps[0] != 2 {
		t.Errorf("jumps = %v", jumps)
	}
}

func TestPostJumpRefused(t *testing.T) {
	ctl, _, ts := newTestServer(t)
	ctl.accept = false

	resp, err := http.Post(ts.URL+"/jump/1", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /jump/1: %v", err)
	}
	defer resp.Body.Close()

	var got jumpResponse
	json.NewDecoder(resp.Body).Decode(&got)
	if got.Accepted {
		t.Error("refused jump reported as accepted")
	}
}

func TestPostJumpBadIndex(t *testing.T) {
	ctl, _, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/jump/abc", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /jump/abc: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if jumps := ctl.jumped(); len(jumps) != 0 {
		t.Errorf("bad index reached the engine: %v", jumps)
	}
}

func TestPostAnchor(t *testing.T) {
	ctl, _, ts := newTestServer(t)

	tests := map[string]struct {
		target   int
		accepted bool
	}{
		"end":      {2, true},
		"features": {1, true},
		"missing":  {-1, false},
	}
	for fragment, want := range tests {
		resp, err := http.Post(ts.URL+"/anchor/"+fragment, "application/json", nil)
		if err != nil {
			t.Fatalf("POST /anchor/%s: %v", fragment, err)
		}
		var got jumpResponse
		json.NewDecoder(resp.Body).Decode(&got)
		resp.Body.Close()

		if got.Target != want.target || got.Accepted != want.accepted {
			t.Errorf("anchor %q = %+v, want target %d accepted %v", fragment, got, want.target, want.accepted)
		}
	}
	if jumps := ctl.jumped(); len(jumps) != 2 {
		t.Errorf("jumps = %v", jumps)
	}
}

func TestWebSocketStream(t *testing.T) {
	ctl, hub, ts := newTestServer(t)
	ctl.state.SceneID = "hero"

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first session.State
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if first.SceneID != "hero" {
		t.Errorf("initial = %+v", first)
	}

	hub.Publish(session.State{Active: 1, SceneID: "features", Locked: true})

	var next session.State
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if next.SceneID != "features" || !next.Locked {
		t.Errorf("update = %+v", next)
	}
}

func TestCORSPreflight(t *testing.T) {
	_, _, ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/jump/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}
}
