package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/service"
	"github.com/erazemk/shramba/internal/store/sqlite"
	"github.com/erazemk/shramba/internal/uploads"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	files, err := uploads.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating uploads store: %v", err)
	}

	svc := service.New(sqlite.New(database))
	router := NewRouter(svc, Options{Uploads: files, BaseURL: "https://inv.example.com"})
	server := httptest.NewServer(LoggingMiddleware(router))
	t.Cleanup(server.Close)
	return server
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func do(t *testing.T, method, url string, body, out any) *http.Response {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, url, err)
		}
	}
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected %d, got %d", resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode)
	}
}

func TestLocationsAPIFlow(t *testing.T) {
	server := setupTestServer(t)

	var kitchen model.Location
	resp := do(t, "POST", server.URL+"/api/locations", map[string]any{"name": "Kitchen", "parentId": nil}, &kitchen)
	expectStatus(t, resp, http.StatusCreated)
	if kitchen.Path != "Kitchen" {
		t.Errorf("kitchen path = %q", kitchen.Path)
	}

	var fridge model.Location
	resp = do(t, "POST", server.URL+"/api/locations", map[string]any{"name": "Fridge", "parentId": kitchen.ID}, &fridge)
	expectStatus(t, resp, http.StatusCreated)
	if fridge.Path != "Kitchen/Fridge" {
		t.Errorf("fridge path = %q", fridge.Path)
	}

	// Missing name and unknown parent are validation failures.
	resp = do(t, "POST", server.URL+"/api/locations", map[string]any{"description": "nameless"}, nil)
	expectStatus(t, resp, http.StatusBadRequest)
	resp = do(t, "POST", server.URL+"/api/locations", map[string]any{"name": "Shelf", "parentId": 999}, nil)
	expectStatus(t, resp, http.StatusBadRequest)

	// Renaming the parent rewrites the child's path.
	resp = do(t, "PUT", server.URL+"/api/locations/"+itoa(kitchen.ID), map[string]any{"name": "Cuisine"}, nil)
	expectStatus(t, resp, http.StatusOK)
	var got model.Location
	resp = do(t, "GET", server.URL+"/api/locations/"+itoa(fridge.ID), nil, &got)
	expectStatus(t, resp, http.StatusOK)
	if got.Path != "Cuisine/Fridge" {
		t.Errorf("fridge path after rename = %q", got.Path)
	}

	// Moving a location below its own child is rejected.
	resp = do(t, "PUT", server.URL+"/api/locations/"+itoa(kitchen.ID), map[string]any{"parentId": fridge.ID}, nil)
	expectStatus(t, resp, http.StatusBadRequest)

	var tree []struct {
		model.Location
		Children []json.RawMessage `json:"children"`
	}
	resp = do(t, "GET", server.URL+"/api/locations/tree", nil, &tree)
	expectStatus(t, resp, http.StatusOK)
	if len(tree) != 1 || len(tree[0].Children) != 1 {
		t.Errorf("unexpected tree: %+v", tree)
	}

	resp = do(t, "DELETE", server.URL+"/api/locations/"+itoa(kitchen.ID), nil, nil)
	expectStatus(t, resp, http.StatusNoContent)
	resp = do(t, "GET", server.URL+"/api/locations/"+itoa(kitchen.ID), nil, nil)
	expectStatus(t, resp, http.StatusNotFound)
	resp = do(t, "GET", server.URL+"/api/locations/abc", nil, nil)
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestItemsAPIFlow(t *testing.T) {
	server := setupTestServer(t)

	var loc model.Location
	do(t, "POST", server.URL+"/api/locations", map[string]any{"name": "Garage"}, &loc)

	var drill model.Item
	resp := do(t, "POST", server.URL+"/api/items", map[string]any{
		"name":         "Cordless Drill",
		"value":        "129.99",
		"purchaseDate": "2023-04-01",
		"locationId":   loc.ID,
		"customFields": map[string]any{"brand": "Bosch"},
	}, &drill)
	expectStatus(t, resp, http.StatusCreated)
	if drill.PurchaseDate == nil || drill.PurchaseDate.Format(time.DateOnly) != "2023-04-01" {
		t.Errorf("purchaseDate = %v", drill.PurchaseDate)
	}
	do(t, "POST", server.URL+"/api/items", map[string]any{"name": "Bicycle pump"}, nil)

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?search=drill", 1},
		{"?search=DRILL", 1},
		{"?locationId=" + itoa(loc.ID), 1},
		{"?search=pump&locationId=" + itoa(loc.ID), 0},
	}
	for _, tt := range tests {
		var items []model.Item
		resp := do(t, "GET", server.URL+"/api/items"+tt.query, nil, &items)
		expectStatus(t, resp, http.StatusOK)
		if len(items) != tt.want {
			t.Errorf("GET /api/items%s: expected %d items, got %d", tt.query, tt.want, len(items))
		}
	}
	resp = do(t, "GET", server.URL+"/api/items?locationId=x", nil, nil)
	expectStatus(t, resp, http.StatusBadRequest)

	// Partial update keeps untouched fields and clears the location.
	var updated model.Item
	resp = do(t, "PUT", server.URL+"/api/items/"+itoa(drill.ID), map[string]any{"notes": "needs battery", "locationId": nil}, &updated)
	expectStatus(t, resp, http.StatusOK)
	if updated.Notes != "needs battery" || updated.Value != "129.99" || updated.LocationID != nil {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if updated.UpdatedAt.Before(drill.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v -> %v", drill.UpdatedAt, updated.UpdatedAt)
	}

	for _, body := range []map[string]any{
		{"value": "-3"},
		{"value": "abc"},
		{"purchaseDate": "yesterday"},
	} {
		resp = do(t, "PUT", server.URL+"/api/items/"+itoa(drill.ID), body, nil)
		expectStatus(t, resp, http.StatusBadRequest)
	}

	resp = do(t, "DELETE", server.URL+"/api/items/"+itoa(drill.ID), nil, nil)
	expectStatus(t, resp, http.StatusNoContent)
	resp = do(t, "GET", server.URL+"/api/items/"+itoa(drill.ID), nil, nil)
	expectStatus(t, resp, http.StatusNotFound)
	resp = do(t, "DELETE", server.URL+"/api/items/"+itoa(drill.ID), nil, nil)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestAchievementsAPIFlow(t *testing.T) {
	server := setupTestServer(t)

	var first model.Achievement
	resp := do(t, "POST", server.URL+"/api/achievements", map[string]any{
		"name": "First Steps", "type": "items_count", "threshold": 1, "icon": "trophy",
	}, &first)
	expectStatus(t, resp, http.StatusCreated)

	resp = do(t, "POST", server.URL+"/api/achievements", map[string]any{"name": "Bad", "type": "photos_count"}, nil)
	expectStatus(t, resp, http.StatusBadRequest)

	do(t, "POST", server.URL+"/api/items", map[string]any{"name": "Lamp", "value": "40"}, nil)

	var list []model.Achievement
	resp = do(t, "GET", server.URL+"/api/achievements", nil, &list)
	expectStatus(t, resp, http.StatusOK)
	if len(list) != 1 || !list[0].IsUnlocked || list[0].UnlockedAt == nil {
		t.Fatalf("achievement not unlocked by first item: %+v", list)
	}
	unlockedAt := *list[0].UnlockedAt

	// Manual unlock of an unlocked achievement is a no-op.
	var again model.Achievement
	resp = do(t, "POST", server.URL+"/api/achievements/"+itoa(first.ID)+"/unlock", nil, &again)
	expectStatus(t, resp, http.StatusOK)
	if !again.UnlockedAt.Equal(unlockedAt) {
		t.Errorf("UnlockedAt changed: %v -> %v", unlockedAt, again.UnlockedAt)
	}
	resp = do(t, "POST", server.URL+"/api/achievements/999/unlock", nil, nil)
	expectStatus(t, resp, http.StatusNotFound)

	var progress []service.AchievementProgress
	resp = do(t, "GET", server.URL+"/api/achievements/progress", nil, &progress)
	expectStatus(t, resp, http.StatusOK)
	if len(progress) != 1 || progress[0].Progress != 100 {
		t.Errorf("unexpected progress: %+v", progress)
	}

	var stats struct {
		TotalItems     int    `json:"totalItems"`
		TotalValue     string `json:"totalValue"`
		LocationsCount int    `json:"locationsCount"`
		RecentItems    []model.Item
	}
	resp = do(t, "GET", server.URL+"/api/stats", nil, &stats)
	expectStatus(t, resp, http.StatusOK)
	if stats.TotalItems != 1 || stats.TotalValue != "40" || len(stats.RecentItems) != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestShareableListsAPIFlow(t *testing.T) {
	server := setupTestServer(t)

	var list model.ShareableList
	resp := do(t, "POST", server.URL+"/api/shareable-lists", map[string]any{"name": "Lendable"}, &list)
	expectStatus(t, resp, http.StatusCreated)
	if !list.IsPublic || list.ShareID == "" {
		t.Fatalf("unexpected list: %+v", list)
	}

	var a, b model.Item
	do(t, "POST", server.URL+"/api/items", map[string]any{"name": "Ladder"}, &a)
	do(t, "POST", server.URL+"/api/items", map[string]any{"name": "Tent"}, &b)

	itemsURL := server.URL + "/api/shareable-lists/" + itoa(list.ID) + "/items"
	for _, it := range []model.Item{a, b} {
		resp = do(t, "POST", itemsURL, map[string]any{"itemId": it.ID}, nil)
		expectStatus(t, resp, http.StatusCreated)
	}
	resp = do(t, "POST", itemsURL, map[string]any{"itemId": 999}, nil)
	expectStatus(t, resp, http.StatusNotFound)
	resp = do(t, "POST", itemsURL, map[string]any{}, nil)
	expectStatus(t, resp, http.StatusBadRequest)

	// Deleting an item directly hides it from the list.
	do(t, "DELETE", server.URL+"/api/items/"+itoa(a.ID), nil, nil)

	var entries []model.ShareableListItem
	resp = do(t, "GET", itemsURL, nil, &entries)
	expectStatus(t, resp, http.StatusOK)
	if len(entries) != 1 || entries[0].Item == nil || entries[0].Item.Name != "Tent" {
		t.Errorf("unexpected list items: %+v", entries)
	}

	var shared service.SharedList
	resp = do(t, "GET", server.URL+"/api/share/"+list.ShareID, nil, &shared)
	expectStatus(t, resp, http.StatusOK)
	if shared.List.ID != list.ID || len(shared.Items) != 1 {
		t.Errorf("unexpected shared list: %+v", shared)
	}

	resp = do(t, "GET", server.URL+"/api/share/AAAAAAAAAAAAAAAAAAAAAA", nil, nil)
	expectStatus(t, resp, http.StatusNotFound)
	resp = do(t, "GET", server.URL+"/api/share/short", nil, nil)
	expectStatus(t, resp, http.StatusNotFound)

	// Making the list private hides it.
	var updated model.ShareableList
	resp = do(t, "PUT", server.URL+"/api/shareable-lists/"+itoa(list.ID), map[string]any{"isPublic": false}, &updated)
	expectStatus(t, resp, http.StatusOK)
	if updated.ShareID != list.ShareID {
		t.Errorf("share id changed on update")
	}
	resp = do(t, "GET", server.URL+"/api/share/"+list.ShareID, nil, nil)
	expectStatus(t, resp, http.StatusNotFound)

	resp = do(t, "DELETE", itemsURL+"/"+itoa(b.ID), nil, nil)
	expectStatus(t, resp, http.StatusNoContent)
	resp = do(t, "DELETE", itemsURL+"/"+itoa(b.ID), nil, nil)
	expectStatus(t, resp, http.StatusNotFound)

	resp = do(t, "DELETE", server.URL+"/api/shareable-lists/"+itoa(list.ID), nil, nil)
	expectStatus(t, resp, http.StatusNoContent)
	resp = do(t, "GET", server.URL+"/api/shareable-lists/"+itoa(list.ID), nil, nil)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestShareQRCode(t *testing.T) {
	server := setupTestServer(t)

	var list model.ShareableList
	do(t, "POST", server.URL+"/api/shareable-lists", map[string]any{"name": "Books"}, &list)

	resp, err := http.Get(server.URL + "/api/shareable-lists/" + itoa(list.ID) + "/qr?size=128")
	if err != nil {
		t.Fatalf("GET qr: %v", err)
	}
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decoding qr png: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("qr width = %d, want 128", img.Bounds().Dx())
	}

	resp2 := do(t, "GET", server.URL+"/api/shareable-lists/"+itoa(list.ID)+"/qr?size=5000", nil, nil)
	expectStatus(t, resp2, http.StatusBadRequest)
}

func TestExportCSV(t *testing.T) {
	server := setupTestServer(t)

	var loc model.Location
	do(t, "POST", server.URL+"/api/locations", map[string]any{"name": "Office"}, &loc)
	do(t, "POST", server.URL+"/api/items", map[string]any{"name": `Widget, "Pro"`, "value": "10", "locationId": loc.ID}, nil)

	resp, err := http.Get(server.URL + "/api/export/csv")
	if err != nil {
		t.Fatalf("GET csv: %v", err)
	}
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, ".csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", body)
	}
	if !strings.HasPrefix(lines[0], "Name,Description,Barcode,Value") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"Widget, ""Pro"""`) || !strings.Contains(lines[1], ",Office,") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestExportOtherFormats(t *testing.T) {
	server := setupTestServer(t)
	do(t, "POST", server.URL+"/api/items", map[string]any{"name": "Kettle", "value": "25"}, nil)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/api/export/html", "text/html", "Kettle"},
		{"/api/export/xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
	}

	for _, tt := range tests {
		resp, err := http.Get(server.URL + tt.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tt.path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		expectStatus(t, resp, http.StatusOK)
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
			t.Errorf("%s: Content-Type = %q", tt.path, ct)
		}
		if !bytes.Contains(body, []byte(tt.contains)) {
			t.Errorf("%s: body does not contain %q", tt.path, tt.contains)
		}
	}
}

func TestUploadAndServe(t *testing.T) {
	server := setupTestServer(t)

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "photo.png")
	fw.Write(img.Bytes())
	mw.Close()

	resp, err := http.Post(server.URL+"/api/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	var out map[string]string
	json.NewDecoder(resp.Body).Decode(&out)
	resp.Body.Close()
	expectStatus(t, resp, http.StatusCreated)

	url := out["url"]
	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("url = %q", url)
	}

	resp, err = http.Get(server.URL + url)
	if err != nil {
		t.Fatalf("GET upload: %v", err)
	}
	resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)

	resp, err = http.Get(server.URL + "/uploads/..%2fshramba.sqlite3")
	if err != nil {
		t.Fatalf("GET upload: %v", err)
	}
	resp.Body.Close()
	expectStatus(t, resp, http.StatusNotFound)

	// Plain text is rejected.
	body.Reset()
	mw = multipart.NewWriter(&body)
	fw, _ = mw.CreateFormFile("file", "notes.txt")
	fw.Write([]byte("hello"))
	mw.Close()
	resp, err = http.Post(server.URL+"/api/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	resp.Body.Close()
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestRequestID(t *testing.T) {
	server := setupTestServer(t)

	resp := do(t, "GET", server.URL+"/api/stats", nil, nil)
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	req, _ := http.NewRequest("GET", server.URL+"/api/stats", nil)
	req.Header.Set(RequestIDHeader, "3f1c9f3e-8c2b-4a39-9a53-0f6a3a1d2b7c")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET stats: %v", err)
	}
	resp2.Body.Close()
	if got := resp2.Header.Get(RequestIDHeader); got != "3f1c9f3e-8c2b-4a39-9a53-0f6a3a1d2b7c" {
		t.Errorf("request id = %q, want the incoming one", got)
	}

	resp = do(t, "GET", server.URL+"/api/nope", nil, nil)
	expectStatus(t, resp, http.StatusNotFound)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestAccessLogRedactsShareToken(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	const token = "Zq3xV9mK2pL8rT4wY6uB1c"
	for _, path := range []string{"/share/" + token, "/api/share/" + token} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items?search=drill", nil))

	logged := buf.String()
	if strings.Contains(logged, token) {
		t.Errorf("access log contains share token: %s", logged)
	}
	if !strings.Contains(logged, "/api/share/[redacted]") {
		t.Errorf("expected redacted share path in log: %s", logged)
	}
	if !strings.Contains(logged, "/api/items?search=drill") {
		t.Errorf("other paths should be logged in full: %s", logged)
	}
}
