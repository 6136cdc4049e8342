package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/database"
	"github.com/storeease/storeease/internal/usecase"
)

const (
	owner    = "user_owner"
	stranger = "user_stranger"
)

type fakeIdentity map[string]string

func (f fakeIdentity) VerifyIDToken(_ context.Context, token string) (string, error) {
	uid, ok := f[token]
	if !ok {
		return "", errors.New("invalid token")
	}
	return uid, nil
}

type fakeAssets struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeAssets) Upload(_ context.Context, name string, r io.Reader) (usecase.Asset, error) {
	if name == "boom.png" {
		return usecase.Asset{}, errors.New("asset host down")
	}
	if _, err := io.ReadAll(r); err != nil {
		return usecase.Asset{}, err
	}
	return usecase.Asset{URL: "https://cdn.test/" + name, ID: "up_" + name}, nil
}

func (f *fakeAssets) Delete(_ context.Context, id string) (usecase.AssetDeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return usecase.AssetDeleteResult{Deleted: map[string]string{id: "deleted"}}, nil
}

func (f *fakeAssets) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.deleted)
	slices.Sort(out)
	return out
}

type testEnv struct {
	t      *testing.T
	h      http.Handler
	assets *fakeAssets
}

func newTestEnv(t *testing.T, local bool) testEnv {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "api.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo, err := database.New(db, nil)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	assets := &fakeAssets{}
	uc := usecase.New(repo, fakeIdentity{"token-owner": owner}, assets, nil)
	s := NewServer(uc, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Local:  local,
	})
	return testEnv{t: t, h: s.RegisterRoutes(), assets: assets}
}

type response struct {
	Code    int
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// do sends a JSON request as uid; an empty uid sends no credentials.
func (e testEnv) do(method, path, uid string, body any) response {
	e.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if uid != "" {
		req.Header.Set(config.HEADER_KEY_X_USER_ID, uid)
	}
	return e.serve(req)
}

func (e testEnv) serve(req *http.Request) response {
	e.t.Helper()
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)

	res := response{Code: rec.Code}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		e.t.Fatalf("%s %s: decode %q: %v", req.Method, req.URL.Path, rec.Body.String(), err)
	}
	return res
}

func (e testEnv) create(path string, body any) map[string]any {
	e.t.Helper()
	res := e.do(http.MethodPost, path, owner, body)
	if res.Code != http.StatusCreated {
		e.t.Fatalf("POST %s = %d %s", path, res.Code, res.Error)
	}
	return decode(e.t, res)
}

func decode(t *testing.T, res response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(res.Data, &m); err != nil {
		t.Fatalf("decode data %s: %v", res.Data, err)
	}
	return m
}

func decodeList(t *testing.T, res response) []map[string]any {
	t.Helper()
	var l []map[string]any
	if err := json.Unmarshal(res.Data, &l); err != nil {
		t.Fatalf("decode list %s: %v", res.Data, err)
	}
	return l
}

type catalog struct {
	store, billboard, category, size, color string
}

func (e testEnv) seed() catalog {
	e.t.Helper()
	var c catalog
	c.store = e.create("/api/stores", map[string]any{"name": "Main"})["id"].(string)
	c.billboard = e.create("/api/"+c.store+"/billboards", map[string]any{
		"label": "Summer", "imageUrl": "https://cdn.test/a1.png", "imageId": "a1",
	})["id"].(string)
	c.category = e.create("/api/"+c.store+"/categories", map[string]any{
		"name": "Shirts", "billboardId": c.billboard,
	})["id"].(string)
	c.size = e.create("/api/"+c.store+"/sizes", map[string]any{"name": "Large", "value": "L"})["id"].(string)
	c.color = e.create("/api/"+c.store+"/colors", map[string]any{"name": "Red", "value": "#ff0000"})["id"].(string)
	return c
}

func (c catalog) product(name string, imageIDs ...string) map[string]any {
	images := make([]map[string]any, 0, len(imageIDs))
	for _, id := range imageIDs {
		images = append(images, map[string]any{"imageUrl": "https://cdn.test/" + id, "imageId": id})
	}
	return map[string]any{
		"name":       name,
		"price":      "19.99",
		"categoryId": c.category,
		"sizeId":     c.size,
		"colorId":    c.color,
		"images":     images,
	}
}

func TestCreateBillboard(t *testing.T) {
	e := newTestEnv(t, true)
	c := e.seed()
	path := "/api/" + c.store + "/billboards"
	body := map[string]any{"label": "Winter", "imageUrl": "https://cdn.test/w.png", "imageId": "w"}

	tests := []struct {
		name     string
		uid      string
		body     map[string]any
		wantCode int
	}{
		{"owner", owner, body, http.StatusCreated},
		{"unauthenticated", "", body, http.StatusUnauthorized},
		{"not the owner", stranger, body, http.StatusForbidden},
		{"missing label", owner, map[string]any{"imageUrl": "https://cdn.test/w.png"}, http.StatusBadRequest},
		{"missing image", owner, map[string]any{"label": "Winter"}, http.StatusBadRequest},
		{"missing label as stranger", stranger, map[string]any{"imageUrl": "u"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.do(http.MethodPost, path, tt.uid, tt.body)
			if res.Code != tt.wantCode {
				t.Fatalf("code = %d (%s), want %d", res.Code, res.Error, tt.wantCode)
			}
		})
	}

	list := decodeList(t, e.do(http.MethodGet, path, "", nil))
	if len(list) != 2 {
		t.Fatalf("billboards = %d, want seeded one plus the owner's", len(list))
	}
}

func TestUnknownStoreIsForbidden(t *testing.T) {
	e := newTestEnv(t, true)

	res := e.do(http.MethodPost, "/api/"+"4b5c0d3e-2f6a-4c1b-9d8e-7f6a5b4c3d2e"+"/sizes", owner, map[string]any{"name": "S", "value": "S"})
	if res.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", res.Code)
	}
}

func TestBearerToken(t *testing.T) {
	e := newTestEnv(t, false)

	send := func(auth, uidHeader string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/stores", bytes.NewBufferString(`{"name":"Main"}`))
		req.Header.Set("Content-Type", "application/json")
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		if uidHeader != "" {
			req.Header.Set(config.HEADER_KEY_X_USER_ID, uidHeader)
		}
		return e.serve(req).Code
	}

	if code := send("Bearer token-owner", ""); code != http.StatusCreated {
		t.Fatalf("valid token = %d, want 201", code)
	}
	if code := send("Bearer forged", ""); code != http.StatusUnauthorized {
		t.Fatalf("invalid token = %d, want 401", code)
	}
	if code := send("", owner); code != http.StatusUnauthorized {
		t.Fatalf("user header outside local = %d, want 401", code)
	}
}

func TestUpdateBillboardReplacesImage(t *testing.T) {
	e := newTestEnv(t, true)
	c := e.seed()
	path := "/api/" + c.store + "/billboards/" + c.billboard

	res := e.do(http.MethodPatch, path, owner, map[string]any{"label": "Summer", "imageUrl": "https://cdn.test/a1.png", "imageId": "a1"})
	if res.Code != http.StatusOK {
		t.Fatalf("unchanged PATCH = %d %s", res.Code, res.Error)
	}
	if got := e.assets.calls(); len(got) != 0 {
		t.Fatalf("deleted = %v, want none", got)
	}

	res = e.do(http.MethodPatch, path, owner, map[string]any{"label": "Autumn", "imageUrl": "https://cdn.test/a2.png", "imageId": "a2"})
	if res.Code != http.StatusOK {
		t.Fatalf("PATCH = %d %s", res.Code, res.Error)
	}
	if got := decode(t, res); got["label"] != "Autumn" || got["imageId"] != "a2" {
		t.Fatalf("PATCH data = %v", got)
	}
	if got := e.assets.calls(); !slices.Equal(got, []string{"a1"}) {
		t.Fatalf("deleted = %v, want [a1]", got)
	}
}

func TestUpdateRecordOfAnotherStore(t *testing.T) {
	e := newTestEnv(t, true)
	c := e.seed()
	other := e.create("/api/stores", map[string]any{"name": "Second"})["id"].(string)

	res := e.do(http.MethodPatch, "/api/"+other+"/sizes/"+c.size, owner, map[string]any{"name": "XL", "value": "XL"})
	if res.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", res.Code)
	}
	got := decode(t, e.do(http.MethodGet, "/api/sizes/"+c.size, "", nil))
	if got["value"] != "L" {
		t.Fatalf("size = %v, want unchanged", got)
	}
}

func TestDeleteReferencedBillboard(t *testing.T) {
	e := newTestEnv(t, true)
	c := e.seed()

	res := e.do(http.MethodDelete, "/api/"+c.store+"/billboards/"+c.billboard, owner, nil)
	if res.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", res.Code)
	}
	if res.Message == "" {
		t.Fatal("conflict should carry a hint")
	}
	if res.Error != usecase.ErrHasDependents.Error() {
		t.Fatalf("error = %q, want no database detail", res.Error)
	}
	if e.do(http.MethodGet, "/api/billboards/"+c.billboard, "", nil).Code != http.StatusOK {
		t.Fatal("billboard should still exist")
	}
	if got := e.assets.calls(); len(got) != 0 {
		t.Fatalf("deleted = %v, want image kept", got)
	}

	if res := e.do(http.MethodDelete, "/api/"+c.store+"/categories/"+c.category, owner, nil); res.Code != http.StatusOK {
		t.Fatalf("delete category = %d %s", res.Code, res.Error)
	}
	res = e.do(http.MethodDelete, "/api/"+c.store+"/billboards/"+c.billboard, owner, nil)
	if res.Code != http.StatusOK {
		t.Fatalf("delete billboard = %d %s", res.Code, res.Error)
	}
	if got := e.assets.calls(); !slices.Equal(got, []string{"a1"}) {
		t.Fatalf("deleted = %v, want [a1]", got)
	}
}

func TestReferenceFromAnotherStore(t *testing.T) {
	e := newTestEnv(t, true)
	c := e.seed()
	other := e.create("/api/stores", map[string]any{"name": "Second"})["id"].(string)

	res := e.do(http.MethodPost, "/api/"+other+"/categories", owner, map[string]any{
		"name": "Shirts", "billboardId": c.billboard,
	})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("category on foreign billboard = %d, want 400", res.Code)
	}
	res = e.do(http.MethodPost, "/api/"+other+"/products", owner, c.product("Shirt", "i1"))
	if res.Code != http.StatusBadRequest {
		t.Fatalf("product on foreign refs = %d, want 400", res.Code)
	}
	if n := len(decodeList(t, e.do(http.MethodGet, "/api/"+other+"/categories", "", nil))); n != 0 {
		t.Fatalf("categories of second store = %d, want 0", n)
	}
}

func TestDeleteStoreWithChildren(t *testing.T) {
	e := newTestEnv(t, true)
	c := e.seed()

	res := e.do(http.MethodDelete, "/api/stores/"+c.store, owner, nil)
	if res.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", res.Code)
	}
	if res.Message != dependentsHint["STORE"] {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestGetMissingRecord(t *testing.T) {
	e := newTestEnv(t, true)

	if code := e.do(http.MethodGet, "/api/colors/4b5c0d3e-2f6a-4c1b-9d8e-7f6a5b4c3d2e", "", nil).Code; code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", code)
	}
	if code := e.do(http.MethodGet, "/api/colors/not-a-uuid", "", nil).Code; code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", code)
	}
}

func TestProductLifecycle(t *testing.T) {
	e := newTestEnv(t, true)
	c := e.seed()
	base := "/api/" + c.store + "/products"

	bad := c.product("Shirt")
	if res := e.do(http.MethodPost, base, owner, bad); res.Code != http.StatusBadRequest {
		t.Fatalf("no images = %d, want 400", res.Code)
	}
	for _, price := range []string{"0", "123456789012", "9.999"} {
		p := c.product("Shirt", "i1")
		p["price"] = price
		if res := e.do(http.MethodPost, base, owner, p); res.Code != http.StatusBadRequest {
			t.Fatalf("price %s = %d, want 400", price, res.Code)
		}
	}

	created := e.create(base, c.product("Shirt", "i1", "i2"))
	id := created["id"].(string)
	if created["price"] != "19.99" {
		t.Fatalf("price = %v, want \"19.99\"", created["price"])
	}
	if len(created["images"].([]any)) != 2 || created["category"] == nil || created["size"] == nil || created["color"] == nil {
		t.Fatalf("created = %v, want images and relations", created)
	}

	archived := c.product("Old", "o1")
	archived["isArchived"] = true
	e.create(base, archived)

	if n := len(decodeList(t, e.do(http.MethodGet, base, "", nil))); n != 1 {
		t.Fatalf("public list = %d, want archived hidden", n)
	}
	if n := len(decodeList(t, e.do(http.MethodGet, base+"?includeArchived=true", "", nil))); n != 2 {
		t.Fatalf("list with archived = %d, want 2", n)
	}
	if n := len(decodeList(t, e.do(http.MethodGet, base+"?isFeatured=true", "", nil))); n != 0 {
		t.Fatalf("featured = %d, want 0", n)
	}
	if code := e.do(http.MethodGet, base+"?categoryId=nope", "", nil).Code; code != http.StatusBadRequest {
		t.Fatalf("bad filter = %d, want 400", code)
	}

	res := e.do(http.MethodPatch, base+"/"+id, owner, c.product("Shirt", "i2", "i3"))
	if res.Code != http.StatusOK {
		t.Fatalf("PATCH = %d %s", res.Code, res.Error)
	}
	if got := e.assets.calls(); !slices.Equal(got, []string{"i1"}) {
		t.Fatalf("deleted after update = %v, want [i1]", got)
	}

	res = e.do(http.MethodDelete, base+"/"+id, owner, nil)
	if res.Code != http.StatusOK {
		t.Fatalf("DELETE = %d %s", res.Code, res.Error)
	}
	cleanup := decode(t, res)
	if cleanup["requested"] != float64(2) || cleanup["deleted"] != float64(2) {
		t.Fatalf("cleanup = %v", cleanup)
	}
	if got := e.assets.calls(); !slices.Equal(got, []string{"i1", "i2", "i3"}) {
		t.Fatalf("deleted = %v", got)
	}
	if code := e.do(http.MethodGet, "/api/products/"+id, "", nil).Code; code != http.StatusNotFound {
		t.Fatalf("GET deleted product = %d, want 404", code)
	}
}

func TestStores(t *testing.T) {
	e := newTestEnv(t, true)
	id := e.create("/api/stores", map[string]any{"name": "Main"})["id"].(string)
	e.do(http.MethodPost, "/api/stores", stranger, map[string]any{"name": "Theirs"})

	if n := len(decodeList(t, e.do(http.MethodGet, "/api/stores", owner, nil))); n != 1 {
		t.Fatalf("owner stores = %d, want 1", n)
	}
	if code := e.do(http.MethodGet, "/api/stores/"+id, stranger, nil).Code; code != http.StatusForbidden {
		t.Fatalf("stranger GET = %d, want 403", code)
	}

	res := e.do(http.MethodPatch, "/api/stores/"+id, owner, map[string]any{"name": "Renamed"})
	if res.Code != http.StatusOK || decode(t, res)["name"] != "Renamed" {
		t.Fatalf("PATCH = %d %s", res.Code, res.Data)
	}
	if code := e.do(http.MethodDelete, "/api/stores/"+id, owner, nil).Code; code != http.StatusOK {
		t.Fatalf("DELETE = %d, want 200", code)
	}
}

func TestDeleteImage(t *testing.T) {
	e := newTestEnv(t, true)

	if code := e.do(http.MethodPost, "/api/delete-image", "", map[string]any{"imageId": "x"}).Code; code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated = %d, want 401", code)
	}
	if code := e.do(http.MethodPost, "/api/delete-image", owner, map[string]any{}).Code; code != http.StatusBadRequest {
		t.Fatalf("missing id = %d, want 400", code)
	}
	res := e.do(http.MethodPost, "/api/delete-image", owner, map[string]any{"imageId": "x"})
	if res.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", res.Code)
	}
	if got := e.assets.calls(); !slices.Equal(got, []string{"x"}) {
		t.Fatalf("deleted = %v", got)
	}
}

func TestUploadImage(t *testing.T) {
	e := newTestEnv(t, true)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.SetRGBA(x, y, color.RGBA{R: 40, G: 90, B: 200, A: 255})
		}
	}
	var pic bytes.Buffer
	if err := png.Encode(&pic, img); err != nil {
		t.Fatal(err)
	}

	upload := func(name string, content []byte) response {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		fw, err := w.CreateFormFile("file", name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(content)
		w.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/upload-image", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set(config.HEADER_KEY_X_USER_ID, owner)
		return e.serve(req)
	}

	res := upload("shirt.png", pic.Bytes())
	if res.Code != http.StatusCreated {
		t.Fatalf("code = %d %s", res.Code, res.Error)
	}
	if got := decode(t, res); got["imageId"] != "up_shirt.png" || got["dominantColor"] == nil {
		t.Fatalf("data = %v", got)
	}

	if code := upload("notes.png", []byte("not an image")).Code; code != http.StatusBadRequest {
		t.Fatalf("non image = %d, want 400", code)
	}

	res = upload("boom.png", pic.Bytes())
	if res.Code != http.StatusInternalServerError || res.Error != "Internal error" {
		t.Fatalf("host failure = %d %q, want generic 500", res.Code, res.Error)
	}
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t, true)

	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var stats map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats["status"] != "up" {
		t.Fatalf("stats = %v", stats)
	}
}
