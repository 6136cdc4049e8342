package filestorage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	consts "github.com/storeease/storeease/internal/config"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		prefix, name, suffix string
	}{
		{"public", "shirt.png", "-shirt.png"},
		{"public", "../../etc/passwd", "-passwd"},
		{"public", `C:\photos\hat.jpg`, "-hat.jpg"},
		{"public", "", "-upload"},
	}
	for _, tt := range tests {
		got := objectKey(tt.prefix, tt.name)
		if !strings.HasPrefix(got, tt.prefix+"/") || !strings.HasSuffix(got, tt.suffix) {
			t.Errorf("objectKey(%q, %q) = %q", tt.prefix, tt.name, got)
		}
		if strings.Contains(got, "..") {
			t.Errorf("objectKey(%q, %q) = %q escapes the prefix", tt.prefix, tt.name, got)
		}
	}
	if objectKey("p", "a.png") == objectKey("p", "a.png") {
		t.Error("objectKey should not repeat for the same name")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), consts.Config{AssetProvider: "ftp"})
	if err == nil {
		t.Fatal("New() error = nil, want unknown provider")
	}
}

func newTestCloudinary(t *testing.T, h http.HandlerFunc) *Cloudinary {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewCloudinary(consts.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "storeease",
	})
	if err != nil {
		t.Fatalf("NewCloudinary: %v", err)
	}
	c.cld.Config.API.UploadPrefix = srv.URL
	c.cld.Admin.Config.API.UploadPrefix = srv.URL
	c.cld.Upload.Config.API.UploadPrefix = srv.URL
	return c
}

func TestCloudinaryDelete(t *testing.T) {
	c := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		if !strings.Contains(r.URL.Path, "/demo/resources/") {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"deleted":{"a1":"deleted"}}`))
	})

	res, err := c.Delete(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if res.Deleted["a1"] != "deleted" {
		t.Fatalf("Deleted = %v", res.Deleted)
	}
}

func TestCloudinaryDeleteError(t *testing.T) {
	c := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	})

	if _, err := c.Delete(context.Background(), "a1"); err == nil {
		t.Fatal("Delete() error = nil, want provider error")
	}
}

func TestCloudinaryUpload(t *testing.T) {
	c := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"storeease/x1","secure_url":"https://res.cloudinary.com/demo/image/upload/storeease/x1.png"}`))
	})

	got, err := c.Upload(context.Background(), "x1.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if got.ID != "storeease/x1" || !strings.HasPrefix(got.URL, "https://") {
		t.Fatalf("Upload() = %+v", got)
	}
}
