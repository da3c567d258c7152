package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestLocalStorePutDelete(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	fileURL, err := s.Put(ctx, "../../etc/lr_FTL-1.pdf", []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	u, err := url.Parse(fileURL)
	if err != nil || u.Scheme != "file" {
		t.Fatalf("url = %q", fileURL)
	}
	if !strings.HasPrefix(u.Path, s.Dir) || !strings.HasSuffix(u.Path, "lr_FTL-1.pdf") {
		t.Fatalf("file escaped the storage dir: %s", u.Path)
	}
	data, err := os.ReadFile(u.Path)
	if err != nil || string(data) != "%PDF" {
		t.Fatalf("stored %q %v", data, err)
	}

	if err := s.Delete(ctx, fileURL); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(u.Path); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	if _, err := s.Put(ctx, "", nil, ""); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("empty key: got %v", err)
	}
}

func TestR2StoreUploadsThroughS3API(t *testing.T) {
	var (
		mu      sync.Mutex
		gotPath string
		gotBody string
		gotType string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Method == http.MethodPut {
			b, _ := io.ReadAll(r.Body)
			gotPath, gotBody, gotType = r.URL.Path, string(b), r.Header.Get("Content-Type")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewR2Store(context.Background(), R2Options{
		Bucket:          "lr-copies",
		AccountID:       "acct",
		PublicURL:       "https://cdn.example.com/",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Endpoint:        srv.URL,
	})
	if err != nil {
		t.Fatalf("NewR2Store: %v", err)
	}

	fileURL, err := s.Put(context.Background(), "lr_FTL-20250420103000-001.pdf", []byte("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if fileURL != "https://cdn.example.com/lr_FTL-20250420103000-001.pdf" {
		t.Fatalf("url = %q", fileURL)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotPath != "/lr-copies/lr_FTL-20250420103000-001.pdf" {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.Contains(gotBody, "%PDF-1.4") {
		t.Errorf("body = %q", gotBody)
	}
	if gotType != "application/pdf" {
		t.Errorf("content type = %q", gotType)
	}
}

func TestNewR2StoreRequiresSettings(t *testing.T) {
	if _, err := NewR2Store(context.Background(), R2Options{Bucket: "b"}); err == nil {
		t.Fatal("expected error for missing account and public URL")
	}
}
