package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("content"), "text/v1", "")
	b := Fingerprint([]byte("content"), "text/v1", "")
	if a != b {
		t.Error("identical inputs must produce identical fingerprints")
	}
	if !strings.HasPrefix(a, "credengine:v1:") {
		t.Errorf("fingerprint missing version prefix: %s", a)
	}

	if Fingerprint([]byte("content"), "text/v2", "") == a {
		t.Error("detector set ID must participate in the key")
	}
	if Fingerprint([]byte("content"), "text/v1", "openai") == a {
		t.Error("provider must participate in the key")
	}
	if Fingerprint([]byte("other"), "text/v1", "") == a {
		t.Error("content must participate in the key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("key")
	if !found || string(val) != "value" {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("short"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestMemoryCache_NoTTL(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, time.Minute)

	if err := c.Set("pinned", []byte("v"), NoTTL); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("pinned"); !found {
		t.Error("NoTTL entry must outlive the default TTL")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("key", []byte(`{"n":1}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("key")
	if !found || string(val) != `{"n":1}` {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_ExpiredEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("short", []byte(`"v"`), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("expected expired entry to miss")
	}
	if _, err := os.Stat(filepath.Join(dir, "short.json")); !os.IsNotExist(err) {
		t.Error("expected expired file to be removed")
	}
}

func TestDiskCache_NoTTLNeverExpires(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Millisecond)

	if err := c.Set("pinned", []byte(`"v"`), NoTTL); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, found := c.Get("pinned"); !found {
		t.Error("NoTTL entry must never expire")
	}
}

func TestDiskCache_CorruptFileIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("bad"); found {
		t.Error("corrupt entry must read as a miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	// Seed only the disk layer, as a previous process would have.
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("key", []byte(`"v"`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, found := c.Get("key")
	if !found || string(val) != `"v"` {
		t.Fatalf("Get = %q, %v", val, found)
	}

	// Removing the disk file proves the promotion: the next read must be
	// served entirely from memory.
	if err := os.Remove(filepath.Join(dir, "key.json")); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("key"); !found {
		t.Error("expected promoted entry to serve from memory")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("key", []byte(`"v"`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "key.json")); err != nil {
		t.Errorf("expected disk entry: %v", err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("expected miss after clear")
	}
}
