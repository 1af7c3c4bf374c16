// Tests for the SQLite-backed constrained store.
package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/valguard/pkg/valguard"
)

func openBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func intVal(t *testing.T, v int64) valguard.IntValue {
	t.Helper()
	x, err := valguard.NewIntValue(v)
	if err != nil {
		t.Fatalf("NewIntValue(%d) failed: %v", v, err)
	}
	return x
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer b.Close()

	if _, err := os.Stat(filepath.Join(dir, dbFileName)); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestOpenTwiceReturnsAlreadyOpen(t *testing.T) {
	b := NewBackend()
	dir := t.TempDir()
	if err := b.Open(dir); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer b.Close()

	if err := b.Open(dir); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("second Open error = %v, want ErrAlreadyOpen", err)
	}
	if err := b.Open(t.TempDir()); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("Open on another dir error = %v, want ErrAlreadyOpen", err)
	}
}

func TestReopenAfterClose(t *testing.T) {
	b := NewBackend()
	dir := t.TempDir()
	if err := b.Open(dir); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := b.Open(dir); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b.Close()

	if _, err := b.CreateStore("free", nil); err != nil {
		t.Errorf("CreateStore after reopen failed: %v", err)
	}
}

func TestCloseIsNotIdempotent(t *testing.T) {
	b, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := b.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close error = %v, want ErrClosed", err)
	}
	if _, err := b.Get("s", "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close error = %v, want ErrClosed", err)
	}
}

func TestCreateStore(t *testing.T) {
	b := openBackend(t)
	c, _ := valguard.NewBoundedIntConstraint(0, 100)

	id, err := b.CreateStore("scores", c)
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}
	if id == "" {
		t.Error("CreateStore returned empty id")
	}

	if _, err := b.CreateStore("scores", c); !errors.Is(err, ErrStoreExists) {
		t.Errorf("duplicate CreateStore error = %v, want ErrStoreExists", err)
	}

	got, err := b.StoreConstraint("scores")
	if err != nil {
		t.Fatalf("StoreConstraint failed: %v", err)
	}
	if got.Kind() != valguard.KindBoundedInt {
		t.Errorf("constraint kind = %v, want BoundedInt", got.Kind())
	}
}

func TestCreateStoreNilConstraintMeansAny(t *testing.T) {
	b := openBackend(t)
	if _, err := b.CreateStore("free", nil); err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}
	c, err := b.StoreConstraint("free")
	if err != nil {
		t.Fatalf("StoreConstraint failed: %v", err)
	}
	if c.Kind() != valguard.KindAny {
		t.Errorf("constraint kind = %v, want Any", c.Kind())
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	b := openBackend(t)
	c, _ := valguard.NewBoundedIntConstraint(0, 100)
	if _, err := b.CreateStore("scores", c); err != nil {
		t.Fatal(err)
	}

	if err := b.Put("scores", "s1", intVal(t, 25)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := b.Get("scores", "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Equal(intVal(t, 25)) {
		t.Errorf("Get = %#v, want IntValue(25)", got)
	}

	// Overwrite.
	if err := b.Put("scores", "s1", intVal(t, 75)); err != nil {
		t.Fatalf("overwrite Put failed: %v", err)
	}
	got, _ = b.Get("scores", "s1")
	if !got.Equal(intVal(t, 75)) {
		t.Errorf("Get after overwrite = %#v, want IntValue(75)", got)
	}
}

func TestPutAllVariantsRoundTrip(t *testing.T) {
	b := openBackend(t)
	if _, err := b.CreateStore("free", nil); err != nil {
		t.Fatal(err)
	}

	fv, _ := valguard.NewFloatValue(3.14)
	bv, _ := valguard.NewBoolValue(true)
	sv, _ := valguard.NewStrValue("H2A")
	values := map[string]valguard.Value{
		"i": intVal(t, -7),
		"f": fv,
		"b": bv,
		"s": sv,
	}
	for k, v := range values {
		if err := b.Put("free", k, v); err != nil {
			t.Fatalf("Put(%s) failed: %v", k, err)
		}
	}
	for k, want := range values {
		got, err := b.Get("free", k)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", k, err)
		}
		if !got.Equal(want) {
			t.Errorf("Get(%s) = %#v, want %#v", k, got, want)
		}
	}
}

func TestPutRejectsConstraintViolation(t *testing.T) {
	b := openBackend(t)
	c, _ := valguard.NewBoundedIntConstraint(0, 50)
	if _, err := b.CreateStore("scores", c); err != nil {
		t.Fatal(err)
	}
	if err := b.Put("scores", "s1", intVal(t, 25)); err != nil {
		t.Fatal(err)
	}

	err := b.Put("scores", "s1", intVal(t, 75))
	if !errors.Is(err, valguard.ErrValidation) {
		t.Fatalf("Put error = %v, want ErrValidation", err)
	}
	// The prior value is untouched.
	got, err := b.Get("scores", "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Equal(intVal(t, 25)) {
		t.Errorf("Get = %#v, want prior IntValue(25)", got)
	}
}

func TestDeleteAndKeys(t *testing.T) {
	b := openBackend(t)
	if _, err := b.CreateStore("free", nil); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"b", "a", "c"} {
		if err := b.Put("free", k, intVal(t, 1)); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := b.Keys("free")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys = %v, want %v", keys, want)
		}
	}

	if err := b.Delete("free", "b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := b.Delete("free", "b"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("repeated Delete error = %v, want ErrKeyNotFound", err)
	}
	if _, err := b.Get("free", "b"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrKeyNotFound", err)
	}
}

func TestDeleteStoreCascades(t *testing.T) {
	b := openBackend(t)
	if _, err := b.CreateStore("free", nil); err != nil {
		t.Fatal(err)
	}
	if err := b.Put("free", "k", intVal(t, 1)); err != nil {
		t.Fatal(err)
	}

	if err := b.DeleteStore("free"); err != nil {
		t.Fatalf("DeleteStore failed: %v", err)
	}
	if err := b.DeleteStore("free"); !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("repeated DeleteStore error = %v, want ErrStoreNotFound", err)
	}
	if _, err := b.Get("free", "k"); !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("Get on deleted store error = %v, want ErrStoreNotFound", err)
	}
}

func TestStoresPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c, _ := valguard.NewLiteralStrConstraint([]string{"H1", "H2A"})
	if _, err := b.CreateStore("grades", c); err != nil {
		t.Fatal(err)
	}
	sv, _ := valguard.NewStrValue("H1")
	if err := b.Put("grades", "alice", sv); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	b2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b2.Close()

	got, err := b2.Get("grades", "alice")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if !got.Equal(sv) {
		t.Errorf("Get = %#v, want StrValue('H1')", got)
	}
	names, err := b2.Stores()
	if err != nil || len(names) != 1 || names[0] != "grades" {
		t.Errorf("Stores = %v, %v", names, err)
	}
}

func TestValueCodecRoundTrip(t *testing.T) {
	fv, _ := valguard.NewFloatValue(0.125)
	bv, _ := valguard.NewBoolValue(false)
	sv, _ := valguard.NewStrValue("P")
	for _, v := range []valguard.Value{intVal(t, 42), fv, bv, sv} {
		kind, payload := encodeValue(v)
		back, err := decodeValue(kind, payload)
		if err != nil {
			t.Errorf("decodeValue(%q, %q) error = %v", kind, payload, err)
			continue
		}
		if !back.Equal(v) {
			t.Errorf("round trip = %#v, want %#v", back, v)
		}
	}
	if _, err := decodeValue("blob", "x"); err == nil {
		t.Error("unknown kind should fail to decode")
	}
}
