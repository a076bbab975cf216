package models

import (
	"bytes"
	"testing"
)

func TestFeaturesFromEnv(t *testing.T) {
	var warn bytes.Buffer
	env := []string{
		"HOME=/root",
		"PSX_HLE_CONFIG_HEAP=1",
		"PSX_HLE_CONFIG_EVENT=  1",
		"PSX_HLE_CONFIG_MCD=0",
		"PSX_HLE_CONFIG_THREAD=yes",
	}
	f := FeaturesFromEnv(env, &warn)
	if !f.Heap || !f.Event || !f.Thread {
		t.Fatalf("expected heap, event, thread enabled: %s", f)
	}
	if f.MCD || f.Pad || f.FileIO {
		t.Fatalf("unexpected features enabled: %s", f)
	}
	if !bytes.Contains(warn.Bytes(), []byte("THREAD")) {
		t.Fatalf("expected a warning for the non-digit value, got %q", warn.String())
	}
	if bytes.Contains(warn.Bytes(), []byte("EVENT")) {
		t.Fatalf("leading spaces should not warn: %q", warn.String())
	}
}

func TestParseFeatures(t *testing.T) {
	f, err := ParseFeatures("heap, event,mcd")
	if err != nil {
		t.Fatal(err)
	}
	if f.String() != "heap,mcd,event" {
		t.Fatalf("got %q", f.String())
	}
	if f, _ := ParseFeatures("all"); f != AllFeatures() {
		t.Fatal("all should enable every feature")
	}
	if _, err := ParseFeatures("bogus"); err == nil {
		t.Fatal("expected error for unknown feature")
	}
}

func TestRepr(t *testing.T) {
	if s := Repr([]byte("hi\n"), 0); s != `"hi\x0a"` {
		t.Fatalf("got %s", s)
	}
	if s := Repr([]byte("abcdefghijkl"), 8); s != `"abcde"...` {
		t.Fatalf("got %s", s)
	}
}
