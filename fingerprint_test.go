package tokenize

import "testing"

func TestHashDeterministic(t *testing.T) {
	if Hash("hello") != Hash("hello") {
		t.Fatal("equal input must yield equal fingerprints")
	}
	if Hash("hello") != HashBytes([]byte("hello")) {
		t.Fatal("string and byte hashing must agree")
	}
	if Hash("hello") == Hash("hellp") {
		t.Fatal("distinct inputs collided")
	}
	if Hash("") == Hash("hello") {
		t.Fatal("empty input collided")
	}
}

func TestView(t *testing.T) {
	v := View("für")
	if v.Text != "für" || v.Fp != Hash("für") || v.Len() != 4 {
		t.Fatalf("bad view: %+v", v)
	}
}
