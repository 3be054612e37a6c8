package zcrypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestSHA256KnownVectors(t *testing.T) {
	cases := []struct {
		msg  string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, c := range cases {
		got := SHA256Sum([]byte(c.msg))
		want, err := hex.DecodeString(c.want)
		if err != nil {
			t.Fatalf("bad test fixture: %v", err)
		}
		if !bytes.Equal(got[:], want) {
			t.Errorf("SHA256Sum(%q) = %x, want %x", c.msg, got, want)
		}
	}
}

func TestSHA256MatchesStdlib(t *testing.T) {
	msgs := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("abc"),
		bytes.Repeat([]byte("x"), 55),
		bytes.Repeat([]byte("x"), 56),
		bytes.Repeat([]byte("x"), 63),
		bytes.Repeat([]byte("x"), 64),
		bytes.Repeat([]byte("x"), 65),
		bytes.Repeat([]byte("x"), 1000),
	}

	for _, msg := range msgs {
		got := SHA256Sum(msg)
		want := sha256.Sum256(msg)
		if got != want {
			t.Errorf("SHA256Sum(len=%d) = %x, want %x", len(msg), got, want)
		}
	}
}

func TestSHA256StreamingMatchesOneShot(t *testing.T) {
	msg := bytes.Repeat([]byte("streaming-test-"), 50)

	s := newSHA256State()
	for i := 0; i < len(msg); i += 7 {
		end := i + 7
		if end > len(msg) {
			end = len(msg)
		}
		s.Write(msg[i:end])
	}

	got := s.Sum()
	want := SHA256Sum(msg)
	if got != want {
		t.Errorf("streaming Sum = %x, want %x", got, want)
	}
}
