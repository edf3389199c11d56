package commands

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codahale/siv"
	"github.com/codahale/siv/internal/testdata"
)

func run(args ...string) error {
	root := newRoot()
	root.SetArgs(args)
	return root.Execute()
}

func writeKeyFile(t *testing.T, dir string, n int) string {
	t.Helper()
	drbg := testdata.New("siv cli key " + t.Name())
	path := filepath.Join(dir, "key.hex")
	// A trailing newline is what key files in the wild look like.
	if err := os.WriteFile(path, []byte(hex.EncodeToString(drbg.Data(n))+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	keyFile := writeKeyFile(t, dir, 64)

	input := filepath.Join(dir, "message.txt")
	plaintext := []byte("meet me where we first saw the comet")
	if err := os.WriteFile(input, plaintext, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := run("encrypt", "-k", keyFile, "--ad", "00ff", "--ad", "a1", input); err != nil {
		t.Fatal(err)
	}

	ciphertext, err := os.ReadFile(input + ".siv")
	if err != nil {
		t.Fatal(err)
	}
	if len(ciphertext) != len(plaintext)+siv.Overhead {
		t.Fatalf("ciphertext is %d bytes, want %d", len(ciphertext), len(plaintext)+siv.Overhead)
	}

	// Dropping the original exercises the .siv suffix inference on decrypt.
	if err := os.Remove(input); err != nil {
		t.Fatal(err)
	}
	if err := run("decrypt", "-k", keyFile, "--ad", "00ff", "--ad", "a1", input+".siv"); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip:\n got %q\nwant %q", got, plaintext)
	}
}

func TestDecryptAssociatedDataOrder(t *testing.T) {
	dir := t.TempDir()
	keyFile := writeKeyFile(t, dir, 32)

	input := filepath.Join(dir, "message.txt")
	if err := os.WriteFile(input, []byte("payload"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := run("encrypt", "-k", keyFile, "--ad", "00ff", "--ad", "a1", input); err != nil {
		t.Fatal(err)
	}

	// Same strings, swapped order: the flags are an ordered sequence.
	err := run("decrypt", "-k", keyFile, "--ad", "a1", "--ad", "00ff", "-o",
		filepath.Join(dir, "out.txt"), input+".siv")
	if !errors.Is(err, siv.ErrAuthenticationFailed) {
		t.Fatalf("err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestDecryptCannotInferOutput(t *testing.T) {
	dir := t.TempDir()
	keyFile := writeKeyFile(t, dir, 32)

	input := filepath.Join(dir, "message.txt")
	if err := os.WriteFile(input, []byte("payload"), 0o600); err != nil {
		t.Fatal(err)
	}
	enc := filepath.Join(dir, "data.enc")
	if err := run("encrypt", "-k", keyFile, "-o", enc, input); err != nil {
		t.Fatal(err)
	}

	err := run("decrypt", "-k", keyFile, enc)
	if err == nil || !strings.Contains(err.Error(), "cannot infer output name") {
		t.Fatalf("err = %v, want an output-name error", err)
	}
}

func TestBadKeyFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "message.txt")
	if err := os.WriteFile(input, []byte("payload"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("missing", func(t *testing.T) {
		if err := run("encrypt", "-k", filepath.Join(dir, "nope.hex"), input); err == nil {
			t.Fatal("expected an error for a missing key file")
		}
	})

	t.Run("not hex", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.hex")
		if err := os.WriteFile(path, []byte("not hex at all"), 0o600); err != nil {
			t.Fatal(err)
		}
		err := run("encrypt", "-k", path, input)
		if err == nil || !strings.Contains(err.Error(), "not hex") {
			t.Fatalf("err = %v, want a hex error", err)
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		path := writeKeyFile(t, dir, 40)
		err := run("encrypt", "-k", path, input)
		if err == nil || !strings.Contains(err.Error(), "want 32, 48, or 64") {
			t.Fatalf("err = %v, want a key-length error", err)
		}
	})
}

func TestBadAssociatedData(t *testing.T) {
	dir := t.TempDir()
	keyFile := writeKeyFile(t, dir, 32)
	input := filepath.Join(dir, "message.txt")
	if err := os.WriteFile(input, []byte("payload"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := run("encrypt", "-k", keyFile, "--ad", "zz", input)
	if err == nil || !strings.Contains(err.Error(), "is not hex") {
		t.Fatalf("err = %v, want a hex error", err)
	}
}
