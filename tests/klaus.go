package tests

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

// Klaus Dormann's 6502 functional test. The image covers the whole 64KiB
// address space.
const (
	KlausFunctionalEntry   = 0x0400
	KlausFunctionalSuccess = 0x3469
)

const klausFunctionalURL = `https://github.com/Klaus2m5/6502_65C02_functional_tests/raw/master/bin_files/6502_functional_test.bin`

var klausOnce sync.Once

// KlausFunctionalTest returns the content of the functional test image,
// downloading it the first time.
func KlausFunctionalTest(tb testing.TB) []byte {
	_, b, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(b), "klaus", "6502_functional_test.bin")

	klausOnce.Do(func() {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			tb.Log("functional test image not found, downloading it...")
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				tb.Fatal(err)
			}
			if err := download(klausFunctionalURL, path); err != nil {
				tb.Fatalf("failed to download functional test: %s", err)
			}
		}
	})

	buf, err := os.ReadFile(path)
	if err != nil {
		tb.Fatal(err)
	}
	return buf
}
