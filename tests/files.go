// Package tests downloads and caches the public 6502 test suites.
package tests

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

func download(url, dest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// download all 256 (one per opcode) SingleStepTests 6502 files into dest dir.
func downloadSingleStepTests(tb testing.TB, dest string) {
	const urlfmt = `https://raw.githubusercontent.com/SingleStepTests/65x02/main/6502/v1/%s.json`

	tempdir, err := os.MkdirTemp("", "singlestep.tests.*")
	if err != nil {
		tb.Fatal(err)
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for opcode := 0; opcode < 256; opcode++ {
		opstr := fmt.Sprintf("%02x", opcode)
		url := fmt.Sprintf(urlfmt, opstr)

		g.Go(func() error {
			if err := download(url, filepath.Join(tempdir, opstr+".json")); err != nil {
				return err
			}
			tb.Log("downloaded", url)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		tb.Fatalf("failed to download all files: %s", err)
	}

	if err := os.Rename(tempdir, dest); err != nil {
		tb.Fatal(err)
	}

	tb.Log("renaming", tempdir, "to", dest)
}

var singleStepOnce sync.Once

// SingleStepTestsPath returns the directory holding the SingleStepTests
// vectors, downloading them the first time.
func SingleStepTestsPath(tb testing.TB) string {
	_, b, _, _ := runtime.Caller(0)
	testsDir := filepath.Join(filepath.Dir(b), "singlestep.tests")

	singleStepOnce.Do(func() {
		if _, err := os.Stat(testsDir); errors.Is(err, fs.ErrNotExist) {
			tb.Log("singlestep.tests directory not found, downloading it...")
			downloadSingleStepTests(tb, testsDir)
			tb.Log("SingleStepTests downloaded in", testsDir)
		}
	})

	return testsDir
}

// SingleStepFile returns the path of the test vectors for opcode.
func SingleStepFile(tb testing.TB, opcode uint8) string {
	return filepath.Join(SingleStepTestsPath(tb), fmt.Sprintf("%02x.json", opcode))
}
