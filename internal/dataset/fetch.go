package dataset

import (
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
)

// Fetch downloads the dataset at url into cachePath and returns the
// local path. When the cache file already exists the download is
// skipped, mirroring a notebook that keeps the CSV next to itself.
// There is no retry: an unreachable resource fails the run.
func Fetch(url, cachePath string) (string, error) {
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	resp, err := http.Get(url)
	if err != nil {
		return "", errors.Wrapf(ErrRetrieval, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(ErrRetrieval, "GET %s: %s", url, resp.Status)
	}

	file, err := os.Create(cachePath)
	if err != nil {
		return "", errors.Wrapf(ErrRetrieval, "create %s: %v", cachePath, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(cachePath)
		return "", errors.Wrapf(ErrRetrieval, "write %s: %v", cachePath, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(cachePath)
		return "", errors.Wrapf(ErrRetrieval, "close %s: %v", cachePath, err)
	}
	return cachePath, nil
}
