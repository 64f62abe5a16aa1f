// Package downloader fetches remote hash and dictionary lists into a local cache.
package downloader

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/duke-git/lancet/v2/cryptor"
	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/duke-git/lancet/v2/strutil"
	"github.com/hashicorp/go-getter"
	"github.com/pkg/errors"

	"github.com/unclesp1d3r/threadhash/runstate"
)

const (
	defaultUmask = 0o022 // Default umask for file permissions
	cacheDirPerm = 0o750
	cacheKeyLen  = 12
)

// ErrInvalidURL is returned for sources that are not absolute URLs.
var ErrInvalidURL = errors.New("invalid URL")

// Fetcher downloads remote inputs into CacheDir.
type Fetcher struct {
	CacheDir string
	// Client performs HTTP requests. Nil means http.DefaultClient.
	Client *http.Client
	// Progress renders download progress. Nil disables it.
	Progress getter.ProgressTracker
	// Refresh forces a download even when a cached copy exists.
	Refresh bool
}

// Fetch downloads fileURL into the cache and returns the local path. When checksum, an MD5
// hex digest, is given it is verified and a cached file that already matches is reused.
// Without a checksum a cached file is reused unless Refresh is set.
func (f *Fetcher) Fetch(ctx context.Context, fileURL, checksum string) (string, error) {
	parsedURL, err := url.Parse(fileURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		runstate.Logger.Error("Invalid URL", "url", fileURL)

		return "", errors.Wrapf(ErrInvalidURL, "%q", fileURL)
	}

	if err := os.MkdirAll(f.CacheDir, cacheDirPerm); err != nil {
		return "", errors.Wrap(err, "error creating cache directory")
	}

	filePath := CachePath(f.CacheDir, fileURL)

	if !f.Refresh && FileExistsAndValid(filePath, checksum) {
		runstate.Logger.Info("Using cached download", "url", fileURL, "path", filePath)

		return filePath, nil
	}

	// go-getter writes over an existing file in place without truncating it.
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return "", errors.Wrap(err, "error removing stale download")
	}

	if err := f.downloadAndVerifyFile(ctx, fileURL, filePath, checksum); err != nil {
		return "", err
	}

	return filePath, nil
}

// CachePath returns where fileURL is stored inside cacheDir. The name keeps the URL's base
// name, prefixed with a digest of the full URL so different sources never collide.
func CachePath(cacheDir, fileURL string) string {
	base := "download"
	if u, err := url.Parse(fileURL); err == nil && path.Base(u.Path) != "/" && path.Base(u.Path) != "." {
		base = path.Base(u.Path)
	}

	return filepath.Join(cacheDir, cryptor.Md5String(fileURL)[:cacheKeyLen]+"-"+base)
}

// FileExistsAndValid checks if a file exists at the given path and, if a checksum is provided, verifies it.
// A file with a mismatched checksum is removed.
func FileExistsAndValid(filePath, checksum string) bool {
	if !fileutil.IsExist(filePath) {
		return false
	}

	if strutil.IsBlank(checksum) {
		return true
	}

	fileChecksum, err := cryptor.Md5File(filePath)
	if err != nil {
		runstate.Logger.Error("Error calculating file checksum", "path", filePath, "error", err)

		return false
	}

	if fileChecksum == checksum {
		return true
	}

	runstate.Logger.Warn("Checksums do not match",
		"path", filePath,
		"expected_checksum", checksum,
		"file_checksum", fileChecksum,
	)

	if err := os.Remove(filePath); err != nil {
		runstate.Logger.Error("Error removing file with mismatched checksum", "path", filePath, "error", err)
	}

	return false
}

func (f *Fetcher) downloadAndVerifyFile(ctx context.Context, fileURL, filePath, checksum string) error {
	if strutil.IsNotBlank(checksum) {
		var err error

		fileURL, err = appendChecksumToURL(fileURL, checksum)
		if err != nil {
			return err
		}
	}

	httpClient := f.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	httpGetter := &getter.HttpGetter{Client: httpClient}

	client := &getter.Client{
		Ctx:  ctx,
		Dst:  filePath,
		Src:  fileURL,
		Pwd:  f.CacheDir,
		Mode: getter.ClientModeFile,
		Getters: map[string]getter.Getter{
			"http":  httpGetter,
			"https": httpGetter,
		},
	}

	opts := []getter.ClientOption{getter.WithUmask(os.FileMode(defaultUmask))}
	if f.Progress != nil {
		opts = append(opts, getter.WithProgress(f.Progress))
	}

	if err := client.Configure(opts...); err != nil {
		return errors.Wrap(err, "error configuring download client")
	}

	runstate.Logger.Debug("Downloading file", "url", fileURL, "path", filePath)

	if err := client.Get(); err != nil {
		runstate.Logger.Debug("Error downloading file", "error", err)

		return errors.Wrapf(err, "error downloading %s", fileURL)
	}

	if strutil.IsNotBlank(checksum) && !FileExistsAndValid(filePath, checksum) {
		return errors.New("downloaded file checksum does not match")
	}

	return nil
}

// appendChecksumToURL appends a checksum to the URL query string so go-getter verifies it too.
func appendChecksumToURL(rawURL, checksum string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("checksum", "md5:"+checksum)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
