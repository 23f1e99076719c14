// Package download locates and fetches instrument reference data files from
// the European and UK register file services. Both services expose a paged
// search over file metadata plus plain HTTPS downloads of the zipped XML
// files themselves.
package download

import (
	"archive/zip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// FileType selects which class of register file to search for.
type FileType string

const (
	// FullFile is a complete snapshot of every instrument on record.
	FullFile FileType = "FULINS"
	// DeltaFile carries one day's additions, modifications, terminations
	// and cancellations.
	DeltaFile FileType = "DLTINS"
	// CancellationFile is a full file of cancelled instruments.
	CancellationFile FileType = "FULCAN"
)

// Document is the metadata record a register's search service returns for
// one downloadable file.
type Document struct {
	ID              string    `json:"id"`
	FileName        string    `json:"file_name"`
	FileType        FileType  `json:"file_type"`
	DownloadLink    string    `json:"download_link"`
	PublicationDate time.Time `json:"publication_date"`
	// Checksum is the MD5 of the zip as published by the service. The UK
	// service does not publish one, in which case it is empty and downloads
	// are not verified.
	Checksum string `json:"checksum,omitempty"`
}

// ErrBadChecksum is returned when a downloaded file does not match the
// checksum its metadata advertised. The partial file is removed before the
// error is returned.
var ErrBadChecksum = errors.New("download: checksum mismatch")

// ErrExists is returned when a download target already exists and Overwrite
// is not set.
var ErrExists = errors.New("download: file already exists")

// A Searcher queries one register's file service for files of the given type
// published inside the date range, following pagination until exhausted.
type Searcher interface {
	Search(ctx context.Context, from, to time.Time, ft FileType) ([]Document, error)
}

// Downloader fetches register files over HTTP.
type Downloader struct {
	client *http.Client
	logger hclog.Logger

	// Overwrite permits replacing files that already exist at the
	// destination; without it a clash returns ErrExists.
	Overwrite bool
	// KeepZip leaves the downloaded zip in place after DownloadXML has
	// extracted its payload.
	KeepZip bool
}

// NewDownloader returns a Downloader using client, or http.DefaultClient when
// client is nil.
func NewDownloader(client *http.Client, logger hclog.Logger) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Downloader{client: client, logger: logger}
}

// DownloadZip fetches doc's zip into dir and returns the path written. The
// body streams into a ".part" file that is only renamed into place once the
// download completed and, when the metadata carries a checksum, the MD5
// matched. An interrupted or corrupt download therefore never leaves a file
// that looks finished.
func (d *Downloader) DownloadZip(ctx context.Context, doc Document, dir string) (string, error) {
	dest := filepath.Join(dir, doc.FileName)
	if !d.Overwrite {
		if _, err := os.Stat(dest); err == nil {
			return "", fmt.Errorf("%w: %s", ErrExists, dest)
		}
	}
	part := dest + ".part"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.DownloadLink, nil)
	if err != nil {
		return "", fmt.Errorf("download: build request for %s: %w", doc.FileName, err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: fetch %s: %w", doc.FileName, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: fetch %s: unexpected status %s", doc.FileName, resp.Status)
	}

	f, err := os.Create(part)
	if err != nil {
		return "", fmt.Errorf("download: create %s: %w", part, err)
	}
	hash := md5.New()
	n, err := io.Copy(io.MultiWriter(f, hash), resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(part)
		return "", fmt.Errorf("download: write %s: %w", doc.FileName, err)
	}

	if doc.Checksum != "" {
		sum := hex.EncodeToString(hash.Sum(nil))
		if !strings.EqualFold(sum, doc.Checksum) {
			os.Remove(part)
			return "", fmt.Errorf("%w: %s: got %s, want %s", ErrBadChecksum, doc.FileName, sum, doc.Checksum)
		}
	}
	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return "", fmt.Errorf("download: finalize %s: %w", doc.FileName, err)
	}
	d.logger.Debug("downloaded file", "name", doc.FileName, "bytes", n)
	return dest, nil
}

// DownloadXML fetches doc's zip and extracts the XML payload into dir,
// returning the path of the extracted file. The zip is removed after
// extraction unless KeepZip is set.
func (d *Downloader) DownloadXML(ctx context.Context, doc Document, dir string) (string, error) {
	zipPath, err := d.DownloadZip(ctx, doc, dir)
	if err != nil {
		return "", err
	}
	if !d.KeepZip {
		defer os.Remove(zipPath)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("download: open %s: %w", zipPath, err)
	}
	defer r.Close()

	for _, entry := range r.File {
		if !strings.EqualFold(filepath.Ext(entry.Name), ".xml") {
			continue
		}
		dest := filepath.Join(dir, filepath.Base(entry.Name))
		if !d.Overwrite {
			if _, err := os.Stat(dest); err == nil {
				return "", fmt.Errorf("%w: %s", ErrExists, dest)
			}
		}
		if err := extractEntry(entry, dest); err != nil {
			return "", err
		}
		return dest, nil
	}
	return "", fmt.Errorf("download: no XML entry in %s", doc.FileName)
}

func extractEntry(entry *zip.File, dest string) error {
	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("download: open zip entry %s: %w", entry.Name, err)
	}
	defer src.Close()
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("download: create %s: %w", dest, err)
	}
	_, err = io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return fmt.Errorf("download: extract %s: %w", entry.Name, err)
	}
	return nil
}

// DownloadAll fetches and extracts every document concurrently, up to
// parallel downloads at a time, and returns the extracted XML paths in the
// order of docs. The first failure cancels the remaining downloads.
func (d *Downloader) DownloadAll(ctx context.Context, docs []Document, dir string, parallel int) ([]string, error) {
	if parallel < 1 {
		parallel = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	paths := make([]string, len(docs))
	for i, doc := range docs {
		g.Go(func() error {
			p, err := d.DownloadXML(ctx, doc, dir)
			if err != nil {
				return err
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
