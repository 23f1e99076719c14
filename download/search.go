package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-hclog"
	"github.com/samber/lo"
)

// Default endpoints of the two register file services.
const (
	EsmaBaseURL = "https://registers.esma.europa.eu/solr/esma_registers_firds_files/"
	FcaBaseURL  = "https://api.data.fca.org.uk/fca_data_firds_files"
)

// searchPageSize is how many metadata rows each search request asks for.
const searchPageSize = 100

// EsmaSearcher queries the European register's Solr index.
type EsmaSearcher struct {
	BaseURL string
	Client  *http.Client
	Logger  hclog.Logger
}

// NewEsmaSearcher returns an EsmaSearcher against the production endpoint.
func NewEsmaSearcher(logger hclog.Logger) *EsmaSearcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &EsmaSearcher{BaseURL: EsmaBaseURL, Client: http.DefaultClient, Logger: logger}
}

type esmaDoc struct {
	DownloadLink string `json:"download_link"`
	ID           string `json:"id"`
	FileName     string `json:"file_name"`
	FileType     string `json:"file_type"`
	Timestamp    string `json:"timestamp"`
	Checksum     string `json:"checksum"`
}

type esmaResponse struct {
	ResponseHeader struct {
		QTime int `json:"QTime"`
	} `json:"responseHeader"`
	Response struct {
		NumFound int       `json:"numFound"`
		Docs     []esmaDoc `json:"docs"`
	} `json:"response"`
}

// Search pages through the Solr index, constraining on publication date and,
// when ft is non-empty, on file type.
func (s *EsmaSearcher) Search(ctx context.Context, from, to time.Time, ft FileType) ([]Document, error) {
	query := "*"
	if ft != "" {
		query = string(ft)
	}
	// The index stores publication dates in UTC; the range runs from the
	// start of the from day to the end of the to day.
	fq := fmt.Sprintf("publication_date:[%s TO %s]",
		from.UTC().Format("2006-01-02T15:04:05Z"),
		endOfDay(to).UTC().Format("2006-01-02T15:04:05Z"))

	var docs []Document
	for start := 0; ; start += searchPageSize {
		page, numFound, err := s.page(ctx, query, fq, start)
		if err != nil {
			return nil, err
		}
		docs = append(docs, page...)
		s.Logger.Debug("search page fetched", "service", "esma", "start", start, "got", len(page), "total", numFound)
		if numFound <= start+searchPageSize {
			return docs, nil
		}
	}
}

func (s *EsmaSearcher) page(ctx context.Context, query, fq string, start int) ([]Document, int, error) {
	v := url.Values{}
	v.Set("q", query)
	v.Set("fq", fq)
	v.Set("wt", "json")
	v.Set("start", fmt.Sprint(start))
	v.Set("rows", fmt.Sprint(searchPageSize))
	u := strings.TrimSuffix(s.BaseURL, "/") + "/select?" + v.Encode()

	var body esmaResponse
	if err := getJSON(ctx, s.Client, u, &body); err != nil {
		return nil, 0, fmt.Errorf("download: esma search: %w", err)
	}
	docs := lo.Map(body.Response.Docs, func(d esmaDoc, _ int) Document {
		ts, _ := time.Parse(time.RFC3339, d.Timestamp)
		return Document{
			ID:              d.ID,
			FileName:        d.FileName,
			FileType:        FileType(d.FileType),
			DownloadLink:    d.DownloadLink,
			PublicationDate: ts,
			Checksum:        d.Checksum,
		}
	})
	return docs, body.Response.NumFound, nil
}

// FcaSearcher queries the UK register's search API.
type FcaSearcher struct {
	BaseURL string
	Client  *http.Client
	Logger  hclog.Logger
}

// NewFcaSearcher returns an FcaSearcher against the production endpoint.
func NewFcaSearcher(logger hclog.Logger) *FcaSearcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FcaSearcher{BaseURL: FcaBaseURL, Client: http.DefaultClient, Logger: logger}
}

type fcaHit struct {
	ID     string `json:"_id"`
	Source struct {
		DownloadLink  string `json:"download_link"`
		FileName      string `json:"file_name"`
		FileType      string `json:"file_type"`
		LastRefreshed string `json:"last_refreshed"`
	} `json:"_source"`
}

type fcaResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total int      `json:"total"`
		Hits  []fcaHit `json:"hits"`
	} `json:"hits"`
}

// Search pages through the UK service. Its query syntax expects %20-encoded
// spaces inside the q expression itself, so the URL is assembled by hand
// rather than through url.Values.
func (s *FcaSearcher) Search(ctx context.Context, from, to time.Time, ft FileType) ([]Document, error) {
	q := fmt.Sprintf("(publication_date:[%s%%20TO%%20%s])",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if ft != "" {
		q += fmt.Sprintf("%%20AND%%20(file_type:%s)", ft)
	}
	q = "(" + q + ")"

	var docs []Document
	for start := 0; ; start += searchPageSize {
		u := fmt.Sprintf("%s?q=%s&from=%d&size=%d", s.BaseURL, q, start, searchPageSize)
		var body fcaResponse
		if err := getJSON(ctx, s.Client, u, &body); err != nil {
			return nil, fmt.Errorf("download: fca search: %w", err)
		}
		docs = append(docs, lo.Map(body.Hits.Hits, func(h fcaHit, _ int) Document {
			ts, _ := time.Parse(time.RFC3339, h.Source.LastRefreshed)
			return Document{
				ID:              h.ID,
				FileName:        h.Source.FileName,
				FileType:        FileType(h.Source.FileType),
				DownloadLink:    h.Source.DownloadLink,
				PublicationDate: ts,
			}
		})...)
		s.Logger.Debug("search page fetched", "service", "fca", "start", start, "got", len(body.Hits.Hits), "total", body.Hits.Total)
		if body.Hits.Total <= start+searchPageSize {
			return docs, nil
		}
	}
}

func getJSON(ctx context.Context, client *http.Client, u string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
