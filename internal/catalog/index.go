package catalog

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
)

// titleIndex is a Bleve index over stored product titles, keyed by product
// row id. It gives the fallback path approximate matching: "iphone" still
// finds "Apple iPhone 15 128GB Blue" snapshots.
type titleIndex struct {
	index bleve.Index
}

type titleDoc struct {
	Title string `json:"title"`
}

func openTitleIndex(path string) (*titleIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("opening title index: %w", openErr)
		}
		return &titleIndex{index: index}, nil
	}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	titleMapping := bleve.NewTextFieldMapping()
	// standard analyzer: lowercase and tokenize without stemming, so model
	// numbers like "s23" survive intact
	titleMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", titleMapping)
	im.DefaultMapping = docMapping

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("creating title index: %w", err)
	}
	return &titleIndex{index: index}, nil
}

// IndexBatch indexes id -> title pairs in one batch.
func (t *titleIndex) IndexBatch(titles map[string]string) error {
	batch := t.index.NewBatch()
	for id, title := range titles {
		if err := batch.Index(id, titleDoc{Title: title}); err != nil {
			return err
		}
	}
	return t.index.Batch(batch)
}

// Search returns product row ids ranked by title relevance. Falls back to
// fuzzy matching when the exact match query finds nothing.
func (t *titleIndex) Search(query string, limit int) ([]string, error) {
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit
	results, err := t.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("title search failed: %w", err)
	}
	if results.Total == 0 {
		fuzzy := bleve.NewMatchQuery(query)
		fuzzy.SetFuzziness(2)
		req = bleve.NewSearchRequest(fuzzy)
		req.Size = limit
		if results, err = t.index.Search(req); err != nil {
			return nil, fmt.Errorf("fuzzy title search failed: %w", err)
		}
	}
	ids := make([]string, len(results.Hits))
	for i, hit := range results.Hits {
		ids[i] = hit.ID
	}
	return ids, nil
}

func (t *titleIndex) Close() error {
	return t.index.Close()
}
