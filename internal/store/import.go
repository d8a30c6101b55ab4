package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadLinks decodes a JSON array of album links, as written by the
// collectors.
func ReadLinks(r io.Reader) ([]AlbumLink, error) {
	var links []AlbumLink
	if err := json.NewDecoder(r).Decode(&links); err != nil {
		return nil, fmt.Errorf("decode album links: %w", err)
	}
	return links, nil
}

// ReadLinksFile reads album links from a JSON file.
func ReadLinksFile(path string) ([]AlbumLink, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadLinks(f)
}
