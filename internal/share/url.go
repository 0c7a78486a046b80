package share

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	lzstring "github.com/daku10/go-lz-string"

	"github.com/mmynk/costsplits/internal/models"
)

// StateParam is the query parameter carrying the compressed pool.
const StateParam = "state"

var ErrNoState = errors.New("share link has no state")

// sharedState is what a share link carries: the pool name stays local.
type sharedState struct {
	People       []string             `json:"people"`
	Transactions []models.Transaction `json:"transactions"`
}

// URL builds a share link for the pool: base?state=<compressed JSON>.
// The payload uses LZString's URI-safe alphabet, so links open in the web app.
func URL(base string, p models.Pool) (string, error) {
	p = normalize(p)
	payload, err := json.Marshal(sharedState{People: p.People, Transactions: p.Transactions})
	if err != nil {
		return "", fmt.Errorf("failed to encode shared state: %w", err)
	}
	compressed, err := lzstring.CompressToEncodedURIComponent(string(payload))
	if err != nil {
		return "", fmt.Errorf("failed to compress shared state: %w", err)
	}
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	return base + "?" + StateParam + "=" + compressed, nil
}

// FromURL decodes the pool carried by a share link.
func FromURL(raw string) (models.Pool, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return models.Pool{}, fmt.Errorf("failed to parse share link: %w", err)
	}
	value := u.Query().Get(StateParam)
	if value == "" {
		return models.Pool{}, ErrNoState
	}
	// Query decoding turns the '+' of the URI-safe alphabet into spaces.
	value = strings.ReplaceAll(value, " ", "+")

	payload, err := decompress(value)
	if err != nil {
		return models.Pool{}, err
	}
	if payload == "" {
		return models.Pool{}, errors.New("failed to decode state")
	}
	return Decode(bytes.NewBufferString(payload))
}

// decompress reads the state value of a link. The decoder indexes past the
// end of truncated or garbled input, so its panics become errors here.
func decompress(value string) (payload string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to decompress shared state: %v", r)
		}
	}()
	payload, err = lzstring.DecompressFromEncodedURIComponent(value)
	if err != nil {
		return "", fmt.Errorf("failed to decompress shared state: %w", err)
	}
	return payload, nil
}
