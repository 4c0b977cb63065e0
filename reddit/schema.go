package reddit

import (
	"encoding/json"
	"fmt"

	"nectar/page"
)

// Post holds the fields of a submission that the renderer uses.
// Reddit sends far more; extra fields are ignored.
type Post struct {
	Author      string `json:"author"`
	Subreddit   string `json:"subreddit"`
	Title       string `json:"title"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	Permalink   string `json:"permalink"`
	Thumbnail   string `json:"thumbnail"`
	SelfText    string `json:"selftext"`
	IsSelf      bool   `json:"is_self"`
	URL         string `json:"url"`
	Edited      Edited `json:"edited"`
}

// Edited models Reddit's polymorphic edited field, which is false for
// unedited posts and a unix timestamp otherwise.
type Edited struct {
	Timestamp float64
	IsEdited  bool
}

func (e *Edited) UnmarshalJSON(data []byte) error {
	if string(data) == "false" {
		*e = Edited{}
		return nil
	}
	var ts float64
	if err := json.Unmarshal(data, &ts); err != nil {
		return fmt.Errorf("edited: expected false or a timestamp, got %s", data)
	}
	*e = Edited{Timestamp: ts, IsEdited: true}
	return nil
}

// Child wraps a post with its kind tag.
type Child struct {
	Kind string `json:"kind"`
	Data Post   `json:"data"`
}

// Listing is Reddit's paginated collection-of-posts shape.
type Listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Children []Child `json:"children"`
	} `json:"data"`
}

// Posts returns the listing's posts in order.
func (l *Listing) Posts() []Post {
	posts := make([]Post, 0, len(l.Data.Children))
	for _, c := range l.Data.Children {
		posts = append(posts, c.Data)
	}
	return posts
}

// DecodeListing parses a listing payload. Malformed JSON text yields
// a decode-failure error; syntactically valid JSON that does not
// match the listing shape yields a schema-mismatch error naming the
// failing part, so callers can tell the two apart.
func DecodeListing(data []byte) (*Listing, *page.Error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &page.Error{
			Kind:    page.ErrDecodeFailure,
			Message: "invalid JSON: " + err.Error(),
			Wrapped: err,
		}
	}

	var listing Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, schemaErr(describeUnmarshalErr(err), err)
	}

	if listing.Kind != "Listing" {
		return nil, schemaErr(fmt.Sprintf("kind is %q, want Listing", listing.Kind), nil)
	}
	if listing.Data.Children == nil {
		return nil, schemaErr("listing is missing the posts array", nil)
	}
	for i, c := range listing.Data.Children {
		if c.Data.Title == "" {
			return nil, schemaErr(fmt.Sprintf("post %d has no title", i), nil)
		}
	}

	return &listing, nil
}

// DecodeThread parses a post-page payload: an ordered pair of
// listings where the first holds the submission itself.
func DecodeThread(data []byte) (*Listing, *page.Error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Distinguish bad JSON text from a valid non-array payload
		var probe any
		if jerr := json.Unmarshal(data, &probe); jerr != nil {
			return nil, &page.Error{
				Kind:    page.ErrDecodeFailure,
				Message: "invalid JSON: " + jerr.Error(),
				Wrapped: jerr,
			}
		}
		return nil, schemaErr("post payload is not a listing pair", err)
	}
	if len(raw) == 0 {
		return nil, schemaErr("post payload is empty", nil)
	}

	listing, perr := DecodeListing(raw[0])
	if perr != nil {
		return nil, perr
	}
	if len(listing.Data.Children) == 0 {
		return nil, schemaErr("post listing has no submission", nil)
	}
	return listing, nil
}

func schemaErr(msg string, wrapped error) *page.Error {
	return &page.Error{
		Kind:    page.ErrSchemaMismatch,
		Message: "unexpected Reddit response shape: " + msg,
		Wrapped: wrapped,
	}
}

// describeUnmarshalErr names the field a type error occurred on when
// the standard library tells us.
func describeUnmarshalErr(err error) string {
	if terr, ok := err.(*json.UnmarshalTypeError); ok && terr.Field != "" {
		return fmt.Sprintf("field %q: expected %s, got %s", terr.Field, terr.Type, terr.Value)
	}
	return err.Error()
}
