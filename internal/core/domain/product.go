package domain

import "time"

type (
	Product struct {
		ID          string
		Name        string
		Company     string
		URL         string
		ImageURL    string
		Description string
		Created     time.Time
		Creator     Creator
		Votes       int
		VotedBy     []string
		Comments    []Comment
	}

	Creator struct {
		ID   string
		Name string
	}

	Comment struct {
		Message    string
		AuthorID   string
		AuthorName string
	}
)

func NewProduct(
	name, company, url, imageURL, description string, creator Creator,
) Product {
	return Product{
		Name:        name,
		Company:     company,
		URL:         url,
		ImageURL:    imageURL,
		Description: description,
		Created:     time.Now(),
		Creator:     creator,
		Votes:       0,
		VotedBy:     []string{},
		Comments:    []Comment{},
	}
}

// A ProductPatch carries the partial fields of an update. A nil field
// is left untouched by the store.
type ProductPatch struct {
	Votes    *int
	VotedBy  *[]string
	Comments *[]Comment
}

// NewComment builds a comment value without touching any shared state.
func NewComment(message, authorID, authorName string) Comment {
	return Comment{
		Message:    message,
		AuthorID:   authorID,
		AuthorName: authorName,
	}
}

// HasVoted reports whether userID is already in the voter set.
func (p Product) HasVoted(userID string) bool {
	for _, id := range p.VotedBy {
		if id == userID {
			return true
		}
	}
	return false
}

func (p Product) IsCreator(userID string) bool {
	return p.Creator.ID == userID
}
