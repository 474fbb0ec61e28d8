package entity

// Topic groups articles under a unique slug.
type Topic struct {
	Slug        string
	Description string
}
