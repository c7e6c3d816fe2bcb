// internal/domain/models/library.go
package models

import "time"

// ToolLink is a curated external tool reference.
type ToolLink struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Title    string `bson:"title" json:"title"`
	TitleCI  string `bson:"title_ci" json:"title_ci"`
	URL      string `bson:"url" json:"url"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Asset is a shared media/file reference (the file itself lives in external
// storage; only the pointer is managed here).
type Asset struct {
	ID      string `bson:"_id,omitempty" json:"id"`
	Title   string `bson:"title" json:"title"`
	TitleCI string `bson:"title_ci" json:"title_ci"`
	URL     string `bson:"url" json:"url"`
	Kind    string `bson:"kind,omitempty" json:"kind,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
