// Package folder manages a user's folder forest: building the nested tree from
// flat records and the structural mutations that keep it acyclic and shallow.
package folder

import (
	"math/rand/v2"
	"time"
)

const (
	// MaxDepth is the number of levels a forest may have. A root is at depth 0,
	// so the deepest folder is at MaxDepth-1.
	MaxDepth = 10
	// MaxNameLength is the maximum folder name length in characters.
	MaxNameLength = 50
)

// Folder is a folder record as persisted.
type Folder struct {
	ID         string    `db:"id" json:"id" yaml:"id"`
	Name       string    `db:"name" json:"name" yaml:"name"`
	Color      string    `db:"color" json:"color" yaml:"color"`
	ParentID   *string   `db:"parent_id" json:"parent_id" yaml:"parent_id,omitempty"`
	OrderIndex int       `db:"order_index" json:"order_index" yaml:"order_index"`
	UserID     string    `db:"user_id" json:"user_id" yaml:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at" yaml:"-"`
}

// IsRoot reports whether f has no parent.
func (f Folder) IsRoot() bool {
	return f.ParentID == nil
}

// CardSetSummary is the part of a card set the folder tree shows.
type CardSetSummary struct {
	ID        string  `db:"id" json:"id" yaml:"id"`
	Name      string  `db:"name" json:"name" yaml:"name"`
	FolderID  *string `db:"folder_id" json:"folder_id" yaml:"-"`
	CardCount int     `db:"card_count" json:"card_count" yaml:"card_count"`
}

// Stats summarizes what a folder contains.
type Stats struct {
	CardSetCount   int `json:"card_set_count"`
	SubfolderCount int `json:"subfolder_count"`
	// TotalCardSets includes the card sets of all descendants.
	TotalCardSets int `json:"total_card_sets"`
}

// Color is one of the fixed folder palette values.
type Color struct {
	Name  string
	Value string
}

// Palette lists the colors a folder may have, in display order.
var Palette = []Color{
	{Name: "Blau", Value: "#7EC4FF"},
	{Name: "Grün", Value: "#6EE7B7"},
	{Name: "Gelb", Value: "#FFF58F"},
	{Name: "Orange", Value: "#FFD085"},
	{Name: "Pink", Value: "#FF8FA3"},
	{Name: "Lila", Value: "#BFA7FF"},
	{Name: "Türkis", Value: "#60EFFF"},
	{Name: "Rot", Value: "#FF8787"},
}

// IsPaletteColor reports whether value is one of the palette colors.
func IsPaletteColor(value string) bool {
	for _, c := range Palette {
		if c.Value == value {
			return true
		}
	}
	return false
}

// RandomColor picks a palette color.
func RandomColor() string {
	return Palette[rand.IntN(len(Palette))].Value
}
